package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/brickyard/brickyard-cli/pkg/export"
	"github.com/brickyard/brickyard-cli/pkg/files"
)

func (s *Server) registerPageTools() {
	s.mcp.AddTool(mcp.NewTool("list_pages",
		mcp.WithDescription("List the saved pages of the project"),
	), s.handleListPages)

	s.mcp.AddTool(mcp.NewTool("create_page",
		mcp.WithDescription("Create an empty page"),
		mcp.WithString("name", mcp.Description("Page name"), mcp.Required()),
		mcp.WithString("theme", mcp.Description("Bootswatch theme, default if omitted")),
	), s.handleCreatePage)

	s.mcp.AddTool(mcp.NewTool("export_page",
		mcp.WithDescription("Render a page as a standalone HTML document"),
		mcp.WithString("page", mcp.Description("Page name"), mcp.Required()),
		mcp.WithString("theme", mcp.Description("Override the page theme")),
	), s.handleExportPage)
}

func (s *Server) handleListPages(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pages, err := files.ListPages()
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	return jsonResult(pages)
}

func (s *Server) handleCreatePage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := requireString(req, "name")
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if files.PageExists(name) {
		return nil, fmt.Errorf("page %s already exists", files.PageFile(name))
	}
	page := files.NewPage(name, req.GetString("theme", s.settings.Export.Theme))
	if err := files.WritePage(page); err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	return jsonResult(page)
}

func (s *Server) handleExportPage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := requireString(req, "page")
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(name)
	if err != nil {
		return nil, err
	}
	theme := req.GetString("theme", sess.Page.Theme)
	doc, err := export.Page(sess.Canvas(), theme, s.settings.Export.Title)
	if err != nil {
		return nil, fmt.Errorf("export page: %w", err)
	}
	return textResult(doc), nil
}
