package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/brickyard/brickyard-cli/pkg/catalogue"
)

type componentSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Tab      string `json:"tab,omitempty"`
}

func (s *Server) registerCatalogueTools() {
	s.mcp.AddTool(mcp.NewTool("list_components",
		mcp.WithDescription("List the components that can be placed on a page"),
		mcp.WithString("category", mcp.Description("Only list this category key")),
		mcp.WithString("search", mcp.Description("Case-insensitive name filter")),
	), s.handleListComponents)
}

func (s *Server) handleListComponents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category := req.GetString("category", "")

	out := []componentSummary{}
	for _, cat := range s.cat.Search(req.GetString("search", "")) {
		if category != "" && cat.Key != category {
			continue
		}
		for _, item := range catalogue.Visible(cat, catalogue.TabAll) {
			out = append(out, componentSummary{ID: item.ID, Name: item.Name, Category: cat.Key, Tab: item.Tab})
		}
	}
	return jsonResult(out)
}
