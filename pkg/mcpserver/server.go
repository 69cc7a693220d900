// Package mcpserver exposes saved pages to MCP clients as placement tools.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/brickyard/brickyard-cli/pkg/catalogue"
	"github.com/brickyard/brickyard-cli/pkg/files"
	"github.com/brickyard/brickyard-cli/pkg/logger"
	"github.com/brickyard/brickyard-cli/pkg/models"
	"github.com/brickyard/brickyard-cli/pkg/workspace"
)

// Server is the MCP server over the pages of one project
type Server struct {
	mcp      *server.MCPServer
	cat      *catalogue.Catalogue
	settings *models.Settings
	log      logger.Logger

	mu       sync.Mutex
	sessions map[string]*workspace.Session
}

// Deps holds what the server needs from the command layer
type Deps struct {
	Catalogue *catalogue.Catalogue
	Settings  *models.Settings
	Logger    logger.Logger
	Version   string
}

// New creates the server and registers every tool
func New(deps Deps) *Server {
	if deps.Catalogue == nil {
		deps.Catalogue = catalogue.Default()
	}
	if deps.Settings == nil {
		deps.Settings = models.DefaultSettings()
	}
	if deps.Logger == nil {
		deps.Logger = logger.NewNop()
	}
	if deps.Version == "" {
		deps.Version = "dev"
	}

	s := &Server{
		cat:      deps.Catalogue,
		settings: deps.Settings,
		log:      deps.Logger.WithField("component", "mcp"),
		sessions: make(map[string]*workspace.Session),
	}

	s.mcp = server.NewMCPServer(
		"brickyard-mcp",
		deps.Version,
		server.WithToolCapabilities(true),
	)

	s.registerCatalogueTools()
	s.registerPageTools()
	s.registerPlacementTools()

	return s
}

// ServeStdio serves MCP on stdin/stdout until the client disconnects
func (s *Server) ServeStdio() error {
	s.log.Info("starting stdio server")
	return server.ServeStdio(s.mcp)
}

// MCP exposes the underlying server
func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

// session returns the live session for name. A cached session is reused only
// while the file on disk is the one it last saved, so undo history survives
// between calls but never replays over an external edit.
func (s *Server) session(name string) (*workspace.Session, error) {
	page, err := files.ReadPage(name)
	if err != nil {
		return nil, err
	}

	if cached, ok := s.sessions[page.Name]; ok && cached.Page.Modified.Equal(page.Modified) {
		return cached, nil
	}

	sess := workspace.New(page, workspace.Options{
		Catalogue:       s.cat,
		HistoryCapacity: s.settings.History.Capacity,
		Logger:          s.log,
	})
	s.sessions[page.Name] = sess
	return sess, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}

func requireString(req mcp.CallToolRequest, key string) (string, error) {
	v := req.GetString(key, "")
	if v == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return v, nil
}

// pageResult is the shape returned after every placement
type pageResult struct {
	Page    string         `json:"page"`
	Count   string         `json:"count"`
	NodeID  string         `json:"nodeId,omitempty"`
	Changed bool           `json:"changed"`
	Nodes   []*models.Node `json:"nodes"`
}

func (s *Server) saveResult(ctx context.Context, sess *workspace.Session, nodeID string, changed bool) (*mcp.CallToolResult, error) {
	if changed {
		if err := sess.Save(); err != nil {
			return nil, err
		}
		s.log.WithFields(map[string]interface{}{"page": sess.Page.Name, "node": nodeID}).Debug("page updated")
	}
	return jsonResult(pageResult{
		Page:    sess.Page.Name,
		Count:   sess.Canvas().CountLabel(),
		NodeID:  nodeID,
		Changed: changed,
		Nodes:   sess.Canvas().Nodes(),
	})
}
