package mcpserver

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brickyard/brickyard-cli/pkg/files"
	"github.com/brickyard/brickyard-cli/pkg/logger"
)

func setup(t *testing.T) *Server {
	t.Helper()
	oldWd, _ := os.Getwd()
	t.Cleanup(func() { os.Chdir(oldWd) })
	require.NoError(t, os.Chdir(t.TempDir()))
	require.NoError(t, files.InitProjectStructure())
	return New(Deps{Logger: logger.NewTestLogger(t)})
}

func call(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func decodePage(t *testing.T, res *mcp.CallToolResult) pageResult {
	t.Helper()
	var out pageResult
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &out))
	return out
}

func TestListComponents(t *testing.T) {
	s := setup(t)
	ctx := context.Background()

	res, err := s.handleListComponents(ctx, call(map[string]any{}))
	require.NoError(t, err)
	var all []componentSummary
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &all))
	assert.Equal(t, s.cat.Len(), len(all))

	res, err = s.handleListComponents(ctx, call(map[string]any{"search": "paragraph"}))
	require.NoError(t, err)
	var found []componentSummary
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &found))
	require.NotEmpty(t, found)
	for _, c := range found {
		assert.Contains(t, strings.ToLower(c.Name), "paragraph")
	}
}

func TestCreateAndListPages(t *testing.T) {
	s := setup(t)
	ctx := context.Background()

	_, err := s.handleCreatePage(ctx, call(map[string]any{"name": "Home", "theme": "darkly"}))
	require.NoError(t, err)

	_, err = s.handleCreatePage(ctx, call(map[string]any{"name": "home"}))
	assert.Error(t, err, "duplicate page")

	_, err = s.handleCreatePage(ctx, call(map[string]any{}))
	assert.Error(t, err)

	res, err := s.handleListPages(ctx, call(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `["home"]`, text(t, res))

	page, err := files.ReadPage("home")
	require.NoError(t, err)
	assert.Equal(t, "darkly", page.Theme)
}

func TestPlacementRoundTrip(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	_, err := s.handleCreatePage(ctx, call(map[string]any{"name": "site"}))
	require.NoError(t, err)

	res, err := s.handleAddComponent(ctx, call(map[string]any{"page": "site", "component": "container"}))
	require.NoError(t, err)
	added := decodePage(t, res)
	assert.Equal(t, "comp-1", added.NodeID)
	assert.Equal(t, "1 component", added.Count)

	res, err = s.handleNestComponent(ctx, call(map[string]any{"page": "site", "parent": "comp-1", "component": "paragraph"}))
	require.NoError(t, err)
	nested := decodePage(t, res)
	assert.Equal(t, "comp-2", nested.NodeID)
	require.Len(t, nested.Nodes[0].Children, 1)

	_, err = s.handleAddComponent(ctx, call(map[string]any{"page": "site", "component": "paragraph"}))
	require.NoError(t, err)

	res, err = s.handleMoveComponent(ctx, call(map[string]any{"page": "site", "node": "comp-3", "direction": "up"}))
	require.NoError(t, err)
	moved := decodePage(t, res)
	assert.True(t, moved.Changed)
	assert.Equal(t, "comp-3", moved.Nodes[0].ID)

	page, err := files.ReadPage("site")
	require.NoError(t, err)
	require.Len(t, page.Nodes, 2)
	assert.Equal(t, "comp-3", page.Nodes[0].ID)
	assert.Equal(t, 3, page.Counter)
}

func TestPlacementErrors(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	s.handleCreatePage(ctx, call(map[string]any{"name": "site"}))
	s.handleAddComponent(ctx, call(map[string]any{"page": "site", "component": "paragraph"}))

	tests := []struct {
		name string
		fn   func() error
	}{
		{"unknown page", func() error {
			_, err := s.handleAddComponent(ctx, call(map[string]any{"page": "nope", "component": "paragraph"}))
			return err
		}},
		{"unknown component", func() error {
			_, err := s.handleAddComponent(ctx, call(map[string]any{"page": "site", "component": "nope"}))
			return err
		}},
		{"non-container parent", func() error {
			_, err := s.handleNestComponent(ctx, call(map[string]any{"page": "site", "parent": "comp-1", "component": "paragraph"}))
			return err
		}},
		{"bad direction", func() error {
			_, err := s.handleMoveComponent(ctx, call(map[string]any{"page": "site", "node": "comp-1", "direction": "left"}))
			return err
		}},
		{"unknown node delete", func() error {
			_, err := s.handleDeleteComponent(ctx, call(map[string]any{"page": "site", "node": "comp-9"}))
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.fn())
		})
	}
}

func TestDeleteThenUndoRedo(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	s.handleCreatePage(ctx, call(map[string]any{"name": "site"}))
	s.handleAddComponent(ctx, call(map[string]any{"page": "site", "component": "paragraph"}))

	res, err := s.handleDeleteComponent(ctx, call(map[string]any{"page": "site", "node": "comp-1"}))
	require.NoError(t, err)
	assert.Empty(t, decodePage(t, res).Nodes)

	res, err = s.handleUndo(ctx, call(map[string]any{"page": "site"}))
	require.NoError(t, err)
	undone := decodePage(t, res)
	assert.True(t, undone.Changed)
	require.Len(t, undone.Nodes, 1)

	page, _ := files.ReadPage("site")
	assert.Len(t, page.Nodes, 1)

	res, err = s.handleRedo(ctx, call(map[string]any{"page": "site"}))
	require.NoError(t, err)
	assert.Empty(t, decodePage(t, res).Nodes)
}

func TestUndoAfterExternalEditStartsFresh(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	s.handleCreatePage(ctx, call(map[string]any{"name": "site"}))
	s.handleAddComponent(ctx, call(map[string]any{"page": "site", "component": "paragraph"}))

	page, _ := files.ReadPage("site")
	page.Theme = "minty"
	require.NoError(t, files.WritePage(page))

	res, err := s.handleUndo(ctx, call(map[string]any{"page": "site"}))
	require.NoError(t, err)
	out := decodePage(t, res)
	assert.False(t, out.Changed)
	assert.Len(t, out.Nodes, 1)
}

func TestExportPage(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	s.handleCreatePage(ctx, call(map[string]any{"name": "site"}))
	s.handleAddComponent(ctx, call(map[string]any{"page": "site", "component": "paragraph"}))

	res, err := s.handleExportPage(ctx, call(map[string]any{"page": "site", "theme": "darkly"}))
	require.NoError(t, err)
	doc := text(t, res)
	assert.True(t, strings.HasPrefix(doc, "<!DOCTYPE html>"))
	assert.Contains(t, doc, "bootswatch@5.3.2/dist/darkly/bootstrap.min.css")
	assert.Contains(t, doc, "Lorem ipsum")
}
