package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPlacementTools() {
	s.mcp.AddTool(mcp.NewTool("add_component",
		mcp.WithDescription("Append a catalogue component to the top level of a page"),
		mcp.WithString("page", mcp.Description("Page name"), mcp.Required()),
		mcp.WithString("component", mcp.Description("Catalogue component id"), mcp.Required()),
	), s.handleAddComponent)

	s.mcp.AddTool(mcp.NewTool("nest_component",
		mcp.WithDescription("Place a catalogue component inside a container node. Incompatible pairs are refused."),
		mcp.WithString("page", mcp.Description("Page name"), mcp.Required()),
		mcp.WithString("parent", mcp.Description("Id of the container node"), mcp.Required()),
		mcp.WithString("component", mcp.Description("Catalogue component id"), mcp.Required()),
		mcp.WithString("slot", mcp.Description("Content slot, the default slot if omitted")),
		mcp.WithNumber("column", mcp.Description("Zero-based column of a row layout")),
	), s.handleNestComponent)

	s.mcp.AddTool(mcp.NewTool("move_component",
		mcp.WithDescription("Move a node one position up or down among its siblings"),
		mcp.WithString("page", mcp.Description("Page name"), mcp.Required()),
		mcp.WithString("node", mcp.Description("Node id"), mcp.Required()),
		mcp.WithString("direction", mcp.Description("up or down"), mcp.Required(), mcp.Enum("up", "down")),
	), s.handleMoveComponent)

	s.mcp.AddTool(mcp.NewTool("delete_component",
		mcp.WithDescription("Remove a node and its subtree"),
		mcp.WithString("page", mcp.Description("Page name"), mcp.Required()),
		mcp.WithString("node", mcp.Description("Node id"), mcp.Required()),
	), s.handleDeleteComponent)

	s.mcp.AddTool(mcp.NewTool("undo",
		mcp.WithDescription("Undo the last change made to a page through this server"),
		mcp.WithString("page", mcp.Description("Page name"), mcp.Required()),
	), s.handleUndo)

	s.mcp.AddTool(mcp.NewTool("redo",
		mcp.WithDescription("Redo the last undone change of a page"),
		mcp.WithString("page", mcp.Description("Page name"), mcp.Required()),
	), s.handleRedo)
}

func (s *Server) handleAddComponent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := requireString(req, "page")
	if err != nil {
		return nil, err
	}
	component, err := requireString(req, "component")
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(name)
	if err != nil {
		return nil, err
	}
	node, ok := sess.Engine.InsertTop(component)
	if !ok {
		return nil, fmt.Errorf("unknown component %s", component)
	}
	return s.saveResult(ctx, sess, node.ID, true)
}

func (s *Server) handleNestComponent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := requireString(req, "page")
	if err != nil {
		return nil, err
	}
	parent, err := requireString(req, "parent")
	if err != nil {
		return nil, err
	}
	component, err := requireString(req, "component")
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(name)
	if err != nil {
		return nil, err
	}

	col := req.GetInt("column", -1)
	var placed bool
	var nodeID string
	if col >= 0 {
		node, ok := sess.Engine.InsertIntoColumn(parent, col, component)
		placed = ok
		if ok {
			nodeID = node.ID
		}
	} else {
		node, ok := sess.Engine.InsertNested(parent, req.GetString("slot", ""), component)
		placed = ok
		if ok {
			nodeID = node.ID
		}
	}
	if !placed {
		return nil, fmt.Errorf("cannot place %s inside %s", component, parent)
	}
	return s.saveResult(ctx, sess, nodeID, true)
}

func (s *Server) handleMoveComponent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := requireString(req, "page")
	if err != nil {
		return nil, err
	}
	id, err := requireString(req, "node")
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(name)
	if err != nil {
		return nil, err
	}

	var moved bool
	switch dir := req.GetString("direction", ""); dir {
	case "up":
		moved = sess.Engine.MoveUp(id)
	case "down":
		moved = sess.Engine.MoveDown(id)
	default:
		return nil, fmt.Errorf("direction must be up or down, got %q", dir)
	}
	return s.saveResult(ctx, sess, id, moved)
}

func (s *Server) handleDeleteComponent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := requireString(req, "page")
	if err != nil {
		return nil, err
	}
	id, err := requireString(req, "node")
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(name)
	if err != nil {
		return nil, err
	}
	if !sess.Engine.Delete(id) {
		return nil, fmt.Errorf("node %s not found", id)
	}
	return s.saveResult(ctx, sess, id, true)
}

func (s *Server) handleUndo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.step(ctx, req, true)
}

func (s *Server) handleRedo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.step(ctx, req, false)
}

func (s *Server) step(ctx context.Context, req mcp.CallToolRequest, undo bool) (*mcp.CallToolResult, error) {
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

	var changed bool
	if undo {
		changed = sess.Engine.Undo()
	} else {
		changed = sess.Engine.Redo()
	}
	return s.saveResult(ctx, sess, "", changed)
}
