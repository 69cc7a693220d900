package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brickyard/brickyard-cli/pkg/dragdrop"
)

// pressState is the left button press being tracked between press and
// release
type pressState struct {
	x, y      int
	nodeID    string
	component string
	moved     bool
}

// Rows above the first sidebar item and the first property row, counted
// from the pane's top border
const (
	sidebarListTop    = 3
	propertiesListTop = 4
)

func (b *BuilderModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if b.confirm.Active() || b.promptApply != nil {
		return nil
	}
	g := b.geometry()

	if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
		b.scroll(g, msg)
		return nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			b.press = b.pressAt(g, msg.X, msg.Y)
		}
	case tea.MouseActionMotion:
		b.motion(msg.X, msg.Y)
	case tea.MouseActionRelease:
		b.release(g, msg.X, msg.Y)
	}
	return nil
}

func (b *BuilderModel) pressAt(g geometry, x, y int) *pressState {
	p := &pressState{x: x, y: y}
	switch {
	case b.panels.Sidebar && g.sidebar.Contains(x, y):
		b.focus = focusSidebar
		i, ok := b.sidebar.itemAt(y - g.sidebar.Y - sidebarListTop)
		if !ok {
			return nil
		}
		b.sidebar.cursor = i
		def, _ := b.sidebar.selected()
		p.component = def.ID
		b.drag.BeginCatalogue(def.ID)

	case g.canvas.Contains(x, y):
		b.focus = focusCanvas
		for _, el := range b.layout.ElementsAt(x, y) {
			if el.Kind == dragdrop.ElementNode || el.Kind == dragdrop.ElementColumn {
				p.nodeID = el.NodeID
				break
			}
		}

	case b.panels.Properties && g.properties.Contains(x, y):
		b.focus = focusProperties
		if row := y - g.properties.Y - propertiesListTop; row >= 0 {
			b.propCursor = row
		}
		return nil

	case b.panels.Code && g.code.Contains(x, y):
		b.focus = focusCode
		return nil

	default:
		return nil
	}
	return p
}

func (b *BuilderModel) motion(x, y int) {
	p := b.press
	if p == nil {
		return
	}
	if !p.moved && (x != p.x || y != p.y) {
		p.moved = true
		if p.component == "" && p.nodeID != "" {
			b.drag.BeginReorder(p.nodeID)
		}
	}
	if b.drag.Active() {
		b.drag.Hover(x, y)
	}
}

func (b *BuilderModel) release(g geometry, x, y int) {
	p := b.press
	b.press = nil
	if p == nil {
		return
	}

	if b.drag.Active() && p.moved {
		if !g.canvas.Contains(x, y) {
			b.drag.Cancel()
			return
		}
		s := b.drag.Session()
		out := b.drag.Drop(x, y)
		switch {
		case out.Placed && out.Node != nil:
			b.engine.Select(out.Node.ID)
		case !out.Placed && s.Kind == dragdrop.FromCatalogue && out.Target.Kind != dragdrop.TargetTop:
			name := s.ComponentID
			if def, ok := b.cat.Lookup(s.ComponentID); ok {
				name = def.Name
			}
			b.toasts.Warning("Invalid Drop", fmt.Sprintf("%s cannot be placed here", name))
		}
		return
	}

	b.drag.Cancel()
	switch {
	case p.nodeID != "":
		b.engine.Select(p.nodeID)
	case p.component == "":
		b.engine.Deselect()
	}
}

func (b *BuilderModel) scroll(g geometry, msg tea.MouseMsg) {
	delta := 1
	if msg.Button == tea.MouseButtonWheelUp {
		delta = -1
	}
	switch {
	case b.panels.Sidebar && g.sidebar.Contains(msg.X, msg.Y):
		b.sidebar.move(delta)
	case b.panels.Code && g.code.Contains(msg.X, msg.Y):
		if delta < 0 {
			b.code.LineUp(1)
		} else {
			b.code.LineDown(1)
		}
	case g.canvas.Contains(msg.X, msg.Y):
		b.canvasOffset += delta
	}
}
