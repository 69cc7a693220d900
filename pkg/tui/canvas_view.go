package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/brickyard/brickyard-cli/pkg/canvas"
	"github.com/brickyard/brickyard-cli/pkg/dragdrop"
	"github.com/brickyard/brickyard-cli/pkg/models"
)

const (
	sidebarOuterWidth    = 30
	propertiesOuterWidth = 34
	headerHeight         = 1
	footerHeight         = 2
)

// geometry holds the screen areas of the panes. Hidden panes have a zero
// rect.
type geometry struct {
	sidebar    dragdrop.Rect
	canvas     dragdrop.Rect
	properties dragdrop.Rect
	code       dragdrop.Rect
}

func (b *BuilderModel) geometry() geometry {
	var g geometry
	bodyH := b.height - headerHeight - footerHeight
	if bodyH < 3 {
		bodyH = 3
	}
	left, right := 0, b.width
	if b.panels.Sidebar {
		g.sidebar = dragdrop.Rect{X: 0, Y: headerHeight, W: sidebarOuterWidth, H: bodyH}
		left = sidebarOuterWidth
	}
	if b.panels.Properties {
		g.properties = dragdrop.Rect{X: b.width - propertiesOuterWidth, Y: headerHeight, W: propertiesOuterWidth, H: bodyH}
		right = b.width - propertiesOuterWidth
	}
	canvasH := bodyH
	if b.panels.Code {
		codeH := bodyH * 2 / 5
		canvasH = bodyH - codeH
		g.code = dragdrop.Rect{X: left, Y: headerHeight + canvasH, W: right - left, H: codeH}
	}
	g.canvas = dragdrop.Rect{X: left, Y: headerHeight, W: right - left, H: canvasH}
	return g
}

// canvasArea is where node lines are drawn: inside the border and padding,
// below the pane title
func canvasArea(pane dragdrop.Rect) dragdrop.Rect {
	r := dragdrop.Rect{X: pane.X + 2, Y: pane.Y + 2, W: pane.W - 4, H: pane.H - 3}
	if r.W < 1 {
		r.W = 1
	}
	if r.H < 1 {
		r.H = 1
	}
	return r
}

// canvasRender accumulates lines and the node spans they cover
type canvasRender struct {
	lines   []string
	spans   []span
	order   []string
	lineOf  map[string]int
	width   int
	markers dragdrop.Markers
	sel     string
}

type span struct {
	el    dragdrop.Element
	start int
	end   int
}

func (r *canvasRender) add(style lipgloss.Style, text string) {
	r.lines = append(r.lines, style.Render(truncate.StringWithTail(text, uint(r.width), "…")))
}

// relayout renders the canvas tree into lines and records the hit areas of
// every node and column
func (b *BuilderModel) relayout() {
	area := canvasArea(b.geometry().canvas)
	c := b.engine.Canvas()
	r := &canvasRender{
		lineOf:  make(map[string]int),
		width:   area.W,
		markers: b.drag.Markers(),
		sel:     c.SelectedID(),
	}

	if c.Empty() {
		r.add(PlaceholderStyle, "Drag components here")
		r.add(PlaceholderStyle, "or press a to add the highlighted component")
	}
	for _, n := range c.Nodes() {
		b.renderNode(r, n, 1, 0)
	}

	if limit := len(r.lines) - area.H; b.canvasOffset > limit {
		b.canvasOffset = limit
	}
	if b.canvasOffset < 0 {
		b.canvasOffset = 0
	}

	b.layout.Reset()
	b.layout.Add(dragdrop.Element{Kind: dragdrop.ElementCanvas, Rect: area})
	for _, s := range r.spans {
		top := area.Y + s.start - b.canvasOffset
		bottom := area.Y + s.end - b.canvasOffset
		if top < area.Y {
			top = area.Y
		}
		if bottom > area.Bottom() {
			bottom = area.Bottom()
		}
		if bottom <= top {
			continue
		}
		el := s.el
		el.Rect.X += area.X
		el.Rect.Y = top
		el.Rect.H = bottom - top
		b.layout.Add(el)
	}

	b.canvasLines = r.lines
	b.nodeOrder = r.order
	b.nodeLine = r.lineOf
}

func (b *BuilderModel) renderNode(r *canvasRender, n *models.Node, depth, indent int) {
	start := len(r.lines)
	pad := strings.Repeat(" ", indent)
	exiting := n.State == models.NodeExiting
	if !exiting {
		r.order = append(r.order, n.ID)
	}
	r.lineOf[n.ID] = start

	name := n.Type
	if def, ok := b.cat.Lookup(n.Type); ok {
		name = def.Name
	}
	prefix, style := nodeMarker(r, n.ID, exiting)
	r.add(style, fmt.Sprintf("%s%s%s  #%s", pad, prefix, name, n.ID))

	beh, _ := b.engine.Canvas().Behaviors(n.ID)
	switch cols := beh.Columns(); {
	case cols > 0:
		for col := 0; col < cols; col++ {
			colStart := len(r.lines)
			colStyle := DescriptionStyle
			if r.markers.Target == n.ID && r.markers.Column == col {
				colStyle = DropValidStyle
			}
			r.add(colStyle, fmt.Sprintf("%s    col %d", pad, col+1))
			placed := false
			for _, child := range n.Children {
				if child.Slot == canvas.ColumnSlot(col) {
					b.renderNode(r, child, depth+1, indent+4)
					placed = true
				}
			}
			if !placed {
				r.add(PlaceholderStyle, pad+"      ⊕ drop here")
			}
			r.spans = append(r.spans, span{
				el:    dragdrop.Element{Kind: dragdrop.ElementColumn, NodeID: n.ID, Column: col, Depth: depth, Rect: dragdrop.Rect{X: indent + 2, W: r.width - indent - 2}},
				start: colStart,
				end:   len(r.lines),
			})
		}
	case beh.DropTarget:
		for _, child := range n.Children {
			b.renderNode(r, child, depth+1, indent+2)
		}
		if len(n.Children) == 0 {
			r.add(PlaceholderStyle, pad+"    ⊕ drop here")
		}
	default:
		if text := canvas.TextOf(n.Content); text != "" {
			r.add(DescriptionStyle, pad+"    "+text)
		}
	}

	r.spans = append(r.spans, span{
		el:    dragdrop.Element{Kind: dragdrop.ElementNode, NodeID: n.ID, Depth: depth, Rect: dragdrop.Rect{X: indent, W: r.width - indent}},
		start: start,
		end:   len(r.lines),
	})
}

// nodeMarker picks the two-column prefix and style of a node header. The
// prefix width never changes so hover markers do not move the layout.
func nodeMarker(r *canvasRender, id string, exiting bool) (string, lipgloss.Style) {
	m := r.markers
	switch {
	case exiting:
		return "  ", NodeExitingStyle
	case m.Dragging == id:
		return "↕ ", PlaceholderStyle
	case m.Target == id && m.Valid:
		return "✓ ", DropValidStyle
	case m.Target == id && m.Invalid:
		return "✗ ", DropInvalidStyle
	case m.Reorder == id && m.Above:
		return "↑ ", ReorderLineStyle
	case m.Reorder == id:
		return "↓ ", ReorderLineStyle
	case r.sel == id:
		return "▸ ", NodeSelectedStyle
	}
	return "  ", NodeStyle
}

// scrollToSelection keeps the selected node's header on screen
func (b *BuilderModel) scrollToSelection() {
	line, ok := b.nodeLine[b.engine.Canvas().SelectedID()]
	if !ok {
		return
	}
	h := canvasArea(b.geometry().canvas).H
	if line < b.canvasOffset {
		b.canvasOffset = line
	}
	if line >= b.canvasOffset+h {
		b.canvasOffset = line - h + 1
	}
}

func (b *BuilderModel) canvasView(pane dragdrop.Rect) string {
	c := b.engine.Canvas()
	title := fmt.Sprintf("CANVAS · %s · %s", c.CountLabel(), b.sess.Page.Theme)
	header := GetActiveHeaderStyle(b.focus == focusCanvas).Render(title)
	if m := b.drag.Markers(); m.Root {
		header += "  " + DropValidStyle.Render("⊕ append")
	}

	area := canvasArea(pane)
	end := b.canvasOffset + area.H
	if end > len(b.canvasLines) {
		end = len(b.canvasLines)
	}
	body := strings.Join(b.canvasLines[b.canvasOffset:end], "\n")
	return renderPane(pane, b.focus == focusCanvas, header+"\n"+body)
}

// renderPane draws a bordered pane filling r
func renderPane(r dragdrop.Rect, focused bool, content string) string {
	w, h := r.W-2, r.H-2
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return GetBorderStyle(focused).
		Padding(0, 1).
		Width(w).
		Height(h).
		MaxHeight(r.H).
		Render(content)
}
