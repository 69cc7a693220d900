package dragdrop

import (
	"github.com/brickyard/brickyard-cli/pkg/canvas"
	"github.com/brickyard/brickyard-cli/pkg/compat"
	"github.com/brickyard/brickyard-cli/pkg/logger"
	"github.com/brickyard/brickyard-cli/pkg/models"
)

// Placer applies a drop to the canvas
type Placer interface {
	InsertTop(componentID string) (*models.Node, bool)
	InsertNested(parentID, slot, componentID string) (*models.Node, bool)
	InsertIntoColumn(rowID string, col int, componentID string) (*models.Node, bool)
	Reorder(draggedID, targetID string, y, top, bottom int) bool
}

// SessionKind tells what is being dragged
type SessionKind int

const (
	FromCatalogue SessionKind = iota + 1
	Reorder
)

// Session is the active drag
type Session struct {
	Kind        SessionKind
	ComponentID string // FromCatalogue
	NodeID      string // Reorder
}

// Markers are the hover indicators of the active drag. The zero value shows
// nothing.
type Markers struct {
	Target   string // node under the pointer that takes children
	Valid    bool
	Invalid  bool
	Column   int // highlighted column, -1 for none
	Root     bool
	Reorder  string // top-level node the dragged node lands next to
	Above    bool
	Dragging string // node being reordered
}

// Outcome reports what a drop did
type Outcome struct {
	Target Target
	Node   *models.Node
	Placed bool
}

// Controller owns the single drag session
type Controller struct {
	canvas  *canvas.Canvas
	rules   *compat.Relation
	layout  *Layout
	placer  Placer
	log     logger.Logger
	session *Session
	markers Markers
}

func NewController(c *canvas.Canvas, layout *Layout, placer Placer, log logger.Logger) *Controller {
	if log == nil {
		log = logger.NewNop()
	}
	ctl := &Controller{
		canvas: c,
		rules:  c.Rules(),
		layout: layout,
		placer: placer,
		log:    log,
	}
	ctl.Cleanup()
	return ctl
}

// Session returns the active session or nil
func (ctl *Controller) Session() *Session {
	return ctl.session
}

func (ctl *Controller) Active() bool {
	return ctl.session != nil
}

func (ctl *Controller) Markers() Markers {
	return ctl.markers
}

// Cleanup clears every hover marker regardless of which session set it
func (ctl *Controller) Cleanup() {
	ctl.markers = Markers{Column: -1}
}

// BeginCatalogue starts dragging a catalogue item
func (ctl *Controller) BeginCatalogue(componentID string) {
	ctl.Cleanup()
	ctl.session = &Session{Kind: FromCatalogue, ComponentID: componentID}
}

// BeginReorder starts dragging a placed top-level node
func (ctl *Controller) BeginReorder(nodeID string) bool {
	ctl.Cleanup()
	ctl.session = nil
	loc, ok := ctl.canvas.Find(nodeID)
	if !ok || !loc.TopLevel() || loc.Exiting() {
		return false
	}
	ctl.session = &Session{Kind: Reorder, NodeID: nodeID}
	ctl.markers.Dragging = nodeID
	return true
}

// Hover updates the markers for the pointer at (x, y)
func (ctl *Controller) Hover(x, y int) {
	if ctl.session == nil {
		return
	}
	dragging := ctl.markers.Dragging
	ctl.Cleanup()
	ctl.markers.Dragging = dragging

	stack := ctl.layout.ElementsAt(x, y)
	switch ctl.session.Kind {
	case FromCatalogue:
		t := Resolve(ctl.canvas, stack, "")
		switch t.Kind {
		case TargetTop:
			ctl.markers.Root = len(stack) > 0
		default:
			ctl.markers.Target = t.NodeID
			ok := ctl.rules.IsCompatible(t.Type, ctl.session.ComponentID)
			ctl.markers.Valid = ok
			ctl.markers.Invalid = !ok
			if t.Kind == TargetColumn && ok {
				ctl.markers.Column = t.Column
			}
		}
	case Reorder:
		if el, ok := ctl.topLevelAt(stack); ok && el.NodeID != ctl.session.NodeID {
			ctl.markers.Reorder = el.NodeID
			ctl.markers.Above = y < el.Rect.Y+el.Rect.H/2
		}
	}
}

// Drop ends the session at (x, y) and applies it
func (ctl *Controller) Drop(x, y int) Outcome {
	s := ctl.session
	ctl.session = nil
	ctl.Cleanup()
	if s == nil {
		return Outcome{}
	}

	stack := ctl.layout.ElementsAt(x, y)
	if s.Kind == Reorder {
		el, ok := ctl.topLevelAt(stack)
		if !ok {
			return Outcome{}
		}
		placed := ctl.placer.Reorder(s.NodeID, el.NodeID, y, el.Rect.Y, el.Rect.Bottom())
		return Outcome{Target: Target{Kind: TargetTop, NodeID: el.NodeID}, Placed: placed}
	}

	t := Resolve(ctl.canvas, stack, "")
	var (
		n  *models.Node
		ok bool
	)
	switch t.Kind {
	case TargetTop:
		n, ok = ctl.placer.InsertTop(s.ComponentID)
	case TargetColumn, TargetNested:
		if !ctl.rules.IsCompatible(t.Type, s.ComponentID) {
			ctl.log.WithFields(map[string]interface{}{"parent": t.Type, "child": s.ComponentID}).Debug("drop rejected")
			return Outcome{Target: t}
		}
		if t.Kind == TargetColumn {
			n, ok = ctl.placer.InsertIntoColumn(t.NodeID, t.Column, s.ComponentID)
		} else {
			n, ok = ctl.placer.InsertNested(t.NodeID, t.Slot, s.ComponentID)
		}
	}
	return Outcome{Target: t, Node: n, Placed: ok}
}

// Cancel ends the session without touching the canvas
func (ctl *Controller) Cancel() {
	ctl.session = nil
	ctl.Cleanup()
}

// topLevelAt returns the area of the top-level node under the pointer
func (ctl *Controller) topLevelAt(stack []Element) (Element, bool) {
	for i := len(stack) - 1; i >= 0; i-- {
		el := stack[i]
		if el.Kind != ElementNode {
			continue
		}
		loc, ok := ctl.canvas.Find(el.NodeID)
		if ok && loc.TopLevel() && !loc.Exiting() {
			return el, true
		}
	}
	return Element{}, false
}
