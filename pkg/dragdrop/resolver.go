package dragdrop

import (
	"github.com/brickyard/brickyard-cli/pkg/canvas"
)

// TargetKind is where a drop lands
type TargetKind int

const (
	TargetTop TargetKind = iota
	TargetNested
	TargetColumn
)

func (k TargetKind) String() string {
	switch k {
	case TargetNested:
		return "nested"
	case TargetColumn:
		return "column"
	default:
		return "top"
	}
}

// Target is the result of resolving a hit stack
type Target struct {
	Kind   TargetKind
	NodeID string
	Type   string
	Slot   string
	Column int
}

// Resolve walks the hit stack topmost first and returns the first node able
// to take children. exclude and its descendants are skipped, as are nodes
// waiting for removal. A hit on a row column targets that column. With no
// match the drop is a top-level append.
func Resolve(c *canvas.Canvas, stack []Element, exclude string) Target {
	for _, el := range stack {
		if el.Kind == ElementCanvas {
			break
		}
		loc, ok := c.Find(el.NodeID)
		if !ok || loc.Exiting() || excluded(loc, exclude) {
			continue
		}
		b, ok := c.Behaviors(el.NodeID)
		if !ok || !b.DropTarget {
			continue
		}
		if el.Kind == ElementColumn {
			slot := canvas.ColumnSlot(el.Column)
			if hasSlot(b, slot) {
				return Target{Kind: TargetColumn, NodeID: loc.Node.ID, Type: loc.Node.Type, Slot: slot, Column: el.Column}
			}
		}
		return Target{Kind: TargetNested, NodeID: loc.Node.ID, Type: loc.Node.Type, Slot: b.DefaultSlot}
	}
	return Target{Kind: TargetTop}
}

func excluded(loc canvas.Location, exclude string) bool {
	if exclude == "" {
		return false
	}
	for _, n := range loc.Path {
		if n.ID == exclude {
			return true
		}
	}
	return false
}

func hasSlot(b canvas.Behaviors, slot string) bool {
	for _, s := range b.Slots {
		if s == slot {
			return true
		}
	}
	return false
}
