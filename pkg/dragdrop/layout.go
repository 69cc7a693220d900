// Package dragdrop resolves where a dragged component lands and drives a
// single drag session over the canvas.
package dragdrop

import "sort"

// Rect is a screen area in terminal cells
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) falls inside r
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func (r Rect) Bottom() int {
	return r.Y + r.H
}

// ElementKind tells what a laid out element represents
type ElementKind int

const (
	ElementCanvas ElementKind = iota
	ElementNode
	ElementColumn
)

// Element is one hit-testable area of the rendered canvas
type Element struct {
	Kind   ElementKind
	NodeID string // owning node; for columns the row
	Column int    // column index for ElementColumn
	Depth  int    // nesting depth, the canvas root is 0
	Rect   Rect
}

// Layout is the set of areas produced by the last canvas render
type Layout struct {
	elements []Element
}

func NewLayout() *Layout {
	return &Layout{}
}

// Add records an element. Later elements at the same depth are drawn above
// earlier ones.
func (l *Layout) Add(e Element) {
	l.elements = append(l.elements, e)
}

// Reset drops every element
func (l *Layout) Reset() {
	l.elements = l.elements[:0]
}

func (l *Layout) Len() int {
	return len(l.elements)
}

// Node returns the area of a node
func (l *Layout) Node(id string) (Element, bool) {
	for _, e := range l.elements {
		if e.Kind == ElementNode && e.NodeID == id {
			return e, true
		}
	}
	return Element{}, false
}

// ElementsAt returns the hit stack at (x, y), topmost first: the deepest
// node or column first, the canvas root last.
func (l *Layout) ElementsAt(x, y int) []Element {
	type hit struct {
		e     Element
		order int
	}
	var hits []hit
	for i, e := range l.elements {
		if e.Rect.Contains(x, y) {
			hits = append(hits, hit{e, i})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].e.Depth != hits[j].e.Depth {
			return hits[i].e.Depth > hits[j].e.Depth
		}
		// a column sits above the row that owns it
		if hits[i].e.Kind != hits[j].e.Kind {
			return hits[i].e.Kind > hits[j].e.Kind
		}
		return hits[i].order > hits[j].order
	})
	out := make([]Element, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.e)
	}
	return out
}
