// Package canvas holds the tree of placed components and the placement
// engine that mutates it.
package canvas

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/brickyard/brickyard-cli/pkg/compat"
	"github.com/brickyard/brickyard-cli/pkg/models"
)

const idPrefix = "comp-"

// Canvas is the editing surface: an ordered list of top-level nodes, the id
// counter and the single selection.
type Canvas struct {
	nodes       []*models.Node
	counter     int
	selected    string
	placeholder bool
	rules       *compat.Relation
	behaviors   map[string]Behaviors
}

// New returns an empty canvas with its placeholder showing
func New(rules *compat.Relation) *Canvas {
	if rules == nil {
		rules = compat.Default()
	}
	return &Canvas{
		placeholder: true,
		rules:       rules,
		behaviors:   make(map[string]Behaviors),
	}
}

// Rules returns the compatibility relation the canvas binds with
func (c *Canvas) Rules() *compat.Relation {
	return c.rules
}

// Nodes returns the top-level nodes. The slice must not be modified.
func (c *Canvas) Nodes() []*models.Node {
	return c.nodes
}

// Count is the number of top-level components
func (c *Canvas) Count() int {
	return len(c.nodes)
}

// CountLabel renders the count for the status bar
func (c *Canvas) CountLabel() string {
	return CountLabel(c.Count())
}

// CountLabel returns "1 component" or "N components"
func CountLabel(n int) string {
	if n == 1 {
		return "1 component"
	}
	return fmt.Sprintf("%d components", n)
}

// Empty reports whether no component is placed
func (c *Canvas) Empty() bool {
	return len(c.nodes) == 0
}

// PlaceholderVisible reports whether the empty-state hint is shown
func (c *Canvas) PlaceholderVisible() bool {
	return c.placeholder
}

// Counter returns the last assigned id number
func (c *Canvas) Counter() int {
	return c.counter
}

func (c *Canvas) nextID() string {
	c.counter++
	return idPrefix + strconv.Itoa(c.counter)
}

// Location describes where a node sits in the tree
type Location struct {
	Node   *models.Node
	Parent *models.Node // nil for top-level nodes
	Index  int          // index in the parent's children, or in the canvas
	Path   []*models.Node
}

// TopLevel reports whether the node sits directly on the canvas
func (l Location) TopLevel() bool {
	return l.Parent == nil
}

// Find locates a node anywhere in the tree
func (c *Canvas) Find(id string) (Location, bool) {
	for i, n := range c.nodes {
		if loc, ok := find(n, nil, i, id, nil); ok {
			return loc, true
		}
	}
	return Location{}, false
}

func find(n, parent *models.Node, index int, id string, path []*models.Node) (Location, bool) {
	path = append(path, n)
	if n.ID == id {
		return Location{Node: n, Parent: parent, Index: index, Path: path}, true
	}
	for i, child := range n.Children {
		if loc, ok := find(child, n, i, id, path); ok {
			return loc, true
		}
	}
	return Location{}, false
}

// Exiting reports whether the node or one of its ancestors is waiting for
// removal
func (l Location) Exiting() bool {
	for _, n := range l.Path {
		if n.State == models.NodeExiting {
			return true
		}
	}
	return false
}

// Contains reports whether id is n or one of its descendants
func Contains(n *models.Node, id string) bool {
	found := false
	n.Walk(func(node, _ *models.Node) bool {
		if node.ID == id {
			found = true
			return false
		}
		return true
	})
	return found
}

// Selected returns the selected node, if any
func (c *Canvas) Selected() (*models.Node, bool) {
	if c.selected == "" {
		return nil, false
	}
	loc, ok := c.Find(c.selected)
	if !ok {
		return nil, false
	}
	return loc.Node, true
}

// SelectedID returns the id of the selected node or ""
func (c *Canvas) SelectedID() string {
	return c.selected
}

// Select makes id the only selected node
func (c *Canvas) Select(id string) bool {
	loc, ok := c.Find(id)
	if !ok || loc.Exiting() {
		return false
	}
	c.selected = id
	return true
}

// Deselect clears the selection
func (c *Canvas) Deselect() {
	c.selected = ""
}

// Snapshot returns a deep copy of the tree for history and persistence
func (c *Canvas) Snapshot() []*models.Node {
	out := make([]*models.Node, 0, len(c.nodes))
	for _, n := range c.nodes {
		clone := n.Clone()
		clone.Walk(func(node, _ *models.Node) bool {
			node.State = models.NodeActive
			return true
		})
		out = append(out, clone)
	}
	return out
}

// Restore replaces the tree with a copy of nodes and rebinds every node. The
// selection is cleared and the counter never moves below an id in use.
func (c *Canvas) Restore(nodes []*models.Node) {
	c.nodes = make([]*models.Node, 0, len(nodes))
	for _, n := range nodes {
		clone := n.Clone()
		clone.Walk(func(node, _ *models.Node) bool {
			node.State = models.NodeActive
			if num := idNumber(node.ID); num > c.counter {
				c.counter = num
			}
			return true
		})
		c.nodes = append(c.nodes, clone)
	}
	c.selected = ""
	c.BindTree()
	c.placeholder = len(c.nodes) == 0
}

// Load restores a saved page, counter included
func (c *Canvas) Load(nodes []*models.Node, counter int) {
	c.counter = counter
	c.Restore(nodes)
}

func (c *Canvas) reset() {
	c.nodes = nil
	c.counter = 0
	c.selected = ""
	c.behaviors = make(map[string]Behaviors)
	c.placeholder = true
}

func idNumber(id string) int {
	rest, ok := strings.CutPrefix(id, idPrefix)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0
	}
	return n
}
