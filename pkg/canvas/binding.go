package canvas

import (
	"github.com/brickyard/brickyard-cli/pkg/compat"
	"github.com/brickyard/brickyard-cli/pkg/models"
)

// Action is a manipulation affordance shown on a placed node
type Action string

const (
	ActionMoveUp    Action = "moveUp"
	ActionMoveDown  Action = "moveDown"
	ActionDuplicate Action = "duplicate"
	ActionDelete    Action = "delete"
)

// EditableSelectors are the text elements that can be edited in place
var EditableSelectors = []string{
	"h1", "h2", "h3", "h4", "h5", "h6",
	"p", "span", "a", "li", "td", "th",
	"label", "button", ".card-title", ".card-text",
	".navbar-brand", ".nav-link", ".btn",
	".alert", ".badge", ".list-group-item",
	"figcaption", "blockquote",
}

// Behaviors is everything the UI may do with a node
type Behaviors struct {
	Actions     []Action
	Selectable  bool
	Draggable   bool
	DropTarget  bool
	Slots       []string
	DefaultSlot string
	Editable    bool
}

// Has reports whether a is among the node's actions
func (b Behaviors) Has(a Action) bool {
	for _, act := range b.Actions {
		if act == a {
			return true
		}
	}
	return false
}

// Columns returns the number of column slots
func (b Behaviors) Columns() int {
	n := 0
	for _, s := range b.Slots {
		if _, ok := ColumnIndex(s); ok {
			n++
		}
	}
	return n
}

// Bind derives the behavior set of a node from its type, its position and
// the slots present in its content.
func Bind(n *models.Node, topLevel bool, rules *compat.Relation) Behaviors {
	b := Behaviors{
		Selectable: true,
		Editable:   true,
	}
	if topLevel {
		b.Actions = []Action{ActionMoveUp, ActionMoveDown, ActionDuplicate, ActionDelete}
		b.Draggable = true
	} else {
		b.Actions = []Action{ActionMoveUp, ActionMoveDown, ActionDelete}
	}
	if rules.CanAcceptChildren(n.Type) {
		b.Slots, b.DefaultSlot = Slots(n.Content)
		b.DropTarget = b.DefaultSlot != ""
	}
	return b
}

// BindTree recomputes the behavior table for every node on the canvas
func (c *Canvas) BindTree() {
	c.behaviors = make(map[string]Behaviors)
	for _, n := range c.nodes {
		c.bindSubtree(n, true)
	}
}

func (c *Canvas) bindSubtree(n *models.Node, topLevel bool) {
	c.behaviors[n.ID] = Bind(n, topLevel, c.rules)
	for _, child := range n.Children {
		c.bindSubtree(child, false)
	}
}

// Behaviors returns the bound behaviors of a node
func (c *Canvas) Behaviors(id string) (Behaviors, bool) {
	b, ok := c.behaviors[id]
	return b, ok
}
