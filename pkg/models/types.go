package models

import "time"

// ComponentDef is a catalogue entry. It is never mutated after load.
type ComponentDef struct {
	ID   string `yaml:"id" json:"id" validate:"required"`
	Name string `yaml:"name" json:"name" validate:"required"`
	Icon string `yaml:"icon" json:"icon" validate:"required,startswith=bi-"`
	HTML string `yaml:"html" json:"html" validate:"required"`
	Tab  string `yaml:"tab,omitempty" json:"tab,omitempty"`
}

// Tab is a sub-filter of a tabbed category
type Tab struct {
	ID   string `yaml:"id" json:"id" validate:"required"`
	Name string `yaml:"name" json:"name" validate:"required"`
	Icon string `yaml:"icon" json:"icon" validate:"required,startswith=bi-"`
}

type Category struct {
	Key    string         `yaml:"key" json:"key" validate:"required"`
	Name   string         `yaml:"name" json:"name" validate:"required"`
	Icon   string         `yaml:"icon" json:"icon" validate:"required,startswith=bi-"`
	Tabbed bool           `yaml:"tabbed,omitempty" json:"tabbed,omitempty"`
	Tabs   []Tab          `yaml:"tabs,omitempty" json:"tabs,omitempty" validate:"required_if=Tabbed true,dive"`
	Items  []ComponentDef `yaml:"items" json:"items" validate:"required,min=1,dive"`
}

// NodeState tracks whether a node is live or waiting for its exit to complete
type NodeState int

const (
	NodeActive NodeState = iota
	NodeExiting
)

func (s NodeState) String() string {
	if s == NodeExiting {
		return "exiting"
	}
	return "active"
}

// Node is a placed component instance. Content holds the instantiated
// template markup; elements that receive children carry a data-slot marker.
type Node struct {
	ID       string    `yaml:"id" json:"id"`
	Type     string    `yaml:"type" json:"type"`
	Nested   bool      `yaml:"nested,omitempty" json:"nested,omitempty"`
	Slot     string    `yaml:"slot,omitempty" json:"slot,omitempty"`
	Content  string    `yaml:"content" json:"content"`
	Children []*Node   `yaml:"children,omitempty" json:"children,omitempty"`
	State    NodeState `yaml:"-" json:"-"`
}

// Clone returns a deep copy of the subtree
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	c.Children = nil
	for _, child := range n.Children {
		c.Children = append(c.Children, child.Clone())
	}
	return &c
}

// Walk visits n and every descendant depth-first, parents before children.
// Returning false from fn stops the walk.
func (n *Node) Walk(fn func(node, parent *Node) bool) bool {
	return walk(n, nil, fn)
}

func walk(n, parent *Node, fn func(node, parent *Node) bool) bool {
	if !fn(n, parent) {
		return false
	}
	for _, child := range n.Children {
		if !walk(child, n, fn) {
			return false
		}
	}
	return true
}

// Page is a saved canvas
type Page struct {
	ID       string    `yaml:"id" json:"id"`
	Name     string    `yaml:"name" json:"name"`
	Theme    string    `yaml:"theme" json:"theme"`
	Counter  int       `yaml:"counter" json:"counter"`
	Nodes    []*Node   `yaml:"nodes" json:"nodes"`
	Created  time.Time `yaml:"created" json:"created"`
	Modified time.Time `yaml:"modified" json:"modified"`
	Path     string    `yaml:"-" json:"-"`
}
