// Package panels persists which builder panes are shown.
package panels

import (
	"context"
	"fmt"

	"github.com/brickyard/brickyard-cli/pkg/store"
)

// Panel names a toggleable pane
type Panel string

const (
	Sidebar    Panel = "sidebar"
	Properties Panel = "properties"
	Code       Panel = "code"
)

const (
	keyPrefix = "panel-"
	hidden    = "hidden"
	visible   = "visible"
)

// All lists the panels in display order
func All() []Panel {
	return []Panel{Sidebar, Properties, Code}
}

// Parse maps a user-supplied name to a Panel
func Parse(name string) (Panel, error) {
	for _, p := range All() {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown panel %q (want sidebar, properties or code)", name)
}

func (p Panel) key() string {
	return keyPrefix + string(p)
}

// State holds the visibility of each pane
type State struct {
	Sidebar    bool `json:"sidebar" yaml:"sidebar"`
	Properties bool `json:"properties" yaml:"properties"`
	Code       bool `json:"code" yaml:"code"`
}

// Visible reports the flag for p
func (s State) Visible(p Panel) bool {
	switch p {
	case Sidebar:
		return s.Sidebar
	case Properties:
		return s.Properties
	case Code:
		return s.Code
	}
	return false
}

func (s *State) Set(p Panel, v bool) {
	switch p {
	case Sidebar:
		s.Sidebar = v
	case Properties:
		s.Properties = v
	case Code:
		s.Code = v
	}
}

// Load reads the flags. Anything other than "hidden" counts as visible.
func Load(ctx context.Context, kv store.KV) (State, error) {
	state := State{Sidebar: true, Properties: true, Code: true}
	for _, p := range All() {
		v, ok, err := kv.Get(ctx, p.key())
		if err != nil {
			return state, fmt.Errorf("failed to load panel state: %w", err)
		}
		state.Set(p, !ok || v != hidden)
	}
	return state, nil
}

// Toggle flips one pane and returns the new state
func Toggle(ctx context.Context, kv store.KV, p Panel) (State, error) {
	state, err := Load(ctx, kv)
	if err != nil {
		return state, err
	}

	next := !state.Visible(p)
	value := hidden
	if next {
		value = visible
	}
	if err := kv.Set(ctx, p.key(), value); err != nil {
		return state, fmt.Errorf("failed to save panel state: %w", err)
	}
	state.Set(p, next)
	return state, nil
}

// Seed stores a default for a pane that has never been toggled
func Seed(ctx context.Context, kv store.KV, p Panel, show bool) error {
	_, ok, err := kv.Get(ctx, p.key())
	if err != nil {
		return fmt.Errorf("failed to load panel state: %w", err)
	}
	if ok {
		return nil
	}
	value := hidden
	if show {
		value = visible
	}
	if err := kv.Set(ctx, p.key(), value); err != nil {
		return fmt.Errorf("failed to save panel state: %w", err)
	}
	return nil
}

// Reset shows every pane
func Reset(ctx context.Context, kv store.KV) (State, error) {
	for _, p := range All() {
		if err := kv.Set(ctx, p.key(), visible); err != nil {
			return State{}, fmt.Errorf("failed to reset panel state: %w", err)
		}
	}
	return State{Sidebar: true, Properties: true, Code: true}, nil
}
