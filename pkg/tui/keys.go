package tui

import "github.com/charmbracelet/bubbles/key"

type builderKeyMap struct {
	Undo       key.Binding
	Redo       key.Binding
	Duplicate  key.Binding
	Delete     key.Binding
	MoveUp     key.Binding
	MoveDown   key.Binding
	Escape     key.Binding
	Add        key.Binding
	Nest       key.Binding
	Column     key.Binding
	Theme      key.Binding
	Copy       key.Binding
	Save       key.Binding
	Export     key.Binding
	Clear      key.Binding
	EditText   key.Binding
	Properties key.Binding
	Sidebar    key.Binding
	PropsPanel key.Binding
	CodePanel  key.Binding
	ResetPanel key.Binding
	Focus      key.Binding
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Enter      key.Binding
	Search     key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding
	Quit       key.Binding
}

func defaultKeyMap() builderKeyMap {
	return builderKeyMap{
		Undo:       key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "undo")),
		Redo:       key.NewBinding(key.WithKeys("ctrl+y", "ctrl+shift+z"), key.WithHelp("ctrl+y", "redo")),
		Duplicate:  key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "duplicate")),
		Delete:     key.NewBinding(key.WithKeys("delete", "backspace"), key.WithHelp("del", "delete")),
		MoveUp:     key.NewBinding(key.WithKeys("K"), key.WithHelp("K/J", "move")),
		MoveDown:   key.NewBinding(key.WithKeys("J")),
		Escape:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "deselect")),
		Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Nest:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "nest")),
		Column:     key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "column")),
		Theme:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Copy:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
		Save:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		Export:     key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "export")),
		Clear:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear")),
		EditText:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit text")),
		Properties: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "properties")),
		Sidebar:    key.NewBinding(key.WithKeys("f1"), key.WithHelp("F1-F3", "panels")),
		PropsPanel: key.NewBinding(key.WithKeys("f2")),
		CodePanel:  key.NewBinding(key.WithKeys("f3")),
		ResetPanel: key.NewBinding(key.WithKeys("R")),
		Focus:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus")),
		Up:         key.NewBinding(key.WithKeys("up", "k")),
		Down:       key.NewBinding(key.WithKeys("down", "j")),
		Left:       key.NewBinding(key.WithKeys("left", "h")),
		Right:      key.NewBinding(key.WithKeys("right", "l")),
		Enter:      key.NewBinding(key.WithKeys("enter")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		NextTab:    key.NewBinding(key.WithKeys("]")),
		PrevTab:    key.NewBinding(key.WithKeys("[")),
		Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "pages")),
	}
}

// helpLine lists the bindings shown in the footer
func (k builderKeyMap) helpLine() []key.Binding {
	return []key.Binding{
		k.Add, k.Nest, k.Column, k.Delete, k.MoveUp, k.Duplicate, k.Undo, k.Redo,
		k.EditText, k.Theme, k.Copy, k.Save, k.Clear, k.Sidebar, k.Quit,
	}
}
