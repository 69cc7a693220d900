package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"

	"github.com/brickyard/brickyard-cli/pkg/dragdrop"
	"github.com/brickyard/brickyard-cli/pkg/export"
)

// refresh recomputes everything derived from the canvas: the node layout,
// the code pane and the property cursor
func (b *BuilderModel) refresh() {
	b.relayout()

	g := b.geometry()
	if b.panels.Code {
		b.code.Width = g.code.W - 4
		b.code.Height = g.code.H - 3
		if b.code.Height < 1 {
			b.code.Height = 1
		}
		b.code.SetContent(b.codeContent())
	}

	rows, _ := b.currentRows()
	if b.propCursor >= len(rows) {
		b.propCursor = len(rows) - 1
	}
	if b.propCursor < 0 {
		b.propCursor = 0
	}
}

// codeContent is the exported document with syntax colors
func (b *BuilderModel) codeContent() string {
	doc, err := b.document()
	if err != nil {
		return ErrorStyle.Render(err.Error())
	}
	b.codeSize = len(doc)
	var s strings.Builder
	for _, t := range export.Tokens(doc) {
		switch t.Kind {
		case export.TokenTag:
			s.WriteString(CodeTagStyle.Render(t.Text))
		case export.TokenAttr:
			s.WriteString(CodeAttrStyle.Render(t.Text))
		case export.TokenString:
			s.WriteString(CodeStringStyle.Render(t.Text))
		default:
			s.WriteString(renderMultiline(CodeTextStyle, t.Text))
		}
	}
	return s.String()
}

// renderMultiline styles each line on its own so newlines survive
func renderMultiline(style lipgloss.Style, text string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = style.Render(l)
		}
	}
	return strings.Join(lines, "\n")
}

func (b *BuilderModel) codeView(pane dragdrop.Rect) string {
	focused := b.focus == focusCode
	title := GetActiveHeaderStyle(focused).Render(fmt.Sprintf("CODE · %s", humanize.Bytes(uint64(b.codeSize))))
	return renderPane(pane, focused, title+"\n"+b.code.View())
}

func (b *BuilderModel) View() string {
	if b.width == 0 || b.height == 0 {
		return "Loading..."
	}
	g := b.geometry()

	center := b.canvasView(g.canvas)
	if b.panels.Code {
		center = lipgloss.JoinVertical(lipgloss.Left, center, b.codeView(g.code))
	}
	var cols []string
	if b.panels.Sidebar {
		cols = append(cols, renderPane(g.sidebar, b.focus == focusSidebar,
			b.sidebar.view(g.sidebar.W-4, g.sidebar.H-2, b.focus == focusSidebar)))
	}
	cols = append(cols, center)
	if b.panels.Properties {
		cols = append(cols, b.propertiesView(g.properties))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, cols...)

	right := fmt.Sprintf("%s · %s", b.sess.Page.Name, b.historyLabel())
	header := renderHeader(b.width, "page builder", right)

	view := lipgloss.JoinVertical(lipgloss.Left, header, body, b.statusLine(), b.helpLine())
	if toasts := b.toastsView(); toasts != "" {
		view = overlayTopRight(view, toasts, b.width)
	}
	return view
}

func (b *BuilderModel) historyLabel() string {
	h := b.sess.History
	var parts []string
	if h.CanUndo() {
		parts = append(parts, "undo")
	}
	if h.CanRedo() {
		parts = append(parts, "redo")
	}
	if len(parts) == 0 {
		return "no history"
	}
	return strings.Join(parts, "/")
}

// statusLine shows the prompt, the confirmation or the drag in progress
func (b *BuilderModel) statusLine() string {
	var text string
	switch {
	case b.confirm.Active():
		return b.confirm.View(b.width)
	case b.promptApply != nil:
		text = b.promptLabel + ": " + b.prompt.View()
	case b.drag.Active():
		s := b.drag.Session()
		if s.Kind == dragdrop.Reorder {
			text = "Moving " + s.NodeID
		} else {
			text = "Placing " + s.ComponentID
		}
	default:
		text = b.engine.Canvas().CountLabel()
		if id := b.engine.Canvas().SelectedID(); id != "" {
			text += " · selected " + id
		}
	}
	return StatusBarStyle.Width(b.width).Render(truncate.StringWithTail(text, uint(max(b.width-2, 1)), "…"))
}

func (b *BuilderModel) helpLine() string {
	var parts []string
	for _, k := range b.keys.helpLine() {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	line := truncate.StringWithTail(strings.Join(parts, "  "), uint(max(b.width, 1)), "…")
	return DescriptionStyle.Render(line)
}

func (b *BuilderModel) toastsView() string {
	var lines []string
	for _, t := range b.toasts.Visible(b.now()) {
		text := t.Kind.Icon() + " " + t.Title
		if t.Message != "" {
			text += ": " + t.Message
		}
		lines = append(lines, GetToastStyle(t.Kind, t.Exiting).Render(truncate.StringWithTail(text, 48, "…")))
	}
	return strings.Join(lines, "\n")
}

// overlayTopRight replaces the right end of the lines below the header with
// the toast stack
func overlayTopRight(view, overlay string, width int) string {
	lines := strings.Split(view, "\n")
	for i, o := range strings.Split(overlay, "\n") {
		row := i + 1
		if row >= len(lines) {
			break
		}
		w := lipgloss.Width(o)
		keep := width - w - 1
		if keep < 0 {
			keep = 0
		}
		prefix := truncate.String(lines[row], uint(keep))
		if pad := keep - lipgloss.Width(prefix); pad > 0 {
			prefix += strings.Repeat(" ", pad)
		}
		lines[row] = prefix + o
	}
	return strings.Join(lines, "\n")
}
