package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/brickyard/brickyard-cli/pkg/dragdrop"
	"github.com/brickyard/brickyard-cli/pkg/editor"
)

type propKind int

const (
	propText propKind = iota
	propBackground
	propGradient
	propTextColor
	propPadding
	propMargin
	propColumns
	propLinkURL
	propLinkTarget
	propImageURL
	propImageAlt
	propImageRandom
	propItems
	propProgress
	propAccordion
)

type propRow struct {
	kind  propKind
	label string
	value string
	index int
}

// propertyRows lists the editable properties of a node. Text, colors and
// spacing always apply; the other groups depend on the component.
func propertyRows(o editor.Options) []propRow {
	var rows []propRow
	for i, t := range o.Texts {
		rows = append(rows, propRow{kind: propText, label: fmt.Sprintf("Text %d", i+1), value: t, index: i})
	}
	rows = append(rows,
		propRow{kind: propBackground, label: "Background"},
		propRow{kind: propGradient, label: "Gradient"},
		propRow{kind: propTextColor, label: "Text color"},
		propRow{kind: propPadding, label: "Padding"},
		propRow{kind: propMargin, label: "Margin"},
	)
	if o.Layout {
		rows = append(rows, propRow{kind: propColumns, label: "Columns", value: strconv.Itoa(o.Columns)})
	}
	if o.Link {
		rows = append(rows,
			propRow{kind: propLinkURL, label: "Link URL", value: o.LinkURL},
			propRow{kind: propLinkTarget, label: "Open in", value: linkTargetLabel(o.LinkTarget)},
		)
	}
	if o.Image {
		rows = append(rows,
			propRow{kind: propImageURL, label: "Image URL", value: o.ImageURL},
			propRow{kind: propImageAlt, label: "Alt text", value: o.ImageAlt},
			propRow{kind: propImageRandom, label: "Random image", value: "enter"},
		)
	}
	if o.ItemCount {
		rows = append(rows, propRow{kind: propItems, label: "Items", value: strconv.Itoa(o.ItemCountValue)})
	}
	if o.Progress {
		rows = append(rows, propRow{kind: propProgress, label: "Progress", value: fmt.Sprintf("%d%%", o.ProgressValue)})
	}
	if o.Accordion {
		rows = append(rows, propRow{kind: propAccordion, label: "Sections", value: strconv.Itoa(o.AccordionCount)})
	}
	return rows
}

func linkTargetLabel(target string) string {
	if target == "_blank" {
		return "new tab"
	}
	return "same tab"
}

// currentRows returns the rows of the selected node, nil without a selection
func (b *BuilderModel) currentRows() ([]propRow, editor.Options) {
	o, ok := b.editor.Options()
	if !ok {
		return nil, o
	}
	return propertyRows(o), o
}

func (b *BuilderModel) currentRow() (propRow, editor.Options, bool) {
	rows, o := b.currentRows()
	if len(rows) == 0 {
		return propRow{}, o, false
	}
	if b.propCursor >= len(rows) {
		b.propCursor = len(rows) - 1
	}
	return rows[b.propCursor], o, true
}

// activateProperty edits the row under the cursor
func (b *BuilderModel) activateProperty() tea.Cmd {
	row, o, ok := b.currentRow()
	if !ok {
		return nil
	}
	ed := b.editor
	switch row.kind {
	case propText:
		i := row.index
		return b.openPrompt(row.label, row.value, func(v string) { ed.SetText(i, v) })
	case propBackground:
		return b.openPrompt("Background (blank for none)", "", func(v string) {
			if strings.TrimSpace(v) == "" {
				ed.SetTransparent()
				return
			}
			ed.SetBackground(strings.TrimSpace(v))
		})
	case propGradient:
		return b.openPrompt("Gradient from,to", "#667eea,#764ba2", func(v string) {
			from, to, found := strings.Cut(v, ",")
			if !found {
				b.toasts.Warning("Invalid Gradient", "Use two colors separated by a comma")
				return
			}
			ed.SetGradient(strings.TrimSpace(from), strings.TrimSpace(to))
		})
	case propTextColor:
		return b.openPrompt("Text color", "", func(v string) { ed.SetTextColor(strings.TrimSpace(v)) })
	case propPadding:
		return b.openPrompt("Padding class (p-0 to p-5)", "p-3", func(v string) { ed.SetSpacing(editor.Padding, strings.TrimSpace(v)) })
	case propMargin:
		return b.openPrompt("Margin class (my-0 to my-5)", "my-3", func(v string) { ed.SetSpacing(editor.Margin, strings.TrimSpace(v)) })
	case propColumns:
		ed.AddColumn()
	case propLinkURL:
		return b.openPrompt(row.label, row.value, func(v string) { ed.SetLinkURL(strings.TrimSpace(v)) })
	case propLinkTarget:
		if o.LinkTarget == "_blank" {
			ed.SetLinkTarget("_self")
		} else {
			ed.SetLinkTarget("_blank")
		}
	case propImageURL:
		return b.openPrompt(row.label, row.value, func(v string) { ed.SetImageURL(strings.TrimSpace(v)) })
	case propImageAlt:
		return b.openPrompt(row.label, row.value, func(v string) { ed.SetImageAlt(v) })
	case propImageRandom:
		ed.RandomImage(ed.Seed())
	case propItems, propAccordion:
		return b.openPrompt(row.label, row.value, func(v string) {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				b.toasts.Warning("Invalid Number", v)
				return
			}
			b.setCount(row.kind, n)
		})
	case propProgress:
		return b.openPrompt("Progress (0-100)", strconv.Itoa(o.ProgressValue), func(v string) {
			n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(v), "%"))
			if err != nil {
				b.toasts.Warning("Invalid Number", v)
				return
			}
			ed.SetProgress(n)
		})
	}
	return nil
}

// adjustProperty steps numeric rows with left and right
func (b *BuilderModel) adjustProperty(delta int) {
	row, o, ok := b.currentRow()
	if !ok {
		return
	}
	switch row.kind {
	case propColumns:
		if delta > 0 {
			b.editor.AddColumn()
		} else {
			b.editor.RemoveColumn()
		}
	case propItems:
		b.setCount(propItems, o.ItemCountValue+delta)
	case propAccordion:
		b.setCount(propAccordion, o.AccordionCount+delta)
	case propProgress:
		b.editor.SetProgress(o.ProgressValue + delta*10)
	case propLinkTarget:
		b.activateProperty()
	}
}

func (b *BuilderModel) setCount(kind propKind, n int) {
	if kind == propAccordion {
		b.editor.SetAccordionCount(n)
		return
	}
	b.editor.SetItemCount(n)
}

func (b *BuilderModel) propertiesView(pane dragdrop.Rect) string {
	focused := b.focus == focusProperties
	width := pane.W - 4

	var s strings.Builder
	s.WriteString(GetActiveHeaderStyle(focused).Render("PROPERTIES"))
	s.WriteString("\n")

	c := b.engine.Canvas()
	n, ok := c.Selected()
	if !ok {
		s.WriteString(PlaceholderStyle.Render("Select a component"))
		return renderPane(pane, focused, s.String())
	}

	name := n.Type
	if def, found := b.cat.Lookup(n.Type); found {
		name = def.Name
	}
	s.WriteString(TypeHeaderStyle.Render(truncate.StringWithTail(fmt.Sprintf("%s #%s", name, n.ID), uint(width), "…")))
	s.WriteString("\n\n")

	rows, _ := b.currentRows()
	labelStyle := lipgloss.NewStyle().Width(12).Foreground(lipgloss.Color(ColorDim))
	for i, row := range rows {
		value := row.value
		if row.kind == propColumns || row.kind == propItems || row.kind == propAccordion || row.kind == propProgress {
			value = "‹ " + value + " ›"
		}
		line := truncate.StringWithTail(labelStyle.Render(row.label)+" "+value, uint(width), "…")
		if i == b.propCursor && focused {
			line = SelectedStyle.Render(line)
		} else {
			line = NormalStyle.Render(line)
		}
		s.WriteString(line)
		s.WriteString("\n")
	}
	return renderPane(pane, focused, s.String())
}
