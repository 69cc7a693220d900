package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brickyard/brickyard-cli/pkg/editor"
)

func kinds(rows []propRow) []propKind {
	var out []propKind
	for _, r := range rows {
		out = append(out, r.kind)
	}
	return out
}

func TestPropertyRows(t *testing.T) {
	tests := []struct {
		name    string
		opts    editor.Options
		want    []propKind
		missing []propKind
	}{
		{
			name: "text only",
			opts: editor.Options{Texts: []string{"Hello"}},
			want: []propKind{propText, propBackground, propGradient, propTextColor, propPadding, propMargin},
		},
		{
			name:    "layout",
			opts:    editor.Options{Layout: true, Columns: 3},
			want:    []propKind{propColumns},
			missing: []propKind{propText, propLinkURL},
		},
		{
			name: "link and image",
			opts: editor.Options{Link: true, LinkTarget: "_blank", Image: true},
			want: []propKind{propLinkURL, propLinkTarget, propImageURL, propImageAlt, propImageRandom},
		},
		{
			name: "counts",
			opts: editor.Options{ItemCount: true, Progress: true, Accordion: true},
			want: []propKind{propItems, propProgress, propAccordion},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kinds(propertyRows(tt.opts))
			for _, k := range tt.want {
				assert.Contains(t, got, k)
			}
			for _, k := range tt.missing {
				assert.NotContains(t, got, k)
			}
		})
	}
}

func TestLinkTargetLabel(t *testing.T) {
	assert.Equal(t, "new tab", linkTargetLabel("_blank"))
	assert.Equal(t, "same tab", linkTargetLabel("_self"))
}

// selectRow moves the property cursor to the first row of kind
func (h *builderHarness) selectRow(t *testing.T, kind propKind) {
	t.Helper()
	rows, _ := h.currentRows()
	for i, r := range rows {
		if r.kind == kind {
			h.propCursor = i
			return
		}
	}
	t.Fatalf("no %v row", kind)
}

func TestColumnsAdjustWithArrows(t *testing.T) {
	h := newBuilderHarness(t)
	h.place(t, "2 Columns")
	h.send(runes("p"))
	require.Equal(t, focusProperties, h.focus)

	h.selectRow(t, propColumns)
	h.send(tea.KeyMsg{Type: tea.KeyRight})
	o, ok := h.editor.Options()
	require.True(t, ok)
	assert.Equal(t, 3, o.Columns)

	h.send(tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft})
	o, _ = h.editor.Options()
	assert.Equal(t, 1, o.Columns)
}

func TestProgressPrompt(t *testing.T) {
	h := newBuilderHarness(t)
	h.place(t, "Progress Bar")
	h.send(runes("p"))

	h.selectRow(t, propProgress)
	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, h.promptApply)
	h.prompt.SetValue("80%")
	h.send(tea.KeyMsg{Type: tea.KeyEnter})

	o, _ := h.editor.Options()
	assert.Equal(t, 80, o.ProgressValue)

	h.send(tea.KeyMsg{Type: tea.KeyRight})
	o, _ = h.editor.Options()
	assert.Equal(t, 90, o.ProgressValue)
}

func TestBackgroundPrompt(t *testing.T) {
	h := newBuilderHarness(t)
	id := h.place(t, "Paragraph")
	h.send(runes("p"))

	h.selectRow(t, propBackground)
	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	h.prompt.SetValue("#ff0000")
	h.send(tea.KeyMsg{Type: tea.KeyEnter})

	loc, ok := h.engine.Canvas().Find(id)
	require.True(t, ok)
	assert.Contains(t, loc.Node.Content, "background: #ff0000")
}

func TestNoSelectionShowsHint(t *testing.T) {
	h := newBuilderHarness(t)
	h.clock = h.clock.Add(time.Minute)
	assert.Contains(t, h.View(), "Select a component")
}
