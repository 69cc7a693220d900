package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brickyard/brickyard-cli/pkg/compat"
	"github.com/brickyard/brickyard-cli/pkg/models"
)

func TestCountLabel(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 components"},
		{1, "1 component"},
		{2, "2 components"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CountLabel(tt.n))
	}
}

func TestSingleSelection(t *testing.T) {
	f := newFixture(t)
	f.engine.InsertTop("paragraph")
	f.engine.InsertTop("paragraph")

	assert.True(t, f.canvas.Select("comp-1"))
	assert.True(t, f.canvas.Select("comp-2"))
	assert.Equal(t, "comp-2", f.canvas.SelectedID())

	n, ok := f.canvas.Selected()
	assert.True(t, ok)
	assert.Equal(t, "comp-2", n.ID)

	f.canvas.Deselect()
	_, ok = f.canvas.Selected()
	assert.False(t, ok)
}

func TestRestoreKeepsCounterAboveIDsInUse(t *testing.T) {
	c := New(compat.Default())
	c.Restore([]*models.Node{
		{ID: "comp-4", Type: "container", Content: `<div class="container" data-slot="main"></div>`, Children: []*models.Node{
			{ID: "comp-9", Type: "paragraph", Nested: true, Slot: "main", Content: "<p>x</p>", State: models.NodeExiting},
		}},
	})

	assert.Equal(t, 9, c.Counter())
	assert.False(t, c.PlaceholderVisible())
	assert.Equal(t, models.NodeActive, c.Nodes()[0].Children[0].State)
	assert.Equal(t, "comp-10", c.nextID())

	b, ok := c.Behaviors("comp-9")
	assert.True(t, ok)
	assert.False(t, b.Draggable)
}

func TestSnapshotIsIndependent(t *testing.T) {
	f := newFixture(t)
	n, _ := f.engine.InsertTop("paragraph")
	snap := f.canvas.Snapshot()

	n.Content = "<p>changed</p>"
	assert.NotEqual(t, n.Content, snap[0].Content)
}

func TestFindReportsPath(t *testing.T) {
	f := newFixture(t)
	box, _ := f.engine.InsertTop("container")
	card, _ := f.engine.InsertNested(box.ID, "", "card-basic")
	p, _ := f.engine.InsertNested(card.ID, "", "paragraph")

	loc, ok := f.canvas.Find(p.ID)
	assert.True(t, ok)
	assert.Equal(t, card, loc.Parent)
	assert.Equal(t, []string{box.ID, card.ID, p.ID}, ids(loc.Path))
	assert.True(t, Contains(box, p.ID))
	assert.False(t, Contains(card, box.ID))
}

func TestBindRowExposesColumns(t *testing.T) {
	f := newFixture(t)
	row, _ := f.engine.InsertTop("row-4col")
	b, _ := f.canvas.Behaviors(row.ID)
	assert.True(t, b.DropTarget)
	assert.Equal(t, 4, b.Columns())
	assert.Equal(t, "col-3", b.DefaultSlot)
	assert.True(t, b.Has(ActionDuplicate))
}
