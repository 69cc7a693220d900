package canvas

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brickyard/brickyard-cli/pkg/models"
)

func TestInsertTop(t *testing.T) {
	f := newFixture(t)
	assert.True(t, f.canvas.PlaceholderVisible())

	n, ok := f.engine.InsertTop("heading-h1")
	require.True(t, ok)
	assert.Equal(t, "comp-1", n.ID)
	assert.Equal(t, "heading-h1", n.Type)
	assert.False(t, f.canvas.PlaceholderVisible())
	assert.Equal(t, 1, f.history.commits())
	assert.Empty(t, f.notifier.toasts)

	b, ok := f.canvas.Behaviors(n.ID)
	require.True(t, ok)
	assert.Equal(t, []Action{ActionMoveUp, ActionMoveDown, ActionDuplicate, ActionDelete}, b.Actions)
	assert.True(t, b.Draggable)
	assert.False(t, b.DropTarget)
}

func TestInsertTopUnknownComponent(t *testing.T) {
	f := newFixture(t)
	_, ok := f.engine.InsertTop("does-not-exist")
	assert.False(t, ok)
	assert.True(t, f.canvas.Empty())
	assert.Equal(t, 0, f.history.commits())
}

func TestInsertNested(t *testing.T) {
	tests := []struct {
		name      string
		parent    string
		child     string
		wantOK    bool
		wantSlot  string
		wantToast toast
	}{
		{"paragraph in container", "container", "paragraph", true, "main", toast{"success", "Component Added", "Paragraph added inside container"}},
		{"heading in card", "card-basic", "heading-h1", true, "main", toast{"success", "Component Added", "Heading 1 added inside container"}},
		{"alert not allowed in card", "card-basic", "alert", false, "", toast{}},
		{"top-level only rejected", "container", "hero-simple", false, "", toast{}},
		{"parent cannot accept", "paragraph", "heading-h1", false, "", toast{}},
		{"row default is last column", "row-3col", "paragraph", true, "col-2", toast{"success", "Component Added", "Paragraph added inside container"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			parent, ok := f.engine.InsertTop(tt.parent)
			require.True(t, ok)

			child, ok := f.engine.InsertNested(parent.ID, "", tt.child)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Empty(t, parent.Children)
				assert.Equal(t, 1, f.history.commits())
				assert.Empty(t, f.notifier.toasts)
				return
			}
			assert.True(t, child.Nested)
			assert.Equal(t, tt.wantSlot, child.Slot)
			assert.Equal(t, []*models.Node{child}, parent.Children)
			assert.Equal(t, 2, f.history.commits())
			assert.Equal(t, tt.wantToast, f.notifier.last())

			b, _ := f.canvas.Behaviors(child.ID)
			assert.Equal(t, []Action{ActionMoveUp, ActionMoveDown, ActionDelete}, b.Actions)
			assert.False(t, b.Draggable)
		})
	}
}

func TestNestedContainersUseOuterSlot(t *testing.T) {
	f := newFixture(t)
	box, _ := f.engine.InsertTop("container")

	row, ok := f.engine.InsertNested(box.ID, "", "row-2col")
	require.True(t, ok)
	b, _ := f.canvas.Behaviors(row.ID)
	assert.Equal(t, []string{MainSlot}, b.Slots)
	assert.Equal(t, 0, b.Columns())

	p, ok := f.engine.InsertNested(row.ID, "", "paragraph")
	require.True(t, ok)
	assert.Equal(t, MainSlot, p.Slot)
	_, ok = f.engine.InsertIntoColumn(row.ID, 0, "paragraph")
	assert.False(t, ok, "nested rows have no column slots")

	card, ok := f.engine.InsertNested(box.ID, "", "card-basic")
	require.True(t, ok)
	_, ok = f.engine.InsertNested(card.ID, "", "heading-h2")
	require.True(t, ok)

	html, err := RenderNode(box)
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Find(".row > p").Length())
	assert.Zero(t, doc.Find(".p-3 p").Length())
	assert.Equal(t, 1, doc.Find(".card > h2").Length())
	assert.Zero(t, doc.Find(".card-body h2").Length())
}

func TestInsertIntoColumn(t *testing.T) {
	f := newFixture(t)
	row, _ := f.engine.InsertTop("row-2col")

	child, ok := f.engine.InsertIntoColumn(row.ID, 0, "image")
	require.True(t, ok)
	assert.Equal(t, "col-0", child.Slot)
	assert.Equal(t, "success", f.notifier.last().kind)
	assert.Equal(t, "Added to Column", f.notifier.last().title)
	assert.Contains(t, f.notifier.last().message, "added to column 1")

	_, ok = f.engine.InsertIntoColumn(row.ID, 5, "image")
	assert.False(t, ok, "missing column")
}

func TestReorder(t *testing.T) {
	tests := []struct {
		name    string
		dragged string
		target  string
		y       int
		want    []string
		changed bool
	}{
		{"above midpoint inserts before", "comp-3", "comp-1", 10, []string{"comp-3", "comp-1", "comp-2"}, true},
		{"below midpoint inserts after", "comp-1", "comp-2", 90, []string{"comp-2", "comp-1", "comp-3"}, true},
		{"onto itself", "comp-2", "comp-2", 10, []string{"comp-1", "comp-2", "comp-3"}, false},
		{"same position", "comp-1", "comp-2", 10, []string{"comp-1", "comp-2", "comp-3"}, false},
		{"unknown target", "comp-1", "comp-9", 10, []string{"comp-1", "comp-2", "comp-3"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			for i := 0; i < 3; i++ {
				f.engine.InsertTop("paragraph")
			}
			before := f.history.commits()

			got := f.engine.Reorder(tt.dragged, tt.target, tt.y, 0, 100)
			assert.Equal(t, tt.changed, got)
			assert.Equal(t, tt.want, ids(f.canvas.Nodes()))
			if tt.changed {
				assert.Equal(t, before+1, f.history.commits())
			} else {
				assert.Equal(t, before, f.history.commits())
			}
		})
	}
}

func TestMoveTopLevel(t *testing.T) {
	f := newFixture(t)
	f.engine.InsertTop("paragraph")
	f.engine.InsertTop("heading-h1")

	assert.False(t, f.engine.MoveUp("comp-1"), "first node cannot move up")
	assert.False(t, f.engine.MoveDown("comp-2"), "last node cannot move down")
	assert.Equal(t, 2, f.history.commits())

	assert.True(t, f.engine.MoveDown("comp-1"))
	assert.Equal(t, []string{"comp-2", "comp-1"}, ids(f.canvas.Nodes()))
	assert.Equal(t, toast{"info", "Moved component down", ""}, f.notifier.last())
}

func TestMoveNestedStaysInSlot(t *testing.T) {
	f := newFixture(t)
	row, _ := f.engine.InsertTop("row-2col")
	a, _ := f.engine.InsertIntoColumn(row.ID, 0, "paragraph")
	b, _ := f.engine.InsertIntoColumn(row.ID, 1, "paragraph")
	c, _ := f.engine.InsertIntoColumn(row.ID, 0, "heading-h2")

	assert.True(t, f.engine.MoveUp(c.ID))
	assert.Equal(t, []string{c.ID, b.ID, a.ID}, ids(row.Children))
	assert.Equal(t, toast{"info", "Moved", "Component moved up"}, f.notifier.last())

	assert.False(t, f.engine.MoveDown(b.ID), "no sibling below in col-1")
}

func TestDuplicateAssignsFreshIDs(t *testing.T) {
	f := newFixture(t)
	box, _ := f.engine.InsertTop("container")
	f.engine.InsertNested(box.ID, "", "paragraph")
	f.engine.InsertTop("heading-h1")
	f.canvas.Select(box.ID)

	clone, ok := f.engine.Duplicate(box.ID)
	require.True(t, ok)
	assert.Equal(t, []string{"comp-1", "comp-4", "comp-3"}, ids(f.canvas.Nodes()))
	require.Len(t, clone.Children, 1)
	assert.Equal(t, "comp-5", clone.Children[0].ID)
	assert.Equal(t, box.ID, f.canvas.SelectedID(), "selection stays on the original")

	seen := map[string]bool{}
	for _, n := range f.canvas.Nodes() {
		n.Walk(func(node, _ *models.Node) bool {
			assert.False(t, seen[node.ID], "duplicate id %s", node.ID)
			seen[node.ID] = true
			return true
		})
	}

	_, ok = f.engine.Duplicate(clone.Children[0].ID)
	assert.False(t, ok, "nested nodes do not duplicate")
}

func TestDeleteIsDeferred(t *testing.T) {
	f := newFixture(t)
	n, _ := f.engine.InsertTop("paragraph")
	f.canvas.Select(n.ID)

	require.True(t, f.engine.Delete(n.ID))
	assert.Equal(t, models.NodeExiting, n.State)
	assert.Equal(t, 1, f.canvas.Count())
	assert.False(t, f.engine.Delete(n.ID), "second delete is ignored")
	assert.False(t, f.engine.MoveUp(n.ID))

	f.scheduler.Advance(DefaultDeleteDelay - 1)
	assert.Equal(t, 1, f.canvas.Count())

	f.scheduler.Advance(1)
	assert.True(t, f.canvas.Empty())
	assert.True(t, f.canvas.PlaceholderVisible())
	assert.Equal(t, "", f.canvas.SelectedID())
	assert.Equal(t, 2, f.history.commits())
	assert.Empty(t, f.notifier.toasts, "top-level deletes are silent")
}

func TestDeleteNested(t *testing.T) {
	f := newFixture(t)
	box, _ := f.engine.InsertTop("container")
	child, _ := f.engine.InsertNested(box.ID, "", "paragraph")

	require.True(t, f.engine.Delete(child.ID))
	f.scheduler.Advance(DefaultDeleteDelay)
	assert.Len(t, box.Children, 1, "nested delay is longer")

	f.scheduler.Advance(DefaultNestedDeleteDelay - DefaultDeleteDelay)
	assert.Empty(t, box.Children)
	assert.Equal(t, toast{"success", "Deleted", "Nested component removed"}, f.notifier.last())
	_, ok := f.canvas.Behaviors(child.ID)
	assert.False(t, ok)
}

func TestInsertIntoExitingParentIgnored(t *testing.T) {
	f := newFixture(t)
	box, _ := f.engine.InsertTop("container")
	f.engine.Delete(box.ID)

	_, ok := f.engine.InsertNested(box.ID, "", "paragraph")
	assert.False(t, ok)
	assert.False(t, f.canvas.Select(box.ID))
}

func TestUndoCancelsPendingRemoval(t *testing.T) {
	f := newFixture(t)
	f.engine.InsertTop("paragraph")
	b, _ := f.engine.InsertTop("heading-h1")

	f.engine.Delete(b.ID)
	require.Equal(t, 1, f.engine.PendingRemovals())

	require.True(t, f.engine.Undo())
	assert.Equal(t, 0, f.engine.PendingRemovals())
	f.scheduler.Advance(DefaultNestedDeleteDelay)
	assert.Equal(t, []string{"comp-1"}, ids(f.canvas.Nodes()))

	require.True(t, f.engine.Redo())
	assert.Equal(t, []string{"comp-1", "comp-2"}, ids(f.canvas.Nodes()))
	for _, n := range f.canvas.Nodes() {
		assert.Equal(t, models.NodeActive, n.State)
	}
}

func TestUndoWithoutHistoryRevivesExitingNode(t *testing.T) {
	f := newFixture(t)
	f.engine.history = nopHistory{}
	n, _ := f.engine.InsertTop("paragraph")
	f.engine.Delete(n.ID)

	assert.False(t, f.engine.Undo())
	assert.Equal(t, models.NodeActive, n.State)
	assert.True(t, f.canvas.Select(n.ID))
}

func TestClear(t *testing.T) {
	t.Run("empty canvas", func(t *testing.T) {
		f := newFixture(t)
		assert.False(t, f.engine.Clear(AlwaysConfirm))
		assert.Equal(t, toast{"info", "Canvas is already empty", ""}, f.notifier.last())
		assert.Equal(t, 0, f.history.commits())
	})

	t.Run("refused", func(t *testing.T) {
		f := newFixture(t)
		f.engine.InsertTop("paragraph")
		assert.False(t, f.engine.Clear(func(string) bool { return false }))
		assert.Equal(t, 1, f.canvas.Count())
		assert.Equal(t, 1, f.history.commits())
	})

	t.Run("confirmed", func(t *testing.T) {
		f := newFixture(t)
		f.engine.InsertTop("paragraph")
		n, _ := f.engine.InsertTop("paragraph")
		f.engine.Delete(n.ID)
		f.canvas.Select("comp-1")

		assert.True(t, f.engine.Clear(AlwaysConfirm))
		assert.True(t, f.canvas.Empty())
		assert.True(t, f.canvas.PlaceholderVisible())
		assert.Equal(t, "", f.canvas.SelectedID())
		assert.Equal(t, 0, f.canvas.Counter())
		assert.Equal(t, 0, f.engine.PendingRemovals())
		assert.Equal(t, toast{"success", "Canvas Cleared", "Successfully removed all components"}, f.notifier.last())

		f.scheduler.Advance(DefaultDeleteDelay)
		assert.Equal(t, 3, f.history.commits(), "the cancelled removal never commits")

		n, _ = f.engine.InsertTop("paragraph")
		assert.Equal(t, "comp-1", n.ID)
	})
}

func TestUnknownIDsAreNoOps(t *testing.T) {
	f := newFixture(t)
	f.engine.InsertTop("paragraph")

	assert.False(t, f.engine.MoveUp("nope"))
	assert.False(t, f.engine.Delete("nope"))
	_, ok := f.engine.Duplicate("nope")
	assert.False(t, ok)
	_, ok = f.engine.InsertNested("nope", "", "paragraph")
	assert.False(t, ok)
	assert.False(t, f.engine.Select("nope"))
	assert.Equal(t, 1, f.history.commits())
}

func TestCountLabelFollowsInserts(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, "0 components", f.canvas.CountLabel())
	f.engine.InsertTop("container")
	assert.Equal(t, "1 component", f.canvas.CountLabel())
	f.engine.InsertTop("paragraph")
	assert.Equal(t, "2 components", f.canvas.CountLabel())
}

func TestTopLevelOnlyIntoContainerThenRoot(t *testing.T) {
	f := newFixture(t)
	box, _ := f.engine.InsertTop("container")

	_, ok := f.engine.InsertNested(box.ID, "", "footer-simple")
	assert.False(t, ok)
	assert.Empty(t, box.Children)

	footer, ok := f.engine.InsertTop("footer-simple")
	assert.True(t, ok)
	assert.Equal(t, []string{box.ID, footer.ID}, ids(f.canvas.Nodes()))
}

func TestThirdColumnInsertOnlyTouchesThatColumn(t *testing.T) {
	f := newFixture(t)
	row, _ := f.engine.InsertTop("row-3col")
	_, ok := f.engine.InsertIntoColumn(row.ID, 2, "paragraph")
	require.True(t, ok)

	html, err := RenderNode(row)
	require.NoError(t, err)
	assert.Contains(t, html, `Column 1</div>`)
	assert.Contains(t, html, `Column 2</div>`)
	assert.NotContains(t, html, `Column 3</div>`, "third column gained a child")
	for _, c := range row.Children {
		assert.Equal(t, "col-2", c.Slot)
	}
}

func TestDeleteOriginalKeepsDuplicate(t *testing.T) {
	f := newFixture(t)
	orig, _ := f.engine.InsertTop("card-basic")
	f.engine.InsertNested(orig.ID, "", "lead")
	dup, _ := f.engine.Duplicate(orig.ID)
	require.NotEqual(t, orig.ID, dup.ID)

	f.engine.Delete(orig.ID)
	f.scheduler.Advance(DefaultDeleteDelay)

	assert.Equal(t, []string{dup.ID}, ids(f.canvas.Nodes()))
	assert.Len(t, dup.Children, 1)
	assert.Equal(t, models.NodeActive, dup.State)
}
