package canvas

import (
	"testing"

	"github.com/brickyard/brickyard-cli/pkg/catalogue"
	"github.com/brickyard/brickyard-cli/pkg/compat"
	"github.com/brickyard/brickyard-cli/pkg/models"
)

// snapshotHistory is a minimal in-memory history over canvas snapshots
type snapshotHistory struct {
	canvas  *Canvas
	entries [][]*models.Node
	index   int
}

func newSnapshotHistory(c *Canvas) *snapshotHistory {
	h := &snapshotHistory{canvas: c, index: -1}
	h.Commit()
	return h
}

func (h *snapshotHistory) Commit() {
	h.entries = append(h.entries[:h.index+1], h.canvas.Snapshot())
	h.index++
}

func (h *snapshotHistory) Undo() bool {
	if h.index <= 0 {
		return false
	}
	h.index--
	h.canvas.Restore(h.entries[h.index])
	return true
}

func (h *snapshotHistory) Redo() bool {
	if h.index >= len(h.entries)-1 {
		return false
	}
	h.index++
	h.canvas.Restore(h.entries[h.index])
	return true
}

// commits excludes the initial empty entry
func (h *snapshotHistory) commits() int {
	return len(h.entries) - 1
}

type toast struct {
	kind, title, message string
}

type recordingNotifier struct {
	toasts []toast
}

func (n *recordingNotifier) Success(title, message string) {
	n.toasts = append(n.toasts, toast{"success", title, message})
}

func (n *recordingNotifier) Info(title, message string) {
	n.toasts = append(n.toasts, toast{"info", title, message})
}

func (n *recordingNotifier) last() toast {
	if len(n.toasts) == 0 {
		return toast{}
	}
	return n.toasts[len(n.toasts)-1]
}

type fixture struct {
	engine    *Engine
	canvas    *Canvas
	history   *snapshotHistory
	notifier  *recordingNotifier
	scheduler *ManualScheduler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	c := New(compat.Default())
	f := &fixture{
		canvas:    c,
		history:   newSnapshotHistory(c),
		notifier:  &recordingNotifier{},
		scheduler: NewManualScheduler(),
	}
	f.engine = NewEngine(Deps{
		Canvas:    c,
		Catalogue: catalogue.Default(),
		History:   f.history,
		Notifier:  f.notifier,
		Scheduler: f.scheduler,
	})
	return f
}

func ids(nodes []*models.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID)
	}
	return out
}
