package canvas

import (
	"fmt"
	"time"

	"github.com/brickyard/brickyard-cli/pkg/catalogue"
	"github.com/brickyard/brickyard-cli/pkg/compat"
	"github.com/brickyard/brickyard-cli/pkg/logger"
	"github.com/brickyard/brickyard-cli/pkg/models"
)

const (
	DefaultDeleteDelay       = 150 * time.Millisecond
	DefaultNestedDeleteDelay = 200 * time.Millisecond
)

// History records canvas snapshots
type History interface {
	Commit()
	Undo() bool
	Redo() bool
}

// Notifier shows transient user feedback
type Notifier interface {
	Success(title, message string)
	Info(title, message string)
}

// Confirmer asks the user a yes/no question
type Confirmer func(message string) bool

// AlwaysConfirm answers yes without asking
func AlwaysConfirm(string) bool { return true }

// Deps are the collaborators of an Engine
type Deps struct {
	Canvas            *Canvas
	Catalogue         catalogue.Lookup
	History           History
	Notifier          Notifier
	Scheduler         Scheduler
	Logger            logger.Logger
	DeleteDelay       time.Duration
	NestedDeleteDelay time.Duration
}

// Engine applies user operations to a canvas. Every operation that changes
// the tree commits exactly one history entry; invalid references are ignored.
type Engine struct {
	canvas      *Canvas
	catalogue   catalogue.Lookup
	history     History
	notifier    Notifier
	scheduler   Scheduler
	log         logger.Logger
	delay       time.Duration
	nestedDelay time.Duration
	pending     map[string]func()
}

// NewEngine wires an engine. Missing collaborators get inert defaults.
func NewEngine(d Deps) *Engine {
	e := &Engine{
		canvas:      d.Canvas,
		catalogue:   d.Catalogue,
		history:     d.History,
		notifier:    d.Notifier,
		scheduler:   d.Scheduler,
		log:         d.Logger,
		delay:       d.DeleteDelay,
		nestedDelay: d.NestedDeleteDelay,
		pending:     make(map[string]func()),
	}
	if e.canvas == nil {
		e.canvas = New(compat.Default())
	}
	if e.catalogue == nil {
		e.catalogue = catalogue.Default()
	}
	if e.history == nil {
		e.history = nopHistory{}
	}
	if e.notifier == nil {
		e.notifier = nopNotifier{}
	}
	if e.scheduler == nil {
		e.scheduler = ImmediateScheduler{}
	}
	if e.log == nil {
		e.log = logger.NewNop()
	}
	if e.delay <= 0 {
		e.delay = DefaultDeleteDelay
	}
	if e.nestedDelay <= 0 {
		e.nestedDelay = DefaultNestedDeleteDelay
	}
	return e
}

// Canvas returns the canvas the engine mutates
func (e *Engine) Canvas() *Canvas {
	return e.canvas
}

// SetCatalogue swaps the catalogue used for new insertions
func (e *Engine) SetCatalogue(c catalogue.Lookup) {
	if c != nil {
		e.catalogue = c
	}
}

// Commit records the current canvas state. Callers that mutate node content
// directly, like the inline editor, use it after a change.
func (e *Engine) Commit() {
	e.history.Commit()
}

// Notifier returns the notifier shared with collaborators
func (e *Engine) Notifier() Notifier {
	return e.notifier
}

func (e *Engine) instantiate(def models.ComponentDef, nested bool) *models.Node {
	content := def.HTML
	if e.canvas.rules.CanAcceptChildren(def.ID) {
		annotate := AnnotateSlots
		if nested {
			annotate = AnnotateNestedSlots
		}
		annotated, err := annotate(content)
		if err != nil {
			e.log.WithField("type", def.ID).Warn(fmt.Sprintf("failed to annotate slots: %v", err))
		} else {
			content = annotated
		}
	}
	return &models.Node{
		ID:      e.canvas.nextID(),
		Type:    def.ID,
		Nested:  nested,
		Content: content,
	}
}

// InsertTop appends a new instance of a catalogue component to the canvas
func (e *Engine) InsertTop(componentID string) (*models.Node, bool) {
	def, ok := e.catalogue.Lookup(componentID)
	if !ok {
		e.log.WithField("component", componentID).Debug("insert ignored: unknown component")
		return nil, false
	}
	n := e.instantiate(def, false)
	e.canvas.nodes = append(e.canvas.nodes, n)
	e.canvas.placeholder = false
	e.canvas.bindSubtree(n, true)
	e.history.Commit()
	e.log.WithFields(map[string]interface{}{"id": n.ID, "type": n.Type}).Debug("component added")
	return n, true
}

// InsertNested places a new component inside a slot of an existing node. An
// empty slot means the node's default slot.
func (e *Engine) InsertNested(parentID, slot, componentID string) (*models.Node, bool) {
	n, def, ok := e.insertChild(parentID, slot, componentID)
	if !ok {
		return nil, false
	}
	e.notifier.Success("Component Added", fmt.Sprintf("%s added inside container", def.Name))
	return n, true
}

// InsertIntoColumn places a new component in column col of a row
func (e *Engine) InsertIntoColumn(rowID string, col int, componentID string) (*models.Node, bool) {
	n, def, ok := e.insertChild(rowID, ColumnSlot(col), componentID)
	if !ok {
		return nil, false
	}
	e.notifier.Success("Added to Column", fmt.Sprintf("%s added to column %d", def.Name, col+1))
	return n, true
}

func (e *Engine) insertChild(parentID, slot, componentID string) (*models.Node, models.ComponentDef, bool) {
	def, ok := e.catalogue.Lookup(componentID)
	if !ok {
		return nil, def, false
	}
	loc, ok := e.canvas.Find(parentID)
	if !ok || loc.Exiting() {
		return nil, def, false
	}
	parent := loc.Node
	if !e.canvas.rules.CanAcceptChildren(parent.Type) || !e.canvas.rules.IsCompatible(parent.Type, def.ID) {
		e.log.WithFields(map[string]interface{}{"parent": parent.Type, "child": def.ID}).Debug("nested insert rejected")
		return nil, def, false
	}
	if slot == "" {
		_, slot = Slots(parent.Content)
	}
	if slot == "" || !HasSlot(parent.Content, slot) {
		return nil, def, false
	}

	n := e.instantiate(def, true)
	n.Slot = slot
	parent.Children = append(parent.Children, n)
	e.canvas.bindSubtree(n, false)
	e.history.Commit()
	e.log.WithFields(map[string]interface{}{"id": n.ID, "parent": parent.ID, "slot": slot}).Debug("component nested")
	return n, def, true
}

// Reorder moves a top-level node before the target when y is above the
// target's vertical midpoint, after it otherwise.
func (e *Engine) Reorder(draggedID, targetID string, y, top, bottom int) bool {
	if draggedID == targetID {
		return false
	}
	from := e.topIndex(draggedID)
	to := e.topIndex(targetID)
	if from < 0 || to < 0 {
		return false
	}
	if e.canvas.nodes[from].State == models.NodeExiting {
		return false
	}

	before := y < top+(bottom-top)/2
	dragged := e.canvas.nodes[from]
	rest := make([]*models.Node, 0, len(e.canvas.nodes))
	rest = append(rest, e.canvas.nodes[:from]...)
	rest = append(rest, e.canvas.nodes[from+1:]...)

	at := 0
	for i, n := range rest {
		if n.ID == targetID {
			at = i
			break
		}
	}
	if !before {
		at++
	}
	out := make([]*models.Node, 0, len(e.canvas.nodes))
	out = append(out, rest[:at]...)
	out = append(out, dragged)
	out = append(out, rest[at:]...)

	if sameOrder(out, e.canvas.nodes) {
		return false
	}
	e.canvas.nodes = out
	e.history.Commit()
	return true
}

func sameOrder(a, b []*models.Node) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (e *Engine) topIndex(id string) int {
	for i, n := range e.canvas.nodes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// MoveUp swaps a node with the previous sibling in the same slot
func (e *Engine) MoveUp(id string) bool {
	return e.move(id, -1)
}

// MoveDown swaps a node with the next sibling in the same slot
func (e *Engine) MoveDown(id string) bool {
	return e.move(id, 1)
}

func (e *Engine) move(id string, dir int) bool {
	loc, ok := e.canvas.Find(id)
	if !ok || loc.Exiting() {
		return false
	}
	siblings := e.canvas.nodes
	if !loc.TopLevel() {
		siblings = loc.Parent.Children
	}

	j := -1
	for k := loc.Index + dir; k >= 0 && k < len(siblings); k += dir {
		if loc.TopLevel() || siblings[k].Slot == loc.Node.Slot {
			j = k
			break
		}
	}
	if j < 0 {
		return false
	}
	siblings[loc.Index], siblings[j] = siblings[j], siblings[loc.Index]
	e.history.Commit()

	word := "up"
	if dir > 0 {
		word = "down"
	}
	if loc.TopLevel() {
		e.notifier.Info("Moved component "+word, "")
	} else {
		e.notifier.Info("Moved", "Component moved "+word)
	}
	return true
}

// Duplicate inserts a copy of a top-level node right after it. The copy and
// all of its descendants get fresh ids.
func (e *Engine) Duplicate(id string) (*models.Node, bool) {
	i := e.topIndex(id)
	if i < 0 {
		return nil, false
	}
	orig := e.canvas.nodes[i]
	if orig.State == models.NodeExiting {
		return nil, false
	}

	clone := orig.Clone()
	clone.Walk(func(node, _ *models.Node) bool {
		node.ID = e.canvas.nextID()
		node.State = models.NodeActive
		return true
	})

	nodes := make([]*models.Node, 0, len(e.canvas.nodes)+1)
	nodes = append(nodes, e.canvas.nodes[:i+1]...)
	nodes = append(nodes, clone)
	nodes = append(nodes, e.canvas.nodes[i+1:]...)
	e.canvas.nodes = nodes
	e.canvas.bindSubtree(clone, true)
	e.history.Commit()
	return clone, true
}

// Delete marks a node as exiting and removes it once the exit delay passes
func (e *Engine) Delete(id string) bool {
	loc, ok := e.canvas.Find(id)
	if !ok || loc.Exiting() {
		return false
	}
	loc.Node.State = models.NodeExiting
	delay := e.delay
	if !loc.TopLevel() {
		delay = e.nestedDelay
	}

	cancel := e.scheduler.Schedule(delay, func() { e.completeDelete(id) })
	if _, still := e.canvas.Find(id); still {
		e.pending[id] = cancel
	}
	return true
}

func (e *Engine) completeDelete(id string) {
	delete(e.pending, id)
	loc, ok := e.canvas.Find(id)
	if !ok {
		return
	}

	if loc.TopLevel() {
		e.canvas.nodes = append(e.canvas.nodes[:loc.Index:loc.Index], e.canvas.nodes[loc.Index+1:]...)
	} else {
		p := loc.Parent
		p.Children = append(p.Children[:loc.Index:loc.Index], p.Children[loc.Index+1:]...)
	}
	loc.Node.Walk(func(node, _ *models.Node) bool {
		delete(e.canvas.behaviors, node.ID)
		if e.canvas.selected == node.ID {
			e.canvas.selected = ""
		}
		return true
	})
	e.canvas.placeholder = len(e.canvas.nodes) == 0
	e.history.Commit()
	e.log.WithField("id", id).Debug("component removed")

	if !loc.TopLevel() {
		e.notifier.Success("Deleted", "Nested component removed")
	}
}

// PendingRemovals returns the number of deletes waiting for their delay
func (e *Engine) PendingRemovals() int {
	return len(e.pending)
}

func (e *Engine) cancelPending() {
	for id, cancel := range e.pending {
		cancel()
		delete(e.pending, id)
		if loc, ok := e.canvas.Find(id); ok {
			loc.Node.State = models.NodeActive
		}
	}
}

// Clear removes every component after the user confirms
func (e *Engine) Clear(confirm Confirmer) bool {
	if e.canvas.Empty() {
		e.notifier.Info("Canvas is already empty", "")
		return false
	}
	if confirm == nil || !confirm("Clear all components from the canvas?") {
		return false
	}
	e.cancelPending()
	e.canvas.reset()
	e.history.Commit()
	e.notifier.Success("Canvas Cleared", "Successfully removed all components")
	return true
}

// Select makes a live node the single selection
func (e *Engine) Select(id string) bool {
	return e.canvas.Select(id)
}

func (e *Engine) Deselect() {
	e.canvas.Deselect()
}

// Undo restores the previous snapshot. Pending removals are dropped first.
func (e *Engine) Undo() bool {
	e.cancelPending()
	return e.history.Undo()
}

// Redo restores the next snapshot. Pending removals are dropped first.
func (e *Engine) Redo() bool {
	e.cancelPending()
	return e.history.Redo()
}

type nopHistory struct{}

func (nopHistory) Commit()    {}
func (nopHistory) Undo() bool { return false }
func (nopHistory) Redo() bool { return false }

type nopNotifier struct{}

func (nopNotifier) Success(string, string) {}
func (nopNotifier) Info(string, string)    {}
