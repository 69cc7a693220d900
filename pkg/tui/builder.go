package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/brickyard/brickyard-cli/pkg/canvas"
	"github.com/brickyard/brickyard-cli/pkg/catalogue"
	"github.com/brickyard/brickyard-cli/pkg/dragdrop"
	"github.com/brickyard/brickyard-cli/pkg/editor"
	"github.com/brickyard/brickyard-cli/pkg/export"
	"github.com/brickyard/brickyard-cli/pkg/logger"
	"github.com/brickyard/brickyard-cli/pkg/models"
	"github.com/brickyard/brickyard-cli/pkg/notify"
	"github.com/brickyard/brickyard-cli/pkg/panels"
	"github.com/brickyard/brickyard-cli/pkg/store"
	"github.com/brickyard/brickyard-cli/pkg/workspace"
)

type focusArea int

const (
	focusSidebar focusArea = iota
	focusCanvas
	focusProperties
	focusCode
)

const toastTick = 100 * time.Millisecond

type toastTickMsg time.Time

// CatalogueReloadedMsg carries a catalogue reloaded from disk
type CatalogueReloadedMsg struct {
	Catalogue *catalogue.Catalogue
}

// backToPagesMsg asks the app to leave the builder
type backToPagesMsg struct{}

// BuilderDeps are the collaborators of the page builder
type BuilderDeps struct {
	Page      *models.Page
	Catalogue *catalogue.Catalogue
	Settings  *models.Settings
	KV        store.KV
	Logger    logger.Logger
	Clipboard func(string) error
	Now       func() time.Time
}

// BuilderModel is the three-pane page builder: catalogue, canvas and
// properties, with an optional code pane under the canvas
type BuilderModel struct {
	sess     *workspace.Session
	engine   *canvas.Engine
	editor   *editor.Editor
	cat      *catalogue.Catalogue
	settings *models.Settings
	sched    *tickScheduler
	toasts   *notify.Notifier
	layout   *dragdrop.Layout
	drag     *dragdrop.Controller
	kv       store.KV
	panels   panels.State
	log      logger.Logger
	copy     func(string) error
	now      func() time.Time

	keys     builderKeyMap
	sidebar  *sidebarModel
	code     viewport.Model
	codeSize int
	confirm  *ConfirmationModel

	prompt      textinput.Model
	promptLabel string
	promptApply func(string)

	focus        focusArea
	propCursor   int
	canvasOffset int
	canvasLines  []string
	nodeOrder    []string
	nodeLine     map[string]int
	press        *pressState
	ticking      bool

	width  int
	height int
}

func NewBuilderModel(d BuilderDeps) *BuilderModel {
	log := d.Logger
	if log == nil {
		log = logger.NewNop()
	}
	settings := d.Settings
	if settings == nil {
		settings = models.DefaultSettings()
	}
	cat := d.Catalogue
	if cat == nil {
		cat = catalogue.Default()
	}
	kv := d.KV
	if kv == nil {
		kv = store.NewMemory()
	}
	now := d.Now
	if now == nil {
		now = time.Now
	}
	copyFn := d.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	toasts := notify.New(settings.UI.ToastDurationMs).WithClock(now)
	sched := newTickScheduler()
	sess := workspace.New(d.Page, workspace.Options{
		Catalogue:         cat,
		HistoryCapacity:   settings.History.Capacity,
		Notifier:          toasts,
		Logger:            log,
		Scheduler:         sched,
		DeleteDelay:       time.Duration(settings.UI.DeleteDelayMs) * time.Millisecond,
		NestedDeleteDelay: time.Duration(settings.UI.NestedDeleteDelayMs) * time.Millisecond,
	})
	if sess.Page.Theme == "" {
		sess.Page.Theme = settings.Export.Theme
	}

	layout := dragdrop.NewLayout()
	ctx := context.Background()
	if err := panels.Seed(ctx, kv, panels.Code, settings.UI.ShowCode); err != nil {
		log.WithField("error", err).Warn("failed to seed panel state")
	}
	state, err := panels.Load(ctx, kv)
	if err != nil {
		log.WithField("error", err).Warn("failed to load panel state")
	}

	prompt := textinput.New()
	prompt.CharLimit = 200
	prompt.Prompt = ""

	b := &BuilderModel{
		sess:     sess,
		engine:   sess.Engine,
		editor:   editor.New(sess.Engine, log),
		cat:      cat,
		settings: settings,
		sched:    sched,
		toasts:   toasts,
		layout:   layout,
		drag:     dragdrop.NewController(sess.Canvas(), layout, sess.Engine, log),
		kv:       kv,
		panels:   state,
		log:      log,
		copy:     copyFn,
		now:      now,
		keys:     defaultKeyMap(),
		sidebar:  newSidebar(cat),
		code:     viewport.New(0, 0),
		confirm:  NewConfirmation(),
		prompt:   prompt,
		focus:    focusSidebar,
		nodeLine: make(map[string]int),
	}
	b.refresh()
	return b
}

func (b *BuilderModel) Init() tea.Cmd {
	return nil
}

// SetSize resizes every pane
func (b *BuilderModel) SetSize(width, height int) {
	b.width = width
	b.height = height
	b.refresh()
}

// Page returns the page being edited with the live tree synced into it
func (b *BuilderModel) Page() *models.Page {
	b.sess.Sync()
	return b.sess.Page
}

func (b *BuilderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.SetSize(msg.Width, msg.Height)

	case removalDueMsg:
		b.sched.run(msg.id)

	case toastTickMsg:
		b.ticking = false

	case CatalogueReloadedMsg:
		b.setCatalogue(msg.Catalogue)

	case tea.MouseMsg:
		cmds = append(cmds, b.handleMouse(msg))

	case tea.KeyMsg:
		cmds = append(cmds, b.handleKey(msg))
	}

	b.refresh()
	cmds = append(cmds, b.sched.drain(), b.tickToasts())
	return b, tea.Batch(cmds...)
}

// tickToasts keeps a redraw tick running while toasts are on screen
func (b *BuilderModel) tickToasts() tea.Cmd {
	if b.ticking || len(b.toasts.Visible(b.now())) == 0 {
		return nil
	}
	b.ticking = true
	return tea.Tick(toastTick, func(t time.Time) tea.Msg { return toastTickMsg(t) })
}

func (b *BuilderModel) setCatalogue(cat *catalogue.Catalogue) {
	if cat == nil {
		return
	}
	b.cat = cat
	b.engine.SetCatalogue(cat)
	b.sidebar.setCatalogue(cat)
	b.toasts.Info("Catalogue Reloaded", fmt.Sprintf("%d components available", cat.Len()))
}

func (b *BuilderModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if b.confirm.Active() {
		return b.confirm.Update(msg)
	}
	if b.promptApply != nil {
		return b.handlePromptKey(msg)
	}
	if b.sidebar.searching {
		return b.handleSearchKey(msg)
	}

	k := b.keys
	switch {
	case key.Matches(msg, k.Quit):
		return func() tea.Msg { return backToPagesMsg{} }

	case key.Matches(msg, k.Focus):
		b.cycleFocus()

	case key.Matches(msg, k.Escape):
		if b.drag.Active() {
			b.drag.Cancel()
			b.press = nil
		} else {
			b.engine.Deselect()
		}

	case key.Matches(msg, k.Undo):
		b.engine.Undo()
	case key.Matches(msg, k.Redo):
		b.engine.Redo()

	case key.Matches(msg, k.Sidebar):
		b.togglePanel(panels.Sidebar)
	case key.Matches(msg, k.PropsPanel):
		b.togglePanel(panels.Properties)
	case key.Matches(msg, k.CodePanel):
		b.togglePanel(panels.Code)
	case key.Matches(msg, k.ResetPanel):
		b.resetPanels()

	case key.Matches(msg, k.Theme):
		b.cycleTheme()
	case key.Matches(msg, k.Copy):
		b.copyCode()
	case key.Matches(msg, k.Save):
		b.save()
	case key.Matches(msg, k.Export):
		b.exportFile()
	case key.Matches(msg, k.Clear):
		return b.clear()

	default:
		return b.handleFocusedKey(msg)
	}
	return nil
}

// handleFocusedKey routes keys whose meaning depends on the focused pane
func (b *BuilderModel) handleFocusedKey(msg tea.KeyMsg) tea.Cmd {
	k := b.keys
	switch b.focus {
	case focusSidebar:
		switch {
		case key.Matches(msg, k.Up):
			b.sidebar.move(-1)
		case key.Matches(msg, k.Down):
			b.sidebar.move(1)
		case key.Matches(msg, k.Search):
			b.sidebar.startSearch()
			return textinput.Blink
		case key.Matches(msg, k.NextTab):
			b.sidebar.cycleTab(1)
		case key.Matches(msg, k.PrevTab):
			b.sidebar.cycleTab(-1)
		case key.Matches(msg, k.Enter):
			b.addSelected()
		default:
			return b.handleSelectionKey(msg)
		}

	case focusProperties:
		switch {
		case key.Matches(msg, k.Up):
			if b.propCursor > 0 {
				b.propCursor--
			}
		case key.Matches(msg, k.Down):
			b.propCursor++
		case key.Matches(msg, k.Left):
			b.adjustProperty(-1)
		case key.Matches(msg, k.Right):
			b.adjustProperty(1)
		case key.Matches(msg, k.Enter):
			return b.activateProperty()
		default:
			return b.handleSelectionKey(msg)
		}

	case focusCode:
		var cmd tea.Cmd
		b.code, cmd = b.code.Update(msg)
		return cmd

	default:
		switch {
		case key.Matches(msg, k.Up):
			b.stepSelection(-1)
		case key.Matches(msg, k.Down):
			b.stepSelection(1)
		case key.Matches(msg, k.Enter):
			return b.editText()
		default:
			return b.handleSelectionKey(msg)
		}
	}
	return nil
}

// handleSelectionKey runs the operations on the selected node and the
// insert shortcuts
func (b *BuilderModel) handleSelectionKey(msg tea.KeyMsg) tea.Cmd {
	k := b.keys
	id := b.engine.Canvas().SelectedID()
	switch {
	case key.Matches(msg, k.Add):
		b.addSelected()
	case key.Matches(msg, k.Nest):
		b.nestSelected()
	case key.Matches(msg, k.Column):
		col := int(msg.String()[0] - '1')
		b.insertIntoColumn(col)
	case key.Matches(msg, k.MoveUp):
		if id != "" {
			b.engine.MoveUp(id)
		}
	case key.Matches(msg, k.MoveDown):
		if id != "" {
			b.engine.MoveDown(id)
		}
	case key.Matches(msg, k.Duplicate):
		if id != "" {
			if n, ok := b.engine.Duplicate(id); ok {
				b.engine.Select(n.ID)
			}
		}
	case key.Matches(msg, k.Delete):
		if id != "" {
			b.engine.Delete(id)
		}
	case key.Matches(msg, k.EditText):
		return b.editText()
	case key.Matches(msg, k.Properties):
		if !b.panels.Properties {
			b.togglePanel(panels.Properties)
		}
		b.focus = focusProperties
		b.propCursor = 0
	}
	return nil
}

func (b *BuilderModel) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		b.sidebar.stopSearch(true)
		return nil
	case tea.KeyEnter:
		b.sidebar.stopSearch(false)
		return nil
	case tea.KeyUp:
		b.sidebar.move(-1)
		return nil
	case tea.KeyDown:
		b.sidebar.move(1)
		return nil
	}
	var cmd tea.Cmd
	before := b.sidebar.search.Value()
	b.sidebar.search, cmd = b.sidebar.search.Update(msg)
	if b.sidebar.search.Value() != before {
		b.sidebar.cursor = 0
		b.sidebar.rebuild()
	}
	return cmd
}

func (b *BuilderModel) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		b.closePrompt()
		return nil
	case tea.KeyEnter:
		apply := b.promptApply
		value := b.prompt.Value()
		b.closePrompt()
		apply(value)
		return nil
	}
	var cmd tea.Cmd
	b.prompt, cmd = b.prompt.Update(msg)
	return cmd
}

// openPrompt asks for a value on the status line
func (b *BuilderModel) openPrompt(label, value string, apply func(string)) tea.Cmd {
	b.promptLabel = label
	b.promptApply = apply
	b.prompt.SetValue(value)
	b.prompt.CursorEnd()
	return b.prompt.Focus()
}

func (b *BuilderModel) closePrompt() {
	b.promptApply = nil
	b.promptLabel = ""
	b.prompt.Blur()
	b.prompt.SetValue("")
}

func (b *BuilderModel) cycleFocus() {
	order := []focusArea{focusSidebar, focusCanvas, focusProperties, focusCode}
	idx := 0
	for i, f := range order {
		if f == b.focus {
			idx = i
		}
	}
	for i := 1; i <= len(order); i++ {
		next := order[(idx+i)%len(order)]
		if b.focusable(next) {
			b.focus = next
			return
		}
	}
}

func (b *BuilderModel) focusable(f focusArea) bool {
	switch f {
	case focusSidebar:
		return b.panels.Sidebar
	case focusProperties:
		return b.panels.Properties
	case focusCode:
		return b.panels.Code
	}
	return true
}

// addSelected appends the catalogue item under the sidebar cursor
func (b *BuilderModel) addSelected() {
	def, ok := b.sidebar.selected()
	if !ok {
		return
	}
	if n, ok := b.engine.InsertTop(def.ID); ok {
		b.engine.Select(n.ID)
	}
}

// nestSelected places the catalogue item into the selected node's default
// slot
func (b *BuilderModel) nestSelected() {
	def, ok := b.sidebar.selected()
	parent := b.engine.Canvas().SelectedID()
	if !ok || parent == "" {
		return
	}
	beh, _ := b.engine.Canvas().Behaviors(parent)
	if !beh.DropTarget {
		b.toasts.Warning("Cannot Nest", "The selected component does not accept children")
		return
	}
	if !b.engine.Canvas().Rules().IsCompatible(parentType(b.engine.Canvas(), parent), def.ID) {
		b.toasts.Warning("Cannot Nest", fmt.Sprintf("%s cannot be placed here", def.Name))
		return
	}
	b.engine.InsertNested(parent, beh.DefaultSlot, def.ID)
}

func (b *BuilderModel) insertIntoColumn(col int) {
	def, ok := b.sidebar.selected()
	row := b.engine.Canvas().SelectedID()
	if !ok || row == "" {
		return
	}
	beh, _ := b.engine.Canvas().Behaviors(row)
	if col >= beh.Columns() {
		return
	}
	if !b.engine.Canvas().Rules().IsCompatible(parentType(b.engine.Canvas(), row), def.ID) {
		b.toasts.Warning("Cannot Nest", fmt.Sprintf("%s cannot be placed here", def.Name))
		return
	}
	b.engine.InsertIntoColumn(row, col, def.ID)
}

func parentType(c *canvas.Canvas, id string) string {
	loc, ok := c.Find(id)
	if !ok {
		return ""
	}
	return loc.Node.Type
}

// stepSelection moves the selection through the live nodes in render order
func (b *BuilderModel) stepSelection(delta int) {
	if len(b.nodeOrder) == 0 {
		return
	}
	current := b.engine.Canvas().SelectedID()
	idx := -1
	for i, id := range b.nodeOrder {
		if id == current {
			idx = i
		}
	}
	switch {
	case idx < 0 && delta > 0:
		idx = 0
	case idx < 0:
		idx = len(b.nodeOrder) - 1
	default:
		idx += delta
	}
	if idx < 0 || idx >= len(b.nodeOrder) {
		return
	}
	b.engine.Select(b.nodeOrder[idx])
	b.scrollToSelection()
}

func (b *BuilderModel) editText() tea.Cmd {
	texts := b.editor.EditableTexts()
	if len(texts) == 0 {
		return nil
	}
	return b.openPrompt("Text", texts[0], func(v string) { b.editor.SetText(0, v) })
}

func (b *BuilderModel) togglePanel(p panels.Panel) {
	state, err := panels.Toggle(context.Background(), b.kv, p)
	if err != nil {
		b.log.WithField("error", err).Warn("failed to persist panel state")
		b.panels.Set(p, !b.panels.Visible(p))
	} else {
		b.panels = state
	}
	if !b.focusable(b.focus) {
		b.focus = focusCanvas
	}
}

func (b *BuilderModel) resetPanels() {
	state, err := panels.Reset(context.Background(), b.kv)
	if err != nil {
		b.log.WithField("error", err).Warn("failed to reset panel state")
		state = panels.State{Sidebar: true, Properties: true, Code: true}
	}
	b.panels = state
	b.toasts.Info("Panels Reset", "All panels are visible")
}

func (b *BuilderModel) cycleTheme() {
	next := export.NextTheme(b.sess.Page.Theme)
	b.sess.Page.Theme = next
	b.toasts.Success("Theme Changed", fmt.Sprintf("Switched to %s theme", capitalize(next)))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// document renders the current canvas as a full page
func (b *BuilderModel) document() (string, error) {
	return export.Page(b.engine.Canvas(), b.sess.Page.Theme, b.settings.Export.Title)
}

func (b *BuilderModel) copyCode() {
	doc, err := b.document()
	if err == nil {
		err = b.copy(doc)
	}
	if err != nil {
		b.log.WithField("error", err).Error("failed to copy code")
		b.toasts.Error("Copy Failed", err.Error())
		return
	}
	b.toasts.Success("Copied!", "HTML code copied to clipboard")
}

// Save completes pending removals and writes the page
func (b *BuilderModel) Save() error {
	b.sched.flush()
	return b.sess.Save()
}

func (b *BuilderModel) save() {
	if err := b.Save(); err != nil {
		b.log.WithField("error", err).Error("failed to save page")
		b.toasts.Error("Save Failed", err.Error())
		return
	}
	b.toasts.Success("Saved", fmt.Sprintf("Page %s saved", b.sess.Page.Name))
}

func (b *BuilderModel) exportFile() {
	doc, err := b.document()
	var size int
	if err == nil {
		size, err = export.WriteFile(b.settings.Export.Filename, doc)
	}
	if err != nil {
		b.log.WithField("error", err).Error("failed to export page")
		b.toasts.Error("Export Failed", err.Error())
		return
	}
	b.toasts.Success("Exported", fmt.Sprintf("%s (%d bytes)", b.settings.Export.Filename, size))
}

// clear asks before removing everything; an empty canvas only reports it
func (b *BuilderModel) clear() tea.Cmd {
	if b.engine.Canvas().Empty() {
		b.engine.Clear(nil)
		return nil
	}
	b.confirm.Ask("Clear all components from the canvas?", true, func() tea.Cmd {
		b.engine.Clear(canvas.AlwaysConfirm)
		return nil
	}, nil)
	return nil
}
