package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/brickyard/brickyard-cli/pkg/canvas"
	"github.com/brickyard/brickyard-cli/pkg/files"
	"github.com/brickyard/brickyard-cli/pkg/logger"
	"github.com/brickyard/brickyard-cli/pkg/models"
)

type pageItem struct {
	name     string
	count    int
	theme    string
	modified time.Time
}

// openPageMsg asks the app to open a page in the builder
type openPageMsg struct {
	name string
}

type pagesInputMode int

const (
	pagesBrowse pagesInputMode = iota
	pagesCreate
	pagesRename
)

// PagesModel lists the saved pages
type PagesModel struct {
	items   []pageItem
	cursor  int
	mode    pagesInputMode
	input   textinput.Model
	confirm *ConfirmationModel
	theme   string
	log     logger.Logger
	status  string
	err     error
	width   int
	height  int
}

func NewPagesModel(theme string, log logger.Logger) *PagesModel {
	if log == nil {
		log = logger.NewNop()
	}
	ti := textinput.New()
	ti.Placeholder = "page name"
	ti.CharLimit = 60
	m := &PagesModel{input: ti, confirm: NewConfirmation(), theme: theme, log: log}
	m.loadPages()
	return m
}

func (m *PagesModel) loadPages() {
	names, err := files.ListPages()
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.items = m.items[:0]
	for _, name := range names {
		page, err := files.ReadPage(name)
		if err != nil {
			m.log.WithFields(map[string]interface{}{"page": name, "error": err}).Warn("skipping unreadable page")
			continue
		}
		m.items = append(m.items, pageItem{name: page.Name, count: countNodes(page.Nodes), theme: page.Theme, modified: page.Modified})
	}
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func countNodes(nodes []*models.Node) int {
	count := 0
	for _, n := range nodes {
		n.Walk(func(_, _ *models.Node) bool {
			count++
			return true
		})
	}
	return count
}

func (m *PagesModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *PagesModel) Init() tea.Cmd {
	return nil
}

func (m *PagesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *PagesModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.confirm.Active() {
		return m.confirm.Update(msg)
	}
	if m.mode != pagesBrowse {
		return m.handleInput(msg)
	}

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "enter":
		if item, ok := m.selected(); ok {
			return func() tea.Msg { return openPageMsg{name: item.name} }
		}
	case "n":
		m.mode = pagesCreate
		m.input.SetValue("")
		return m.input.Focus()
	case "r":
		if item, ok := m.selected(); ok {
			m.mode = pagesRename
			m.input.SetValue(item.name)
			m.input.CursorEnd()
			return m.input.Focus()
		}
	case "d":
		if item, ok := m.selected(); ok {
			m.confirm.Ask(fmt.Sprintf("Delete page %s?", item.name), true, func() tea.Cmd {
				m.deletePage(item.name)
				return nil
			}, nil)
		}
	case "q":
		return tea.Quit
	}
	return nil
}

func (m *PagesModel) handleInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = pagesBrowse
		m.input.Blur()
		return nil
	case tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		mode := m.mode
		m.mode = pagesBrowse
		m.input.Blur()
		if mode == pagesCreate {
			return m.createPage(value)
		}
		m.renamePage(value)
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *PagesModel) selected() (pageItem, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return pageItem{}, false
	}
	return m.items[m.cursor], true
}

func (m *PagesModel) createPage(name string) tea.Cmd {
	if files.PageExists(name) {
		m.status = fmt.Sprintf("✗ Page %s already exists", files.PageFile(name))
		return nil
	}
	page := files.NewPage(name, m.theme)
	if err := files.WritePage(page); err != nil {
		m.status = "✗ " + err.Error()
		return nil
	}
	m.log.WithField("page", page.Name).Info("page created")
	m.loadPages()
	return func() tea.Msg { return openPageMsg{name: page.Name} }
}

func (m *PagesModel) renamePage(name string) {
	item, ok := m.selected()
	if !ok {
		return
	}
	newName, err := files.RenamePage(item.name, name)
	if err != nil {
		m.status = "✗ " + err.Error()
		return
	}
	m.status = fmt.Sprintf("✓ Renamed %s to %s", item.name, newName)
	m.loadPages()
}

func (m *PagesModel) deletePage(name string) {
	if err := files.DeletePage(name); err != nil {
		m.status = "✗ " + err.Error()
		return
	}
	m.status = fmt.Sprintf("✓ Deleted %s", name)
	m.loadPages()
}

func (m *PagesModel) View() string {
	var b strings.Builder
	b.WriteString(renderHeader(m.width, "pages", fmt.Sprintf("%d saved", len(m.items))))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(ErrorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	if len(m.items) == 0 {
		b.WriteString(EmptyActiveStyle.Render("  No pages yet. Press n to create one."))
		b.WriteString("\n")
	}

	nameStyle := lipgloss.NewStyle().Width(30)
	for i, item := range m.items {
		line := fmt.Sprintf("%s %-12s %-10s %s",
			nameStyle.Render(item.name),
			canvas.CountLabel(item.count),
			item.theme,
			humanize.Time(item.modified))
		if i == m.cursor {
			b.WriteString(SelectedStyle.Render("▸ " + line))
		} else {
			b.WriteString(NormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.confirm.Active():
		b.WriteString(m.confirm.View(m.width))
	case m.mode == pagesCreate:
		b.WriteString("New page: " + m.input.View())
	case m.mode == pagesRename:
		b.WriteString("Rename to: " + m.input.View())
	case m.status != "":
		b.WriteString(DescriptionStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(DescriptionStyle.Render("enter open  n new  r rename  d delete  q quit"))
	return b.String()
}
