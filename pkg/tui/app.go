package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/brickyard/brickyard-cli/pkg/catalogue"
	"github.com/brickyard/brickyard-cli/pkg/files"
	"github.com/brickyard/brickyard-cli/pkg/logger"
	"github.com/brickyard/brickyard-cli/pkg/models"
	"github.com/brickyard/brickyard-cli/pkg/store"
)

type sessionState int

const (
	pageListView sessionState = iota
	pageBuilderView
)

// AppDeps are shared by every view of the app
type AppDeps struct {
	Catalogue *catalogue.Catalogue
	Settings  *models.Settings
	KV        store.KV
	Logger    logger.Logger
	Clipboard func(string) error
}

type App struct {
	deps      AppDeps
	state     sessionState
	pages     *PagesModel
	builder   *BuilderModel
	width     int
	height    int
	statusMsg string
}

// NewApp starts on the page list, or straight in the builder when page is
// given. A missing page is created.
func NewApp(deps AppDeps, page string) *App {
	if deps.Settings == nil {
		deps.Settings = models.DefaultSettings()
	}
	if deps.Logger == nil {
		deps.Logger = logger.NewNop()
	}
	if deps.Catalogue == nil {
		deps.Catalogue = catalogue.Default()
	}
	a := &App{
		deps:  deps,
		state: pageListView,
		pages: NewPagesModel(deps.Settings.Export.Theme, deps.Logger),
	}
	if page != "" {
		a.openPage(page)
	}
	return a
}

func (a *App) Init() tea.Cmd {
	if a.state == pageBuilderView {
		return a.builder.Init()
	}
	return a.pages.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Pass window size to all sub-models
		a.pages.SetSize(msg.Width, msg.Height)
		if a.builder != nil {
			a.builder.SetSize(msg.Width, msg.Height)
		}
		return a, nil

	case tea.KeyMsg:
		// Global keybindings
		if msg.Type == tea.KeyCtrlC {
			a.leaveBuilder()
			return a, tea.Quit
		}

	case StatusMsg:
		a.statusMsg = string(msg)
		return a, nil

	case openPageMsg:
		a.openPage(msg.name)
		return a, nil

	case backToPagesMsg:
		a.leaveBuilder()
		a.state = pageListView
		a.pages.loadPages()
		return a, nil

	case CatalogueReloadedMsg:
		if msg.Catalogue != nil {
			a.deps.Catalogue = msg.Catalogue
		}
	}

	// Route updates to the active view
	var cmd tea.Cmd
	switch a.state {
	case pageListView:
		_, cmd = a.pages.Update(msg)
	case pageBuilderView:
		_, cmd = a.builder.Update(msg)
	}
	return a, cmd
}

// openPage loads a page into a fresh builder, creating it when missing
func (a *App) openPage(name string) {
	page, err := files.ReadPage(name)
	if err != nil {
		if files.PageExists(name) {
			a.statusMsg = "✗ " + err.Error()
			return
		}
		page = files.NewPage(name, a.deps.Settings.Export.Theme)
		if err := files.WritePage(page); err != nil {
			a.statusMsg = "✗ " + err.Error()
			return
		}
	}
	a.builder = NewBuilderModel(BuilderDeps{
		Page:      page,
		Catalogue: a.deps.Catalogue,
		Settings:  a.deps.Settings,
		KV:        a.deps.KV,
		Logger:    a.deps.Logger.WithField("page", page.Name),
		Clipboard: a.deps.Clipboard,
	})
	a.builder.SetSize(a.width, a.height)
	a.state = pageBuilderView
	a.statusMsg = ""
}

// leaveBuilder saves the open page
func (a *App) leaveBuilder() {
	if a.state != pageBuilderView || a.builder == nil {
		return
	}
	if err := a.builder.Save(); err != nil {
		a.deps.Logger.WithField("error", err).Error("failed to save page on exit")
		a.statusMsg = "✗ " + err.Error()
		return
	}
	a.statusMsg = "✓ Saved " + a.builder.sess.Page.Name
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	var content string
	switch a.state {
	case pageListView:
		content = a.pages.View()
	case pageBuilderView:
		content = a.builder.View()
	default:
		content = "Unknown view"
	}

	// Add status bar if there's a message
	if a.statusMsg != "" && a.state == pageListView {
		statusBar := StatusBarStyle.Render(a.statusMsg)
		content = lipgloss.JoinVertical(lipgloss.Top, content, statusBar)
	}

	return content
}

// StatusMsg sets the app status line
type StatusMsg string
