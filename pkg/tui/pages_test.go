package tui

import (
	"os"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brickyard/brickyard-cli/pkg/files"
	"github.com/brickyard/brickyard-cli/pkg/models"
	"github.com/brickyard/brickyard-cli/pkg/store"
)

func chdirProject(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	require.NoError(t, files.InitProjectStructure())
}

func writePage(t *testing.T, name string, nodes ...*models.Node) {
	t.Helper()
	page := files.NewPage(name, "default")
	page.Nodes = nodes
	require.NoError(t, files.WritePage(page))
}

func TestPagesListsSavedPages(t *testing.T) {
	chdirProject(t)
	writePage(t, "landing", &models.Node{ID: "comp-1", Type: "container", Children: []*models.Node{{ID: "comp-2", Type: "paragraph"}}})
	writePage(t, "about")

	m := NewPagesModel("default", nil)
	m.SetSize(100, 30)

	require.Len(t, m.items, 2)
	assert.Equal(t, "about", m.items[0].name)
	assert.Equal(t, 2, m.items[1].count)
	view := m.View()
	assert.Contains(t, view, "landing")
	assert.Contains(t, view, "2 components")
}

func TestPagesCreateOpensBuilder(t *testing.T) {
	chdirProject(t)
	m := NewPagesModel("darkly", nil)

	m.Update(runes("n"))
	m.Update(runes("Contact Us"))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	assert.Equal(t, openPageMsg{name: "contact-us"}, cmd())
	page, err := files.ReadPage("contact-us")
	require.NoError(t, err)
	assert.Equal(t, "darkly", page.Theme)
}

func TestPagesCreateRejectsDuplicate(t *testing.T) {
	chdirProject(t)
	writePage(t, "about")
	m := NewPagesModel("default", nil)

	m.Update(runes("n"))
	m.Update(runes("about"))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Contains(t, m.status, "already exists")
}

func TestPagesDeleteAsksFirst(t *testing.T) {
	chdirProject(t)
	writePage(t, "about")
	m := NewPagesModel("default", nil)

	m.Update(runes("d"))
	require.True(t, m.confirm.Active())
	m.Update(runes("y"))

	assert.False(t, files.PageExists("about"))
	assert.Empty(t, m.items)
}

func TestPagesRename(t *testing.T) {
	chdirProject(t)
	writePage(t, "about")
	m := NewPagesModel("default", nil)

	m.Update(runes("r"))
	m.input.SetValue("About Us")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, files.PageExists("about-us"))
	require.Len(t, m.items, 1)
	assert.Equal(t, "about-us", m.items[0].name)
}

func TestAppOpensPageAndSavesOnReturn(t *testing.T) {
	chdirProject(t)
	app := NewApp(AppDeps{KV: store.NewMemory(), Clipboard: func(string) error { return nil }}, "home")
	app.Update(tea.WindowSizeMsg{Width: 160, Height: 48})
	require.Equal(t, pageBuilderView, app.state)
	require.True(t, files.PageExists("home"), "a missing page is created")

	_, ok := app.builder.engine.InsertTop("paragraph")
	require.True(t, ok)
	app.Update(backToPagesMsg{})

	assert.Equal(t, pageListView, app.state)
	page, rerr := files.ReadPage("home")
	require.NoError(t, rerr)
	assert.Len(t, page.Nodes, 1)
	require.Len(t, app.pages.items, 1)
	assert.Equal(t, 1, app.pages.items[0].count)
}

func TestAppRoutesOpenPage(t *testing.T) {
	chdirProject(t)
	writePage(t, "about")
	app := NewApp(AppDeps{KV: store.NewMemory()}, "")
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	require.Equal(t, pageListView, app.state)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Equal(t, pageBuilderView, app.state)
	assert.Equal(t, "about", app.builder.sess.Page.Name)
	assert.Contains(t, app.View(), "CANVAS")
}
