package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/brickyard/brickyard-cli/pkg/catalogue"
	"github.com/brickyard/brickyard-cli/pkg/models"
)

// sidebarEntry is one row of the catalogue list: a category header or an item
type sidebarEntry struct {
	header   bool
	category models.Category
	item     models.ComponentDef
}

// sidebarModel browses the component catalogue
type sidebarModel struct {
	cat       *catalogue.Catalogue
	search    textinput.Model
	searching bool
	tab       string
	entries   []sidebarEntry
	cursor    int
	offset    int
	height    int
}

func newSidebar(cat *catalogue.Catalogue) *sidebarModel {
	ti := textinput.New()
	ti.Placeholder = "search components"
	ti.Prompt = "/ "
	ti.CharLimit = 40
	s := &sidebarModel{cat: cat, search: ti, tab: catalogue.TabAll}
	s.rebuild()
	return s
}

// setCatalogue swaps the catalogue after a reload
func (s *sidebarModel) setCatalogue(cat *catalogue.Catalogue) {
	selected, _ := s.selected()
	s.cat = cat
	s.rebuild()
	for i, e := range s.entries {
		if !e.header && e.item.ID == selected.ID {
			s.cursor = i
			break
		}
	}
}

// rebuild recomputes the rows from the search query and the active tab
func (s *sidebarModel) rebuild() {
	s.entries = s.entries[:0]
	for _, cat := range s.cat.Search(s.search.Value()) {
		s.entries = append(s.entries, sidebarEntry{header: true, category: cat})
		for _, item := range catalogue.Visible(cat, s.tab) {
			s.entries = append(s.entries, sidebarEntry{category: cat, item: item})
		}
	}
	if s.cursor >= len(s.entries) {
		s.cursor = len(s.entries) - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
	s.offset = 0
	if len(s.entries) > 0 && s.entries[s.cursor].header {
		s.move(1)
	}
	s.scrollTo(s.cursor)
}

// move steps the cursor over items, skipping headers
func (s *sidebarModel) move(delta int) {
	for i := s.cursor + delta; i >= 0 && i < len(s.entries); i += delta {
		if !s.entries[i].header {
			s.cursor = i
			s.scrollTo(i)
			return
		}
	}
}

func (s *sidebarModel) scrollTo(i int) {
	if s.height <= 0 {
		return
	}
	if i < s.offset {
		s.offset = i
	}
	if i >= s.offset+s.height {
		s.offset = i - s.height + 1
	}
}

func (s *sidebarModel) selected() (models.ComponentDef, bool) {
	if s.cursor < 0 || s.cursor >= len(s.entries) || s.entries[s.cursor].header {
		return models.ComponentDef{}, false
	}
	return s.entries[s.cursor].item, true
}

// itemAt returns the item on a visible row, row 0 being the first list line
func (s *sidebarModel) itemAt(row int) (int, bool) {
	i := s.offset + row
	if row < 0 || i >= len(s.entries) || s.entries[i].header {
		return 0, false
	}
	return i, true
}

// tabbedCategory returns the category the tab filter applies to
func (s *sidebarModel) tabbedCategory() (models.Category, bool) {
	for _, cat := range s.cat.Categories() {
		if cat.Tabbed {
			return cat, true
		}
	}
	return models.Category{}, false
}

// cycleTab moves the tab filter of the tabbed category
func (s *sidebarModel) cycleTab(delta int) {
	cat, ok := s.tabbedCategory()
	if !ok || len(cat.Tabs) == 0 {
		return
	}
	idx := 0
	for i, t := range cat.Tabs {
		if t.ID == s.tab {
			idx = i
		}
	}
	idx = (idx + delta + len(cat.Tabs)) % len(cat.Tabs)
	s.tab = cat.Tabs[idx].ID
	s.rebuild()
}

func (s *sidebarModel) startSearch() {
	s.searching = true
	s.search.Focus()
}

func (s *sidebarModel) stopSearch(clear bool) {
	s.searching = false
	s.search.Blur()
	if clear {
		s.search.SetValue("")
	}
	s.rebuild()
}

func (s *sidebarModel) view(width, height int, focused bool) string {
	s.height = height - 2
	if s.height < 1 {
		s.height = 1
	}

	var b strings.Builder
	b.WriteString(GetActiveHeaderStyle(focused).Render(fmt.Sprintf("COMPONENTS (%d)", s.cat.Len())))
	b.WriteString("\n")
	if s.searching || s.search.Value() != "" {
		b.WriteString(s.search.View())
	} else {
		b.WriteString(DescriptionStyle.Render(truncate.StringWithTail(s.tabLine(), uint(width), "…")))
	}
	b.WriteString("\n")

	if len(s.entries) == 0 {
		b.WriteString(PlaceholderStyle.Render("no matching components"))
	}
	end := s.offset + s.height
	if end > len(s.entries) {
		end = len(s.entries)
	}
	for i := s.offset; i < end; i++ {
		e := s.entries[i]
		var line string
		switch {
		case e.header:
			line = TypeHeaderStyle.Render(truncate.StringWithTail(strings.ToUpper(e.category.Name), uint(width), "…"))
		case i == s.cursor && focused:
			line = SelectedStyle.Render(truncate.StringWithTail("▸ "+e.item.Name, uint(width), "…"))
		case i == s.cursor:
			line = NormalStyle.Bold(true).Render(truncate.StringWithTail("▸ "+e.item.Name, uint(width), "…"))
		default:
			line = NormalStyle.Render(truncate.StringWithTail("  "+e.item.Name, uint(width), "…"))
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return lipgloss.NewStyle().Width(width).Height(height).Render(b.String())
}

func (s *sidebarModel) tabLine() string {
	cat, ok := s.tabbedCategory()
	if !ok {
		return ""
	}
	var parts []string
	for _, t := range cat.Tabs {
		if t.ID == s.tab {
			parts = append(parts, "["+t.Name+"]")
		} else {
			parts = append(parts, t.Name)
		}
	}
	return strings.Join(parts, " ")
}
