package catalogue

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brickyard/brickyard-cli/pkg/compat"
	"github.com/brickyard/brickyard-cli/pkg/models"
)

func TestDefaultCatalogueStructure(t *testing.T) {
	c := Default()

	wantKeys := []string{
		"premadeStyles", "layout", "navigation", "typography", "content",
		"cards", "hero", "forms", "components", "footer", "utilities",
	}
	var keys []string
	for _, cat := range c.Categories() {
		keys = append(keys, cat.Key)
		assert.NotEmpty(t, cat.Name, cat.Key)
		assert.True(t, strings.HasPrefix(cat.Icon, "bi-"), cat.Key)
		assert.GreaterOrEqual(t, len(cat.Items), 3, cat.Key)

		for _, item := range cat.Items {
			assert.NotEmpty(t, item.ID)
			assert.NotEmpty(t, item.Name, item.ID)
			assert.True(t, strings.HasPrefix(item.Icon, "bi-"), item.ID)
			assert.NotEmpty(t, item.HTML, item.ID)
		}
	}
	assert.Equal(t, wantKeys, keys)
}

func TestDefaultCatalogueHTMLIsSafe(t *testing.T) {
	for _, cat := range Default().Categories() {
		for _, item := range cat.Items {
			lower := strings.ToLower(item.HTML)
			assert.NotContains(t, lower, "<script", item.ID)
			assert.NotContains(t, lower, "javascript:", item.ID)
			for _, handler := range []string{"onclick", "onload", "onerror", "onmouseover", "onfocus"} {
				assert.NotContains(t, lower, handler, item.ID)
			}
			open := strings.Count(item.HTML, "<div")
			closed := strings.Count(item.HTML, "</div>")
			assert.LessOrEqual(t, abs(open-closed), 1, item.ID)
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func TestCatalogueKnowsEveryRuleType(t *testing.T) {
	c := Default()
	for _, id := range append(append([]string{}, compat.Containers...), compat.TopLevelOnlyTypes...) {
		_, ok := c.Lookup(id)
		assert.True(t, ok, "missing %s", id)
	}
	for _, id := range []string{"card-basic", "card-header", "card-footer", "heading-h1", "paragraph", "lead", "buttons", "image"} {
		_, ok := c.Lookup(id)
		assert.True(t, ok, "missing %s", id)
	}
}

func TestLookup(t *testing.T) {
	c := Default()

	def, ok := c.Lookup("container")
	require.True(t, ok)
	assert.Equal(t, "Container", def.Name)
	assert.Equal(t, "layout", c.CategoryOf("container"))

	_, ok = c.Lookup("does-not-exist")
	assert.False(t, ok)
}

func TestVisibleTabFilter(t *testing.T) {
	c := Default()
	premade, ok := c.Category("premadeStyles")
	require.True(t, ok)
	require.True(t, premade.Tabbed)

	ids := func(items []models.ComponentDef) []string {
		var out []string
		for _, i := range items {
			out = append(out, i.ID)
		}
		return out
	}

	all := ids(Visible(premade, TabAll))
	assert.Len(t, all, len(premade.Items))
	assert.Contains(t, all, "style-mega-menu")
	assert.Contains(t, all, "style-dash-sidebar")

	declared := map[string]bool{}
	for _, tab := range premade.Tabs {
		declared[tab.ID] = true
		if tab.ID == TabAll {
			continue
		}
		visible := ids(Visible(premade, tab.ID))
		assert.NotContains(t, visible, "style-mega-menu", tab.ID)
		assert.NotContains(t, visible, "style-dash-sidebar", tab.ID)
	}

	// the two navigation items reference a tab that is not declared
	for _, item := range premade.Items {
		if item.ID == "style-mega-menu" || item.ID == "style-dash-sidebar" {
			assert.Equal(t, "navigation", item.Tab)
			assert.False(t, declared[item.Tab])
			continue
		}
		assert.True(t, declared[item.Tab], item.ID)
	}

	hero := ids(Visible(premade, "hero"))
	assert.Equal(t, []string{"style-modern-hero", "style-dark-hero"}, hero)
}

func TestVisibleUntabbedIgnoresFilter(t *testing.T) {
	layout, ok := Default().Category("layout")
	require.True(t, ok)
	assert.Len(t, Visible(layout, "hero"), len(layout.Items))
}

func TestSearch(t *testing.T) {
	c := Default()

	tests := []struct {
		name      string
		query     string
		wantCats  []string
		wantFirst string
	}{
		{"empty returns everything", "", nil, ""},
		{"case insensitive", "NAVBAR", []string{"navigation"}, "navbar-dark"},
		{"spans categories", "hero", []string{"premadeStyles", "hero"}, "style-modern-hero"},
		{"no match", "zzz", []string{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Search(tt.query)
			if tt.wantCats == nil {
				assert.Len(t, got, len(c.Categories()))
				return
			}
			var keys []string
			for _, cat := range got {
				keys = append(keys, cat.Key)
			}
			assert.ElementsMatch(t, tt.wantCats, keys)
			if tt.wantFirst != "" {
				assert.Equal(t, tt.wantFirst, got[0].Items[0].ID)
			}
		})
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", "categories: [::"},
		{"no categories", "categories: []"},
		{"bad icon", `
categories:
  - key: a
    name: A
    icon: bi-a
    items:
      - {id: x, name: X, icon: fa-x, html: "<p class=\"my-3\">x</p>"}`},
		{"missing html", `
categories:
  - key: a
    name: A
    icon: bi-a
    items:
      - {id: x, name: X, icon: bi-x}`},
		{"duplicate id", `
categories:
  - key: a
    name: A
    icon: bi-a
    items:
      - {id: x, name: X, icon: bi-x, html: "<p>x</p>"}
  - key: b
    name: B
    icon: bi-b
    items:
      - {id: x, name: X2, icon: bi-x, html: "<p>x</p>"}`},
		{"tabbed without tabs", `
categories:
  - key: a
    name: A
    icon: bi-a
    tabbed: true
    items:
      - {id: x, name: X, icon: bi-x, html: "<p>x</p>", tab: t}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogue.yaml")
	data := `
categories:
  - key: custom
    name: Custom
    icon: bi-star
    items:
      - {id: promo, name: Promo, icon: bi-gift, html: "<div class=\"alert alert-info\">Sale</div>"}
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
