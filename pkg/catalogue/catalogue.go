// Package catalogue holds the registry of component templates that can be
// placed on the canvas.
package catalogue

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/brickyard/brickyard-cli/pkg/models"
)

// TabAll is the filter that shows every item of a tabbed category
const TabAll = "all"

//go:embed catalogue.yaml
var builtin []byte

// Lookup resolves a component id to its definition
type Lookup interface {
	Lookup(id string) (models.ComponentDef, bool)
}

type file struct {
	Categories []models.Category `yaml:"categories" validate:"required,min=1,dive"`
}

// Catalogue is an immutable, ordered set of categories
type Catalogue struct {
	categories []models.Category
	index      map[string]models.ComponentDef
	owner      map[string]string
}

var validate = validator.New()

// Default returns the catalogue compiled into the binary
func Default() *Catalogue {
	c, err := Parse(builtin)
	if err != nil {
		panic(fmt.Sprintf("built-in catalogue is invalid: %v", err))
	}
	return c
}

// LoadFile reads and validates a catalogue from disk
func LoadFile(path string) (*Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalogue %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalogue %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes catalogue yaml and validates it
func Parse(data []byte) (*Catalogue, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalogue YAML: %w", err)
	}
	if err := validate.Struct(f); err != nil {
		return nil, fmt.Errorf("invalid catalogue: %w", err)
	}

	c := &Catalogue{
		categories: f.Categories,
		index:      make(map[string]models.ComponentDef),
		owner:      make(map[string]string),
	}
	for _, cat := range f.Categories {
		for _, item := range cat.Items {
			if prev, dup := c.owner[item.ID]; dup {
				return nil, fmt.Errorf("duplicate component id %q in %s and %s", item.ID, prev, cat.Key)
			}
			item.HTML = strings.TrimSpace(item.HTML)
			c.index[item.ID] = item
			c.owner[item.ID] = cat.Key
		}
	}
	return c, nil
}

// Lookup returns the definition for id
func (c *Catalogue) Lookup(id string) (models.ComponentDef, bool) {
	def, ok := c.index[id]
	return def, ok
}

// CategoryOf returns the key of the category that owns id
func (c *Catalogue) CategoryOf(id string) string {
	return c.owner[id]
}

// Categories returns the categories in display order
func (c *Catalogue) Categories() []models.Category {
	out := make([]models.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Category returns the category with the given key
func (c *Catalogue) Category(key string) (models.Category, bool) {
	for _, cat := range c.categories {
		if cat.Key == key {
			return cat, true
		}
	}
	return models.Category{}, false
}

// Len is the number of items across all categories
func (c *Catalogue) Len() int {
	return len(c.index)
}

// Visible returns the items of cat shown under activeTab. Untabbed
// categories ignore the filter. An item whose tab matches no declared tab is
// only shown under TabAll.
func Visible(cat models.Category, activeTab string) []models.ComponentDef {
	if !cat.Tabbed || activeTab == "" || activeTab == TabAll {
		return cat.Items
	}
	var items []models.ComponentDef
	for _, item := range cat.Items {
		if item.Tab == activeTab {
			items = append(items, item)
		}
	}
	return items
}

// Search filters every category by a case-insensitive match on item name.
// Categories left without items are dropped.
func (c *Catalogue) Search(query string) []models.Category {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return c.Categories()
	}

	var out []models.Category
	for _, cat := range c.categories {
		var items []models.ComponentDef
		for _, item := range cat.Items {
			if strings.Contains(strings.ToLower(item.Name), query) {
				items = append(items, item)
			}
		}
		if len(items) > 0 {
			filtered := cat
			filtered.Items = items
			out = append(out, filtered)
		}
	}
	return out
}
