package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/brickyard/brickyard-cli/pkg/models"
)

const (
	BrickyardDir  = ".brickyard"
	PagesDir      = "pages"
	SettingsFile  = "settings.yaml"
	CatalogueFile = "catalogue.yaml"
	LogFile       = "brickyard.log"
	StoreFile     = "state.db"
	PageExt       = ".yaml"
)

func InitProjectStructure() error {
	dirs := []string{
		BrickyardDir,
		filepath.Join(BrickyardDir, PagesDir),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	settingsPath := filepath.Join(BrickyardDir, SettingsFile)
	if _, err := os.Stat(settingsPath); os.IsNotExist(err) {
		content, err := yaml.Marshal(models.DefaultSettings())
		if err != nil {
			return fmt.Errorf("failed to marshal default settings: %w", err)
		}
		if err := os.WriteFile(settingsPath, content, 0644); err != nil {
			return fmt.Errorf("failed to write settings: %w", err)
		}
	}

	return nil
}

// ProjectExists reports whether the working directory holds a project
func ProjectExists() bool {
	info, err := os.Stat(BrickyardDir)
	return err == nil && info.IsDir()
}

// Path joins name onto the project directory
func Path(name ...string) string {
	return filepath.Join(append([]string{BrickyardDir}, name...)...)
}

func pagePath(name string) string {
	return filepath.Join(BrickyardDir, PagesDir, name+PageExt)
}

// PageFile returns the page name for a file name, or a name given with its
// extension
func PageFile(name string) string {
	return models.NormalizePageName(strings.TrimSuffix(name, PageExt))
}

// NewPage creates an empty page with a fresh id
func NewPage(name, theme string) *models.Page {
	now := time.Now()
	return &models.Page{
		ID:       uuid.NewString(),
		Name:     PageFile(name),
		Theme:    theme,
		Nodes:    []*models.Node{},
		Created:  now,
		Modified: now,
	}
}

func ReadPage(name string) (*models.Page, error) {
	name = PageFile(name)
	if name == "" {
		return nil, models.ErrEmptyPageName
	}
	absPath := pagePath(name)

	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read page %s: %w", name, err)
	}

	var page models.Page
	if err := yaml.Unmarshal(content, &page); err != nil {
		return nil, fmt.Errorf("failed to parse page YAML %s: %w", name, err)
	}

	page.Path = absPath
	if page.Name == "" {
		page.Name = name
	}

	return &page, nil
}

func WritePage(page *models.Page) error {
	if err := models.ValidatePageName(page.Name); err != nil {
		return fmt.Errorf("invalid page name: %w", err)
	}
	page.Name = PageFile(page.Name)
	if page.ID == "" {
		page.ID = uuid.NewString()
	}
	if page.Created.IsZero() {
		page.Created = time.Now()
	}
	page.Modified = time.Now()

	absPath := pagePath(page.Name)
	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory for page: %w", err)
	}

	content, err := yaml.Marshal(page)
	if err != nil {
		return fmt.Errorf("failed to marshal page to YAML: %w", err)
	}

	if err := os.WriteFile(absPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write page %s: %w", page.Name, err)
	}

	page.Path = absPath
	return nil
}

// ListPages returns the saved page names in alphabetical order
func ListPages() ([]string, error) {
	pagesPath := filepath.Join(BrickyardDir, PagesDir)

	entries, err := os.ReadDir(pagesPath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}

	pages := []string{}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), PageExt) {
			pages = append(pages, strings.TrimSuffix(entry.Name(), PageExt))
		}
	}
	sort.Strings(pages)

	return pages, nil
}

func DeletePage(name string) error {
	name = PageFile(name)
	absPath := pagePath(name)

	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return fmt.Errorf("page not found: %s", name)
	}

	if err := os.Remove(absPath); err != nil {
		return fmt.Errorf("failed to delete page %s: %w", name, err)
	}

	return nil
}

// PageExists reports whether a page file is present
func PageExists(name string) bool {
	_, err := os.Stat(pagePath(PageFile(name)))
	return err == nil
}

// WriteFile writes content to a file outside the project directory
func WriteFile(path string, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}
