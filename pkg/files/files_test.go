package files

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/brickyard/brickyard-cli/pkg/models"
)

func chdirTemp(t *testing.T) {
	t.Helper()
	tempDir := t.TempDir()
	oldWd, _ := os.Getwd()
	t.Cleanup(func() { os.Chdir(oldWd) })
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}
}

func TestInitProjectStructure(t *testing.T) {
	chdirTemp(t)

	if ProjectExists() {
		t.Fatal("project should not exist before init")
	}

	err := InitProjectStructure()
	if err != nil {
		t.Fatalf("InitProjectStructure failed: %v", err)
	}

	expectedDirs := []string{
		BrickyardDir,
		filepath.Join(BrickyardDir, PagesDir),
	}

	for _, dir := range expectedDirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			t.Errorf("Expected directory %s does not exist", dir)
		}
	}

	content, err := os.ReadFile(Path(SettingsFile))
	if err != nil {
		t.Fatalf("settings not written: %v", err)
	}
	var settings models.Settings
	if err := yaml.Unmarshal(content, &settings); err != nil {
		t.Fatalf("settings not valid YAML: %v", err)
	}
	if settings.History.Capacity != 50 {
		t.Errorf("Expected default capacity 50, got %d", settings.History.Capacity)
	}

	if !ProjectExists() {
		t.Error("ProjectExists should be true after init")
	}
}

func TestInitKeepsExistingSettings(t *testing.T) {
	chdirTemp(t)
	os.MkdirAll(BrickyardDir, 0755)
	os.WriteFile(Path(SettingsFile), []byte("log:\n  level: debug\n"), 0644)

	if err := InitProjectStructure(); err != nil {
		t.Fatalf("InitProjectStructure failed: %v", err)
	}

	content, _ := os.ReadFile(Path(SettingsFile))
	if string(content) != "log:\n  level: debug\n" {
		t.Errorf("settings were overwritten: %q", content)
	}
}

func TestReadWritePage(t *testing.T) {
	chdirTemp(t)
	InitProjectStructure()

	page := NewPage("Landing", "darkly")
	page.Counter = 2
	page.Nodes = []*models.Node{
		{ID: "comp-1", Type: "container", Content: `<div class="container" data-slot="main"></div>`, Children: []*models.Node{
			{ID: "comp-2", Type: "paragraph", Nested: true, Slot: "main", Content: "<p>Hi</p>"},
		}},
	}

	if err := WritePage(page); err != nil {
		t.Fatalf("WritePage failed: %v", err)
	}
	if page.Name != "landing" {
		t.Errorf("Expected normalized name %q, got %q", "landing", page.Name)
	}

	read, err := ReadPage("landing.yaml")
	if err != nil {
		t.Fatalf("ReadPage failed: %v", err)
	}

	if read.ID != page.ID {
		t.Errorf("Expected id %q, got %q", page.ID, read.ID)
	}
	if read.Theme != "darkly" || read.Counter != 2 {
		t.Errorf("Unexpected page fields: %+v", read)
	}
	if len(read.Nodes) != 1 || len(read.Nodes[0].Children) != 1 {
		t.Fatalf("Expected nested node tree, got %+v", read.Nodes)
	}
	if read.Nodes[0].Children[0].Slot != "main" {
		t.Errorf("Expected slot main, got %q", read.Nodes[0].Children[0].Slot)
	}
	if read.Path != filepath.Join(BrickyardDir, PagesDir, "landing.yaml") {
		t.Errorf("Unexpected path %q", read.Path)
	}
}

func TestWritePageRejectsInvalidName(t *testing.T) {
	chdirTemp(t)
	InitProjectStructure()

	tests := []string{"", "bad/name", "x!"}
	for _, name := range tests {
		if err := WritePage(&models.Page{Name: name}); err == nil {
			t.Errorf("Expected error for name %q", name)
		}
	}
}

func TestListPages(t *testing.T) {
	chdirTemp(t)

	pages, err := ListPages()
	if err != nil {
		t.Fatalf("ListPages failed without project: %v", err)
	}
	if len(pages) != 0 {
		t.Errorf("Expected no pages, got %v", pages)
	}

	InitProjectStructure()
	WritePage(NewPage("zeta", ""))
	WritePage(NewPage("alpha", ""))
	os.WriteFile(filepath.Join(BrickyardDir, PagesDir, "notes.txt"), []byte("x"), 0644)

	pages, err = ListPages()
	if err != nil {
		t.Fatalf("ListPages failed: %v", err)
	}

	if len(pages) != 2 || pages[0] != "alpha" || pages[1] != "zeta" {
		t.Errorf("Expected [alpha zeta], got %v", pages)
	}
}

func TestDeletePage(t *testing.T) {
	chdirTemp(t)
	InitProjectStructure()
	WritePage(NewPage("gone", ""))

	if err := DeletePage("gone"); err != nil {
		t.Fatalf("DeletePage failed: %v", err)
	}
	if PageExists("gone") {
		t.Error("page still exists after delete")
	}
	if err := DeletePage("gone"); err == nil {
		t.Error("Expected error deleting a missing page")
	}
}

func TestErrorHandling(t *testing.T) {
	chdirTemp(t)

	_, err := ReadPage("nonexistent")
	if err == nil {
		t.Error("Expected error when reading nonexistent page")
	}

	_, err = ReadPage("")
	if err == nil {
		t.Error("Expected error for empty page name")
	}

	InitProjectStructure()
	os.WriteFile(filepath.Join(BrickyardDir, PagesDir, "broken.yaml"), []byte("nodes: [: :"), 0644)
	_, err = ReadPage("broken")
	if err == nil {
		t.Error("Expected error for invalid YAML")
	}
}
