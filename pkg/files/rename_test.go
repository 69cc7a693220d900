package files

import (
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Landing Page", "landing-page"},
		{"Pricing (v2)!", "pricing-v2"},
		{"  --About--Us--  ", "about-us"},
		{"!!!", "unnamed"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtractDisplayName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"landing-page.yaml", "Landing Page"},
		{"about", "About"},
	}

	for _, tt := range tests {
		if got := ExtractDisplayName(tt.input); got != tt.want {
			t.Errorf("ExtractDisplayName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRenamePage(t *testing.T) {
	chdirTemp(t)
	InitProjectStructure()

	page := NewPage("draft", "")
	WritePage(page)

	newName, err := RenamePage("draft", "Final Version")
	if err != nil {
		t.Fatalf("RenamePage failed: %v", err)
	}
	if newName != "final-version" {
		t.Errorf("Expected final-version, got %q", newName)
	}
	if PageExists("draft") {
		t.Error("old page file still exists")
	}

	read, err := ReadPage("final-version")
	if err != nil {
		t.Fatalf("ReadPage failed: %v", err)
	}
	if read.ID != page.ID {
		t.Error("rename must keep the page id")
	}
}

func TestRenamePageConflicts(t *testing.T) {
	chdirTemp(t)
	InitProjectStructure()
	WritePage(NewPage("one", ""))
	WritePage(NewPage("two", ""))

	if _, err := RenamePage("one", "Two"); err == nil {
		t.Error("Expected error renaming onto an existing page")
	}
	if _, err := RenamePage("one", "   "); err == nil {
		t.Error("Expected error for empty display name")
	}
	if _, err := RenamePage("missing", "Other"); err == nil {
		t.Error("Expected error for missing page")
	}

	name, err := RenamePage("one", "One")
	if err != nil || name != "one" {
		t.Errorf("renaming to the same slug should be a no-op, got %q, %v", name, err)
	}
}
