package models

import (
	"testing"
)

func TestNormalizePageName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase", "Landing", "landing"},
		{"trim spaces", "  landing  ", "landing"},
		{"replace spaces", "about us", "about-us"},
		{"remove invalid chars", "about@us!", "aboutus"},
		{"keep underscores", "about_us", "about_us"},
		{"strip yaml extension", "landing.yaml", "landing"},
		{"numbers allowed", "landing-v2", "landing-v2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizePageName(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizePageName(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestValidatePageName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"valid simple", "landing", nil},
		{"valid with hyphen", "about-us", nil},
		{"valid with spaces", "About Us", nil},
		{"empty string", "", ErrEmptyPageName},
		{"only spaces", "   ", ErrEmptyPageName},
		{"too long", strings50() + "x", ErrPageNameTooLong},
		{"invalid chars", "about/us", ErrInvalidPageCharacter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePageName(tt.input)
			if err != tt.wantErr {
				t.Errorf("ValidatePageName(%q) = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func strings50() string {
	b := make([]byte, 50)
	for i := range b {
		b[i] = 'a'
	}
	return string(b)
}

func TestNodeCloneIsDeep(t *testing.T) {
	child := &Node{ID: "comp-2", Type: "heading-h1", Nested: true, Slot: "main", Content: "<h1>Hi</h1>"}
	root := &Node{ID: "comp-1", Type: "container", Content: "<div></div>", Children: []*Node{child}}

	clone := root.Clone()
	clone.Children[0].Content = "<h1>Changed</h1>"
	clone.Children = append(clone.Children, &Node{ID: "comp-3"})

	if child.Content != "<h1>Hi</h1>" {
		t.Errorf("clone shares child with original: %q", child.Content)
	}
	if len(root.Children) != 1 {
		t.Errorf("clone shares children slice with original, got %d children", len(root.Children))
	}
}

func TestNodeWalk(t *testing.T) {
	root := &Node{ID: "a", Children: []*Node{
		{ID: "b", Children: []*Node{{ID: "c"}}},
		{ID: "d"},
	}}

	var order []string
	root.Walk(func(n, parent *Node) bool {
		order = append(order, n.ID)
		return true
	})

	want := []string{"a", "b", "c", "d"}
	if len(order) != len(want) {
		t.Fatalf("walk visited %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("walk[%d] = %s, want %s", i, order[i], want[i])
		}
	}

	var stopped []string
	root.Walk(func(n, parent *Node) bool {
		stopped = append(stopped, n.ID)
		return n.ID != "b"
	})
	if len(stopped) != 2 {
		t.Errorf("walk did not stop at b: %v", stopped)
	}
}
