package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/brickyard/brickyard-cli/pkg/catalogue"
	"github.com/brickyard/brickyard-cli/pkg/export"
	"github.com/brickyard/brickyard-cli/pkg/models"
)

// ValidateOutputFormat validates the output format flag
func ValidateOutputFormat(format string) error {
	validFormats := []string{"text", "json", "yaml"}
	if slices.Contains(validFormats, format) {
		return nil
	}
	return fmt.Errorf("invalid output format: %s (must be: text, json, or yaml)", format)
}

// ValidateTheme checks theme against the known bootswatch themes
func ValidateTheme(theme string) error {
	if slices.Contains(export.Themes(), theme) {
		return nil
	}
	return fmt.Errorf("unknown theme: %s (run 'brickyard export --help' for the list)", theme)
}

// ValidatePageName validates a page name given on the command line
func ValidatePageName(name string) error {
	if err := models.ValidatePageName(name); err != nil {
		return fmt.Errorf("invalid page name %q: %w", name, err)
	}
	return nil
}

// ValidateComponent checks that id names a catalogue entry
func ValidateComponent(cat catalogue.Lookup, id string) error {
	if _, ok := cat.Lookup(id); !ok {
		return fmt.Errorf("unknown component: %s (run 'brickyard catalogue' to list components)", id)
	}
	return nil
}

// ValidateOutputPath checks that the directory a file will be written to
// exists
func ValidateOutputPath(path string) error {
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", dir)
		}
		return fmt.Errorf("error accessing directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", dir)
	}
	return nil
}
