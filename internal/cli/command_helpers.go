package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/brickyard/brickyard-cli/pkg/catalogue"
	"github.com/brickyard/brickyard-cli/pkg/config"
	"github.com/brickyard/brickyard-cli/pkg/files"
	"github.com/brickyard/brickyard-cli/pkg/logger"
	"github.com/brickyard/brickyard-cli/pkg/models"
	"github.com/brickyard/brickyard-cli/pkg/store"
	"github.com/brickyard/brickyard-cli/pkg/workspace"
)

// ErrNoProject is returned by commands run outside a project
var ErrNoProject = errors.New("no .brickyard directory found. Run 'brickyard init' first")

// CommandContext manages project validation and common command context
type CommandContext struct {
	ProjectPath string
	Settings    *models.Settings
	Logger      logger.Logger
	catalogue   *catalogue.Catalogue
	validated   bool
}

// NewCommandContext creates a new command context
func NewCommandContext() *CommandContext {
	return &CommandContext{
		ProjectPath: files.BrickyardDir,
	}
}

// ValidateProject ensures the project is initialized
func (c *CommandContext) ValidateProject() error {
	if c.validated {
		return nil
	}

	if _, err := os.Stat(c.ProjectPath); os.IsNotExist(err) {
		return ErrNoProject
	}

	c.validated = true
	return nil
}

// LoadSettings loads settings, falling back to defaults when the file is
// unreadable
func (c *CommandContext) LoadSettings() *models.Settings {
	if c.Settings != nil {
		return c.Settings
	}

	settings, err := config.Load(c.ProjectPath)
	if err != nil {
		PrintWarning("using default settings: %v", err)
		settings = models.DefaultSettings()
	}

	c.Settings = settings
	return settings
}

// Log returns a stderr logger at the configured level
func (c *CommandContext) Log() logger.Logger {
	if c.Logger == nil {
		c.Logger = logger.NewStderr(c.LoadSettings().Log.Level)
	}
	return c.Logger
}

// Catalogue returns the project override at .brickyard/catalogue.yaml when
// present, otherwise the built-in catalogue
func (c *CommandContext) Catalogue() (*catalogue.Catalogue, error) {
	if c.catalogue != nil {
		return c.catalogue, nil
	}

	path := filepath.Join(c.ProjectPath, files.CatalogueFile)
	if _, err := os.Stat(path); err == nil {
		cat, err := catalogue.LoadFile(path)
		if err != nil {
			return nil, err
		}
		c.catalogue = cat
		return cat, nil
	}

	c.catalogue = catalogue.Default()
	return c.catalogue, nil
}

// OpenSession loads a page for headless editing
func (c *CommandContext) OpenSession(name string) (*workspace.Session, error) {
	cat, err := c.Catalogue()
	if err != nil {
		return nil, err
	}
	return workspace.Open(name, workspace.Options{
		Catalogue:       cat,
		HistoryCapacity: c.LoadSettings().History.Capacity,
		Logger:          c.Log(),
	})
}

// OpenStore opens the project's KV store
func (c *CommandContext) OpenStore() (*store.Store, error) {
	return store.Open(filepath.Join(c.ProjectPath, files.StoreFile), c.Log())
}

// EditorLauncher opens files in the user's editor
type EditorLauncher struct {
	DefaultEditor string
	Stdin         io.Reader
	Stdout        io.Writer
	Stderr        io.Writer
}

// NewEditorLauncher uses $EDITOR, falling back to vi
func NewEditorLauncher() *EditorLauncher {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}
	return &EditorLauncher{
		DefaultEditor: editor,
		Stdin:         os.Stdin,
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
	}
}

// OpenFile opens a file in the configured editor and waits for it to exit
func (e *EditorLauncher) OpenFile(path string) error {
	parts := strings.Fields(e.DefaultEditor)
	if len(parts) == 0 {
		return fmt.Errorf("no editor configured")
	}

	editorCmd := exec.Command(parts[0], append(parts[1:], path)...)
	editorCmd.Stdin = e.Stdin
	editorCmd.Stdout = e.Stdout
	editorCmd.Stderr = e.Stderr

	if err := editorCmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}

	return nil
}
