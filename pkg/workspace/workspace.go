// Package workspace binds a saved page to a live canvas so headless callers
// can run placement operations and write the result back.
package workspace

import (
	"fmt"
	"time"

	"github.com/brickyard/brickyard-cli/pkg/canvas"
	"github.com/brickyard/brickyard-cli/pkg/catalogue"
	"github.com/brickyard/brickyard-cli/pkg/compat"
	"github.com/brickyard/brickyard-cli/pkg/files"
	"github.com/brickyard/brickyard-cli/pkg/history"
	"github.com/brickyard/brickyard-cli/pkg/logger"
	"github.com/brickyard/brickyard-cli/pkg/models"
)

// Options configure a Session
type Options struct {
	Catalogue       catalogue.Lookup
	HistoryCapacity int
	Notifier        canvas.Notifier
	Logger          logger.Logger

	// Scheduler defers removals; nil completes them immediately
	Scheduler         canvas.Scheduler
	DeleteDelay       time.Duration
	NestedDeleteDelay time.Duration
}

// Session is a page with its engine and undo history
type Session struct {
	Page    *models.Page
	Engine  *canvas.Engine
	History *history.Manager
}

// New wraps page in a session
func New(page *models.Page, opts Options) *Session {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	var sched canvas.Scheduler = canvas.ImmediateScheduler{}
	if opts.Scheduler != nil {
		sched = opts.Scheduler
	}

	c := canvas.New(compat.Default())
	c.Load(page.Nodes, page.Counter)

	hist := history.NewManager(c, opts.HistoryCapacity, log)
	hist.Reset()

	engine := canvas.NewEngine(canvas.Deps{
		Canvas:            c,
		Catalogue:         opts.Catalogue,
		History:           hist,
		Notifier:          opts.Notifier,
		Scheduler:         sched,
		Logger:            log.WithField("page", page.Name),
		DeleteDelay:       opts.DeleteDelay,
		NestedDeleteDelay: opts.NestedDeleteDelay,
	})

	return &Session{Page: page, Engine: engine, History: hist}
}

// Open reads the named page and wraps it
func Open(name string, opts Options) (*Session, error) {
	page, err := files.ReadPage(name)
	if err != nil {
		return nil, err
	}
	return New(page, opts), nil
}

// Canvas returns the live canvas
func (s *Session) Canvas() *canvas.Canvas {
	return s.Engine.Canvas()
}

// Sync copies the canvas back onto the page without writing it
func (s *Session) Sync() {
	c := s.Engine.Canvas()
	s.Page.Nodes = c.Snapshot()
	s.Page.Counter = c.Counter()
}

// Save writes the current canvas to the page file
func (s *Session) Save() error {
	s.Sync()
	if err := files.WritePage(s.Page); err != nil {
		return fmt.Errorf("failed to save page: %w", err)
	}
	return nil
}
