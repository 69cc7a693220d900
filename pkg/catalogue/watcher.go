package catalogue

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/brickyard/brickyard-cli/pkg/logger"
)

// debounce collapses the burst of events editors emit on save
const debounce = 300 * time.Millisecond

// Watcher reloads a user catalogue file whenever it changes on disk
type Watcher struct {
	path     string
	log      logger.Logger
	onReload func(*Catalogue)
	watcher  *fsnotify.Watcher
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewWatcher watches path. onReload is called from the watcher goroutine with
// every catalogue that loads and validates; invalid files are logged and skipped.
func NewWatcher(path string, log logger.Logger, onReload func(*Catalogue)) *Watcher {
	return &Watcher{
		path:     path,
		log:      log.WithField("component", "catalogue-watcher"),
		onReload: onReload,
	}
}

// Start begins watching the directory that holds the catalogue file
func (w *Watcher) Start(ctx context.Context) error {
	absPath, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("failed to resolve catalogue path: %w", err)
	}
	w.path = absPath

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(absPath), err)
	}
	w.watcher = watcher

	watchCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.done = make(chan struct{})

	go w.loop(watchCtx, watcher)
	w.log.Info("watching " + absPath)
	return nil
}

// loop owns events until ctx is cancelled. It reads from its own watcher
// reference so Stop can clear the field once the loop has exited.
func (w *Watcher) loop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer close(w.done)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			name, _ := filepath.Abs(event.Name)
			if name != w.path {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				if ctx.Err() == nil {
					w.reload()
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.log.WithField("error", err.Error()).Warn("watch error")
		}
	}
}

func (w *Watcher) reload() {
	c, err := LoadFile(w.path)
	if err != nil {
		w.log.WithField("error", err.Error()).Warn("ignoring invalid catalogue")
		return
	}
	w.log.WithField("items", c.Len()).Info("catalogue reloaded")
	if w.onReload != nil {
		w.onReload(c)
	}
}

// Stop ends the watch loop and releases the watcher
func (w *Watcher) Stop() {
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	if w.done != nil {
		<-w.done
		w.done = nil
	}
	if w.watcher != nil {
		w.watcher.Close()
		w.watcher = nil
	}
}
