package catalogue

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brickyard/brickyard-cli/pkg/logger"
)

const customCatalogue = `
categories:
  - key: custom
    name: Custom
    icon: bi-star
    items:
      - {id: promo, name: Promo, icon: bi-gift, html: "<div class=\"alert alert-info\">Sale</div>"}
`

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalogue.yaml")

	reloaded := make(chan *Catalogue, 1)
	w := NewWatcher(path, logger.NewTestLogger(t), func(c *Catalogue) {
		reloaded <- c
	})
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte(customCatalogue), 0644))

	select {
	case c := <-reloaded:
		_, ok := c.Lookup("promo")
		assert.True(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("catalogue was not reloaded")
	}
}

func TestWatcherIgnoresInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalogue.yaml")

	reloaded := make(chan *Catalogue, 1)
	w := NewWatcher(path, logger.NewTestLogger(t), func(c *Catalogue) {
		reloaded <- c
	})
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("categories: []"), 0644))

	select {
	case <-reloaded:
		t.Fatal("invalid catalogue should not be delivered")
	case <-time.After(2 * debounce):
	}
}

func TestWatcherStopDuringWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalogue.yaml")

	for i := 0; i < 20; i++ {
		w := NewWatcher(path, logger.NewNop(), func(*Catalogue) {})
		require.NoError(t, w.Start(context.Background()))

		stop := make(chan struct{})
		writing := make(chan struct{})
		go func() {
			defer close(writing)
			for {
				select {
				case <-stop:
					return
				default:
					_ = os.WriteFile(path, []byte(customCatalogue), 0644)
				}
			}
		}()

		time.Sleep(5 * time.Millisecond)
		w.Stop()
		w.Stop()
		close(stop)
		<-writing
	}
}
