package file

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/quayside-labs/deckhand/internal/logger"
)

// debounceWindow coalesces editor write bursts into one reload.
const debounceWindow = 200 * time.Millisecond

// Watcher reloads the config store when its file changes on disk. Grouping
// thresholds and caps are read per query, so a reload takes effect on the
// next search without a restart.
type Watcher struct {
	store   *ConfigStore
	watcher *fsnotify.Watcher
}

// NewWatcher creates a watcher over the store's config file.
func NewWatcher(store *ConfigStore) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory, not the file: editors replace the file on save
	// and a file watch dies with the old inode.
	if err := fsw.Add(filepath.Dir(store.Path())); err != nil {
		fsw.Close()
		return nil, err
	}

	return &Watcher{store: store, watcher: fsw}, nil
}

// Run processes events until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.store.Path() {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceWindow)
			} else {
				timer.Reset(debounceWindow)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if err := w.store.Load(); err != nil {
				logger.Warn("Config: reload failed: %v", err)
				continue
			}
			logger.Debug("Config: reloaded from %s", w.store.Path())

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Config: watch error: %v", err)
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
