package cache

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher clears a Store when a watched input file changes on disk, so a
// rewritten dataset never serves a stale mental map. It watches the file's
// parent directory and filters events by name, which survives the
// write-temp-then-rename pattern editors and scrapers use.
type Watcher struct {
	store   *Store
	watcher *fsnotify.Watcher
	path    string
	logger  *zap.Logger
	done    chan struct{}
}

// NewWatcher starts watching path and returns the running watcher. Close
// stops it. The store is cleared on every write, create, or rename of the
// watched file.
func NewWatcher(store *Store, path string, logger *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating dataset watcher: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("resolving dataset path: %w", err)
	}

	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching dataset directory: %w", err)
	}

	w := &Watcher{
		store:   store,
		watcher: fsw,
		path:    abs,
		logger:  logger,
		done:    make(chan struct{}),
	}
	go w.run()

	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Name != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.store.ClearAll()
			w.logger.Info("cache cleared after dataset change",
				zap.String("path", w.path),
				zap.String("op", event.Op.String()),
			)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("dataset watcher error", zap.Error(err))
		}
	}
}

// Close stops the watcher. Safe to call once.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
