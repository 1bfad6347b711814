package artifacts

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/turtacn/gdmrisk/pkg/logger"
)

// Watcher flags the loaded artifacts as stale when their files change on
// disk. It never reloads them; a restart picks up new artifacts.
type Watcher struct {
	fs      *fsnotify.Watcher
	watched map[string]string
	stale   atomic.Bool
	log     logger.Logger
	onStale func(file string)
}

// NewWatcher watches the directory of store for changes to its files.
func NewWatcher(store *Store, log logger.Logger) (*Watcher, error) {
	if log == nil {
		log = logger.NewNoopLogger()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create artifact watcher: %w", err)
	}
	if err := fw.Add(store.Dir()); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("failed to watch artifact dir: %w", err)
	}

	watched := make(map[string]string)
	for name, path := range store.Files() {
		watched[filepath.Clean(path)] = name
	}

	return &Watcher{
		fs:      fw,
		watched: watched,
		log:     log.WithFields(logger.Fields{"component": "artifact_watcher"}),
	}, nil
}

// OnStale registers a callback invoked once, the first time a change is seen.
// It must be set before Run.
func (w *Watcher) OnStale(fn func(file string)) {
	w.onStale = fn
}

// Stale reports whether any loaded artifact changed since startup.
func (w *Watcher) Stale() bool {
	return w.stale.Load()
}

// Run processes file events until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handle(ctx, event)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.Error(ctx, "Artifact watcher error", err)
		}
	}
}

func (w *Watcher) handle(ctx context.Context, event fsnotify.Event) {
	name, ok := w.watched[filepath.Clean(event.Name)]
	if !ok {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}

	if w.stale.CompareAndSwap(false, true) {
		w.log.Warn(ctx, "Artifact changed on disk, restart required to load it", logger.Fields{
			"artifact": name,
			"file":     event.Name,
			"op":       event.Op.String(),
		})
		if w.onStale != nil {
			w.onStale(event.Name)
		}
	}
}

// Close stops the underlying file watcher.
func (w *Watcher) Close() error {
	return w.fs.Close()
}
