package character

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultReloadDelay is how long the watcher waits after the last change
// before reloading. Editors often write a file in several steps.
const DefaultReloadDelay = 250 * time.Millisecond

// Watcher reloads a Registry whenever record files in a directory change.
type Watcher struct {
	registry *Registry
	dir      string
	delay    time.Duration
	logger   *slog.Logger

	// onReload is called after every reload attempt (tests use it).
	onReload func(error)
}

// NewWatcher creates a watcher for dir feeding registry.
func NewWatcher(registry *Registry, dir string, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		registry: registry,
		dir:      dir,
		delay:    DefaultReloadDelay,
		logger:   logger,
	}
}

// SetDelay changes the debounce delay. Non-positive values are ignored.
func (w *Watcher) SetDelay(d time.Duration) {
	if d > 0 {
		w.delay = d
	}
}

// Run watches until ctx is cancelled. A failed reload is logged and the
// registry keeps its previous contents.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	w.logger.Info("watching characters directory", "dir", w.dir)

	timer := time.NewTimer(w.delay)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("character file changed", "file", event.Name, "op", event.Op.String())
			timer.Reset(w.delay)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", "error", err)

		case <-timer.C:
			err := w.registry.LoadDir(ctx, w.dir)
			if err != nil {
				w.logger.Error("character reload failed, keeping previous set", "error", err)
			}
			if w.onReload != nil {
				w.onReload(err)
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !IsRecordFile(event.Name) {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}
