package snippet

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher hot-reloads a Store when its file changes on disk.
type Watcher struct {
	store    *Store
	fsw      *fsnotify.Watcher
	target   string
	debounce time.Duration
	log      *zap.Logger
}

// NewWatcher registers the filesystem watch before returning, so a write
// landing right after construction is already observed. The parent directory
// is watched rather than the file itself, since editors typically replace
// files on save. Rapid edits are debounced into a single reload.
func NewWatcher(s *Store, debounce time.Duration, log *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("snippet: create watcher: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("snippet: watch %s: %w", dir, err)
	}

	target, err := filepath.Abs(s.path)
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("snippet: resolve %s: %w", s.path, err)
	}

	return &Watcher{
		store:    s,
		fsw:      fsw,
		target:   target,
		debounce: debounce,
		log:      log,
	}, nil
}

// Run processes change events until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	timer := time.NewTimer(w.debounce)
	timer.Stop() // Don't fire immediately.
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || abs != w.target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				timer.Reset(w.debounce)
			}

		case <-timer.C:
			if err := w.store.Reload(); err != nil {
				// Keep serving the previous table; a half-written file
				// will trigger another event once the write completes.
				w.log.Warn("snippet reload failed", zap.Error(err))
				continue
			}
			w.log.Info("snippet table reloaded", zap.Int("snippets", w.store.Len()))

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("snippet watcher error", zap.Error(err))
		}
	}
}
