package cache

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch invalidates path whenever the file changes and warms the cache with
// the new content. It watches the parent directory so editors that save by
// rename are seen. Watch blocks until ctx is done.
func (s *Store) Watch(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve watch path: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	s.log.Info("watching document", "path", path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			s.Invalidate(path)
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				s.reload(ctx, path)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.log.Warn("watcher error", "path", path, "error", err)
		}
	}
}

// reload warms the cache after a change, retrying while the file looks
// half-written.
func (s *Store) reload(ctx context.Context, path string) {
	for attempt := 0; ; attempt++ {
		_, err := s.Get(ctx, path)
		if err == nil {
			return
		}
		if !isTransient(err) || attempt+1 >= maxReloadAttempts {
			s.log.Warn("reload after change failed", "path", path, "attempt", attempt+1, "error", err)
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff(attempt)):
		}
	}
}
