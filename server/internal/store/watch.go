package store

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settle is how long Run waits after the last file event before reloading,
// so a burst of writes from one save produces a single reload.
const settle = 100 * time.Millisecond

// Run watches the data file and reloads it each time it is written, created,
// renamed or removed. It blocks until ctx is cancelled.
//
// The parent directory is watched rather than the file itself, so a file that
// is missing at startup, or replaced by an atomic rename, is still picked up.
func (s *Store) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	target := filepath.Clean(s.path)
	dir := filepath.Dir(target)
	if err := watcher.Add(dir); err != nil {
		return err
	}

	slog.Info("store: watching for changes", "path", s.path)

	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending bool
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			pending = true
			if timer == nil {
				timer = time.NewTimer(settle)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(settle)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			if !pending {
				continue
			}
			pending = false
			s.Reload()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("store: watcher error", "err", err)
		}
	}
}
