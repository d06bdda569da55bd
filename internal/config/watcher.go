package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce collapses the burst of events editors emit for one save.
const reloadDebounce = 100 * time.Millisecond

// Watcher reloads the arena config file when it changes on disk.
// Invalid edits are logged and skipped; the last good config stays in effect.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	updates chan Arena
}

// NewWatcher watches the directory of path, so editors that replace the file
// by rename are still seen.
func NewWatcher(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating config watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watching %s: %w", path, err)
	}

	return &Watcher{
		path:    filepath.Clean(path),
		watcher: fw,
		updates: make(chan Arena, 1),
	}, nil
}

// Updates delivers reloaded configs. Only the latest pending config is kept.
func (w *Watcher) Updates() <-chan Arena {
	return w.updates
}

// Run processes file events until ctx is canceled. It closes the watcher on return.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	slog.Info("config watcher started", "path", w.path)

	var (
		debounce *time.Timer
		fire     <-chan time.Time
	)
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			slog.Info("config watcher stopping")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(reloadDebounce)
			} else {
				debounce.Reset(reloadDebounce)
			}
			fire = debounce.C

		case <-fire:
			fire = nil
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("config watcher error", "err", err)
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := LoadArena(w.path)
	if err != nil {
		slog.Warn("config reload rejected", "path", w.path, "err", err)
		return
	}

	// drop a stale pending update so the reader always sees the newest file
	select {
	case <-w.updates:
	default:
	}
	w.updates <- cfg

	slog.Info("config reloaded", "path", w.path)
}
