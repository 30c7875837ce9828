// Package watch resets an engine's allowlist cache when the backing
// file changes, so sanctuary lookups pick up edits without restarting
// the process.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vkessler/tribunal/internal/engine"
)

// debounce is how long after the last filesystem event the cache is
// reset. Editors often emit several writes per save.
const debounce = 500 * time.Millisecond

// Watcher observes the allowlist file of one engine.
type Watcher struct {
	watcher  *fsnotify.Watcher
	eng      *engine.Engine
	path     string
	onReload func(path string)
}

// New creates a watcher for the engine's allowlist file. The file's
// directory is watched so create and remove of the file itself are
// seen. onReload, if non-nil, runs after each cache reset.
func New(eng *engine.Engine, onReload func(path string)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	path := eng.AllowlistPath()
	dir := filepath.Dir(path)
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %q: %w", dir, err)
	}

	return &Watcher{watcher: fw, eng: eng, path: path, onReload: onReload}, nil
}

// Run watches for changes to the allowlist file and resets the cache
// after each debounced change. Blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	var timer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(debounce, func() {
					w.eng.ResetAllowlist()
					if w.onReload != nil {
						w.onReload(w.path)
					}
				})
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			// Transient watch errors are not fatal; the cache simply
			// stays as it was until the next successful event.
		}
	}
}
