package config

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vizopts/pkg/utils/logging"
	"github.com/secmon-lab/vizopts/pkg/utils/safe"
)

// Watcher reports changes of a set of files. It watches the parent
// directories so that editors replacing files by rename are noticed.
type Watcher struct {
	files    map[string]struct{}
	dirs     map[string]struct{}
	watch    []string
	debounce time.Duration
}

type WatcherOption func(*Watcher)

// WithDebounce sets how long the watcher waits for events to settle
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// NewWatcher creates a watcher of paths. A directory path matches every
// panel file directly inside it.
func NewWatcher(paths []string, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		files:    make(map[string]struct{}),
		dirs:     make(map[string]struct{}),
		debounce: 300 * time.Millisecond,
	}
	for _, path := range paths {
		clean := filepath.Clean(path)
		dir := clean
		if info, err := os.Stat(clean); err == nil && info.IsDir() {
			w.dirs[clean] = struct{}{}
		} else {
			w.files[clean] = struct{}{}
			dir = filepath.Dir(clean)
		}
		if !slices.Contains(w.watch, dir) {
			w.watch = append(w.watch, dir)
		}
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Watcher) match(path string) bool {
	clean := filepath.Clean(path)
	if _, ok := w.files[clean]; ok {
		return true
	}
	_, ok := w.dirs[filepath.Dir(clean)]
	return ok && IsPanelFile(clean)
}

// Run blocks until ctx is done, calling onChange with the changed paths
// once events have been quiet for the debounce duration
func (w *Watcher) Run(ctx context.Context, onChange func(ctx context.Context, changed []string)) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return goerr.Wrap(err, "failed to create file watcher")
	}
	defer safe.Close(ctx, fsw)

	for _, dir := range w.watch {
		if err := fsw.Add(dir); err != nil {
			return goerr.Wrap(err, "failed to watch directory", goerr.V("dir", dir))
		}
	}

	logger := logging.From(ctx)
	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 || !w.match(event.Name) {
				continue
			}
			pending[filepath.Clean(event.Name)] = struct{}{}
			timer.Reset(w.debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Error("file watcher error", "error", err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for path := range pending {
				changed = append(changed, path)
			}
			clear(pending)
			slices.Sort(changed)
			onChange(ctx, changed)
		}
	}
}
