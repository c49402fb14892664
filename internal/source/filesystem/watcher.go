package filesystem

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher flags the library as changed so the scheduler can force the next
// sync pass instead of waiting out the refresh interval. Events are
// debounced: a copy of a multi-file audiobook lands as one change.
type Watcher struct {
	root     string
	debounce time.Duration
	onChange func()
	logger   *slog.Logger

	fsw  *fsnotify.Watcher
	done chan struct{}
}

// NewWatcher creates a watcher over the library root. onChange fires once
// per debounced burst of filesystem events.
func NewWatcher(root string, debounce time.Duration, onChange func(), logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		root:     root,
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
		fsw:      fsw,
		done:     make(chan struct{}),
	}

	if err := w.watchTree(root); err != nil {
		fsw.Close()
		return nil, err
	}

	go w.run()
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

// watchTree registers the root and every subdirectory.
// fsnotify is not recursive, so new directories are added as they appear.
func (w *Watcher) watchTree(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() != "." && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}

func (w *Watcher) run() {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}

			// Watch directories created after startup.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.fsw.Add(event.Name); err != nil {
						w.logger.Warn("could not watch new directory", "path", event.Name, "error", err)
					}
				}
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-fire:
			timer = nil
			fire = nil
			w.logger.Debug("library changed", "root", w.root)
			w.onChange()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}
