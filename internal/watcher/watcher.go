// Package watcher notices external edits of the settings file and stop
// requests left by the CLI.
package watcher

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/cpucat/cpucat/internal/events"
)

// DefaultDebounce coalesces the bursts editors and atomic writes produce.
const DefaultDebounce = 100 * time.Millisecond

// Publisher receives the reload events.
type Publisher interface {
	Publish(ev events.Event) bool
}

// Watcher publishes a ReloadSettings event whenever the settings file is
// written, created or replaced.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	publisher Publisher
	delay     time.Duration
	logger    *slog.Logger

	stopPath   string
	acceptStop func() bool

	done     chan struct{}
	stopOnce sync.Once

	debounceMu sync.Mutex
	timer      *time.Timer
}

// New creates a watcher for the settings file at path.
func New(path string, publisher Publisher) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &Watcher{
		fsWatcher: fsWatcher,
		path:      filepath.Clean(path),
		publisher: publisher,
		delay:     DefaultDebounce,
		logger:    slog.With("component", "watcher"),
		done:      make(chan struct{}),
	}, nil
}

// OnStopRequest also watches path and publishes an Exit event when it
// appears and accept confirms the request. Call it before Start.
func (w *Watcher) OnStopRequest(path string, accept func() bool) {
	w.stopPath = filepath.Clean(path)
	w.acceptStop = accept
}

// Start starts the watcher. Directories are watched rather than files so
// replacing a file by rename is noticed.
func (w *Watcher) Start() error {
	dirs := []string{filepath.Dir(w.path)}
	if w.stopPath != "" && filepath.Dir(w.stopPath) != dirs[0] {
		dirs = append(dirs, filepath.Dir(w.stopPath))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
		if err := w.fsWatcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	w.logger.Debug("Watching settings", "path", w.path, "stop", w.stopPath)
	go w.processEvents()
	return nil
}

// Stop stops the watcher. Pending notifications are dropped.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.fsWatcher.Close()

		w.debounceMu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.debounceMu.Unlock()
	})
}

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	// Rename covers atomic writes (write tmp, rename onto the target).
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}
	switch filepath.Clean(event.Name) {
	case w.path:
		w.logger.Debug("fsnotify", "op", event.Op.String(), "path", event.Name)
		w.debounce()
	case w.stopPath:
		if w.acceptStop != nil && w.acceptStop() {
			w.logger.Info("Stop requested")
			w.publisher.Publish(events.Of(events.Exit))
		}
	}
}

func (w *Watcher) debounce() {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, w.fire)
}

func (w *Watcher) fire() {
	select {
	case <-w.done:
		return
	default:
	}
	if !w.publisher.Publish(events.Of(events.ReloadSettings)) {
		w.logger.Debug("Reload dropped, queue stopped")
	}
}
