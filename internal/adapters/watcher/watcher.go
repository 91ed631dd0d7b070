// Package watcher reports content changes of the shared state file.
package watcher

import (
	"context"
	"errors"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"sync"
	"time"
	"unique"

	"github.com/cespare/xxhash/v2"
	"github.com/fsnotify/fsnotify"
	"go.trai.ch/squares/internal/core/domain"
	"go.trai.ch/squares/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

const (
	eventChannelBuffer = 16
	// DefaultDebounceWindow absorbs the create/write/rename burst of one save.
	DefaultDebounceWindow = 50 * time.Millisecond
)

// Watcher implements ports.Watcher with fsnotify. It watches the parent
// directory so atomic replace-by-rename is seen, and only emits when the
// content digest changes.
type Watcher struct {
	logger ports.Logger
	window time.Duration

	mu        sync.Mutex
	fsWatcher *fsnotify.Watcher
	target    unique.Handle[string]
	digest    uint64
	events    chan ports.WatchEvent
	closed    bool
	debouncer *Debouncer
}

// NewWatcher creates a watcher. No OS resources are held until Start.
func NewWatcher(logger ports.Logger) *Watcher {
	return &Watcher{
		logger: logger,
		window: DefaultDebounceWindow,
		events: make(chan ports.WatchEvent, eventChannelBuffer),
	}
}

// WithWindow overrides the debounce window.
func (w *Watcher) WithWindow(d time.Duration) *Watcher {
	w.window = d
	return w
}

// Start begins watching path.
func (w *Watcher) Start(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return zerr.Wrap(err, "failed to resolve watch path")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return zerr.Wrap(errors.Join(domain.ErrWatchUnsupported, err), "failed to create watcher")
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return zerr.With(zerr.Wrap(errors.Join(domain.ErrWatchUnsupported, err), "failed to watch directory"), "path", filepath.Dir(abs))
	}

	initial, _ := digestFile(abs)

	w.mu.Lock()
	w.fsWatcher = fsw
	w.target = unique.Make(abs)
	w.digest = initial
	w.debouncer = NewDebouncer(w.window, w.emit)
	w.mu.Unlock()

	go w.processEvents(ctx, fsw)
	return nil
}

// Stop releases the OS watcher. Events ends once pending work drains.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	fsw := w.fsWatcher
	w.mu.Unlock()

	if fsw == nil {
		return nil
	}
	return fsw.Close()
}

// Events yields change events until the watcher stops.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

func (w *Watcher) processEvents(ctx context.Context, fsw *fsnotify.Watcher) {
	defer w.shutdown()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if unique.Make(filepath.Clean(event.Name)) != w.target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			w.debouncer.Add(event.Name)
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			if w.logger != nil {
				w.logger.Error(zerr.Wrap(err, "file watcher error"))
			}
		}
	}
}

func (w *Watcher) shutdown() {
	w.debouncer.Flush()

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.closed {
		w.closed = true
		close(w.events)
	}
}

// emit compares the target's current digest with the last one seen.
func (w *Watcher) emit(_ []string) {
	path := w.target.Value()
	digest, err := digestFile(path)
	if err != nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || digest == w.digest {
		return
	}
	w.digest = digest

	select {
	case w.events <- ports.WatchEvent{Path: path, Digest: digest}:
	default:
		if w.logger != nil {
			w.logger.Warn("watcher: event buffer full, dropping change of " + path)
		}
	}
}

func digestFile(path string) (uint64, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is the configured state file
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, err
		}
		return 0, zerr.Wrap(err, "failed to read watched file")
	}
	return xxhash.Sum64(data), nil
}
