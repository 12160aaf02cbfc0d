package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports external modifications to a FileKV directory so hosts can
// refresh cached records when another process rewrites them. Events are
// debounced per key; rapid rewrites collapse into one notification.
type Watcher struct {
	fs       *fsnotify.Watcher
	dir      string
	debounce time.Duration
	onChange func(key string)
	logger   Logger

	mu      sync.Mutex
	pending map[string]time.Time
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithWatcherDebounce overrides the per-key debounce window.
func WithWatcherDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithWatcherLogger attaches a warning logger to the watcher.
func WithWatcherLogger(logger Logger) WatcherOption {
	return func(w *Watcher) {
		if logger == nil {
			w.logger = NopLogger{}
			return
		}
		w.logger = logger
	}
}

// NewWatcher watches kv's directory and invokes onChange with the record key
// of each externally modified file.
func NewWatcher(kv *FileKV, onChange func(key string), opts ...WatcherOption) (*Watcher, error) {
	if kv == nil {
		return nil, fmt.Errorf("store: file kv is required")
	}
	if onChange == nil {
		return nil, fmt.Errorf("store: change callback is required")
	}
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: watcher: %w", err)
	}
	w := &Watcher{
		fs:       fs,
		dir:      kv.Dir(),
		debounce: 250 * time.Millisecond,
		onChange: onChange,
		pending:  map[string]time.Time{},
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	return w, nil
}

// Start begins watching. Non-blocking; the event loop runs until Stop or
// context cancellation.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.fs.Add(w.dir); err != nil {
		return fmt.Errorf("store: watch %q: %w", w.dir, err)
	}
	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the event loop to drain.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	if err := w.fs.Close(); err != nil {
		w.warnf("store: close watcher: %v", err)
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.warnf("store: watch error: %v", err)
		case <-ticker.C:
			w.flush()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}
	if strings.Contains(event.Name, ".tmp-") {
		return
	}
	key, ok := KeyFromFilename(event.Name)
	if !ok {
		return
	}
	w.mu.Lock()
	w.pending[key] = time.Now()
	w.mu.Unlock()
}

func (w *Watcher) flush() {
	now := time.Now()
	var ready []string
	w.mu.Lock()
	for key, seen := range w.pending {
		if now.Sub(seen) >= w.debounce {
			ready = append(ready, key)
			delete(w.pending, key)
		}
	}
	w.mu.Unlock()
	for _, key := range ready {
		w.onChange(key)
	}
}

func (w *Watcher) warnf(template string, args ...any) {
	if w.logger == nil {
		return
	}
	w.logger.Warnf(template, args...)
}
