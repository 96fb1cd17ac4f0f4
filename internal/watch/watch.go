// Package watch rebuilds a preview when its source files change.
//
// Events are debounced: a burst of writes (editors often write, rename and
// chmod in quick succession) triggers a single rebuild once the files have
// been quiet for the debounce period. Rebuilds never overlap; a change seen
// while a rebuild runs queues exactly one more.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period before a rebuild.
const DefaultDebounce = 300 * time.Millisecond

// ErrNoPaths is returned when there is nothing to watch.
var ErrNoPaths = errors.New("watch: no paths to watch")

// RebuildFunc regenerates the outputs. Errors are logged and watching goes on.
type RebuildFunc func(ctx context.Context) error

// Watcher monitors a set of files and calls a RebuildFunc on change.
type Watcher struct {
	files    map[string]struct{} // absolute paths
	dirs     []string
	rebuild  RebuildFunc
	debounce time.Duration
	logger   *slog.Logger
	initial  bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a rebuild. Zero rebuilds on
// every event.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger for watch events.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithoutInitialBuild skips the rebuild Run performs before watching.
func WithoutInitialBuild() Option {
	return func(w *Watcher) {
		w.initial = false
	}
}

// New creates a Watcher for paths. Parent directories are watched rather
// than the files so that editors replacing a file by rename are followed.
func New(rebuild RebuildFunc, paths []string, opts ...Option) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, ErrNoPaths
	}
	if rebuild == nil {
		return nil, errors.New("watch: nil rebuild function")
	}

	w := &Watcher{
		files:    make(map[string]struct{}, len(paths)),
		rebuild:  rebuild,
		debounce: DefaultDebounce,
		logger:   slog.Default(),
		initial:  true,
	}
	for _, opt := range opts {
		opt(w)
	}

	seen := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("watch: resolving %s: %w", p, err)
		}
		w.files[abs] = struct{}{}
		dir := filepath.Dir(abs)
		if !seen[dir] {
			seen[dir] = true
			w.dirs = append(w.dirs, dir)
		}
	}

	return w, nil
}

// Run watches until ctx is done. It returns nil on cancellation and an error
// only when the filesystem watcher cannot be set up or fails to deliver.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	for _, dir := range w.dirs {
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("watch: adding %s: %w", dir, err)
		}
	}

	rebuildReq := make(chan struct{}, 1)
	request := func() {
		select {
		case rebuildReq <- struct{}{}:
		default:
		}
	}

	deb := newDebouncer(w.debounce, request)
	defer deb.Stop()

	loopCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.rebuildLoop(loopCtx, rebuildReq)
	}()
	defer wg.Wait()
	defer cancel()

	if w.initial {
		request()
	}

	w.logger.Info("watching for changes", "files", len(w.files), "debounce", w.debounce)

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("watch stopped")
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if w.relevant(ev) {
				w.logger.Debug("file change detected", "path", ev.Name, "op", ev.Op.String())
				deb.Trigger()
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

// rebuildLoop runs rebuilds one at a time. The request channel holds at most
// one pending request, so changes during a rebuild coalesce into one more.
func (w *Watcher) rebuildLoop(ctx context.Context, rebuildReq <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-rebuildReq:
			start := time.Now()
			if err := w.rebuild(ctx); err != nil {
				if ctx.Err() != nil {
					return
				}
				w.logger.Warn("rebuild failed", "error", err)
				continue
			}
			w.logger.Info("rebuilt", "duration", time.Since(start).Round(time.Millisecond))
		}
	}
}

// relevant reports whether an event touches a watched file.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ShouldIgnore(ev.Name) {
		return false
	}
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	_, ok := w.files[abs]
	if ok && ev.Has(fsnotify.Rename) {
		// Renamed away: only rebuild if a replacement is already in place.
		_, statErr := os.Stat(abs)
		return statErr == nil
	}
	return ok
}

// ShouldIgnore reports whether name is an editor swap, backup or temp file.
func ShouldIgnore(name string) bool {
	base := filepath.Base(name)
	switch {
	case base == "4913": // vim write test
		return true
	case strings.HasPrefix(base, ".#"):
		return true
	case strings.HasSuffix(base, "~"):
		return true
	case strings.HasSuffix(base, ".swp"), strings.HasSuffix(base, ".swx"), strings.HasSuffix(base, ".tmp"):
		return true
	}
	return false
}

// debouncer calls fn once triggers have been quiet for the delay.
type debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	fn      func()
	stopped bool
}

func newDebouncer(delay time.Duration, fn func()) *debouncer {
	return &debouncer{delay: delay, fn: fn}
}

// Trigger restarts the quiet period.
func (d *debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fn)
}

// Stop cancels a pending call and ignores later triggers.
func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}
