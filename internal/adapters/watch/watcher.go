// Package watch invalidates the dataset cache when the CSV exports change on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/okian/ufcradar/pkg/logger"
	"github.com/okian/ufcradar/pkg/metrics"
)

const (
	defaultDebounce = 500 * time.Millisecond

	relevantOps = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename
)

// Invalidator drops cached data.
type Invalidator interface {
	Invalidate(ctx context.Context)
}

// Watcher observes the parent directories of a set of files and calls the
// Invalidator after any of those files is created, written, removed or renamed.
type Watcher struct {
	fs       *fsnotify.Watcher
	files    map[string]struct{}
	dirs     []string
	target   Invalidator
	debounce time.Duration

	started  atomic.Bool
	reloads  atomic.Int64
	once     sync.Once
	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// New starts watching the directories holding paths. Empty paths are ignored.
func New(paths []string, target Invalidator, opts ...Option) (*Watcher, error) {
	w := &Watcher{
		files:    make(map[string]struct{}),
		target:   target,
		debounce: defaultDebounce,
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(w)
	}

	seen := make(map[string]struct{})
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrWatch, p, err)
		}
		w.files[abs] = struct{}{}
		dir := filepath.Dir(abs)
		if _, ok := seen[dir]; !ok {
			seen[dir] = struct{}{}
			w.dirs = append(w.dirs, dir)
		}
	}
	if len(w.files) == 0 {
		return nil, ErrNoFiles
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWatch, err)
	}
	for _, dir := range w.dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("%w: %s: %w", ErrWatch, dir, err)
		}
	}
	w.fs = fw
	return w, nil
}

// Dirs returns the watched directories.
func (w *Watcher) Dirs() []string { return w.dirs }

// Reloads is the number of invalidations issued so far.
func (w *Watcher) Reloads() int64 { return w.reloads.Load() }

// Run processes file events until ctx is canceled or Shutdown is called.
func (w *Watcher) Run(ctx context.Context) {
	if !w.started.CompareAndSwap(false, true) {
		return
	}
	defer close(w.done)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	w.logger.Info(ctx, "watching data directories", logger.Any("dirs", w.dirs))
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			metrics.RecordWatcherEvent(opLabel(ev.Op))
			w.logger.Debug(ctx, "source changed",
				logger.String("file", ev.Name),
				logger.String("op", ev.Op.String()),
			)
			if w.debounce <= 0 {
				w.invalidate(ctx)
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.invalidate(ctx)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			metrics.RecordErrorByType("watcher_error", "medium")
			w.logger.Error(ctx, "watcher error", logger.Error(err))
		}
	}
}

// Shutdown stops Run and releases the underlying watcher.
func (w *Watcher) Shutdown(ctx context.Context) error {
	w.once.Do(func() { close(w.shutdown) })
	defer func() { _ = w.fs.Close() }()

	if !w.started.Load() {
		return nil
	}
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op&relevantOps == 0 {
		return false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	_, ok := w.files[abs]
	return ok
}

func (w *Watcher) invalidate(ctx context.Context) {
	w.reloads.Add(1)
	w.target.Invalidate(ctx)
	w.logger.Info(ctx, "data changed, cache invalidated", logger.Int("reloads", int(w.reloads.Load())))
}

func opLabel(op fsnotify.Op) string {
	switch {
	case op.Has(fsnotify.Create):
		return "create"
	case op.Has(fsnotify.Write):
		return "write"
	case op.Has(fsnotify.Remove):
		return "remove"
	case op.Has(fsnotify.Rename):
		return "rename"
	default:
		return "other"
	}
}
