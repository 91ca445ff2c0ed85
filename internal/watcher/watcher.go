// Package watcher re-imports a payload file whenever it changes on disk.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/alexanderramin/gantt/internal/app"
)

// DefaultPollInterval is used when fsnotify is unavailable.
const DefaultPollInterval = 2 * time.Second

// ErrFileRemoved is passed to the import callback when the payload file
// disappears. The watcher keeps running and imports it again once it returns.
var ErrFileRemoved = errors.New("watched file was removed")

// Option configures a Watcher.
type Option func(*Watcher)

func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

func WithPollInterval(d time.Duration) Option {
	return func(w *Watcher) { w.pollInterval = d }
}

// WithForcePoll skips fsnotify and polls the file's mtime and size.
func WithForcePoll() Option {
	return func(w *Watcher) { w.forcePoll = true }
}

// WithOnImport is called after every import attempt with its outcome, and
// with ErrFileRemoved when the file is deleted.
func WithOnImport(fn func(*app.ImportResult, error)) Option {
	return func(w *Watcher) { w.onImport = fn }
}

func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) { w.logger = logger }
}

// Watcher feeds a payload file into an ImportUseCase on every change.
type Watcher struct {
	path         string
	importer     app.ImportUseCase
	debounce     time.Duration
	pollInterval time.Duration
	forcePoll    bool
	onImport     func(*app.ImportResult, error)
	logger       *slog.Logger

	trigger chan struct{}
	removed chan struct{}
}

func New(path string, importer app.ImportUseCase, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	w := &Watcher{
		path:         abs,
		importer:     importer,
		debounce:     DefaultDebounce,
		pollInterval: DefaultPollInterval,
		onImport:     func(*app.ImportResult, error) {},
		logger:       slog.New(slog.DiscardHandler),
		trigger:      make(chan struct{}, 1),
		removed:      make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

func (w *Watcher) Path() string { return w.path }

// Run imports the file once, then again after every settled change, until
// ctx is cancelled. Import failures are reported through the callback and
// do not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	w.importOnce(ctx)

	debouncer := NewDebouncer(w.debounce)
	defer debouncer.Cancel()
	notify := func() {
		select {
		case w.trigger <- struct{}{}:
		default:
		}
	}

	errCh := make(chan error, 1)
	if w.forcePoll {
		go w.poll(ctx, debouncer, notify)
	} else {
		fsw, err := fsnotify.NewWatcher()
		if err != nil {
			w.logger.WarnContext(ctx, "fsnotify unavailable, polling", "error", err)
			go w.poll(ctx, debouncer, notify)
		} else {
			defer fsw.Close()
			// The directory is watched so editors that replace the file
			// atomically are still seen.
			if err := fsw.Add(filepath.Dir(w.path)); err != nil {
				return fmt.Errorf("watching %s: %w", filepath.Dir(w.path), err)
			}
			go w.watchEvents(ctx, fsw, debouncer, notify, errCh)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errCh:
			return err
		case <-w.trigger:
			w.importOnce(ctx)
		case <-w.removed:
			w.logger.WarnContext(ctx, "payload file removed, waiting", "path", w.path)
			w.onImport(nil, ErrFileRemoved)
		}
	}
}

func (w *Watcher) importOnce(ctx context.Context) {
	if _, err := os.Stat(w.path); err != nil {
		if os.IsNotExist(err) {
			w.logger.DebugContext(ctx, "payload file missing, waiting", "path", w.path)
			return
		}
	}
	result, err := w.importer.ImportFile(ctx, w.path)
	if err != nil {
		w.logger.WarnContext(ctx, "re-import failed", "path", w.path, "error", err)
	} else {
		w.logger.InfoContext(ctx, "re-imported payload", "path", w.path, "data_version", result.DataVersion)
	}
	w.onImport(result, err)
}

func (w *Watcher) watchEvents(ctx context.Context, fsw *fsnotify.Watcher, debouncer *Debouncer, notify func(), errCh chan<- error) {
	target := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != target {
				continue
			}
			switch {
			case event.Op&fsnotify.Remove != 0:
				debouncer.Cancel()
				w.markRemoved()
			case event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0:
				debouncer.Trigger(notify)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			select {
			case errCh <- fmt.Errorf("watching %s: %w", w.path, err):
			default:
			}
			return
		}
	}
}

func (w *Watcher) markRemoved() {
	select {
	case w.removed <- struct{}{}:
	default:
	}
}

func (w *Watcher) poll(ctx context.Context, debouncer *Debouncer, notify func()) {
	var lastMod time.Time
	lastSize := int64(-1)
	if info, err := os.Stat(w.path); err == nil {
		lastMod, lastSize = info.ModTime(), info.Size()
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			info, err := os.Stat(w.path)
			if err != nil {
				if os.IsNotExist(err) && lastSize >= 0 {
					lastMod, lastSize = time.Time{}, -1
					debouncer.Cancel()
					w.markRemoved()
				}
				continue
			}
			if info.ModTime().After(lastMod) || info.Size() != lastSize {
				lastMod, lastSize = info.ModTime(), info.Size()
				debouncer.Trigger(notify)
			}
		}
	}
}
