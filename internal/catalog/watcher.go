package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ReloadFunc receives the result of every reload.
type ReloadFunc func(Catalog, error)

// Watcher reloads a catalog file when it changes on disk.
type Watcher struct {
	path     string
	onReload ReloadFunc
	logger   *zap.Logger

	watcher *fsnotify.Watcher
	stop    chan struct{}
	done    chan struct{}
	start   sync.Once
	once    sync.Once
}

// NewWatcher watches the directory containing path so that editors which
// replace the file by rename are still seen.
func NewWatcher(path string, onReload ReloadFunc, logger *zap.Logger) (*Watcher, error) {
	if path == "" || path == "-" {
		return nil, fmt.Errorf("cannot watch %q", path)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving catalog path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:     abs,
		onReload: onReload,
		logger:   logger.With(zap.String("catalog", abs)),
		watcher:  fw,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

// Start processes events in a goroutine until ctx is cancelled or Close is
// called.
func (w *Watcher) Start(ctx context.Context) {
	w.start.Do(func() { go w.run(ctx) })
}

// Close stops the watcher and waits for the event loop to exit.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.stop)
		err = w.watcher.Close()
	})
	// A watcher that never started has no loop to wait for.
	w.start.Do(func() { close(w.done) })
	<-w.done
	return err
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case <-w.stop:
			return
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.logger.Debug("catalog changed", zap.Stringer("op", event.Op))
			cat, err := Load(w.path)
			if err != nil {
				w.logger.Warn("catalog reload failed", zap.Error(err))
			}
			w.onReload(cat, err)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", zap.Error(err))
		}
	}
}
