// Package watcher re-runs batch indexing when PDFs under a folder
// change. Filesystem events are debounced and batch runs are rate
// limited, so editors that write in bursts trigger one pass, not one
// per write.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/inkwell-labs/scandex-cli/internal/core/domain"
	"github.com/inkwell-labs/scandex-cli/internal/core/ports/driving"
	"github.com/inkwell-labs/scandex-cli/internal/logger"
)

const (
	// debounce is how long the folder must stay quiet before a batch
	// runs.
	debounce = 2 * time.Second

	// minInterval is the floor between consecutive batch runs.
	minInterval = 30 * time.Second
)

// Watcher triggers batch indexing on folder changes.
type Watcher struct {
	indexer driving.Indexer
	folder  string
	opts    domain.BatchOptions
	sink    domain.ProgressSink
	limiter *rate.Limiter
}

// New creates a watcher over folder using the given indexer.
func New(indexer driving.Indexer, folder string, opts domain.BatchOptions, sink domain.ProgressSink) *Watcher {
	return &Watcher{
		indexer: indexer,
		folder:  folder,
		opts:    opts,
		sink:    sink,
		limiter: rate.NewLimiter(rate.Every(minInterval), 1),
	}
}

// Run performs an initial batch pass, then blocks watching the folder
// until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if _, err := w.indexer.IndexFolder(ctx, w.folder, w.opts, w.sink); err != nil {
		return fmt.Errorf("initial index pass: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err := w.addWatches(fw); err != nil {
		return err
	}

	logger.Info("Watching %s", w.folder)

	// The timer stays stopped until a relevant event arrives.
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			logger.Debug("Change detected: %s (%s)", event.Name, event.Op)
			if event.Op.Has(fsnotify.Create) && w.opts.Recursive {
				// New subdirectories need their own watch.
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = fw.Add(event.Name)
				}
			}
			timer.Reset(debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watch error: %v", err)

		case <-timer.C:
			if err := w.limiter.Wait(ctx); err != nil {
				return err
			}
			if _, err := w.indexer.IndexFolder(ctx, w.folder, w.opts, w.sink); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				logger.Warn("Re-index pass failed: %v", err)
			}
		}
	}
}

// addWatches registers the folder and, in recursive mode, every
// subdirectory.
func (w *Watcher) addWatches(fw *fsnotify.Watcher) error {
	if !w.opts.Recursive {
		if err := fw.Add(w.folder); err != nil {
			return fmt.Errorf("watching %s: %w", w.folder, err)
		}
		return nil
	}

	return filepath.WalkDir(w.folder, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := fw.Add(path); err != nil {
				return fmt.Errorf("watching %s: %w", path, err)
			}
		}
		return nil
	})
}

// relevant reports whether an event can change batch outcomes: writes,
// creates, renames and removals of PDFs, plus directory creation in
// recursive mode.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op.Has(fsnotify.Chmod) {
		return false
	}
	if strings.EqualFold(filepath.Ext(event.Name), ".pdf") {
		return true
	}
	return w.opts.Recursive && event.Op.Has(fsnotify.Create)
}
