// Package watch re-runs documentation checks when doc files change.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"dtp/internal/discovery"
)

// DefaultDebounce is how long the watcher waits after the last change
// before triggering a re-run. Editors fire several events per save.
const DefaultDebounce = 500 * time.Millisecond

// Watcher monitors a docs directory and triggers debounced re-runs
type Watcher struct {
	docsDir      string
	onChange     func(context.Context)
	watcher      *fsnotify.Watcher
	mu           sync.Mutex
	stopChan     chan struct{}
	changeChan   chan struct{}
	debounceTime time.Duration
	stopped      bool
}

// NewWatcher creates a watcher over docsDir. onChange is called after
// doc file changes settle for the debounce interval.
func NewWatcher(docsDir string, debounce time.Duration, onChange func(context.Context)) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	// Resolve absolute path for consistent watching
	absDir, err := filepath.Abs(docsDir)
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to resolve docs path: %w", err)
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		docsDir:      absDir,
		onChange:     onChange,
		watcher:      watcher,
		stopChan:     make(chan struct{}),
		changeChan:   make(chan struct{}, 1),
		debounceTime: debounce,
	}, nil
}

// Start begins monitoring the docs directory
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.watcher.Add(w.docsDir); err != nil {
		return fmt.Errorf("failed to watch docs directory %s: %w", w.docsDir, err)
	}

	slog.Info("Watching documentation", "docs_path", w.docsDir, "debounce", w.debounceTime)

	go w.watchLoop(ctx)
	go w.rerunLoop(ctx)

	return nil
}

// Stop stops the watcher
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true

	slog.Info("Stopping documentation watcher")
	close(w.stopChan)

	if err := w.watcher.Close(); err != nil {
		slog.Error("Error closing file watcher", "error", err)
		return err
	}
	return nil
}

// watchLoop monitors file system events
func (w *Watcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// Only doc files trigger re-runs
			if !discovery.IsDocFile(filepath.Base(event.Name)) {
				continue
			}

			switch {
			case event.Op.Has(fsnotify.Write):
				slog.Debug("Doc file write detected", "file", event.Name)
				w.trigger()
			case event.Op.Has(fsnotify.Create):
				slog.Debug("Doc file create detected", "file", event.Name)
				w.trigger()
			case event.Op.Has(fsnotify.Remove):
				slog.Debug("Doc file removed", "file", event.Name)
				w.trigger()
			case event.Op.Has(fsnotify.Rename):
				slog.Debug("Doc file rename detected", "file", event.Name)
				w.trigger()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Doc watcher error", "error", err)
		}
	}
}

// rerunLoop handles debounced re-runs
func (w *Watcher) rerunLoop(ctx context.Context) {
	var rerunTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if rerunTimer != nil {
				rerunTimer.Stop()
			}
			return
		case <-w.stopChan:
			if rerunTimer != nil {
				rerunTimer.Stop()
			}
			return
		case <-w.changeChan:
			// Reset/start debounce timer
			if rerunTimer != nil {
				rerunTimer.Stop()
			}
			rerunTimer = time.AfterFunc(w.debounceTime, func() {
				w.onChange(ctx)
			})
		}
	}
}

// trigger queues a debounced re-run
func (w *Watcher) trigger() {
	select {
	case w.changeChan <- struct{}{}:
		// Re-run queued
	default:
		// Re-run already pending
	}
}
