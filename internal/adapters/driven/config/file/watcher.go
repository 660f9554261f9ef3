package file

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/ocean48/oceanbot/internal/logger"
)

// PromptWatcher reloads a PromptStore whenever a prompt file changes, so
// the policy can be edited while the server runs.
type PromptWatcher struct {
	store   *PromptStore
	watcher *fsnotify.Watcher

	// OnReload, if set, is called with the changed file after each reload.
	OnReload func(path string)
}

// NewPromptWatcher starts watching the store's directory, creating it and
// the default prompt files first.
func NewPromptWatcher(store *PromptStore) (*PromptWatcher, error) {
	if err := store.Init(); err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create prompt watcher: %w", err)
	}
	if err := w.Add(store.Dir()); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", store.Dir(), err)
	}

	return &PromptWatcher{store: store, watcher: w}, nil
}

// Run handles events until ctx is cancelled or the watcher is closed.
func (w *PromptWatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ev)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("prompt watcher: %v", err)
		}
	}
}

// handleEvent reloads the store for content changes to *.txt files.
// It reports whether a reload happened.
func (w *PromptWatcher) handleEvent(ev fsnotify.Event) bool {
	if !isPromptFile(ev.Name) {
		return false
	}
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}

	w.store.Reload()
	logger.Info("prompts reloaded (%s)", filepath.Base(ev.Name))
	if w.OnReload != nil {
		w.OnReload(ev.Name)
	}
	return true
}

// Close stops watching.
func (w *PromptWatcher) Close() error {
	return w.watcher.Close()
}

func isPromptFile(path string) bool {
	base := filepath.Base(path)
	return strings.HasSuffix(base, ".txt") && !strings.HasPrefix(base, ".")
}
