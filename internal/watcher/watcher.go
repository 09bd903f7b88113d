// Package watcher keeps the catalog in sync with filesystem changes
// under the scan roots.
package watcher

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/offgrid-labs/knowledge-cli/internal/core/domain"
	"github.com/offgrid-labs/knowledge-cli/internal/core/ports/driving"
	"github.com/offgrid-labs/knowledge-cli/internal/logger"
)

// Watcher reacts to file events in watched directories: new or changed
// files are registered or refreshed, removed files are dropped from the
// catalog.
type Watcher struct {
	catalog driving.CatalogService

	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// New creates a watcher over the given catalog.
func New(catalog driving.CatalogService) *Watcher {
	return &Watcher{catalog: catalog}
}

// Start begins watching the given roots. Roots that cannot be watched
// are logged and skipped. Start returns immediately; events are handled
// on a background goroutine until Stop.
func (w *Watcher) Start(roots []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	watched := 0
	for _, root := range roots {
		if err := fsw.Add(root); err != nil {
			logger.Warn("Cannot watch %s: %v", root, err)
			continue
		}
		watched++
	}
	if watched == 0 {
		fsw.Close()
		return errors.New("no watchable roots")
	}

	w.fsw = fsw
	w.running = true
	w.stopCh = make(chan struct{})

	w.wg.Add(1)
	go w.loop()

	logger.Info("Watching %d directories", watched)
	return nil
}

// Stop shuts the watcher down and waits for the event loop to exit.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = false
	close(w.stopCh)
	fsw := w.fsw
	w.mu.Unlock()

	err := fsw.Close()
	w.wg.Wait()
	return err
}

// loop dispatches filesystem events until Stop.
func (w *Watcher) loop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopCh:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("Watch error: %v", err)
		}
	}
}

// handle applies one filesystem event to the catalog.
func (w *Watcher) handle(event fsnotify.Event) {
	if !watchable(event.Name) || !domain.SupportedExtension(filepath.Ext(event.Name)) {
		return
	}
	ctx := context.Background()

	switch {
	case event.Op.Has(fsnotify.Create):
		if _, err := w.catalog.AddFile(ctx, event.Name); err != nil {
			logger.Debug("Watcher add %s: %v", event.Name, err)
		}

	case event.Op.Has(fsnotify.Write):
		file, err := w.catalog.GetFileByPath(ctx, event.Name)
		if err != nil {
			// Written before we saw it created.
			if _, err := w.catalog.AddFile(ctx, event.Name); err != nil {
				logger.Debug("Watcher add %s: %v", event.Name, err)
			}
			return
		}
		if err := w.catalog.Refresh(ctx, file.ID); err != nil {
			logger.Debug("Watcher refresh %s: %v", event.Name, err)
		}

	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		file, err := w.catalog.GetFileByPath(ctx, event.Name)
		if err != nil {
			return
		}
		if err := w.catalog.RemoveFile(ctx, file.ID); err != nil {
			logger.Debug("Watcher remove %s: %v", event.Name, err)
		}
		logger.Info("Removed from catalog: %s", event.Name)
	}
}

// watchable reports whether a path looks like a file we track.
func watchable(name string) bool {
	return !strings.HasPrefix(filepath.Base(name), ".")
}
