package services

import (
	"context"
	"sync"
	"time"

	"github.com/offgrid-labs/knowledge-cli/internal/core/ports/driven"
	"github.com/offgrid-labs/knowledge-cli/internal/core/ports/driving"
	"github.com/offgrid-labs/knowledge-cli/internal/logger"
)

// defaultAutosaveInterval is used when configuration does not set one.
const defaultAutosaveInterval = 5 * time.Minute

// Autosaver periodically snapshots the catalog to the store. Save
// failures are logged and never stop the loop.
type Autosaver struct {
	persistence driving.PersistenceService
	interval    time.Duration

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewAutosaver creates an autosaver. The interval is read from the
// "autosave.interval_minutes" configuration key.
func NewAutosaver(persistence driving.PersistenceService, config driven.ConfigStore) *Autosaver {
	interval := defaultAutosaveInterval
	if config != nil {
		if minutes := config.GetInt("autosave.interval_minutes"); minutes > 0 {
			interval = time.Duration(minutes) * time.Minute
		}
	}
	return &Autosaver{
		persistence: persistence,
		interval:    interval,
	}
}

// Start begins the autosave loop. This method blocks until Stop is
// called or the context is cancelled.
func (a *Autosaver) Start(ctx context.Context) error {
	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return nil // Already running
	}
	a.running = true
	a.stopCh = make(chan struct{})
	a.mu.Unlock()

	a.wg.Add(1)
	defer a.wg.Done()

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-a.stopCh:
			return nil
		case <-ticker.C:
			a.save(ctx)
		}
	}
}

// Stop gracefully shuts down the autosaver and performs a final save.
func (a *Autosaver) Stop() error {
	a.mu.Lock()
	if !a.running {
		a.mu.Unlock()
		return nil
	}
	a.running = false
	close(a.stopCh)
	a.mu.Unlock()

	a.wg.Wait()

	return a.persistence.SaveCatalog(context.Background())
}

// save runs one autosave cycle.
func (a *Autosaver) save(ctx context.Context) {
	if err := a.persistence.SaveCatalog(ctx); err != nil {
		logger.Warn("Autosave failed: %v", err)
		return
	}
	logger.Debug("Autosave complete")
}
