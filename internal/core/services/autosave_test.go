package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockPersistence implements driving.PersistenceService, counting saves.
type mockPersistence struct {
	mu      sync.Mutex
	saves   int
	saveErr error
}

func (m *mockPersistence) SaveCatalog(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	return m.saveErr
}

func (m *mockPersistence) LoadCatalog(_ context.Context) error { return nil }

func (m *mockPersistence) ExportIndex(_ context.Context) (int, error) { return 0, nil }

func (m *mockPersistence) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func TestAutosaverStopSaves(t *testing.T) {
	persistence := &mockPersistence{}
	autosaver := NewAutosaver(persistence, nil)

	done := make(chan error, 1)
	go func() { done <- autosaver.Start(context.Background()) }()

	// Give the loop a moment to start before stopping it.
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, autosaver.Stop())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("autosaver did not stop")
	}

	// Stop performs a final save.
	assert.Equal(t, 1, persistence.saveCount())
}

func TestAutosaverPeriodicSave(t *testing.T) {
	persistence := &mockPersistence{}
	autosaver := NewAutosaver(persistence, nil)
	autosaver.interval = 10 * time.Millisecond

	done := make(chan error, 1)
	go func() { done <- autosaver.Start(context.Background()) }()

	assert.Eventually(t, func() bool {
		return persistence.saveCount() >= 2
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, autosaver.Stop())
	<-done
}

func TestAutosaverSaveFailureKeepsRunning(t *testing.T) {
	persistence := &mockPersistence{saveErr: assert.AnError}
	autosaver := NewAutosaver(persistence, nil)
	autosaver.interval = 10 * time.Millisecond

	done := make(chan error, 1)
	go func() { done <- autosaver.Start(context.Background()) }()

	assert.Eventually(t, func() bool {
		return persistence.saveCount() >= 3
	}, time.Second, 5*time.Millisecond)

	// Stop still returns the final save's error.
	assert.Error(t, autosaver.Stop())
	<-done
}

func TestAutosaverContextCancel(t *testing.T) {
	persistence := &mockPersistence{}
	autosaver := NewAutosaver(persistence, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- autosaver.Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("autosaver did not observe cancellation")
	}
}

func TestAutosaverIntervalFromConfig(t *testing.T) {
	autosaver := NewAutosaver(&mockPersistence{}, &mockConfig{
		values: map[string]any{"autosave.interval_minutes": 2},
	})
	assert.Equal(t, 2*time.Minute, autosaver.interval)

	autosaver = NewAutosaver(&mockPersistence{}, &mockConfig{})
	assert.Equal(t, defaultAutosaveInterval, autosaver.interval)
}
