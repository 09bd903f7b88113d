package driving

import "context"

// PersistenceService snapshots catalog metadata and exports indexes.
// Failures are logged by callers and never block catalog operation;
// the catalog keeps functioning in memory when the store is unavailable.
type PersistenceService interface {
	// SaveCatalog serialises all entries, indexes omitted, to the store.
	SaveCatalog(ctx context.Context) error

	// LoadCatalog restores entries from the store. All restored entries
	// are unindexed; callers re-index as needed.
	LoadCatalog(ctx context.Context) error

	// ExportIndex writes a snapshot document per indexed file to the
	// sandboxed export location. Returns the number of files exported.
	ExportIndex(ctx context.Context) (int, error)
}
