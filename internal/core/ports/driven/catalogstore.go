package driven

import "context"

// CatalogStore persists opaque catalog records by key.
// It is a lightweight key-value store; values are JSON blobs and the
// store never interprets them.
type CatalogStore interface {
	// Put stores or replaces the value under key.
	Put(ctx context.Context, key string, value []byte) error

	// Get retrieves the value under key.
	// Returns domain.ErrNotFound if the key has never been written.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes the value under key. Absent keys are not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the underlying resources.
	Close() error
}
