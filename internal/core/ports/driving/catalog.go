package driving

import (
	"context"

	"github.com/offgrid-labs/knowledge-cli/internal/core/domain"
)

// CatalogService manages the set of known knowledge files.
type CatalogService interface {
	// AddFile registers a file by absolute path. Registration is
	// idempotent by path: an already-registered path returns the
	// existing entry unchanged. Extraction and indexing run in the
	// background; the returned entry is initially unindexed.
	// Returns domain.ErrNotFound if the path does not resolve.
	AddFile(ctx context.Context, path string) (*domain.KnowledgeFile, error)

	// RemoveFile removes an entry by ID. Absent IDs are not an error.
	// An in-flight indexing task for the removed file becomes a no-op.
	RemoveFile(ctx context.Context, id string) error

	// UpdateMetadata merges non-zero metadata fields into an entry.
	// An absent ID is a no-op.
	UpdateMetadata(ctx context.Context, id string, meta domain.FileMetadata) error

	// Refresh re-extracts and re-indexes a file if its content changed.
	Refresh(ctx context.Context, id string) error

	// Scan walks the configured root directories and registers every
	// allowlisted file above the minimum size. Unreadable roots are
	// logged and skipped. Returns the number of newly registered files.
	Scan(ctx context.Context, roots []string) (int, error)

	// GetFile returns an entry by ID.
	GetFile(ctx context.Context, id string) (*domain.KnowledgeFile, error)

	// GetFileByPath returns an entry by path.
	GetFileByPath(ctx context.Context, path string) (*domain.KnowledgeFile, error)

	// ListFiles returns all entries.
	ListFiles(ctx context.Context) ([]domain.KnowledgeFile, error)

	// GetArticle returns one article from a file and records the access.
	GetArticle(ctx context.Context, fileID, articleID string) (*domain.Article, error)

	// RandomArticle returns a random article from any indexed file and
	// records the access.
	RandomArticle(ctx context.Context) (*domain.Article, error)

	// Progress reports whether indexing is in progress and the 0-100
	// progress of the most recently active indexing task.
	Progress(ctx context.Context) (bool, int)

	// WaitForIndexing blocks until all scheduled indexing tasks finish.
	WaitForIndexing(ctx context.Context) error

	// Close stops background work and releases resources.
	Close() error
}
