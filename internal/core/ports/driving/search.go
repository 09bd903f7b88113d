package driving

import (
	"context"

	"github.com/offgrid-labs/knowledge-cli/internal/core/domain"
)

// SearchService answers ranked full-text queries across the catalog.
type SearchService interface {
	// Search executes a query against all indexed files and returns
	// results in descending score order, capped at the query limit.
	// A query with no usable terms returns an empty slice, not an error.
	Search(ctx context.Context, query domain.Query) ([]domain.SearchResult, error)
}

// StatsService reports usage statistics.
type StatsService interface {
	// Stats returns query and access statistics for the catalog.
	Stats(ctx context.Context, topN int) (*domain.UsageStats, error)
}
