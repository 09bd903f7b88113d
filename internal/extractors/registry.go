package extractors

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/offgrid-labs/knowledge-cli/internal/core/domain"
	"github.com/offgrid-labs/knowledge-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry dispatches extraction by content kind through a closed
// strategy table.
type Registry struct {
	mu         sync.RWMutex
	strategies map[domain.ContentKind]driven.Extractor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		strategies: make(map[domain.ContentKind]driven.Extractor),
	}
}

// Register adds a strategy, replacing any earlier one for the same kind.
func (r *Registry) Register(e driven.Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strategies[e.Kind()] = e
}

// Extract dispatches to the strategy for the raw file's kind.
func (r *Registry) Extract(ctx context.Context, raw *domain.RawFile) ([]domain.Article, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	r.mu.RLock()
	strategy, ok := r.strategies[raw.File.Kind]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedKind, raw.File.Kind)
	}

	return strategy.Extract(ctx, raw)
}

// Kinds returns the registered content kinds in stable order.
func (r *Registry) Kinds() []domain.ContentKind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]domain.ContentKind, 0, len(r.strategies))
	for kind := range r.strategies {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
