package driven

import (
	"context"

	"github.com/offgrid-labs/knowledge-cli/internal/core/domain"
)

// Extractor turns raw file content into articles for one content kind.
// Each strategy is independent and never observes another's state.
type Extractor interface {
	// Kind returns the content kind this extractor handles.
	Kind() domain.ContentKind

	// Extract produces zero or more articles from the raw file.
	// A failure is isolated to the file: callers degrade to zero
	// articles and log, they never propagate it to other files.
	Extract(ctx context.Context, raw *domain.RawFile) ([]domain.Article, error)
}

// ExtractorRegistry dispatches extraction by content kind.
// The kind set is closed: adding a format means registering one more
// strategy, not modifying a conditional chain.
type ExtractorRegistry interface {
	// Register adds a strategy. A later registration for the same kind
	// replaces the earlier one.
	Register(e Extractor)

	// Extract dispatches to the strategy for the raw file's kind.
	// Returns domain.ErrUnsupportedKind if no strategy is registered.
	Extract(ctx context.Context, raw *domain.RawFile) ([]domain.Article, error)

	// Kinds returns the registered content kinds.
	Kinds() []domain.ContentKind
}
