// Package epub provides the placeholder strategy for e-book containers.
// Like the document strategy, it produces a single descriptive article;
// unpacking the container is not available in this build.
package epub

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/offgrid-labs/knowledge-cli/internal/core/domain"
	"github.com/offgrid-labs/knowledge-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles e-book containers.
type Extractor struct{}

// New creates a new e-book extractor.
func New() *Extractor {
	return &Extractor{}
}

// Kind returns the content kind this extractor handles.
func (e *Extractor) Kind() domain.ContentKind {
	return domain.KindEBook
}

// Extract returns exactly one descriptive article.
func (e *Extractor) Extract(_ context.Context, raw *domain.RawFile) ([]domain.Article, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	article := domain.Article{
		ID:    uuid.New().String(),
		Title: raw.File.Name,
		Content: fmt.Sprintf(
			"E-book %s (%d bytes) is registered in the catalog. Chapter "+
				"extraction for this container format is not available in "+
				"this build; the book's name and metadata remain searchable.",
			raw.File.Name, raw.File.Size),
	}
	domain.FinishArticle(&article)

	return []domain.Article{article}, nil
}
