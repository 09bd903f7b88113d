// Package pdf provides the placeholder strategy for binary document
// formats. Full-text PDF extraction requires a parsing capability that
// is not available offline in this build, so extraction produces a
// single descriptive article carrying the file's metadata.
package pdf

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/offgrid-labs/knowledge-cli/internal/core/domain"
	"github.com/offgrid-labs/knowledge-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles binary documents.
type Extractor struct{}

// New creates a new document extractor.
func New() *Extractor {
	return &Extractor{}
}

// Kind returns the content kind this extractor handles.
func (e *Extractor) Kind() domain.ContentKind {
	return domain.KindDocument
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
			"Document file %s (%d bytes) is registered in the catalog. "+
				"Full-text extraction for this format requires a document "+
				"parser that is not available in this build; the file's "+
				"name and metadata remain searchable.",
			raw.File.Name, raw.File.Size),
	}
	domain.FinishArticle(&article)

	return []domain.Article{article}, nil
}
