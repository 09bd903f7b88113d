package plaintext

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/offgrid-labs/knowledge-cli/internal/core/domain"
	"github.com/offgrid-labs/knowledge-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// minParagraphLength drops paragraphs at or below this size.
const minParagraphLength = 100

// paragraphBreak splits on blank-line runs.
var paragraphBreak = regexp.MustCompile(`\n\s*\n`)

// Extractor handles plain text documents. It is also the fallback for
// unrecognised extensions.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Kind returns the content kind this extractor handles.
func (e *Extractor) Kind() domain.ContentKind {
	return domain.KindPlainText
}

// Extract splits the text on blank-line-delimited paragraphs, keeping
// those above the minimum length, titled "Paragraph N".
func (e *Extractor) Extract(_ context.Context, raw *domain.RawFile) ([]domain.Article, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	var articles []domain.Article
	for _, para := range paragraphBreak.Split(string(raw.Content), -1) {
		para = strings.TrimSpace(para)
		if len(para) <= minParagraphLength {
			continue
		}

		article := domain.Article{
			ID:      uuid.New().String(),
			Title:   fmt.Sprintf("Paragraph %d", len(articles)+1),
			Content: para,
		}
		domain.FinishArticle(&article)
		articles = append(articles, article)
	}

	return articles, nil
}
