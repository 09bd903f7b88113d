package jsondoc

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/offgrid-labs/knowledge-cli/internal/core/domain"
	"github.com/offgrid-labs/knowledge-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles structured-data (JSON) documents. It accepts either
// a top-level array of article objects or an object wrapping an
// "articles" array.
type Extractor struct{}

// New creates a new JSON extractor.
func New() *Extractor {
	return &Extractor{}
}

// Kind returns the content kind this extractor handles.
func (e *Extractor) Kind() domain.ContentKind {
	return domain.KindStructuredData
}

// articleRecord is the accepted wire shape for one article.
type articleRecord struct {
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	Summary      string     `json:"summary"`
	Categories   []string   `json:"categories"`
	Links        []string   `json:"links"`
	Images       []string   `json:"images"`
	LastModified *time.Time `json:"lastModified"`
}

// wrapper is the object form with an embedded articles array.
type wrapper struct {
	Articles []articleRecord `json:"articles"`
}

// Extract parses the JSON content. Malformed content returns ErrParse;
// the caller degrades to zero articles from this source.
func (e *Extractor) Extract(_ context.Context, raw *domain.RawFile) ([]domain.Article, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	records, err := decodeRecords(raw.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrParse, raw.File.Name, err)
	}

	articles := make([]domain.Article, 0, len(records))
	for i, rec := range records {
		title := strings.TrimSpace(rec.Title)
		if title == "" {
			title = fmt.Sprintf("Article %d", i+1)
		}

		article := domain.Article{
			ID:           uuid.New().String(),
			Title:        title,
			Content:      rec.Content,
			Categories:   rec.Categories,
			Links:        rec.Links,
			Images:       rec.Images,
			LastModified: rec.LastModified,
		}
		domain.FinishArticle(&article)

		// An explicit summary wins over the content-derived one.
		if s := strings.TrimSpace(rec.Summary); s != "" {
			article.Summary = s
		}

		articles = append(articles, article)
	}

	return articles, nil
}

// decodeRecords accepts both the bare-array and wrapped-object forms.
func decodeRecords(data []byte) ([]articleRecord, error) {
	var records []articleRecord
	if err := json.Unmarshal(data, &records); err == nil {
		return records, nil
	}

	var w wrapper
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	if w.Articles == nil {
		return nil, fmt.Errorf("no articles array")
	}
	return w.Articles, nil
}
