package markdown

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/offgrid-labs/knowledge-cli/internal/core/domain"
	"github.com/offgrid-labs/knowledge-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// minContentLength drops heading segments at or below this size.
const minContentLength = 50

// Extractor handles Markdown documents.
type Extractor struct{}

// New creates a new Markdown extractor.
func New() *Extractor {
	return &Extractor{}
}

// Kind returns the content kind this extractor handles.
func (e *Extractor) Kind() domain.ContentKind {
	return domain.KindLightMarkup
}

var (
	headingLine = regexp.MustCompile(`^#{1,6}\s+`)
	mdLink      = regexp.MustCompile(`\[[^\]]*\]\(([^)]+)\)`)
	mdImage     = regexp.MustCompile(`!\[[^\]]*\]\(([^)]+)\)`)
)

// Extract splits the document on heading markers. The first line of each
// segment becomes the article title; the remainder is kept as content if
// it exceeds the minimum length.
func (e *Extractor) Extract(_ context.Context, raw *domain.RawFile) ([]domain.Article, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	content := string(raw.Content)

	var articles []domain.Article
	for _, seg := range splitSegments(content) {
		title, body := splitTitle(seg, raw.File.Name)
		if len(strings.TrimSpace(body)) <= minContentLength {
			continue
		}

		article := domain.Article{
			ID:      uuid.New().String(),
			Title:   title,
			Content: strings.TrimSpace(body),
			Links:   collectRefs(mdLink, mdImage, seg),
			Images:  collectRefs(mdImage, nil, seg),
		}
		domain.FinishArticle(&article)
		articles = append(articles, article)
	}

	return articles, nil
}

// splitSegments divides the document at heading lines. Content before
// the first heading forms its own segment.
func splitSegments(content string) []string {
	lines := strings.Split(content, "\n")

	var segments []string
	var current []string
	for _, line := range lines {
		if headingLine.MatchString(line) && len(current) > 0 {
			segments = append(segments, strings.Join(current, "\n"))
			current = nil
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		segments = append(segments, strings.Join(current, "\n"))
	}
	return segments
}

// splitTitle separates a segment into title and body. Heading segments
// take the heading text; a preamble segment falls back to the file name.
func splitTitle(segment, filename string) (string, string) {
	lines := strings.SplitN(segment, "\n", 2)
	first := strings.TrimSpace(lines[0])

	body := ""
	if len(lines) > 1 {
		body = lines[1]
	}

	if headingLine.MatchString(lines[0]) {
		return strings.TrimSpace(strings.TrimLeft(first, "# ")), body
	}

	// Preamble before the first heading: the whole segment is body.
	base := filepath.Base(filename)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base, segment
}

// collectRefs gathers link targets, excluding those matched by skip.
func collectRefs(re, skip *regexp.Regexp, content string) []string {
	if skip != nil {
		content = skip.ReplaceAllString(content, "")
	}

	var out []string
	seen := make(map[string]bool)
	for _, m := range re.FindAllStringSubmatch(content, -1) {
		if len(m) > 1 && !seen[m[1]] {
			seen[m[1]] = true
			out = append(out, m[1])
		}
	}
	return out
}
