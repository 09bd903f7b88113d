package html

import (
	"context"
	"fmt"
	"html"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/offgrid-labs/knowledge-cli/internal/core/domain"
	"github.com/offgrid-labs/knowledge-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// minSectionLength drops paragraph-like sections at or below this size.
const minSectionLength = 100

// Extractor handles HTML pages.
type Extractor struct{}

// New creates a new HTML extractor.
func New() *Extractor {
	return &Extractor{}
}

// Kind returns the content kind this extractor handles.
func (e *Extractor) Kind() domain.ContentKind {
	return domain.KindMarkup
}

// Pre-compiled regular expressions for HTML parsing performance.
var (
	titleTag      = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	scriptTag     = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag      = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	blockClose    = regexp.MustCompile(`(?i)</(p|div|h[1-6]|li|tr|blockquote|pre|table|section|article)>`)
	brTags        = regexp.MustCompile(`(?i)<br\s*/?>`)
	allTags       = regexp.MustCompile(`<[^>]+>`)
	anchorHref    = regexp.MustCompile(`(?i)<a[^>]+href="([^"]+)"`)
	imageSrc      = regexp.MustCompile(`(?i)<img[^>]+src="([^"]+)"`)
	multiSpaces   = regexp.MustCompile(`[ \t]+`)
	multiNewlines = regexp.MustCompile(`\n{3,}`)
)

// Extract splits the page into paragraph-like sections bounded by blank
// lines. The first article carries the page title; later sections are
// titled "<title> - Section N".
func (e *Extractor) Extract(_ context.Context, raw *domain.RawFile) ([]domain.Article, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	rawContent := string(raw.Content)

	title := extractTitle(rawContent, raw.File.Name)
	links := collectMatches(anchorHref, rawContent)
	images := collectMatches(imageSrc, rawContent)
	body := stripHTML(rawContent)

	var articles []domain.Article
	for _, section := range strings.Split(body, "\n\n") {
		section = strings.TrimSpace(section)
		if len(section) <= minSectionLength {
			continue
		}

		articleTitle := title
		if len(articles) > 0 {
			articleTitle = fmt.Sprintf("%s - Section %d", title, len(articles)+1)
		}

		article := domain.Article{
			ID:      uuid.New().String(),
			Title:   articleTitle,
			Content: section,
			Links:   links,
			Images:  images,
		}
		domain.FinishArticle(&article)
		articles = append(articles, article)
	}

	return articles, nil
}

// extractTitle finds the <title> tag or falls back to the file name.
func extractTitle(content, filename string) string {
	matches := titleTag.FindStringSubmatch(content)
	if len(matches) > 1 {
		title := strings.TrimSpace(html.UnescapeString(matches[1]))
		if title != "" {
			return title
		}
	}

	base := filepath.Base(filename)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}

// stripHTML removes markup and collapses whitespace, keeping blank lines
// between block elements so sections stay separable.
func stripHTML(content string) string {
	content = scriptTag.ReplaceAllString(content, "")
	content = styleTag.ReplaceAllString(content, "")

	// Closing block elements end a section.
	content = blockClose.ReplaceAllString(content, "\n\n")
	content = brTags.ReplaceAllString(content, "\n")

	content = allTags.ReplaceAllString(content, "")
	content = html.UnescapeString(content)

	content = multiSpaces.ReplaceAllString(content, " ")

	// Trim each line; keep empty lines as section boundaries.
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	content = strings.Join(lines, "\n")

	return strings.TrimSpace(multiNewlines.ReplaceAllString(content, "\n\n"))
}

// collectMatches returns the deduplicated first capture of every match.
func collectMatches(re *regexp.Regexp, content string) []string {
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
