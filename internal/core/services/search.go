package services

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/offgrid-labs/knowledge-cli/internal/core/domain"
	"github.com/offgrid-labs/knowledge-cli/internal/core/ports/driving"
	"github.com/offgrid-labs/knowledge-cli/internal/logger"
)

// Ensure SearchService implements the interfaces.
var _ driving.SearchService = (*SearchService)(nil)

// Scoring weights. Title matches dominate, body matches contribute one
// point per recorded occurrence, category matches add a fixed bonus.
const (
	titleMatchScore    = 10
	categoryMatchScore = 5
)

// Snippet window geometry.
const (
	snippetWindow = 200
	snippetStride = 50
)

// SearchService executes ranked full-text queries across all indexed
// files in the catalog. It also tracks query usage counters.
type SearchService struct {
	catalog *CatalogService

	statsMu      sync.Mutex
	totalQueries int
	termCounts   map[string]int
}

// NewSearchService creates a search service over the given catalog.
func NewSearchService(catalog *CatalogService) *SearchService {
	return &SearchService{
		catalog:    catalog,
		termCounts: make(map[string]int),
	}
}

// Search executes the query and returns results in descending score
// order, capped at the query limit. A query with no usable terms
// returns an empty slice without error.
func (s *SearchService) Search(_ context.Context, query domain.Query) ([]domain.SearchResult, error) {
	terms := QueryTerms(query.Text)
	if len(terms) == 0 {
		logger.Debug("Query %q has no usable terms", query.Text)
		return []domain.SearchResult{}, nil
	}

	s.recordQuery(terms)

	limit := query.Limit
	if limit <= 0 {
		limit = domain.DefaultQueryLimit
	}

	var results []domain.SearchResult
	for _, file := range s.catalog.snapshot() {
		if !file.Indexed || file.Index == nil {
			continue
		}
		if !kindAllowed(file.Kind, query.Filters.Kinds) {
			continue
		}
		results = append(results, scoreFile(&file, terms, query.Filters)...)
	}

	// Stable sort keeps input order among equal scores.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}

	logger.Debug("Query %q: %d results", query.Text, len(results))
	return results, nil
}

// scoreFile scores every article of one indexed file.
func scoreFile(file *domain.KnowledgeFile, terms []string, filters domain.QueryFilters) []domain.SearchResult {
	var results []domain.SearchResult

	for ord := range file.Index.Articles {
		article := &file.Index.Articles[ord]

		if !wordCountAllowed(article.WordCount, filters) {
			continue
		}
		if !dateAllowed(article.LastModified, filters) {
			continue
		}

		score := 0.0
		var matched []string

		titleLower := strings.ToLower(article.Title)
		for _, term := range terms {
			termMatched := false

			// Title match is substring containment, not tokenised.
			if strings.Contains(titleLower, term) {
				score += titleMatchScore
				termMatched = true
			}

			// Body match counts only this article's recorded positions.
			if n := occurrencesIn(file.Index.Words[term], ord); n > 0 {
				score += float64(n)
				termMatched = true
			}

			if termMatched {
				matched = append(matched, term)
			}
		}

		for _, want := range filters.Categories {
			if hasCategory(article.Categories, want) {
				score += categoryMatchScore
			}
		}

		if score <= 0 {
			continue
		}

		results = append(results, domain.SearchResult{
			Article:      *article,
			FileID:       file.ID,
			FileName:     file.Name,
			Score:        score,
			MatchedTerms: matched,
			Snippet:      buildSnippet(article.Content, terms),
		})
	}

	return results
}

// occurrencesIn counts positions belonging to the given article ordinal.
// Position lists are ordered by ordinal, so the scan can stop early.
func occurrencesIn(positions []domain.Position, ord int) int {
	n := 0
	for _, p := range positions {
		if p.Article > ord {
			break
		}
		if p.Article == ord {
			n++
		}
	}
	return n
}

// buildSnippet scans the content in fixed windows and returns the first
// window with the most query-term occurrences, matches wrapped in bold
// markers, with a trailing ellipsis.
func buildSnippet(content string, terms []string) string {
	if content == "" {
		return ""
	}

	runes := []rune(content)
	lower := strings.ToLower(content)
	lowerRunes := []rune(lower)

	bestStart := 0
	bestCount := -1
	for start := 0; start < len(runes); start += snippetStride {
		end := start + snippetWindow
		if end > len(runes) {
			end = len(runes)
		}
		window := string(lowerRunes[start:end])

		count := 0
		for _, term := range terms {
			count += strings.Count(window, term)
		}
		if count > bestCount {
			bestCount = count
			bestStart = start
		}
		if end == len(runes) {
			break
		}
	}

	end := bestStart + snippetWindow
	if end > len(runes) {
		end = len(runes)
	}
	snippet := string(runes[bestStart:end])

	return highlightTerms(snippet, terms) + "..."
}

// highlightTerms wraps every literal term occurrence in bold markers,
// case-insensitively, preserving the original casing.
func highlightTerms(snippet string, terms []string) string {
	for _, term := range terms {
		re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(term))
		if err != nil {
			continue
		}
		snippet = re.ReplaceAllString(snippet, "**$0**")
	}
	return snippet
}

// kindAllowed reports whether the file's kind passes the filter.
func kindAllowed(kind domain.ContentKind, kinds []domain.ContentKind) bool {
	if len(kinds) == 0 {
		return true
	}
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// wordCountAllowed applies the inclusive word-count bounds.
// Articles outside the bounds are excluded, not down-scored.
func wordCountAllowed(wc int, filters domain.QueryFilters) bool {
	if filters.MinWordCount > 0 && wc < filters.MinWordCount {
		return false
	}
	if filters.MaxWordCount > 0 && wc > filters.MaxWordCount {
		return false
	}
	return true
}

// dateAllowed applies the last-modified range. Articles without a
// modification time pass an unset filter side.
func dateAllowed(lastModified *time.Time, filters domain.QueryFilters) bool {
	if filters.After == nil && filters.Before == nil {
		return true
	}
	if lastModified == nil {
		return false
	}
	if filters.After != nil && lastModified.Before(*filters.After) {
		return false
	}
	if filters.Before != nil && lastModified.After(*filters.Before) {
		return false
	}
	return true
}

// hasCategory reports whether tags contains the requested tag literally.
func hasCategory(tags []string, want string) bool {
	for _, tag := range tags {
		if tag == want {
			return true
		}
	}
	return false
}

// recordQuery updates the usage counters.
func (s *SearchService) recordQuery(terms []string) {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()

	s.totalQueries++
	for _, term := range terms {
		s.termCounts[term]++
	}
}

// queryStats returns the query counters for the stats service.
func (s *SearchService) queryStats(topN int) (int, []domain.TermCount) {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()

	terms := make([]domain.TermCount, 0, len(s.termCounts))
	for term, count := range s.termCounts {
		terms = append(terms, domain.TermCount{Term: term, Count: count})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Count != terms[j].Count {
			return terms[i].Count > terms[j].Count
		}
		return terms[i].Term < terms[j].Term
	})
	if topN > 0 && len(terms) > topN {
		terms = terms[:topN]
	}

	return s.totalQueries, terms
}
