package services

import (
	"regexp"
	"strings"
	"time"

	"github.com/offgrid-labs/knowledge-cli/internal/core/domain"
)

// minTokenLength drops tokens below this length from the index and
// from query terms.
const minTokenLength = 3

// wordToken matches word tokens in lowercased text.
var wordToken = regexp.MustCompile(`[\p{L}\p{N}]+`)

// BuildIndex constructs a search index from an ordered article sequence.
// Article ordinals follow the given order; identical input always
// produces an identical index.
func BuildIndex(articles []domain.Article) *domain.SearchIndex {
	idx := &domain.SearchIndex{
		Words:       make(map[string][]domain.Position),
		Categories:  make(map[string][]string),
		Articles:    articles,
		LastUpdated: time.Now(),
	}

	for ord := range articles {
		article := &articles[ord]

		// Token ordinals count every token, so positions remain real
		// offsets into the article even though short tokens are not
		// recorded.
		tokens := Tokenize(article.Title + " " + article.Content)
		for tokOrd, token := range tokens {
			if len(token) < minTokenLength {
				continue
			}
			idx.Words[token] = append(idx.Words[token], domain.Position{
				Article: ord,
				Token:   tokOrd,
			})
		}

		for _, cat := range article.Categories {
			idx.Categories[cat] = append(idx.Categories[cat], article.ID)
		}
	}

	return idx
}

// Tokenize lowercases text and splits it into word tokens.
// Short tokens are included; callers filter by length as needed.
func Tokenize(text string) []string {
	return wordToken.FindAllString(strings.ToLower(text), -1)
}

// QueryTerms normalises a query string into usable search terms:
// lowercase word tokens of at least the minimum length, deduplicated in
// first-seen order. A query of only short terms yields no terms at all.
func QueryTerms(query string) []string {
	var terms []string
	seen := make(map[string]bool)
	for _, token := range Tokenize(query) {
		if len(token) < minTokenLength || seen[token] {
			continue
		}
		seen[token] = true
		terms = append(terms, token)
	}
	return terms
}
