package domain

import "time"

// DefaultQueryLimit caps results when the query does not set a limit.
const DefaultQueryLimit = 20

// Query is a full-text search request against the catalog.
type Query struct {
	// Text is the free-text query string.
	Text string

	// Limit is the maximum number of results (default 20).
	Limit int

	// Filters narrows the candidate set.
	Filters QueryFilters
}

// QueryFilters narrows a query to a subset of files and articles.
// Zero values mean "no restriction".
type QueryFilters struct {
	// Kinds restricts matching to files of these content kinds.
	Kinds []ContentKind

	// Categories are requested tags; articles carrying one earn a bonus.
	Categories []string

	// After excludes articles last modified before this time.
	After *time.Time

	// Before excludes articles last modified after this time.
	Before *time.Time

	// MinWordCount excludes articles with fewer words. Inclusive.
	MinWordCount int

	// MaxWordCount excludes articles with more words. Inclusive.
	// Zero means unlimited.
	MaxWordCount int
}

// SearchResult is one ranked hit. The file association is a read-only
// back-reference, not ownership.
type SearchResult struct {
	// Article is the matched article.
	Article Article

	// FileID identifies the owning knowledge file.
	FileID string

	// FileName is the owning file's display name.
	FileName string

	// Score is the aggregate relevance score.
	Score float64

	// MatchedTerms are the deduplicated query terms that matched.
	MatchedTerms []string

	// Snippet is a bounded excerpt with matches wrapped in bold markers.
	Snippet string
}

// UsageStats summarises catalog and query activity.
type UsageStats struct {
	// TotalQueries is the number of searches executed.
	TotalQueries int

	// PopularTerms are the most frequent query terms, most popular first.
	PopularTerms []TermCount

	// TopFiles are the most accessed files, most accessed first.
	TopFiles []FileAccess

	// CategoryDistribution counts indexed articles per category tag.
	CategoryDistribution map[string]int
}

// TermCount pairs a query term with its usage count.
type TermCount struct {
	Term  string
	Count int
}

// FileAccess pairs a file with its access count.
type FileAccess struct {
	FileID      string
	FileName    string
	AccessCount int
}
