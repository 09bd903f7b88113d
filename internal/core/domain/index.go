package domain

import "time"

// Position locates one token occurrence inside a file's index.
// It is a composite key rather than an encoded integer, so articles of
// any length index without positional collisions.
type Position struct {
	// Article is the ordinal of the article within the file, assigned
	// strictly in extraction order.
	Article int

	// Token is the ordinal of the token within the article.
	Token int
}

// SearchIndex is the per-file inverted index. Rebuilding a file's index
// fully replaces it; there is no incremental merge. The index is always
// derived solely from the file's own articles.
type SearchIndex struct {
	// Words maps a normalised token (lowercase, >=3 chars) to its
	// occurrence positions. Position lists are append-only and
	// monotonically increasing in article ordinal.
	Words map[string][]Position

	// Categories maps a category tag to the article IDs carrying it.
	Categories map[string][]string

	// Articles is the ordered article sequence the index was built from.
	Articles []Article

	// LastUpdated is when the index was constructed.
	LastUpdated time.Time
}

// ArticleCount returns the number of indexed articles.
func (idx *SearchIndex) ArticleCount() int {
	if idx == nil {
		return 0
	}
	return len(idx.Articles)
}
