package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// summaryLength bounds the generated article summary.
const summaryLength = 180

// wordsPerMinute is the assumed reading speed for ReadingTime.
const wordsPerMinute = 200

// Article is one addressable unit of content extracted from a file.
// Articles are owned exclusively by their parent file's SearchIndex.
type Article struct {
	// ID is unique within the parent file.
	ID string

	// Title is the human-readable heading.
	Title string

	// Content is the full extracted text.
	Content string

	// Summary is the content truncated to the first ~180 characters.
	Summary string

	// Categories are the tags carried by this article.
	Categories []string

	// Links are outbound references found in the content.
	Links []string

	// Images are image references found in the content.
	Images []string

	// LastModified is the source modification time, when known.
	LastModified *time.Time

	// WordCount is the whitespace-token count of Content.
	WordCount int

	// ReadingTime is the estimated reading time in minutes.
	ReadingTime int
}

// CountWords returns the whitespace-separated token count of text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// EstimateReadingTime returns ceil(wordCount / 200) minutes.
// A non-empty article always reads in at least one minute.
func EstimateReadingTime(wordCount int) int {
	if wordCount <= 0 {
		return 0
	}
	return (wordCount + wordsPerMinute - 1) / wordsPerMinute
}

// Summarise truncates content to the summary length on a rune boundary.
func Summarise(content string) string {
	content = strings.TrimSpace(content)
	if utf8.RuneCountInString(content) <= summaryLength {
		return content
	}
	runes := []rune(content)
	return string(runes[:summaryLength]) + "..."
}

// FinishArticle fills the derived fields (Summary, WordCount, ReadingTime)
// from the article's content. Every extractor strategy runs articles
// through this so the derived fields are computed identically.
func FinishArticle(a *Article) {
	a.Summary = Summarise(a.Content)
	a.WordCount = CountWords(a.Content)
	a.ReadingTime = EstimateReadingTime(a.WordCount)
	if a.Categories == nil {
		a.Categories = []string{}
	}
	if a.Links == nil {
		a.Links = []string{}
	}
	if a.Images == nil {
		a.Images = []string{}
	}
}
