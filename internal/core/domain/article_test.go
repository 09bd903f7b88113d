package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountWords(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{"empty", "", 0},
		{"whitespace only", "   \n\t  ", 0},
		{"single word", "hello", 1},
		{"multiple words", "the quick brown fox", 4},
		{"mixed whitespace", "one\ttwo\nthree  four", 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CountWords(tc.text))
		})
	}
}

func TestEstimateReadingTime(t *testing.T) {
	tests := []struct {
		words    int
		expected int
	}{
		{0, 0},
		{1, 1},
		{60, 1},
		{200, 1},
		{201, 2},
		{400, 2},
		{1000, 5},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, EstimateReadingTime(tc.words), "words=%d", tc.words)
	}
}

func TestSummarise(t *testing.T) {
	short := "A short piece of content."
	assert.Equal(t, short, Summarise(short))

	long := strings.Repeat("lorem ipsum ", 40)
	summary := Summarise(long)
	assert.True(t, strings.HasSuffix(summary, "..."))
	assert.LessOrEqual(t, len([]rune(summary)), summaryLength+3)
}

func TestFinishArticle(t *testing.T) {
	a := &Article{
		ID:      "a1",
		Title:   "Test",
		Content: strings.Repeat("word ", 250),
	}
	FinishArticle(a)

	assert.Equal(t, 250, a.WordCount)
	assert.Equal(t, 2, a.ReadingTime)
	assert.NotEmpty(t, a.Summary)
	assert.NotNil(t, a.Categories)
	assert.NotNil(t, a.Links)
	assert.NotNil(t, a.Images)
}

func TestFileMetadataMerge(t *testing.T) {
	base := FileMetadata{Title: "Original", Author: "Someone", ArticleCount: 3}
	base.Merge(FileMetadata{Title: "Updated", Language: "en"})

	assert.Equal(t, "Updated", base.Title)
	assert.Equal(t, "Someone", base.Author)
	assert.Equal(t, "en", base.Language)
	assert.Equal(t, 3, base.ArticleCount)

	// Zero fields never clobber existing values.
	base.Merge(FileMetadata{})
	assert.Equal(t, "Updated", base.Title)
}
