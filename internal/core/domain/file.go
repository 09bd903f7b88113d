package domain

import "time"

// KnowledgeFile represents a registered source document in the catalog.
// The absolute path is the deduplication key: the catalog holds at most
// one entry per path.
type KnowledgeFile struct {
	// ID is the unique identifier, assigned at registration.
	ID string

	// Path is the absolute location of the source file.
	Path string

	// Name is the human-readable display name (usually the base name).
	Name string

	// Kind is the detected content kind.
	Kind ContentKind

	// Size is the file size in bytes at registration time.
	Size int64

	// Checksum is the xxhash digest of the file content, used to skip
	// re-extraction when the file has not changed.
	Checksum uint64

	// AddedAt is when the file was registered.
	AddedAt time.Time

	// LastAccessed is when an article was last read from this file.
	LastAccessed *time.Time

	// AccessCount is the number of article reads from this file.
	AccessCount int

	// Indexed reports whether a SearchIndex has been built.
	// True iff Index is non-nil.
	Indexed bool

	// Metadata holds optional descriptive fields.
	Metadata FileMetadata

	// Index is the per-file search index. Owned exclusively by this
	// entry; never shared across files, never persisted to the store.
	Index *SearchIndex
}

// FileMetadata holds optional descriptive fields for a knowledge file.
// All fields may be empty.
type FileMetadata struct {
	Title        string   `json:"title,omitempty"`
	Author       string   `json:"author,omitempty"`
	Language     string   `json:"language,omitempty"`
	Description  string   `json:"description,omitempty"`
	Version      string   `json:"version,omitempty"`
	ArticleCount int      `json:"articleCount,omitempty"`
	Categories   []string `json:"categories,omitempty"`
}

// Merge overlays non-zero fields of other onto m.
func (m *FileMetadata) Merge(other FileMetadata) {
	if other.Title != "" {
		m.Title = other.Title
	}
	if other.Author != "" {
		m.Author = other.Author
	}
	if other.Language != "" {
		m.Language = other.Language
	}
	if other.Description != "" {
		m.Description = other.Description
	}
	if other.Version != "" {
		m.Version = other.Version
	}
	if other.ArticleCount != 0 {
		m.ArticleCount = other.ArticleCount
	}
	if len(other.Categories) != 0 {
		m.Categories = other.Categories
	}
}

// RawFile is the raw content handed to an extractor: the catalog entry
// plus the file bytes read through the file reader port.
type RawFile struct {
	// File is the catalog entry the content belongs to.
	File KnowledgeFile

	// Content is the raw bytes. May be a partial read for formats whose
	// extraction is a placeholder.
	Content []byte
}
