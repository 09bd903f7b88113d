package domain

import (
	"path/filepath"
	"strings"
)

// ContentKind classifies a source file's format. The set is closed:
// adding a format means adding a kind here and one extractor strategy.
type ContentKind string

const (
	// KindArchive is a structured offline container (e.g., ZIM encyclopedia).
	KindArchive ContentKind = "structured-archive"
	// KindDocument is a binary document format (e.g., PDF).
	KindDocument ContentKind = "document"
	// KindMarkup is an HTML page.
	KindMarkup ContentKind = "markup"
	// KindPlainText is unstructured text.
	KindPlainText ContentKind = "plain-text"
	// KindStructuredData is machine-readable structured content (JSON).
	KindStructuredData ContentKind = "structured-data"
	// KindEBook is an e-book container (e.g., EPUB).
	KindEBook ContentKind = "e-book"
	// KindLightMarkup is lightweight markup (Markdown).
	KindLightMarkup ContentKind = "lightweight-markup"
)

// kindByExtension maps a lowercase file extension to its content kind.
var kindByExtension = map[string]ContentKind{
	".zim":  KindArchive,
	".pdf":  KindDocument,
	".html": KindMarkup,
	".htm":  KindMarkup,
	".txt":  KindPlainText,
	".json": KindStructuredData,
	".epub": KindEBook,
	".md":   KindLightMarkup,
}

// DetectKind classifies a file by its extension.
// Unrecognised or missing extensions default to plain text.
func DetectKind(filename string) ContentKind {
	ext := strings.ToLower(filepath.Ext(filename))
	if kind, ok := kindByExtension[ext]; ok {
		return kind
	}
	return KindPlainText
}

// SupportedExtensions returns the default ingestion allowlist.
func SupportedExtensions() []string {
	return []string{".zim", ".pdf", ".html", ".htm", ".txt", ".json", ".epub", ".md"}
}

// SupportedExtension reports whether an extension is on the default
// ingestion allowlist.
func SupportedExtension(ext string) bool {
	_, ok := kindByExtension[strings.ToLower(ext)]
	return ok
}
