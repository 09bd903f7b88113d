package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested path, file or article does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedKind indicates no extractor is registered for a content kind.
	ErrUnsupportedKind = errors.New("unsupported content kind")

	// ErrExtraction indicates a format-specific extraction step failed.
	// Contained at the file boundary: the file stays registered, unindexed.
	ErrExtraction = errors.New("extraction failed")

	// ErrParse indicates malformed structured-data content.
	// Degrades to zero articles from that source.
	ErrParse = errors.New("parse failed")

	// ErrCatalogClosed indicates the catalog has been closed and no longer
	// accepts work.
	ErrCatalogClosed = errors.New("catalog closed")
)
