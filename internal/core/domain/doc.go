// Package domain defines the core business entities for the offline
// knowledge subsystem.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - KnowledgeFile: A registered source document with catalog metadata
//   - Article: An addressable unit of content extracted from a file
//   - SearchIndex: The per-file inverted word and category index
//   - Query / SearchResult: The search request and ranked hit types
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
package domain
