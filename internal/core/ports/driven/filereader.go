package driven

import (
	"context"
	"io/fs"
)

// FileReader reads arbitrary local paths for ingestion and extraction.
// Implementations must tolerate files disappearing between Stat and Read.
type FileReader interface {
	// Stat returns file info for a path.
	// Returns domain.ErrNotFound if the path does not resolve.
	Stat(ctx context.Context, path string) (fs.FileInfo, error)

	// Read returns the full content of a file.
	Read(ctx context.Context, path string) ([]byte, error)

	// ReadPrefix returns at most n leading bytes of a file.
	// Used for formats whose extraction only inspects a header.
	ReadPrefix(ctx context.Context, path string, n int64) ([]byte, error)

	// List returns the entries of a directory, non-recursively.
	List(ctx context.Context, dir string) ([]fs.DirEntry, error)
}
