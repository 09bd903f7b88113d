// Package fs implements the file reader port over the local filesystem.
package fs

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/offgrid-labs/knowledge-cli/internal/core/domain"
	"github.com/offgrid-labs/knowledge-cli/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.FileReader = (*Reader)(nil)

// Reader reads local files for ingestion and extraction.
type Reader struct{}

// NewReader creates a local filesystem reader.
func NewReader() *Reader {
	return &Reader{}
}

// Stat returns file info for a path.
func (r *Reader) Stat(ctx context.Context, path string) (fs.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return nil, err
	}
	return info, nil
}

// Read returns the full content of a file.
func (r *Reader) Read(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return nil, err
	}
	return content, nil
}

// ReadPrefix returns at most n leading bytes of a file.
func (r *Reader) ReadPrefix(ctx context.Context, path string, n int64) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return nil, err
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, n))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return content, nil
}

// List returns the entries of a directory, non-recursively.
func (r *Reader) List(ctx context.Context, dir string) ([]fs.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, dir)
		}
		return nil, err
	}
	return entries, nil
}
