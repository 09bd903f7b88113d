// Package export implements the index exporter port, writing snapshot
// documents to a sandboxed directory.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/offgrid-labs/knowledge-cli/internal/core/domain"
	"github.com/offgrid-labs/knowledge-cli/internal/core/ports/driven"
)

// Ensure Sandbox implements the interface.
var _ driven.IndexExporter = (*Sandbox)(nil)

// Sandbox writes export files under a fixed base directory. File names
// that resolve outside the base directory are rejected.
type Sandbox struct {
	baseDir string
}

// NewSandbox creates an exporter rooted at baseDir. If baseDir is
// empty, defaults to ~/.knowledge/exports.
func NewSandbox(baseDir string) (*Sandbox, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		baseDir = filepath.Join(home, ".knowledge", "exports")
	}

	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}

	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("resolving export directory: %w", err)
	}

	return &Sandbox{baseDir: abs}, nil
}

// Path returns the export base directory.
func (s *Sandbox) Path() string {
	return s.baseDir
}

// Write stores one export document under the base directory.
func (s *Sandbox) Write(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target, err := s.resolve(name)
	if err != nil {
		return err
	}

	if err := os.WriteFile(target, data, 0600); err != nil {
		return fmt.Errorf("writing export %s: %w", name, err)
	}
	return nil
}

// resolve validates the file name and returns its absolute target path.
func (s *Sandbox) resolve(name string) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("%w: export name %q", domain.ErrInvalidInput, name)
	}

	target := filepath.Join(s.baseDir, name)
	if !strings.HasPrefix(target, s.baseDir+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: export name %q escapes sandbox", domain.ErrInvalidInput, name)
	}
	return target, nil
}
