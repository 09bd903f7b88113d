package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offgrid-labs/knowledge-cli/internal/core/domain"
)

func TestReaderStat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0600))

	reader := NewReader()
	info, err := reader.Stat(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "a.txt", info.Name())
	assert.Equal(t, int64(5), info.Size())

	_, err = reader.Stat(context.Background(), filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReaderRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("full content"), 0600))

	reader := NewReader()
	content, err := reader.Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "full content", string(content))

	_, err = reader.Read(context.Background(), filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReaderReadPrefix(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("0123456789"), 0600))

	reader := NewReader()
	content, err := reader.ReadPrefix(context.Background(), path, 4)
	require.NoError(t, err)
	assert.Equal(t, "0123", string(content))

	// A limit beyond the file size returns the whole file.
	content, err = reader.ReadPrefix(context.Background(), path, 100)
	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(content))
}

func TestReaderList(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("b"), 0600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0700))

	reader := NewReader()
	entries, err := reader.List(context.Background(), dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	_, err = reader.List(context.Background(), filepath.Join(dir, "nowhere"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReaderCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reader := NewReader()
	_, err := reader.Read(ctx, "/tmp/whatever")
	assert.ErrorIs(t, err, context.Canceled)
}
