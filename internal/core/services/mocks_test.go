package services

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/offgrid-labs/knowledge-cli/internal/core/domain"
	"github.com/offgrid-labs/knowledge-cli/internal/core/ports/driven"
	"github.com/offgrid-labs/knowledge-cli/internal/extractors"
)

// testRegistry returns the full built-in strategy set.
func testRegistry() driven.ExtractorRegistry {
	return extractors.NewDefaultRegistry()
}

// --- Mock implementations shared across service tests ---

// mockFileReader implements driven.FileReader over an in-memory map of
// absolute path to content.
type mockFileReader struct {
	mu    sync.Mutex
	files map[string][]byte
	reads int
}

func newMockFileReader() *mockFileReader {
	return &mockFileReader{files: make(map[string][]byte)}
}

func (m *mockFileReader) put(path, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = []byte(content)
}

func (m *mockFileReader) Stat(_ context.Context, path string) (fs.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	content, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
	}
	return mockFileInfo{name: filepath.Base(path), size: int64(len(content))}, nil
}

func (m *mockFileReader) Read(_ context.Context, path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	content, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
	}
	m.reads++
	return append([]byte(nil), content...), nil
}

func (m *mockFileReader) ReadPrefix(ctx context.Context, path string, n int64) ([]byte, error) {
	content, err := m.Read(ctx, path)
	if err != nil {
		return nil, err
	}
	if int64(len(content)) > n {
		content = content[:n]
	}
	return content, nil
}

func (m *mockFileReader) List(_ context.Context, dir string) ([]fs.DirEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var entries []fs.DirEntry
	for path, content := range m.files {
		if filepath.Dir(path) != dir {
			continue
		}
		entries = append(entries, mockDirEntry{
			info: mockFileInfo{name: filepath.Base(path), size: int64(len(content))},
		})
	}
	if entries == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, dir)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

func (m *mockFileReader) readCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads
}

type mockFileInfo struct {
	name string
	size int64
}

func (i mockFileInfo) Name() string       { return i.name }
func (i mockFileInfo) Size() int64        { return i.size }
func (i mockFileInfo) Mode() fs.FileMode  { return 0o644 }
func (i mockFileInfo) ModTime() time.Time { return time.Time{} }
func (i mockFileInfo) IsDir() bool        { return false }
func (i mockFileInfo) Sys() any           { return nil }

type mockDirEntry struct {
	info mockFileInfo
}

func (e mockDirEntry) Name() string               { return e.info.name }
func (e mockDirEntry) IsDir() bool                { return false }
func (e mockDirEntry) Type() fs.FileMode          { return 0 }
func (e mockDirEntry) Info() (fs.FileInfo, error) { return e.info, nil }

// mockConfig implements driven.ConfigStore over a flat map.
type mockConfig struct {
	values map[string]any
}

func (m *mockConfig) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *mockConfig) GetString(key string) string {
	if v, ok := m.values[key].(string); ok {
		return v
	}
	return ""
}

func (m *mockConfig) GetInt(key string) int {
	if v, ok := m.values[key].(int); ok {
		return v
	}
	return 0
}

func (m *mockConfig) GetBool(key string) bool {
	if v, ok := m.values[key].(bool); ok {
		return v
	}
	return false
}

func (m *mockConfig) GetStringSlice(key string) []string {
	if v, ok := m.values[key].([]string); ok {
		return v
	}
	return nil
}

func (m *mockConfig) Set(key string, value any) error {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	m.values[key] = value
	return nil
}

// mockCatalogStore implements driven.CatalogStore over a map.
type mockCatalogStore struct {
	mu     sync.Mutex
	values map[string][]byte
	putErr error
}

func newMockCatalogStore() *mockCatalogStore {
	return &mockCatalogStore{values: make(map[string][]byte)}
}

func (m *mockCatalogStore) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return m.putErr
	}
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *mockCatalogStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.values[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, key)
	}
	return append([]byte(nil), value...), nil
}

func (m *mockCatalogStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *mockCatalogStore) Close() error { return nil }

// mockExporter implements driven.IndexExporter, recording writes.
type mockExporter struct {
	mu     sync.Mutex
	writes map[string][]byte
}

func newMockExporter() *mockExporter {
	return &mockExporter{writes: make(map[string][]byte)}
}

func (m *mockExporter) Write(_ context.Context, name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes[name] = append([]byte(nil), data...)
	return nil
}

// newTestCatalog builds a catalog over an in-memory reader and the
// default extractor set, with optional config values.
func newTestCatalog(reader *mockFileReader, values map[string]any) *CatalogService {
	return NewCatalogService(reader, testRegistry(), &mockConfig{values: values})
}

// insertIndexed plants a fully indexed entry directly into the catalog.
// Used by search and stats tests that do not exercise ingestion.
func insertIndexed(c *CatalogService, entry domain.KnowledgeFile, articles []domain.Article) {
	for i := range articles {
		domain.FinishArticle(&articles[i])
	}
	entry.Index = BuildIndex(articles)
	entry.Indexed = true
	c.mu.Lock()
	c.files[entry.ID] = entry
	c.byPath[entry.Path] = entry.ID
	c.mu.Unlock()
}

// plainArticle builds a minimal article for search tests.
func plainArticle(id, title, content string, categories ...string) domain.Article {
	return domain.Article{
		ID:         id,
		Title:      title,
		Content:    content,
		Categories: categories,
	}
}

// mockExtractor returns fixed articles for one kind.
type mockExtractor struct {
	kind     domain.ContentKind
	articles []domain.Article
	err      error
}

func (m *mockExtractor) Kind() domain.ContentKind { return m.kind }

func (m *mockExtractor) Extract(_ context.Context, _ *domain.RawFile) ([]domain.Article, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.Article, len(m.articles))
	copy(out, m.articles)
	for i := range out {
		domain.FinishArticle(&out[i])
	}
	return out, nil
}

// longParagraph pads text into a single paragraph large enough to pass
// both the extractor's paragraph threshold and the scan size floor.
func longParagraph(seed string) string {
	var b strings.Builder
	b.WriteString(seed)
	for b.Len() < 2048 {
		b.WriteString(" filler content to pass the paragraph length threshold")
	}
	return b.String()
}
