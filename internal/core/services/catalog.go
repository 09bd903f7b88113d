package services

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/offgrid-labs/knowledge-cli/internal/core/domain"
	"github.com/offgrid-labs/knowledge-cli/internal/core/ports/driven"
	"github.com/offgrid-labs/knowledge-cli/internal/core/ports/driving"
	"github.com/offgrid-labs/knowledge-cli/internal/logger"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// minScanSize is the minimum file size picked up by Scan, in bytes.
const minScanSize = 1024

// placeholderReadLimit bounds reads for formats whose extraction only
// produces placeholder articles.
const placeholderReadLimit = 4096

// scanConcurrency bounds parallel ingestion during Scan.
const scanConcurrency = 4

// CatalogService owns the set of known knowledge files. Entries are
// value types swapped wholesale under the lock (copy-on-write), so
// concurrent readers observe either the old or the new complete record,
// never a partial one.
type CatalogService struct {
	reader   driven.FileReader
	registry driven.ExtractorRegistry
	config   driven.ConfigStore

	mu     sync.RWMutex
	files  map[string]domain.KnowledgeFile // by ID
	byPath map[string]string               // path -> ID
	closed bool

	// Indexing progress for UI purposes. Reflects the most recently
	// active task only; indexing is not serialised across files.
	progressMu sync.Mutex
	active     int
	progress   int

	wg sync.WaitGroup
}

// NewCatalogService creates a catalog backed by the given reader and
// extractor registry. The config store supplies scan exclusion globs
// and the extension allowlist; it may be nil for defaults.
func NewCatalogService(
	reader driven.FileReader,
	registry driven.ExtractorRegistry,
	config driven.ConfigStore,
) *CatalogService {
	return &CatalogService{
		reader:   reader,
		registry: registry,
		config:   config,
		files:    make(map[string]domain.KnowledgeFile),
		byPath:   make(map[string]string),
	}
}

// AddFile registers a file by path. Registration is idempotent by path.
// Extraction and indexing are scheduled in the background; the returned
// entry is initially unindexed.
func (c *CatalogService) AddFile(ctx context.Context, path string) (*domain.KnowledgeFile, error) {
	file, _, err := c.addFile(ctx, path)
	return file, err
}

// addFile reports whether a new entry was created.
func (c *CatalogService) addFile(ctx context.Context, path string) (*domain.KnowledgeFile, bool, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %s", domain.ErrInvalidInput, path)
	}

	info, err := c.reader.Stat(ctx, abs)
	if err != nil {
		return nil, false, fmt.Errorf("stat %s: %w", abs, err)
	}
	if info.IsDir() {
		return nil, false, fmt.Errorf("%w: %s is a directory", domain.ErrInvalidInput, abs)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, false, domain.ErrCatalogClosed
	}
	if id, ok := c.byPath[abs]; ok {
		existing := c.files[id]
		c.mu.Unlock()
		return &existing, false, nil
	}

	entry := domain.KnowledgeFile{
		ID:      uuid.New().String(),
		Path:    abs,
		Name:    filepath.Base(abs),
		Kind:    domain.DetectKind(abs),
		Size:    info.Size(),
		AddedAt: time.Now(),
	}
	c.files[entry.ID] = entry
	c.byPath[abs] = entry.ID

	c.wg.Add(1)
	c.mu.Unlock()

	logger.Debug("Registered %s as %s (%s)", abs, entry.ID, entry.Kind)

	go func() {
		defer c.wg.Done()
		c.indexFile(context.WithoutCancel(ctx), entry.ID)
	}()

	return &entry, true, nil
}

// RemoveFile removes an entry by ID. Absent IDs are not an error; an
// in-flight indexing task for the removed file becomes a no-op.
func (c *CatalogService) RemoveFile(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.files[id]
	if !ok {
		return nil
	}
	delete(c.files, id)
	delete(c.byPath, entry.Path)
	return nil
}

// UpdateMetadata merges non-zero metadata fields. Absent IDs are a no-op.
func (c *CatalogService) UpdateMetadata(_ context.Context, id string, meta domain.FileMetadata) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.files[id]
	if !ok {
		return nil
	}
	entry.Metadata.Merge(meta)
	c.files[id] = entry
	return nil
}

// Refresh re-extracts and re-indexes a file. Unchanged content (same
// checksum) is skipped inside the indexing task.
func (c *CatalogService) Refresh(ctx context.Context, id string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return domain.ErrCatalogClosed
	}
	_, ok := c.files[id]
	if !ok {
		c.mu.Unlock()
		return domain.ErrNotFound
	}
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		c.indexFile(context.WithoutCancel(ctx), id)
	}()
	return nil
}

// Scan walks the given roots (or the configured ones when empty) and
// registers every allowlisted file above the minimum size. Unreadable
// roots are logged and skipped, never fatal.
func (c *CatalogService) Scan(ctx context.Context, roots []string) (int, error) {
	if len(roots) == 0 && c.config != nil {
		roots = c.config.GetStringSlice("scan.roots")
	}

	allow := c.allowedExtensions()
	excludes := c.excludeGlobs()

	var (
		mu    sync.Mutex
		added int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(scanConcurrency)

	for _, root := range roots {
		entries, err := c.reader.List(ctx, root)
		if err != nil {
			logger.Warn("Skipping unreadable scan root %s: %v", root, err)
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			if !allow[strings.ToLower(filepath.Ext(name))] {
				continue
			}
			if excluded(excludes, name) {
				logger.Debug("Excluded by pattern: %s", name)
				continue
			}
			info, err := entry.Info()
			if err != nil || info.Size() <= minScanSize {
				continue
			}

			path := filepath.Join(root, name)
			g.Go(func() error {
				_, created, err := c.addFile(gctx, path)
				if err != nil {
					logger.Warn("Failed to add %s: %v", path, err)
					return nil // one bad file never aborts the scan
				}
				if created {
					mu.Lock()
					added++
					mu.Unlock()
				}
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return added, err
	}

	logger.Info("Scan complete: %d new files", added)
	return added, nil
}

// GetFile returns an entry by ID.
func (c *CatalogService) GetFile(_ context.Context, id string) (*domain.KnowledgeFile, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.files[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &entry, nil
}

// GetFileByPath returns an entry by absolute path.
func (c *CatalogService) GetFileByPath(_ context.Context, path string) (*domain.KnowledgeFile, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	id, ok := c.byPath[abs]
	if !ok {
		return nil, domain.ErrNotFound
	}
	entry := c.files[id]
	return &entry, nil
}

// ListFiles returns all entries.
func (c *CatalogService) ListFiles(_ context.Context) ([]domain.KnowledgeFile, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.KnowledgeFile, 0, len(c.files))
	for _, entry := range c.files {
		out = append(out, entry)
	}
	return out, nil
}

// GetArticle returns one article from a file and records the access.
func (c *CatalogService) GetArticle(_ context.Context, fileID, articleID string) (*domain.Article, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.files[fileID]
	if !ok || entry.Index == nil {
		return nil, domain.ErrNotFound
	}

	for i := range entry.Index.Articles {
		if entry.Index.Articles[i].ID == articleID {
			article := entry.Index.Articles[i]
			c.recordAccessLocked(entry)
			return &article, nil
		}
	}
	return nil, domain.ErrNotFound
}

// RandomArticle returns a random article from any indexed file and
// records the access.
func (c *CatalogService) RandomArticle(_ context.Context) (*domain.Article, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var candidates []string
	for id, entry := range c.files {
		if entry.Index.ArticleCount() > 0 {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		return nil, domain.ErrNotFound
	}

	entry := c.files[candidates[rand.Intn(len(candidates))]]
	article := entry.Index.Articles[rand.Intn(len(entry.Index.Articles))]
	c.recordAccessLocked(entry)
	return &article, nil
}

// recordAccessLocked bumps the access counters with a whole-entry swap.
// Caller must hold the write lock.
func (c *CatalogService) recordAccessLocked(entry domain.KnowledgeFile) {
	now := time.Now()
	entry.LastAccessed = &now
	entry.AccessCount++
	c.files[entry.ID] = entry
}

// Progress reports whether indexing is in progress and the progress of
// the most recently active task.
func (c *CatalogService) Progress(_ context.Context) (bool, int) {
	c.progressMu.Lock()
	defer c.progressMu.Unlock()
	return c.active > 0, c.progress
}

// WaitForIndexing blocks until all scheduled indexing tasks finish.
func (c *CatalogService) WaitForIndexing(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// Close stops accepting work and waits for in-flight indexing.
func (c *CatalogService) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	c.wg.Wait()
	return nil
}

// restore replaces the catalog's entries with persisted ones.
// All restored entries are unindexed.
func (c *CatalogService) restore(entries []domain.KnowledgeFile) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.files = make(map[string]domain.KnowledgeFile, len(entries))
	c.byPath = make(map[string]string, len(entries))
	for _, entry := range entries {
		entry.Indexed = false
		entry.Index = nil
		c.files[entry.ID] = entry
		c.byPath[entry.Path] = entry.ID
	}
}

// snapshot returns a copy of all entries for readers outside the lock.
func (c *CatalogService) snapshot() []domain.KnowledgeFile {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.KnowledgeFile, 0, len(c.files))
	for _, entry := range c.files {
		out = append(out, entry)
	}
	return out
}

// indexFile runs the extraction and indexing pipeline for one entry.
// All failures degrade to an unindexed entry and a warning; they never
// propagate to the caller or to other files.
func (c *CatalogService) indexFile(ctx context.Context, id string) {
	c.beginTask()
	defer c.endTask()

	c.mu.RLock()
	entry, ok := c.files[id]
	c.mu.RUnlock()
	if !ok {
		return // removed before the task started
	}

	c.setProgress(10)

	content, err := c.readContent(ctx, &entry)
	if err != nil {
		logger.Warn("Failed to read %s: %v", entry.Path, err)
		return
	}
	c.setProgress(30)

	// Unchanged content keeps the existing index.
	sum := xxhash.Sum64(content)
	if entry.Indexed && entry.Checksum == sum {
		logger.Debug("Index up to date for %s", entry.Name)
		c.setProgress(100)
		return
	}

	raw := &domain.RawFile{File: entry, Content: content}
	articles, err := c.registry.Extract(ctx, raw)
	if err != nil {
		// Contained at the file boundary: the entry stays registered
		// but unindexed, and no checksum is recorded so a later refresh
		// retries extraction.
		logger.Warn("Extraction failed for %s: %v", entry.Name, err)
		return
	}
	c.setProgress(70)

	idx := BuildIndex(articles)
	c.setProgress(90)

	c.mu.Lock()
	current, ok := c.files[id]
	if !ok {
		// Removed while indexing: completing the task is a no-op.
		c.mu.Unlock()
		logger.Debug("Discarding index for removed file %s", id)
		return
	}
	current.Index = idx
	current.Indexed = true
	current.Checksum = sum
	current.Metadata.ArticleCount = len(articles)
	current.Metadata.Categories = categoryTags(idx)
	c.files[id] = current
	c.mu.Unlock()

	c.setProgress(100)
	logger.Info("Indexed %s: %d articles, %d terms", current.Name, len(articles), len(idx.Words))
}

// readContent reads the file, using a bounded prefix read for kinds
// whose extraction is a placeholder.
func (c *CatalogService) readContent(ctx context.Context, entry *domain.KnowledgeFile) ([]byte, error) {
	switch entry.Kind {
	case domain.KindArchive, domain.KindDocument, domain.KindEBook:
		return c.reader.ReadPrefix(ctx, entry.Path, placeholderReadLimit)
	default:
		return c.reader.Read(ctx, entry.Path)
	}
}

// allowedExtensions returns the scan allowlist as a set.
func (c *CatalogService) allowedExtensions() map[string]bool {
	exts := domain.SupportedExtensions()
	if c.config != nil {
		if configured := c.config.GetStringSlice("scan.extensions"); len(configured) > 0 {
			exts = configured
		}
	}

	allow := make(map[string]bool, len(exts))
	for _, ext := range exts {
		allow[strings.ToLower(ext)] = true
	}
	return allow
}

// excludeGlobs returns the configured scan exclusion patterns.
func (c *CatalogService) excludeGlobs() []string {
	if c.config == nil {
		return nil
	}
	return c.config.GetStringSlice("scan.exclude")
}

// excluded reports whether a file name matches any exclusion glob.
func excluded(globs []string, name string) bool {
	for _, glob := range globs {
		if ok, err := doublestar.Match(glob, name); err == nil && ok {
			return true
		}
	}
	return false
}

// categoryTags returns the index's category tags in map order.
func categoryTags(idx *domain.SearchIndex) []string {
	if len(idx.Categories) == 0 {
		return nil
	}
	tags := make([]string, 0, len(idx.Categories))
	for tag := range idx.Categories {
		tags = append(tags, tag)
	}
	return tags
}

func (c *CatalogService) beginTask() {
	c.progressMu.Lock()
	c.active++
	c.progress = 0
	c.progressMu.Unlock()
}

func (c *CatalogService) endTask() {
	c.progressMu.Lock()
	c.active--
	c.progressMu.Unlock()
}

func (c *CatalogService) setProgress(p int) {
	c.progressMu.Lock()
	c.progress = p
	c.progressMu.Unlock()
}
