package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/offgrid-labs/knowledge-cli/internal/core/domain"
	"github.com/offgrid-labs/knowledge-cli/internal/core/ports/driven"
	"github.com/offgrid-labs/knowledge-cli/internal/core/ports/driving"
	"github.com/offgrid-labs/knowledge-cli/internal/logger"
)

// Ensure PersistenceService implements the interface.
var _ driving.PersistenceService = (*PersistenceService)(nil)

// catalogKey is the fixed store key for the catalog record.
const catalogKey = "knowledge_data"

// exportArticleLimit caps the articles included per exported file.
const exportArticleLimit = 100

// PersistenceService snapshots catalog metadata to the key-value store
// and exports full index documents to the sandboxed writer. Indexes are
// rebuildable and too large for the lightweight store, so the catalog
// record always omits them.
type PersistenceService struct {
	catalog  *CatalogService
	store    driven.CatalogStore
	exporter driven.IndexExporter
}

// NewPersistenceService creates a persistence service.
// The exporter may be nil when export is not configured.
func NewPersistenceService(
	catalog *CatalogService,
	store driven.CatalogStore,
	exporter driven.IndexExporter,
) *PersistenceService {
	return &PersistenceService{
		catalog:  catalog,
		store:    store,
		exporter: exporter,
	}
}

// persistedFile is the wire shape of one catalog entry. The search
// index is deliberately absent.
type persistedFile struct {
	ID           string              `json:"id"`
	Path         string              `json:"path"`
	Name         string              `json:"name"`
	Kind         domain.ContentKind  `json:"kind"`
	Size         int64               `json:"size"`
	Checksum     uint64              `json:"checksum,omitempty"`
	AddedAt      time.Time           `json:"addedAt"`
	LastAccessed *time.Time          `json:"lastAccessed,omitempty"`
	AccessCount  int                 `json:"accessCount"`
	Metadata     domain.FileMetadata `json:"metadata"`
}

// catalogRecord is the value stored under catalogKey.
type catalogRecord struct {
	KnowledgeFiles []persistedFile `json:"knowledgeFiles"`
}

// indexExport is one exported index snapshot document.
type indexExport struct {
	FileID        string           `json:"fileId"`
	FileName      string           `json:"fileName"`
	Articles      []domain.Article `json:"articles"`
	IndexedAt     time.Time        `json:"indexedAt"`
	TotalArticles int              `json:"totalArticles"`
}

// SaveCatalog serialises all entries, indexes omitted, to the store.
func (p *PersistenceService) SaveCatalog(ctx context.Context) error {
	entries := p.catalog.snapshot()

	record := catalogRecord{KnowledgeFiles: make([]persistedFile, 0, len(entries))}
	for _, entry := range entries {
		record.KnowledgeFiles = append(record.KnowledgeFiles, persistedFile{
			ID:           entry.ID,
			Path:         entry.Path,
			Name:         entry.Name,
			Kind:         entry.Kind,
			Size:         entry.Size,
			Checksum:     entry.Checksum,
			AddedAt:      entry.AddedAt,
			LastAccessed: entry.LastAccessed,
			AccessCount:  entry.AccessCount,
			Metadata:     entry.Metadata,
		})
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}

	if err := p.store.Put(ctx, catalogKey, data); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}

	logger.Debug("Saved catalog: %d entries", len(record.KnowledgeFiles))
	return nil
}

// LoadCatalog restores entries from the store. A store without a
// catalog record leaves the catalog empty, which is not an error.
// All restored entries are unindexed; callers re-index as needed.
func (p *PersistenceService) LoadCatalog(ctx context.Context) error {
	data, err := p.store.Get(ctx, catalogKey)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			logger.Debug("No persisted catalog")
			return nil
		}
		return fmt.Errorf("load catalog: %w", err)
	}

	var record catalogRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return fmt.Errorf("decode catalog: %w", err)
	}

	entries := make([]domain.KnowledgeFile, 0, len(record.KnowledgeFiles))
	for _, pf := range record.KnowledgeFiles {
		entries = append(entries, domain.KnowledgeFile{
			ID:           pf.ID,
			Path:         pf.Path,
			Name:         pf.Name,
			Kind:         pf.Kind,
			Size:         pf.Size,
			Checksum:     pf.Checksum,
			AddedAt:      pf.AddedAt,
			LastAccessed: pf.LastAccessed,
			AccessCount:  pf.AccessCount,
			Metadata:     pf.Metadata,
		})
	}

	p.catalog.restore(entries)
	logger.Info("Restored catalog: %d entries", len(entries))
	return nil
}

// ExportIndex writes one snapshot document per indexed file to the
// sandboxed export location, capped at the first 100 articles per file.
func (p *PersistenceService) ExportIndex(ctx context.Context) (int, error) {
	if p.exporter == nil {
		return 0, errors.New("index exporter not configured")
	}

	exported := 0
	for _, entry := range p.catalog.snapshot() {
		if !entry.Indexed || entry.Index == nil {
			continue
		}

		articles := entry.Index.Articles
		if len(articles) > exportArticleLimit {
			articles = articles[:exportArticleLimit]
		}

		doc := indexExport{
			FileID:        entry.ID,
			FileName:      entry.Name,
			Articles:      articles,
			IndexedAt:     entry.Index.LastUpdated,
			TotalArticles: len(entry.Index.Articles),
		}

		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			logger.Warn("Failed to marshal export for %s: %v", entry.Name, err)
			continue
		}

		name := fmt.Sprintf("index_%s.json", entry.ID)
		if err := p.exporter.Write(ctx, name, data); err != nil {
			logger.Warn("Failed to export %s: %v", entry.Name, err)
			continue
		}
		exported++
	}

	logger.Info("Exported %d index snapshots", exported)
	return exported, nil
}
