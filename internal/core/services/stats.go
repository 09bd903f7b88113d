package services

import (
	"context"
	"sort"

	"github.com/offgrid-labs/knowledge-cli/internal/core/domain"
	"github.com/offgrid-labs/knowledge-cli/internal/core/ports/driving"
)

// Ensure StatsService implements the interface.
var _ driving.StatsService = (*StatsService)(nil)

// StatsService aggregates usage statistics from the catalog and the
// search service.
type StatsService struct {
	catalog *CatalogService
	search  *SearchService
}

// NewStatsService creates a stats service.
func NewStatsService(catalog *CatalogService, search *SearchService) *StatsService {
	return &StatsService{catalog: catalog, search: search}
}

// Stats returns query counters, the top-N most accessed files and the
// category distribution across all indexed articles.
func (s *StatsService) Stats(_ context.Context, topN int) (*domain.UsageStats, error) {
	stats := &domain.UsageStats{
		CategoryDistribution: make(map[string]int),
	}

	stats.TotalQueries, stats.PopularTerms = s.search.queryStats(topN)

	files := s.catalog.snapshot()
	for _, file := range files {
		if file.AccessCount > 0 {
			stats.TopFiles = append(stats.TopFiles, domain.FileAccess{
				FileID:      file.ID,
				FileName:    file.Name,
				AccessCount: file.AccessCount,
			})
		}
		if file.Index == nil {
			continue
		}
		for tag, ids := range file.Index.Categories {
			stats.CategoryDistribution[tag] += len(ids)
		}
	}

	sort.Slice(stats.TopFiles, func(i, j int) bool {
		if stats.TopFiles[i].AccessCount != stats.TopFiles[j].AccessCount {
			return stats.TopFiles[i].AccessCount > stats.TopFiles[j].AccessCount
		}
		return stats.TopFiles[i].FileName < stats.TopFiles[j].FileName
	})
	if topN > 0 && len(stats.TopFiles) > topN {
		stats.TopFiles = stats.TopFiles[:topN]
	}

	return stats, nil
}
