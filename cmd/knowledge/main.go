package main

import (
	"context"
	"fmt"
	"os"

	"github.com/offgrid-labs/knowledge-cli/internal/adapters/driven/config/file"
	"github.com/offgrid-labs/knowledge-cli/internal/adapters/driven/export"
	"github.com/offgrid-labs/knowledge-cli/internal/adapters/driven/fs"
	"github.com/offgrid-labs/knowledge-cli/internal/adapters/driven/storage/sqlite"
	"github.com/offgrid-labs/knowledge-cli/internal/adapters/driving/cli"
	"github.com/offgrid-labs/knowledge-cli/internal/core/services"
	"github.com/offgrid-labs/knowledge-cli/internal/extractors"
	"github.com/offgrid-labs/knowledge-cli/internal/logger"
	"github.com/offgrid-labs/knowledge-cli/internal/watcher"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	config, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("opening catalog store: %w", err)
	}
	defer store.Close()

	exporter, err := export.NewSandbox(config.GetString("export.dir"))
	if err != nil {
		return fmt.Errorf("opening export directory: %w", err)
	}

	catalog := services.NewCatalogService(fs.NewReader(), extractors.NewDefaultRegistry(), config)
	search := services.NewSearchService(catalog)
	persistence := services.NewPersistenceService(catalog, store, exporter)
	stats := services.NewStatsService(catalog, search)

	ctx := context.Background()
	if err := persistence.LoadCatalog(ctx); err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	cli.SetServices(catalog, search, persistence, stats)
	cli.SetBackground(watcher.New(catalog), services.NewAutosaver(persistence, config), config)

	cmdErr := cli.Execute()

	// Persist whatever the command changed before exit.
	if err := catalog.WaitForIndexing(ctx); err != nil {
		logger.Warn("Indexing interrupted: %v", err)
	}
	if err := persistence.SaveCatalog(ctx); err != nil {
		logger.Warn("Failed to save catalog: %v", err)
	}
	if err := catalog.Close(); err != nil {
		logger.Warn("Failed to close catalog: %v", err)
	}

	return cmdErr
}
