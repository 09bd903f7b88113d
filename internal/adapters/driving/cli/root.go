// Package cli implements the command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/offgrid-labs/knowledge-cli/internal/core/ports/driving"
	"github.com/offgrid-labs/knowledge-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services injected by the composition root before Execute.
var (
	catalogService     driving.CatalogService
	searchService      driving.SearchService
	persistenceService driving.PersistenceService
	statsService       driving.StatsService
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "knowledge",
	Short: "Offline knowledge base",
	Long: `knowledge ingests local documents (HTML, Markdown, plain text, JSON,
ZIM, PDF, EPUB), builds per-file search indexes, and answers ranked
full-text queries entirely offline.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// SetServices injects the service implementations used by the commands.
func SetServices(
	catalog driving.CatalogService,
	search driving.SearchService,
	persistence driving.PersistenceService,
	stats driving.StatsService,
) {
	catalogService = catalog
	searchService = search
	persistenceService = persistence
	statsService = stats
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
