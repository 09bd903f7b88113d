package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export index snapshots to the export directory",
	Long: `Writes one JSON snapshot per indexed file, capped at 100 articles
each, to the sandboxed export directory.`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	if persistenceService == nil {
		return errors.New("persistence service not configured")
	}

	count, err := persistenceService.ExportIndex(context.Background())
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	cmd.Printf("Exported %d index snapshots\n", count)
	return nil
}
