package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var scanWait bool

var scanCmd = &cobra.Command{
	Use:   "scan [dir...]",
	Short: "Scan directories for knowledge files",
	Long: `Scans the given directories (or the configured scan roots when none
are given) and registers every supported file above the minimum size.
Unreadable directories are skipped.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&scanWait, "wait", false, "block until indexing completes")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	ctx := context.Background()
	added, err := catalogService.Scan(ctx, args)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	cmd.Printf("Registered %d new files\n", added)

	if scanWait {
		if err := catalogService.WaitForIndexing(ctx); err != nil {
			return fmt.Errorf("waiting for indexing: %w", err)
		}
		cmd.Println("Indexing complete")
	}

	return nil
}
