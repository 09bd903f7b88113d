package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var addWait bool

var addCmd = &cobra.Command{
	Use:   "add [path]",
	Short: "Register a file with the knowledge catalog",
	Long: `Registers a local file and schedules extraction and indexing in the
background. Adding the same path twice returns the existing entry.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().BoolVar(&addWait, "wait", false, "block until indexing completes")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	ctx := context.Background()
	file, err := catalogService.AddFile(ctx, args[0])
	if err != nil {
		return fmt.Errorf("add failed: %w", err)
	}

	cmd.Printf("Added %s (%s)\n", file.Name, file.Kind)
	cmd.Printf("  ID: %s\n", file.ID)

	if addWait {
		if err := catalogService.WaitForIndexing(ctx); err != nil {
			return fmt.Errorf("waiting for indexing: %w", err)
		}
		indexed, err := catalogService.GetFile(ctx, file.ID)
		if err != nil {
			return err
		}
		cmd.Printf("  Indexed: %d articles\n", indexed.Metadata.ArticleCount)
	}

	return nil
}
