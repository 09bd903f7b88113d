package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statsTop int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show usage statistics",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().IntVar(&statsTop, "top", 10, "number of entries per ranking")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if statsService == nil {
		return errors.New("stats service not configured")
	}

	stats, err := statsService.Stats(context.Background(), statsTop)
	if err != nil {
		return fmt.Errorf("collecting stats: %w", err)
	}

	cmd.Printf("Total queries: %d\n", stats.TotalQueries)

	if len(stats.PopularTerms) > 0 {
		cmd.Println("\nPopular terms:")
		for _, term := range stats.PopularTerms {
			cmd.Printf("  %-20s %d\n", term.Term, term.Count)
		}
	}

	if len(stats.TopFiles) > 0 {
		cmd.Println("\nMost accessed files:")
		for _, file := range stats.TopFiles {
			cmd.Printf("  %-30s %d\n", file.FileName, file.AccessCount)
		}
	}

	if len(stats.CategoryDistribution) > 0 {
		cmd.Println("\nArticles per category:")
		for tag, count := range stats.CategoryDistribution {
			cmd.Printf("  %-20s %d\n", tag, count)
		}
	}

	return nil
}
