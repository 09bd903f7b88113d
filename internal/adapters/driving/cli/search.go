package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/offgrid-labs/knowledge-cli/internal/core/domain"
)

var (
	searchLimit      int
	searchJSON       bool
	searchKinds      []string
	searchCategories []string
	searchMinWords   int
	searchMaxWords   int
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed articles",
	Long: `Performs ranked full-text search across every indexed file.
Title matches outrank body matches; results include a highlighted snippet.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", domain.DefaultQueryLimit, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().StringSliceVar(&searchKinds, "kind", nil, "restrict to content kinds")
	searchCmd.Flags().StringSliceVar(&searchCategories, "category", nil, "boost articles carrying these tags")
	searchCmd.Flags().IntVar(&searchMinWords, "min-words", 0, "exclude articles with fewer words")
	searchCmd.Flags().IntVar(&searchMaxWords, "max-words", 0, "exclude articles with more words")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	kinds := make([]domain.ContentKind, 0, len(searchKinds))
	for _, k := range searchKinds {
		kinds = append(kinds, domain.ContentKind(k))
	}

	query := domain.Query{
		Text:  args[0],
		Limit: searchLimit,
		Filters: domain.QueryFilters{
			Kinds:        kinds,
			Categories:   searchCategories,
			MinWordCount: searchMinWords,
			MaxWordCount: searchMaxWords,
		},
	}

	results, err := searchService.Search(context.Background(), query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		r := &results[i]
		cmd.Printf("  [%d] %s (%.1f)\n", i+1, r.Article.Title, r.Score)
		cmd.Printf("      File: %s\n", r.FileName)
		if len(r.MatchedTerms) > 0 {
			cmd.Printf("      Matched: %s\n", strings.Join(r.MatchedTerms, ", "))
		}
		if r.Snippet != "" {
			cmd.Printf("      %s\n", r.Snippet)
		}
		cmd.Println()
	}

	return nil
}
