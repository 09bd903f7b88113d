package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/offgrid-labs/knowledge-cli/internal/core/domain"
)

var articleCmd = &cobra.Command{
	Use:   "article [file-id] [article-id]",
	Short: "Read one article",
	Args:  cobra.ExactArgs(2),
	RunE:  runArticle,
}

var articleRandomCmd = &cobra.Command{
	Use:   "random",
	Short: "Read a random article",
	Args:  cobra.NoArgs,
	RunE:  runArticleRandom,
}

func init() {
	articleCmd.AddCommand(articleRandomCmd)
	rootCmd.AddCommand(articleCmd)
}

func runArticle(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	article, err := catalogService.GetArticle(context.Background(), args[0], args[1])
	if err != nil {
		return fmt.Errorf("getting article: %w", err)
	}

	printArticle(cmd, article)
	return nil
}

func runArticleRandom(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	article, err := catalogService.RandomArticle(context.Background())
	if err != nil {
		return fmt.Errorf("getting random article: %w", err)
	}

	printArticle(cmd, article)
	return nil
}

func printArticle(cmd *cobra.Command, article *domain.Article) {
	cmd.Printf("%s\n\n", article.Title)
	cmd.Printf("%s\n\n", article.Content)
	cmd.Printf("Words: %d  Reading time: %d min\n", article.WordCount, article.ReadingTime)
	if len(article.Categories) > 0 {
		cmd.Printf("Tags: %v\n", article.Categories)
	}
}
