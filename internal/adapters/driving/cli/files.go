package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var filesJSON bool

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Manage catalog entries",
}

var filesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all registered files",
	RunE:  runFilesList,
}

var filesShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one catalog entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runFilesShow,
}

var filesRemoveCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Remove a file from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE:  runFilesRemove,
}

var filesRefreshCmd = &cobra.Command{
	Use:   "refresh [id]",
	Short: "Re-extract and re-index a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runFilesRefresh,
}

func init() {
	filesListCmd.Flags().BoolVar(&filesJSON, "json", false, "output as JSON")
	filesCmd.AddCommand(filesListCmd)
	filesCmd.AddCommand(filesShowCmd)
	filesCmd.AddCommand(filesRemoveCmd)
	filesCmd.AddCommand(filesRefreshCmd)
	rootCmd.AddCommand(filesCmd)
}

func runFilesList(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	files, err := catalogService.ListFiles(context.Background())
	if err != nil {
		return fmt.Errorf("listing files: %w", err)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	if filesJSON {
		data, err := json.MarshalIndent(files, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal files: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(files) == 0 {
		cmd.Println("No files registered.")
		return nil
	}

	for i := range files {
		f := &files[i]
		status := "pending"
		if f.Indexed {
			status = fmt.Sprintf("%d articles", f.Metadata.ArticleCount)
		}
		cmd.Printf("  %s  %-30s %-20s %s\n", f.ID, f.Name, f.Kind, status)
	}
	cmd.Printf("\n%d files\n", len(files))
	return nil
}

func runFilesShow(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	file, err := catalogService.GetFile(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("getting file: %w", err)
	}

	cmd.Printf("Name:     %s\n", file.Name)
	cmd.Printf("Path:     %s\n", file.Path)
	cmd.Printf("Kind:     %s\n", file.Kind)
	cmd.Printf("Size:     %d bytes\n", file.Size)
	cmd.Printf("Added:    %s\n", file.AddedAt.Format("2006-01-02 15:04"))
	cmd.Printf("Indexed:  %t\n", file.Indexed)
	cmd.Printf("Accesses: %d\n", file.AccessCount)
	if file.Metadata.Title != "" {
		cmd.Printf("Title:    %s\n", file.Metadata.Title)
	}
	if file.Metadata.ArticleCount > 0 {
		cmd.Printf("Articles: %d\n", file.Metadata.ArticleCount)
	}
	if len(file.Metadata.Categories) > 0 {
		cmd.Printf("Tags:     %v\n", file.Metadata.Categories)
	}
	return nil
}

func runFilesRemove(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	if err := catalogService.RemoveFile(context.Background(), args[0]); err != nil {
		return fmt.Errorf("removing file: %w", err)
	}
	cmd.Printf("Removed %s\n", args[0])
	return nil
}

func runFilesRefresh(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	ctx := context.Background()
	if err := catalogService.Refresh(ctx, args[0]); err != nil {
		return fmt.Errorf("refreshing file: %w", err)
	}
	if err := catalogService.WaitForIndexing(ctx); err != nil {
		return fmt.Errorf("waiting for indexing: %w", err)
	}
	cmd.Printf("Refreshed %s\n", args[0])
	return nil
}
