package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/offgrid-labs/knowledge-cli/internal/core/ports/driven"
	"github.com/offgrid-labs/knowledge-cli/internal/logger"
)

// directoryWatcher is the filesystem watcher surface the watch command
// needs.
type directoryWatcher interface {
	Start(roots []string) error
	Stop() error
}

// backgroundSaver is the autosave surface the watch command needs.
type backgroundSaver interface {
	Start(ctx context.Context) error
	Stop() error
}

// Background components injected by the composition root.
var (
	watcherService  directoryWatcher
	autosaver       backgroundSaver
	configStore     driven.ConfigStore
	watchInterrupts = make(chan os.Signal, 1)
)

// SetBackground injects the watcher, autosaver and config store used by
// the watch command.
func SetBackground(w directoryWatcher, a backgroundSaver, config driven.ConfigStore) {
	watcherService = w
	autosaver = a
	configStore = config
}

var watchCmd = &cobra.Command{
	Use:   "watch [dir...]",
	Short: "Watch directories and keep the catalog in sync",
	Long: `Watches the given directories (or the configured scan roots) for file
changes. New and modified files are re-indexed, removed files are
dropped from the catalog. The catalog autosaves periodically. Runs
until interrupted.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watcherService == nil || catalogService == nil {
		return errors.New("watcher not configured")
	}

	roots := args
	if len(roots) == 0 && configStore != nil {
		roots = configStore.GetStringSlice("scan.roots")
	}
	if len(roots) == 0 {
		return errors.New("no directories to watch")
	}

	// Pick up anything that changed while we were not running.
	if _, err := catalogService.Scan(context.Background(), roots); err != nil {
		return fmt.Errorf("initial scan: %w", err)
	}

	if err := watcherService.Start(roots); err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcherService.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if autosaver != nil {
		go func() {
			if err := autosaver.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("Autosaver stopped: %v", err)
			}
		}()
		defer autosaver.Stop()
	}

	cmd.Printf("Watching %d directories. Press Ctrl+C to stop.\n", len(roots))

	signal.Notify(watchInterrupts, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(watchInterrupts)
	<-watchInterrupts

	cmd.Println("Shutting down")
	return nil
}
