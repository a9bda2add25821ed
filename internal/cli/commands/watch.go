package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"dtp/internal/config"
	"dtp/internal/watch"
)

// WatchCommand re-runs documentation checks whenever doc files change
type WatchCommand struct {
	config *config.Config
	run    *RunCommand
}

// NewWatchCommand creates a new WatchCommand
func NewWatchCommand(cfg *config.Config, run *RunCommand) *WatchCommand {
	return &WatchCommand{
		config: cfg,
		run:    run,
	}
}

// Execute runs the command. It blocks until interrupted.
func (wc *WatchCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initial pass; failures keep the watcher alive
	if err := wc.run.RunOnce(ctx); err != nil {
		slog.Warn("Documentation check failed", "error", err)
	}

	watcher, err := watch.NewWatcher(wc.config.GetDocsPath(), wc.config.Flags.Debounce, func(ctx context.Context) {
		if err := wc.run.RunOnce(ctx); err != nil {
			slog.Warn("Documentation check failed", "error", err)
		}
	})
	if err != nil {
		return err
	}
	defer watcher.Stop()

	if err := watcher.Start(ctx); err != nil {
		return err
	}

	color.Cyan("\nWatching %s for changes. Press Ctrl+C to stop.", wc.config.GetDocsPath())
	<-ctx.Done()
	return nil
}
