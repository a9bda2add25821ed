package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"dtp/internal/config"
	"dtp/internal/history"
)

// HistoryCommand shows recent runs from the history database
type HistoryCommand struct {
	config *config.Config
}

// NewHistoryCommand creates a new HistoryCommand
func NewHistoryCommand(cfg *config.Config) *HistoryCommand {
	return &HistoryCommand{config: cfg}
}

// Execute runs the command
func (hc *HistoryCommand) Execute(cmd *cobra.Command, args []string) error {
	store, err := history.Open(hc.config.GetHistoryPath(), hc.config.KeepRuns)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer store.Close()

	runs, err := store.Recent(cmd.Context(), hc.config.Flags.Limit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		color.Yellow("No recorded runs yet")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWHEN\tFILES\tREGIONS\tDURATION\tWORKERS\tSTATUS")
	for _, run := range runs {
		status := color.GreenString("pass")
		if run.FailedFiles > 0 {
			status = color.RedString("%d failed", run.FailedFiles)
		}
		fmt.Fprintf(w, "%s\t%s\t%d/%d\t%d/%d\t%.2fs\t%d\t%s\n",
			shortID(run.ID),
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.PassedFiles, run.TotalFiles,
			run.CheckedRegions-run.FailedRegions, run.CheckedRegions,
			run.DurationSeconds,
			run.Workers,
			status,
		)
	}
	return w.Flush()
}

// shortID trims a run UUID down to its first block for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
