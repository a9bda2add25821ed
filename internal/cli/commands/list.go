package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"dtp/internal/config"
	"dtp/internal/discovery"
	"dtp/internal/storage"
	"dtp/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	formatter *ui.Formatter
	storage   storage.Storage
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	formatter *ui.Formatter,
	st storage.Storage,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		formatter: formatter,
		storage:   st,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	docsPath := lc.config.GetDocsPath()
	docs, err := lc.scanner.Scan(docsPath)
	if err != nil {
		return err
	}

	// Filter docs
	docs = lc.filter.FilterByName(docs, lc.config.Flags.Filter)

	if len(docs) == 0 {
		color.Yellow("No documentation files found")
		return nil
	}

	// Mark files that failed in the last run, if there was one
	failedPaths := make(map[string]struct{})
	if output, err := lc.storage.Load(); err == nil {
		for _, failure := range output.Details {
			failedPaths[pathKey(lc.config.ProjectPath, failure.FilePath)] = struct{}{}
		}
	}

	return lc.formatter.PrintDocList(docs, lc.config.Flags.Regions, failedPaths)
}
