package commands

import (
	"github.com/spf13/cobra"

	"dtp/internal/cli"
	"dtp/internal/config"
	"dtp/internal/discovery"
	"dtp/internal/execution"
	"dtp/internal/storage"
	"dtp/internal/suite"
	"dtp/internal/ui"
	"dtp/internal/watch"
)

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	List     *ListCommand
	Failures *FailuresCommand
	Watch    *WatchCommand
	History  *HistoryCommand
	Init     *InitCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	// Initialize dependencies
	scanner := discovery.NewScanner(cfg.PathsToIgnore)
	filter := discovery.NewFilter()
	eng := suite.DefaultEngine()
	runner := execution.NewRunner(eng, cfg)
	scheduler := execution.NewRoundRobinScheduler()
	pool := execution.NewWorkerPool(cfg, runner)
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg, eng)
	errorViewer := ui.NewErrorViewer(cfg, jsonStorage)

	run := NewRunCommand(cfg, scanner, filter, scheduler, pool, jsonStorage, formatter, errorViewer)

	return &Commands{
		Run:      run,
		List:     NewListCommand(cfg, scanner, filter, formatter, jsonStorage),
		Failures: NewFailuresCommand(cfg, jsonStorage, errorViewer),
		Watch:    NewWatchCommand(cfg, run),
		History:  NewHistoryCommand(cfg),
		Init:     NewInitCommand(cfg),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	// Applies the config file and flag overrides once flags are parsed
	merge := func(cmd *cobra.Command, args []string) error {
		return cfg.Merge(flags.ToConfigFlags())
	}

	// Run command
	runCmd := &cobra.Command{
		Use:     "run",
		Short:   "Check documentation examples in parallel",
		Long:    "Discover documentation files and evaluate their embedded examples using parallel workers",
		RunE:    c.Run.Execute,
		PreRunE: merge,
	}
	runCmd.Flags().IntVarP(&flags.Workers, "workers", "w", 0, "Number of parallel workers (default from config)")
	runCmd.Flags().StringVarP(&flags.DocsPath, "docs-path", "d", "", "Path to the folder where doc discovery should start")
	runCmd.Flags().StringVarP(&flags.Filter, "filter", "f", "", "Filter docs by name pattern (supports wildcards, e.g. '*quickstart*' or 'api-*.md')")
	runCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop handing out files after the first failing one")
	runCmd.Flags().BoolVar(&flags.Failed, "failed", false, "Check only files that failed in the last run")
	runCmd.Flags().BoolVar(&flags.RerunFailures, "rerun-failures", false, "After the run, re-check failed files once and keep that verdict")
	runCmd.Flags().BoolVar(&flags.OpenFailures, "open-failures", false, "Open the failures viewer when the run finishes with failures")
	runCmd.Flags().StringVar(&flags.Partition, "partition", "", "Check only this partition of the doc set, as i/n (e.g. 2/4)")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List discovered documentation files",
		Long:    "Scan and list documentation files without checking them",
		RunE:    c.List.Execute,
		PreRunE: merge,
	}
	listCmd.Flags().StringVarP(&flags.Filter, "filter", "f", "", "Filter docs by name pattern (supports wildcards, e.g. '*quickstart*' or 'api-*.md')")
	listCmd.Flags().StringVarP(&flags.DocsPath, "docs-path", "d", "", "Path to the folder where doc discovery should start")
	listCmd.Flags().BoolVarP(&flags.Regions, "regions", "r", false, "List the checkable regions inside each file")
	rootCmd.AddCommand(listCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:     "failures",
		Short:   "View documentation failures interactively",
		Long:    "Display failures from the last run in an interactive viewer",
		RunE:    c.Failures.Execute,
		PreRunE: merge,
	}
	rootCmd.AddCommand(failuresCmd)

	// Watch command
	watchCmd := &cobra.Command{
		Use:     "watch",
		Short:   "Re-check documentation on every change",
		Long:    "Run the checks, then watch the docs directory and re-run whenever a documentation file changes",
		RunE:    c.Watch.Execute,
		PreRunE: merge,
	}
	watchCmd.Flags().IntVarP(&flags.Workers, "workers", "w", 0, "Number of parallel workers (default from config)")
	watchCmd.Flags().StringVarP(&flags.DocsPath, "docs-path", "d", "", "Path to the folder where doc discovery should start")
	watchCmd.Flags().StringVarP(&flags.Filter, "filter", "f", "", "Filter docs by name pattern")
	watchCmd.Flags().DurationVar(&flags.Debounce, "debounce", watch.DefaultDebounce, "How long changes must settle before a re-run")
	rootCmd.AddCommand(watchCmd)

	// History command
	historyCmd := &cobra.Command{
		Use:     "history",
		Short:   "Show recent documentation runs",
		Long:    "List run summaries recorded in the local history database, newest first",
		RunE:    c.History.Execute,
		PreRunE: merge,
	}
	historyCmd.Flags().IntVarP(&flags.Limit, "limit", "n", 10, "Number of runs to show")
	rootCmd.AddCommand(historyCmd)

	// Init command. No merge here: the config file it writes may not
	// exist yet.
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		Long:  "Create a dtp.yaml with the common settings commented out",
		RunE:  c.Init.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	initCmd.Flags().BoolVar(&flags.Force, "force", false, "Overwrite an existing config file")
	rootCmd.AddCommand(initCmd)

	// Config file flag applies to every command
	rootCmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "", "Path to the config file (default dtp.yaml)")
}
