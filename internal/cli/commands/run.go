package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"dtp/internal/config"
	"dtp/internal/discovery"
	"dtp/internal/domain"
	"dtp/internal/execution"
	"dtp/internal/history"
	"dtp/internal/storage"
	"dtp/internal/suite"
	"dtp/internal/ui"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	scheduler execution.Scheduler
	executor  execution.Executor
	storage   storage.Storage
	formatter *ui.Formatter
	viewer    ui.Viewer
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	scheduler execution.Scheduler,
	executor execution.Executor,
	st storage.Storage,
	formatter *ui.Formatter,
	viewer ui.Viewer,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		scheduler: scheduler,
		executor:  executor,
		storage:   st,
		formatter: formatter,
		viewer:    viewer,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	return rc.RunOnce(cmd.Context())
}

// RunOnce discovers, checks and reports one pass over the docs. The
// watch command reuses it between file changes.
func (rc *RunCommand) RunOnce(ctx context.Context) error {
	// Discover documentation files
	docsPath := rc.config.GetDocsPath()
	docs, err := rc.scanner.Scan(docsPath)
	if err != nil {
		return err
	}

	// Filter docs
	docs = rc.filter.FilterByName(docs, rc.config.Flags.Filter)

	// Keep only files that failed in the last run
	if rc.config.Flags.Failed {
		docs, err = rc.onlyFailedDocs(docs)
		if err != nil {
			return err
		}
	}

	// A suspiciously small doc set usually means a misresolved path
	if min := rc.config.MinimumDocuments; min > 0 && len(docs) < min {
		return fmt.Errorf("%w: found %d documentation file(s) under %s, need at least %d",
			suite.ErrInsufficientDocuments, len(docs), docsPath, min)
	}

	if len(docs) == 0 {
		color.Yellow("No documentation files to check")
		return nil
	}

	// Take this partition's share of the doc set
	if rc.config.Flags.Partition != "" {
		docs, err = rc.partition(docs)
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			color.Yellow("Partition %s has no documentation files", rc.config.Flags.Partition)
			return nil
		}
	}

	// Create and set progress bar
	progressBar := ui.NewProgressBar(len(docs))
	rc.executor.SetProgress(progressBar)

	// Check docs
	results, duration, err := rc.executor.ExecuteWithOptions(ctx, docs, rc.config.Flags.FailFast)
	if err != nil {
		return err
	}

	// Re-run failed files once and keep the second verdict
	if rc.config.Flags.RerunFailures {
		results, err = rc.rerunFailures(ctx, results)
		if err != nil {
			return err
		}
	}

	failures := collectFailures(results, rc.config.ProjectPath)

	// Save results
	meta, err := rc.storage.Save(results, failures, duration, rc.config.Workers)
	if err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	// Record the run in the local history database
	if err := rc.recordHistory(ctx, meta); err != nil {
		color.Yellow("Warning: could not record run history: %v", err)
	}

	// Open the interactive viewer on failures if requested
	if meta.FailedFiles > 0 && rc.config.Flags.OpenFailures {
		output, err := rc.storage.Load()
		if err != nil {
			return err
		}
		if err := rc.viewer.View(output); err != nil {
			return err
		}
		return fmt.Errorf("%d documentation file(s) failed", meta.FailedFiles)
	}

	// Print stats
	if err := rc.formatter.PrintMetaStats(); err != nil {
		return err
	}
	if meta.FailedFiles > 0 {
		return fmt.Errorf("%d documentation file(s) failed", meta.FailedFiles)
	}
	return nil
}

// onlyFailedDocs narrows docs to the files recorded as failed in the
// last saved run.
func (rc *RunCommand) onlyFailedDocs(docs []string) ([]string, error) {
	output, err := rc.storage.Load()
	if err != nil {
		return nil, fmt.Errorf("no previous run to take failures from: %w", err)
	}

	failedKeys := make(map[string]struct{})
	for _, failure := range output.Details {
		failedKeys[pathKey(rc.config.ProjectPath, failure.FilePath)] = struct{}{}
	}

	var failedDocs []string
	for _, doc := range docs {
		if _, ok := failedKeys[pathKey(rc.config.ProjectPath, doc)]; ok {
			failedDocs = append(failedDocs, doc)
		}
	}
	return failedDocs, nil
}

// partition returns this partition's slice of docs for a --partition
// value of the form "i/n" (1-based).
func (rc *RunCommand) partition(docs []string) ([]string, error) {
	index, total, err := parsePartition(rc.config.Flags.Partition)
	if err != nil {
		return nil, err
	}
	slots := rc.scheduler.Schedule(docs, total)
	return slots[index-1], nil
}

// parsePartition parses "i/n" and validates 1 <= i <= n.
func parsePartition(spec string) (index, total int, err error) {
	left, right, ok := strings.Cut(spec, "/")
	if !ok {
		return 0, 0, fmt.Errorf("invalid partition %q, expected i/n (e.g. 1/3)", spec)
	}
	index, err = strconv.Atoi(left)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid partition index %q: %w", left, err)
	}
	total, err = strconv.Atoi(right)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid partition count %q: %w", right, err)
	}
	if total < 1 || index < 1 || index > total {
		return 0, 0, fmt.Errorf("partition %q out of range", spec)
	}
	return index, total, nil
}

// rerunFailures re-checks every failed file once and replaces its result.
func (rc *RunCommand) rerunFailures(ctx context.Context, results []domain.FileResult) ([]domain.FileResult, error) {
	var failedDocs []string
	for _, result := range results {
		if !result.Success {
			failedDocs = append(failedDocs, result.DocPath)
		}
	}
	if len(failedDocs) == 0 {
		return results, nil
	}

	color.Yellow("\nRe-running %d failed file(s)...", len(failedDocs))
	rc.executor.SetProgress(ui.NewProgressBar(len(failedDocs)))

	rerunResults, _, err := rc.executor.Execute(ctx, failedDocs)
	if err != nil {
		return nil, err
	}

	byPath := make(map[string]domain.FileResult, len(rerunResults))
	for _, result := range rerunResults {
		byPath[result.DocPath] = result
	}
	for i, result := range results {
		if replacement, ok := byPath[result.DocPath]; ok {
			results[i] = replacement
		}
	}
	return results, nil
}

// recordHistory appends the run summary to the history database.
func (rc *RunCommand) recordHistory(ctx context.Context, meta domain.RunMeta) error {
	store, err := history.Open(rc.config.GetHistoryPath(), rc.config.KeepRuns)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Record(ctx, meta)
	return err
}

// collectFailures flattens per-file failures, folding un-checkable
// files into a single failure entry each. base keeps file paths
// consistent with the region failures the runner reports.
func collectFailures(results []domain.FileResult, base string) []domain.Failure {
	var failures []domain.Failure
	for _, result := range results {
		failures = append(failures, result.Failures...)
		if result.Error != nil {
			path := result.DocPath
			if rel, err := filepath.Rel(base, path); err == nil {
				path = rel
			}
			failures = append(failures, domain.Failure{
				Kind:     "file",
				FilePath: path,
				Message:  result.Error.Error(),
			})
		}
	}
	return failures
}

// pathKey normalizes a path for matching results against discovered
// docs (same logic as the ui package).
func pathKey(projectPath, path string) string {
	p := path
	if projectPath != "" {
		if rel, err := filepath.Rel(projectPath, path); err == nil && rel != ".." && !strings.HasPrefix(rel, "..") {
			p = rel
		}
	}
	p = filepath.ToSlash(p)
	return strings.ToLower(p)
}
