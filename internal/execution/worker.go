package execution

import (
	"context"
	"sync"
	"time"

	"dtp/internal/config"
	"dtp/internal/domain"
	"dtp/internal/ui"
)

// WorkerPool checks documentation files in parallel
type WorkerPool struct {
	config   *config.Config
	runner   *Runner
	progress *ui.ProgressBar
}

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(cfg *config.Config, runner *Runner) *WorkerPool {
	return &WorkerPool{
		config: cfg,
		runner: runner,
	}
}

// SetProgress sets the progress bar for the worker pool
func (wp *WorkerPool) SetProgress(progress *ui.ProgressBar) {
	wp.progress = progress
}

// Execute checks files in parallel using the worker pool (no fail-fast).
func (wp *WorkerPool) Execute(ctx context.Context, docs []string) ([]domain.FileResult, time.Duration, error) {
	return wp.ExecuteWithOptions(ctx, docs, false)
}

// ExecuteWithOptions checks files with optional fail-fast (stop on first
// failing file).
func (wp *WorkerPool) ExecuteWithOptions(ctx context.Context, docs []string, failFast bool) ([]domain.FileResult, time.Duration, error) {
	if len(docs) == 0 {
		return nil, 0, nil
	}
	if !failFast {
		return wp.executeAll(ctx, docs)
	}
	return wp.executeFailFast(ctx, docs)
}

// counts tallies checked regions for the progress bar; an un-checkable
// file counts as one failure.
func counts(result domain.FileResult) (passed, failed int) {
	if result.Error != nil {
		return 0, 1
	}
	failed = len(result.Failures)
	passed = result.Regions - failed
	return passed, failed
}

// executeAll checks every file regardless of failures.
func (wp *WorkerPool) executeAll(ctx context.Context, docs []string) ([]domain.FileResult, time.Duration, error) {
	docQueue := make(chan string, len(docs))
	results := make(chan domain.FileResult, len(docs))
	for _, doc := range docs {
		docQueue <- doc
	}
	close(docQueue)

	var mu sync.Mutex
	var completedFiles int
	var passedRegions, failedRegions int
	startTime := time.Now()
	workerCount := wp.config.Workers
	if workerCount <= 0 {
		workerCount = 1
	}

	var wg sync.WaitGroup
	for i := 1; i <= workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for docPath := range docQueue {
				result := wp.runner.Run(ctx, docPath)
				results <- result
				mu.Lock()
				completedFiles++
				p, f := counts(result)
				passedRegions += p
				failedRegions += f
				if wp.progress != nil {
					wp.progress.Update(completedFiles, passedRegions, failedRegions)
				}
				mu.Unlock()
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var allResults []domain.FileResult
	for result := range results {
		allResults = append(allResults, result)
	}
	if wp.progress != nil {
		wp.progress.Finish()
	}
	return allResults, time.Since(startTime), nil
}

// executeFailFast checks files and stops handing out work after the
// first failing file.
func (wp *WorkerPool) executeFailFast(ctx context.Context, docs []string) ([]domain.FileResult, time.Duration, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	docQueue := make(chan string, 1)
	results := make(chan domain.FileResult, len(docs))

	go func() {
		defer close(docQueue)
		for _, doc := range docs {
			select {
			case <-ctx.Done():
				return
			case docQueue <- doc:
			}
		}
	}()

	var mu sync.Mutex
	var completedFiles int
	var passedRegions, failedRegions int
	var seenFailure bool
	startTime := time.Now()
	workerCount := wp.config.Workers
	if workerCount <= 0 {
		workerCount = 1
	}

	var wg sync.WaitGroup
	for i := 1; i <= workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for docPath := range docQueue {
				result := wp.runner.Run(ctx, docPath)
				mu.Lock()
				done := seenFailure
				mu.Unlock()
				if done {
					continue
				}
				results <- result
				mu.Lock()
				completedFiles++
				p, f := counts(result)
				passedRegions += p
				failedRegions += f
				if wp.progress != nil {
					wp.progress.Update(completedFiles, passedRegions, failedRegions)
				}
				if !result.Success {
					seenFailure = true
					cancel()
				}
				mu.Unlock()
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var allResults []domain.FileResult
	for result := range results {
		allResults = append(allResults, result)
	}
	if wp.progress != nil {
		wp.progress.Finish()
	}
	return allResults, time.Since(startTime), nil
}
