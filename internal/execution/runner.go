package execution

import (
	"context"
	"path/filepath"
	"time"

	"dtp/internal/config"
	"dtp/internal/domain"
	"dtp/internal/engine"
)

// Runner checks a single documentation file
type Runner struct {
	engine *engine.Engine
	config *config.Config
}

// NewRunner creates a new Runner. Failure paths are reported relative
// to the configured project path.
func NewRunner(e *engine.Engine, cfg *config.Config) *Runner {
	return &Runner{engine: e, config: cfg}
}

// Run checks one documentation file in-process
func (r *Runner) Run(ctx context.Context, docPath string) domain.FileResult {
	start := time.Now()

	doc, err := engine.Load(docPath)
	if err != nil {
		return domain.FileResult{DocPath: docPath, Error: err, Duration: time.Since(start)}
	}

	findings, err := r.engine.Evaluate(ctx, doc)
	if err != nil {
		return domain.FileResult{DocPath: docPath, Error: err, Duration: time.Since(start)}
	}

	result := domain.FileResult{
		DocPath:  docPath,
		Regions:  len(findings),
		Duration: time.Since(start),
	}
	rel := r.relPath(docPath)
	for _, f := range findings {
		if f.OK {
			continue
		}
		result.Failures = append(result.Failures, domain.Failure{
			Kind:     f.Kind,
			FilePath: rel,
			Line:     f.Line,
			Source:   f.Source,
			Expected: f.Expected,
			Got:      f.Got,
			Diff:     f.Diff,
			Message:  f.Message,
		})
	}
	result.Success = len(result.Failures) == 0
	return result
}

func (r *Runner) relPath(docPath string) string {
	base := r.config.ProjectPath
	if base == "" {
		return docPath
	}
	rel, err := filepath.Rel(base, docPath)
	if err != nil {
		return docPath
	}
	return rel
}
