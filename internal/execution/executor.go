package execution

import (
	"context"
	"time"

	"dtp/internal/domain"
	"dtp/internal/ui"
)

// Executor checks documentation files and returns results
type Executor interface {
	Execute(ctx context.Context, docs []string) ([]domain.FileResult, time.Duration, error)
	ExecuteWithOptions(ctx context.Context, docs []string, failFast bool) ([]domain.FileResult, time.Duration, error)
	SetProgress(progress *ui.ProgressBar)
}
