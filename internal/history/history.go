// Package history records finished documentation runs in a local SQLite
// database so past results survive the results file being overwritten.
package history

import (
	"context"
	"time"

	"dtp/internal/domain"
)

// Run is one recorded documentation run.
type Run struct {
	ID              string
	Timestamp       time.Time
	TotalFiles      int
	PassedFiles     int
	FailedFiles     int
	CheckedRegions  int
	FailedRegions   int
	DurationSeconds float64
	Workers         int
}

// Recorder persists run summaries.
type Recorder interface {
	Record(ctx context.Context, meta domain.RunMeta) (string, error)
	Recent(ctx context.Context, n int) ([]Run, error)
	Close() error
}
