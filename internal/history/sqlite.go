package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"dtp/internal/domain"
)

// SQLiteStore implements Recorder on a single SQLite file.
type SQLiteStore struct {
	db   *sql.DB
	keep int
}

// Open opens (or creates) the history database at path. keep bounds how
// many runs are retained; zero or less keeps everything. Use ":memory:"
// for an in-memory database.
func Open(path string, keep int) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	store := &SQLiteStore{db: db, keep: keep}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize history schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at INTEGER NOT NULL,
		total_files INTEGER NOT NULL,
		passed_files INTEGER NOT NULL,
		failed_files INTEGER NOT NULL,
		checked_regions INTEGER NOT NULL,
		failed_regions INTEGER NOT NULL,
		duration_seconds REAL NOT NULL,
		workers INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record stores one run summary and returns its ID.
func (s *SQLiteStore) Record(ctx context.Context, meta domain.RunMeta) (string, error) {
	id := uuid.NewString()
	createdAt := time.Now()
	if ts, err := time.Parse(time.RFC3339, meta.Timestamp); err == nil {
		createdAt = ts
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, total_files, passed_files, failed_files,
			checked_regions, failed_regions, duration_seconds, workers)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, createdAt.Unix(), meta.TotalFiles, meta.PassedFiles, meta.FailedFiles,
		meta.CheckedRegions, meta.FailedRegions, meta.DurationSeconds, meta.Workers,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	if err := s.prune(ctx); err != nil {
		return "", err
	}
	return id, nil
}

// Recent returns up to n runs, newest first.
func (s *SQLiteStore) Recent(ctx context.Context, n int) ([]Run, error) {
	if n <= 0 {
		n = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, total_files, passed_files, failed_files,
			checked_regions, failed_regions, duration_seconds, workers
		FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt int64
		if err := rows.Scan(&r.ID, &createdAt, &r.TotalFiles, &r.PassedFiles, &r.FailedFiles,
			&r.CheckedRegions, &r.FailedRegions, &r.DurationSeconds, &r.Workers); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.Timestamp = time.Unix(createdAt, 0)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// prune drops the oldest runs beyond the keep bound.
func (s *SQLiteStore) prune(ctx context.Context) error {
	if s.keep <= 0 {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM runs WHERE id NOT IN (
			SELECT id FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?
		)`, s.keep)
	if err != nil {
		return fmt.Errorf("prune runs: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
