package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dtp/internal/domain"
)

// Save writes run results and failures to the configured JSON output
// file and returns the computed run summary.
func (s *JSONStorage) Save(results []domain.FileResult, failures []domain.Failure, duration time.Duration, workers int) (domain.RunMeta, error) {
	output := domain.RunOutput{
		Meta:    domain.NewRunMeta(results, failures, duration, workers),
		Details: failures,
	}
	if err := s.SaveOutput(&output); err != nil {
		return domain.RunMeta{}, err
	}
	return output.Meta, nil
}

// Load reads the last run results from the configured JSON output file.
func (s *JSONStorage) Load() (*domain.RunOutput, error) {
	path := s.cfg.GetOutputPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	var output domain.RunOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return &output, nil
}

// SaveOutput writes the full output to the configured JSON file (e.g.
// after re-running selected files).
func (s *JSONStorage) SaveOutput(output *domain.RunOutput) error {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	path := s.cfg.GetOutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}
