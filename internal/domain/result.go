package domain

import "time"

// FileResult represents the result of checking one documentation file
type FileResult struct {
	DocPath  string        // Path to the documentation file that was checked
	Success  bool          // Whether every region passed
	Regions  int           // Number of regions checked
	Failures []Failure     // Failed regions, if any
	Error    error         // Error if the file could not be checked at all
	Duration time.Duration // Time taken to check
}

// RunMeta contains metadata about a documentation run
type RunMeta struct {
	TotalFiles      int     `json:"total_files"`
	FailedFiles     int     `json:"failed_files"`
	PassedFiles     int     `json:"passed_files"`
	CheckedRegions  int     `json:"checked_regions"`
	FailedRegions   int     `json:"failed_regions"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Workers         int     `json:"workers"`
	Timestamp       string  `json:"timestamp"`
}

// NewRunMeta summarizes a finished run
func NewRunMeta(results []FileResult, failures []Failure, duration time.Duration, workers int) RunMeta {
	passed := 0
	failed := 0
	regions := 0
	for _, r := range results {
		regions += r.Regions
		if r.Success {
			passed++
		} else {
			failed++
		}
	}

	return RunMeta{
		TotalFiles:      len(results),
		FailedFiles:     failed,
		PassedFiles:     passed,
		CheckedRegions:  regions,
		FailedRegions:   len(failures),
		Duration:        duration.String(),
		DurationSeconds: duration.Seconds(),
		Workers:         workers,
		Timestamp:       time.Now().Format(time.RFC3339),
	}
}

// RunOutput is the complete output structure for a documentation run
type RunOutput struct {
	Meta    RunMeta   `json:"meta"`
	Details []Failure `json:"details"`
}
