package cli

import (
	"time"

	"dtp/internal/config"
)

// Flags holds command-line flags
type Flags struct {
	Workers       int
	ConfigPath    string
	DocsPath      string
	Filter        string
	FailFast      bool
	Failed        bool
	RerunFailures bool
	OpenFailures  bool
	Partition     string
	Regions       bool
	Limit         int
	Force         bool
	Debounce      time.Duration
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Workers:       f.Workers,
		ConfigPath:    f.ConfigPath,
		DocsPath:      f.DocsPath,
		Filter:        f.Filter,
		FailFast:      f.FailFast,
		Failed:        f.Failed,
		RerunFailures: f.RerunFailures,
		OpenFailures:  f.OpenFailures,
		Partition:     f.Partition,
		Regions:       f.Regions,
		Limit:         f.Limit,
		Force:         f.Force,
		Debounce:      f.Debounce,
	}
}
