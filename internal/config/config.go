package config

import (
	"path/filepath"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string `yaml:"project_path"`
	DocsPath    string `yaml:"docs_path"`

	// Output settings
	OutputDir   string `yaml:"output_dir"`
	ResultsFile string `yaml:"results_file"`
	HistoryFile string `yaml:"history_file"`

	// Execution settings
	Workers int `yaml:"workers"`

	// Guard against misresolved docs paths; zero disables the check
	MinimumDocuments int `yaml:"minimum_documents"`

	// Number of runs the history database keeps
	KeepRuns int `yaml:"keep_runs"`

	// Paths to ignore when scanning
	PathsToIgnore []string `yaml:"ignore"`

	// Command flags
	Flags Flags `yaml:"-"`
}

// Flags holds command-line flags
type Flags struct {
	Workers       int
	Filter        string
	DocsPath      string
	ConfigPath    string
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

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath: DefaultProjectPath,
		DocsPath:    DefaultDocsPath,
		OutputDir:   DefaultOutputDir,
		ResultsFile: DefaultResultsFile,
		HistoryFile: DefaultHistoryFile,
		Workers:     DefaultWorkers,
		KeepRuns:    DefaultKeepRuns,
		Flags:       Flags{Workers: DefaultWorkers},
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// Load creates a config, merges the optional config file and applies
// flag overrides
func Load(flags Flags) (*Config, error) {
	cfg := New()
	if err := cfg.Merge(flags); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Merge applies the optional config file and flag overrides to c.
// Precedence is defaults, then file, then flags.
func (c *Config) Merge(flags Flags) error {
	c.Flags = flags

	if err := c.mergeFile(flags.ConfigPath); err != nil {
		return err
	}

	// Apply flag overrides
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	return nil
}

// GetDocsPath returns the docs path, using flag if provided
func (c *Config) GetDocsPath() string {
	path := c.DocsPath
	if c.Flags.DocsPath != "" {
		path = c.Flags.DocsPath
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.ProjectPath, path)
}

// GetOutputPath returns the full path to the results JSON file. Resolves
// to an absolute path so run and failures always read/write the same
// file regardless of cwd.
func (c *Config) GetOutputPath() string {
	return c.absOutput(c.ResultsFile)
}

// GetHistoryPath returns the full path to the history database.
func (c *Config) GetHistoryPath() string {
	return c.absOutput(c.HistoryFile)
}

func (c *Config) absOutput(name string) string {
	p := filepath.Join(c.ProjectPath, c.OutputDir, name)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
