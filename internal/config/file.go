package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// mergeFile loads the YAML config file into c. When path is empty the
// default file name is tried and a missing file is not an error; an
// explicitly given path must exist.
func (c *Config) mergeFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = filepath.Join(c.ProjectPath, DefaultConfigFile)
	}

	// A .env next to the config keeps tokens out of the YAML itself.
	_ = godotenv.Load(filepath.Join(filepath.Dir(path), ".env"))

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expanded := os.ExpandEnv(string(data))

	var file Config
	if err := yaml.Unmarshal([]byte(expanded), &file); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	c.apply(&file)
	return nil
}

// apply copies the non-zero settings of file over c.
func (c *Config) apply(file *Config) {
	if file.ProjectPath != "" {
		c.ProjectPath = file.ProjectPath
	}
	if file.DocsPath != "" {
		c.DocsPath = file.DocsPath
	}
	if file.OutputDir != "" {
		c.OutputDir = file.OutputDir
	}
	if file.ResultsFile != "" {
		c.ResultsFile = file.ResultsFile
	}
	if file.HistoryFile != "" {
		c.HistoryFile = file.HistoryFile
	}
	if file.Workers > 0 {
		c.Workers = file.Workers
	}
	if file.MinimumDocuments > 0 {
		c.MinimumDocuments = file.MinimumDocuments
	}
	if file.KeepRuns > 0 {
		c.KeepRuns = file.KeepRuns
	}
	if len(file.PathsToIgnore) > 0 {
		c.PathsToIgnore = file.PathsToIgnore
	}
}

const starterConfig = `# dtp configuration
docs_path: docs
workers: 4

# Refuse to run when fewer documentation files are discovered.
# minimum_documents: 4

# Directories skipped while scanning for documentation.
# ignore:
#   - vendor
#   - node_modules
`

// Init writes a starter config file
func Init(path string, force bool) error {
	if path == "" {
		path = DefaultConfigFile
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
	}
	if err := os.WriteFile(path, []byte(starterConfig), 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
