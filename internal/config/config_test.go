package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig_GetDocsPath(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{
			name: "default path",
			config: &Config{
				ProjectPath: ".",
				DocsPath:    "docs",
				Flags:       Flags{},
			},
			expected: "docs",
		},
		{
			name: "with docs path flag",
			config: &Config{
				ProjectPath: "/project",
				DocsPath:    "docs",
				Flags: Flags{
					DocsPath: "manual",
				},
			},
			expected: "/project/manual",
		},
		{
			name: "absolute docs path",
			config: &Config{
				ProjectPath: "/project",
				DocsPath:    "docs",
				Flags: Flags{
					DocsPath: "/absolute/path",
				},
			},
			expected: "/absolute/path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.config.GetDocsPath()
			if result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.DocsPath != DefaultDocsPath {
		t.Errorf("expected DocsPath %s, got %s", DefaultDocsPath, cfg.DocsPath)
	}

	if cfg.Workers != DefaultWorkers {
		t.Errorf("expected Workers %d, got %d", DefaultWorkers, cfg.Workers)
	}

	if len(cfg.PathsToIgnore) != len(DefaultPathsToIgnore) {
		t.Errorf("expected %d paths to ignore, got %d", len(DefaultPathsToIgnore), len(cfg.PathsToIgnore))
	}
}

func TestLoad(t *testing.T) {
	t.Run("flags override defaults", func(t *testing.T) {
		cfg, err := Load(Flags{Workers: 8})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Workers != 8 {
			t.Errorf("expected 8 workers, got %d", cfg.Workers)
		}
	})

	t.Run("zero workers flag keeps default", func(t *testing.T) {
		cfg, err := Load(Flags{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Workers != DefaultWorkers {
			t.Errorf("expected %d workers, got %d", DefaultWorkers, cfg.Workers)
		}
	})

	t.Run("missing explicit config file is an error", func(t *testing.T) {
		if _, err := Load(Flags{ConfigPath: "/no/such/dtp.yaml"}); err == nil {
			t.Error("expected an error for a missing explicit config file")
		}
	})
}

func TestConfigFile(t *testing.T) {
	dir, err := os.MkdirTemp("", "dtp-config")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "dtp.yaml")
	content := "docs_path: manual\nworkers: 2\nkeep_runs: 5\nignore:\n  - tmp\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	t.Run("file settings are merged", func(t *testing.T) {
		cfg, err := Load(Flags{ConfigPath: path})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.DocsPath != "manual" {
			t.Errorf("expected docs path %q, got %q", "manual", cfg.DocsPath)
		}
		if cfg.Workers != 2 {
			t.Errorf("expected 2 workers, got %d", cfg.Workers)
		}
		if cfg.KeepRuns != 5 {
			t.Errorf("expected keep_runs 5, got %d", cfg.KeepRuns)
		}
		if len(cfg.PathsToIgnore) != 1 || cfg.PathsToIgnore[0] != "tmp" {
			t.Errorf("unexpected ignore list %v", cfg.PathsToIgnore)
		}
	})

	t.Run("flags win over file settings", func(t *testing.T) {
		cfg, err := Load(Flags{ConfigPath: path, Workers: 6})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Workers != 6 {
			t.Errorf("expected 6 workers, got %d", cfg.Workers)
		}
	})

	t.Run("environment variables expand", func(t *testing.T) {
		t.Setenv("DTP_TEST_DOCS", "expanded-docs")
		envPath := filepath.Join(dir, "env.yaml")
		if err := os.WriteFile(envPath, []byte("docs_path: ${DTP_TEST_DOCS}\n"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		cfg, err := Load(Flags{ConfigPath: envPath})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.DocsPath != "expanded-docs" {
			t.Errorf("expected expanded docs path, got %q", cfg.DocsPath)
		}
	})
}

func TestInit(t *testing.T) {
	dir, err := os.MkdirTemp("", "dtp-config-init")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "dtp.yaml")

	if err := Init(path, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file to exist: %v", err)
	}

	if err := Init(path, false); err == nil {
		t.Error("expected an error when the file already exists")
	}
	if err := Init(path, true); err != nil {
		t.Errorf("expected force to overwrite, got %v", err)
	}
}
