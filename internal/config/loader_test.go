package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestLoad(t *testing.T) {
	// Create a temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test.yaml")

	configContent := `
master: [2, 3, 2, 1, 5, 4]
max_depth: 6

hierarchy:
  level: 2
  secondary_masters: 25

output:
  dir: /tmp/reports
  two_level_file: two.txt
  include_unassigned: true
  checksum: true

logging:
  level: debug
  format: json
  output: stdout
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify key space config
	if !reflect.DeepEqual(cfg.Master, []int{2, 3, 2, 1, 5, 4}) {
		t.Errorf("expected master [2 3 2 1 5 4], got %v", cfg.Master)
	}
	if cfg.MaxDepth != 6 {
		t.Errorf("expected max_depth 6, got %d", cfg.MaxDepth)
	}

	// Verify hierarchy config
	if cfg.Hierarchy.Level != LevelTwo {
		t.Errorf("expected level 2, got %d", cfg.Hierarchy.Level)
	}
	if cfg.Hierarchy.SecondaryMasters != 25 {
		t.Errorf("expected secondary_masters 25, got %d", cfg.Hierarchy.SecondaryMasters)
	}

	// Verify output config, unset fields keep defaults
	if cfg.Output.Dir != "/tmp/reports" {
		t.Errorf("expected output dir '/tmp/reports', got %s", cfg.Output.Dir)
	}
	if cfg.Output.TwoLevelFile != "two.txt" {
		t.Errorf("expected two_level_file 'two.txt', got %s", cfg.Output.TwoLevelFile)
	}
	if cfg.Output.OneLevelFile != "1levelManageMap.txt" {
		t.Errorf("expected default one_level_file, got %s", cfg.Output.OneLevelFile)
	}
	if !cfg.Output.IncludeUnassigned || !cfg.Output.Checksum {
		t.Errorf("expected include_unassigned and checksum enabled")
	}

	// Verify logging config
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected logging level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected logging format 'json', got %s", cfg.Logging.Format)
	}
}

func TestLoadShorterMaster(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "short.yaml")

	if err := os.WriteFile(configPath, []byte("master: [3, 1, 2]\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if !reflect.DeepEqual(cfg.Master, []int{3, 1, 2}) {
		t.Errorf("expected master [3 1 2], got %v", cfg.Master)
	}
	if cfg.MaxDepth != 7 {
		t.Errorf("expected default max_depth 7, got %d", cfg.MaxDepth)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
	if !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadFromViper(t *testing.T) {
	v := viper.New()
	v.Set("max_depth", 5)
	v.Set("hierarchy.level", 2)

	cfg, err := LoadFromViper(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxDepth != 5 {
		t.Errorf("expected max_depth 5, got %d", cfg.MaxDepth)
	}
	if cfg.Hierarchy.Level != 2 {
		t.Errorf("expected level 2, got %d", cfg.Hierarchy.Level)
	}
	if cfg.Hierarchy.SecondaryMasters != 100 {
		t.Errorf("expected default secondary_masters 100, got %d", cfg.Hierarchy.SecondaryMasters)
	}
}

func TestApplyOverrides(t *testing.T) {
	tests := []struct {
		name      string
		logLevel  string
		logFormat string
		master    []int
		maxDepth  int
		outputDir string
		check     func(t *testing.T, cfg *Config)
	}{
		{
			name: "no overrides keeps defaults",
			check: func(t *testing.T, cfg *Config) {
				if !reflect.DeepEqual(cfg, DefaultConfig()) {
					t.Errorf("expected defaults to be untouched, got %+v", cfg)
				}
			},
		},
		{
			name:      "all overrides",
			logLevel:  "debug",
			logFormat: "json",
			master:    []int{7, 7},
			maxDepth:  8,
			outputDir: "out",
			check: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
					t.Errorf("logging overrides not applied: %+v", cfg.Logging)
				}
				if !reflect.DeepEqual(cfg.Master, []int{7, 7}) {
					t.Errorf("expected master [7 7], got %v", cfg.Master)
				}
				if cfg.MaxDepth != 8 {
					t.Errorf("expected max_depth 8, got %d", cfg.MaxDepth)
				}
				if cfg.Output.Dir != "out" {
					t.Errorf("expected output dir 'out', got %s", cfg.Output.Dir)
				}
			},
		},
		{
			name:     "non-positive depth ignored",
			maxDepth: -1,
			check: func(t *testing.T, cfg *Config) {
				if cfg.MaxDepth != 7 {
					t.Errorf("expected max_depth 7, got %d", cfg.MaxDepth)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.ApplyOverrides(tt.logLevel, tt.logFormat, tt.master, tt.maxDepth, tt.outputDir)
			tt.check(t, cfg)
		})
	}
}

func TestApplyOverridesCopiesMaster(t *testing.T) {
	master := []int{1, 1}
	cfg := DefaultConfig()
	cfg.ApplyOverrides("", "", master, 0, "")

	master[0] = 9
	if cfg.Master[0] != 1 {
		t.Errorf("config master should not alias the flag slice")
	}
}

func TestApplyHierarchyOverrides(t *testing.T) {
	cfg := DefaultConfig()

	cfg.ApplyHierarchyOverrides(0, 0, false)
	if cfg.Hierarchy.Level != 1 || cfg.Hierarchy.SecondaryMasters != 100 || cfg.Output.IncludeUnassigned {
		t.Errorf("zero overrides should not change config: %+v", cfg.Hierarchy)
	}

	cfg.ApplyHierarchyOverrides(2, 10, true)
	if cfg.Hierarchy.Level != 2 {
		t.Errorf("expected level 2, got %d", cfg.Hierarchy.Level)
	}
	if cfg.Hierarchy.SecondaryMasters != 10 {
		t.Errorf("expected secondary_masters 10, got %d", cfg.Hierarchy.SecondaryMasters)
	}
	if !cfg.Output.IncludeUnassigned {
		t.Error("expected include_unassigned to be enabled")
	}
}
