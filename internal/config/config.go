// Package config provides configuration structures and loading for masterkey.
package config

import (
	"github.com/dbsmedya/masterkey/internal/hierarchy"
	"github.com/dbsmedya/masterkey/internal/pin"
)

// Hierarchy levels.
const (
	LevelOne = 1 // master -> children
	LevelTwo = 2 // master -> secondary masters -> children
)

// Config represents the complete application configuration.
type Config struct {
	Master    []int           `yaml:"master" mapstructure:"master"`
	MaxDepth  int             `yaml:"max_depth" mapstructure:"max_depth"`
	Hierarchy HierarchyConfig `yaml:"hierarchy" mapstructure:"hierarchy"`
	Output    OutputConfig    `yaml:"output" mapstructure:"output"`
	Logging   LoggingConfig   `yaml:"logging" mapstructure:"logging"`
}

// HierarchyConfig selects the master key layout to generate.
type HierarchyConfig struct {
	Level            int `yaml:"level" mapstructure:"level"` // 1 or 2
	SecondaryMasters int `yaml:"secondary_masters" mapstructure:"secondary_masters"`
}

// OutputConfig represents report file settings.
type OutputConfig struct {
	Dir               string `yaml:"dir" mapstructure:"dir"`
	OneLevelFile      string `yaml:"one_level_file" mapstructure:"one_level_file"`
	TwoLevelFile      string `yaml:"two_level_file" mapstructure:"two_level_file"`
	KeySpaceFile      string `yaml:"key_space_file" mapstructure:"key_space_file"`
	IncludeUnassigned bool   `yaml:"include_unassigned" mapstructure:"include_unassigned"`
	Checksum          bool   `yaml:"checksum" mapstructure:"checksum"`         // write <file>.sha256 next to each report
	MetricsFile       string `yaml:"metrics_file" mapstructure:"metrics_file"` // Prometheus textfile, relative to Dir; empty disables
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Master:   []int{1, 2, 3, 4, 5, 6},
		MaxDepth: 7,
		Hierarchy: HierarchyConfig{
			Level:            LevelOne,
			SecondaryMasters: hierarchy.DefaultSecondaryMasters,
		},
		Output: OutputConfig{
			Dir:          ".",
			OneLevelFile: "1levelManageMap.txt",
			TwoLevelFile: "2levelManageMap.txt",
			KeySpaceFile: "data.txt",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// MasterKey builds the master key from the configured pin depths.
func (c *Config) MasterKey() (pin.Key, error) {
	return pin.NewKey(c.Master...)
}
