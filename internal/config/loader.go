package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Load reads configuration from the specified YAML file path on top of
// DefaultConfig.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Read the config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadFromViper creates a Config from an existing Viper instance.
// Useful for testing or when Viper is configured externally.
func LoadFromViper(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()

	// A configured master replaces the default pins instead of being
	// decoded over them.
	if v.IsSet("master") {
		cfg.Master = nil
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// ApplyOverrides applies CLI flag overrides to the configuration.
// Only non-zero/non-empty values are applied.
func (c *Config) ApplyOverrides(logLevel, logFormat string, master []int, maxDepth int, outputDir string) {
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFormat != "" {
		c.Logging.Format = logFormat
	}
	if len(master) > 0 {
		c.Master = append([]int(nil), master...)
	}
	if maxDepth > 0 {
		c.MaxDepth = maxDepth
	}
	if outputDir != "" {
		c.Output.Dir = outputDir
	}
}

// ApplyHierarchyOverrides applies the hierarchy-specific CLI flags.
func (c *Config) ApplyHierarchyOverrides(level, secondaryMasters int, includeUnassigned bool) {
	if level > 0 {
		c.Hierarchy.Level = level
	}
	if secondaryMasters > 0 {
		c.Hierarchy.SecondaryMasters = secondaryMasters
	}
	if includeUnassigned {
		c.Output.IncludeUnassigned = true
	}
}
