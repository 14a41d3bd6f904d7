package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dbsmedya/masterkey/internal/keyspace"
	"github.com/dbsmedya/masterkey/internal/pin"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	var errors ValidationErrors

	// Validate key space
	if err := c.validateKeySpace(); err != nil {
		errors = append(errors, err...)
	}

	// Validate hierarchy settings
	if err := c.validateHierarchy(); err != nil {
		errors = append(errors, err...)
	}

	// Validate output settings
	if err := c.validateOutput(); err != nil {
		errors = append(errors, err...)
	}

	// Validate logging settings
	if err := c.validateLogging(); err != nil {
		errors = append(errors, err...)
	}

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateKeySpace() ValidationErrors {
	var errors ValidationErrors

	depthOK := true
	if c.MaxDepth < 1 || c.MaxDepth > pin.MaxDepth {
		depthOK = false
		errors = append(errors, ValidationError{
			Field:   "max_depth",
			Message: fmt.Sprintf("max_depth must be between 1 and %d", pin.MaxDepth),
		})
	}

	switch {
	case len(c.Master) == 0:
		errors = append(errors, ValidationError{
			Field:   "master",
			Message: "master key must have at least one pin",
		})
	case len(c.Master) > pin.MaxPins:
		errors = append(errors, ValidationError{
			Field:   "master",
			Message: fmt.Sprintf("master key has %d pins, at most %d are supported", len(c.Master), pin.MaxPins),
		})
	}

	for i, depth := range c.Master {
		if depth < 1 || (depthOK && depth > c.MaxDepth) {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("master[%d]", i),
				Message: fmt.Sprintf("pin depth %d is outside the enumerated range 1..%d", depth, c.MaxDepth),
			})
		}
	}

	if depthOK && len(c.Master) > 0 && len(c.Master) <= pin.MaxPins {
		if _, ok := keyspace.Size(len(c.Master), c.MaxDepth); !ok {
			errors = append(errors, ValidationError{
				Field: "max_depth",
				Message: fmt.Sprintf("%d^%d keys exceeds the limit of %d",
					c.MaxDepth, len(c.Master), keyspace.MaxKeys),
			})
		}
	}

	return errors
}

func (c *Config) validateHierarchy() ValidationErrors {
	var errors ValidationErrors

	if c.Hierarchy.Level != LevelOne && c.Hierarchy.Level != LevelTwo {
		errors = append(errors, ValidationError{
			Field:   "hierarchy.level",
			Message: "level must be 1 or 2",
		})
	}

	if c.Hierarchy.Level == LevelTwo && c.Hierarchy.SecondaryMasters <= 0 {
		errors = append(errors, ValidationError{
			Field:   "hierarchy.secondary_masters",
			Message: "secondary_masters must be positive",
		})
	}

	return errors
}

func (c *Config) validateOutput() ValidationErrors {
	var errors ValidationErrors

	if c.Output.Dir == "" {
		errors = append(errors, ValidationError{
			Field:   "output.dir",
			Message: "dir is required",
		})
	}

	files := []struct {
		field string
		name  string
	}{
		{"output.one_level_file", c.Output.OneLevelFile},
		{"output.two_level_file", c.Output.TwoLevelFile},
		{"output.key_space_file", c.Output.KeySpaceFile},
	}
	for _, f := range files {
		if f.name == "" {
			errors = append(errors, ValidationError{
				Field:   f.field,
				Message: "file name is required",
			})
			continue
		}
		if filepath.Base(f.name) != f.name {
			errors = append(errors, ValidationError{
				Field:   f.field,
				Message: "file name must not contain a directory; use output.dir",
			})
		}
	}

	if m := c.Output.MetricsFile; m != "" && filepath.Base(m) != m {
		errors = append(errors, ValidationError{
			Field:   "output.metrics_file",
			Message: "file name must not contain a directory; use output.dir",
		})
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be 'json' or 'text'",
		})
	}

	return errors
}
