package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/gookit/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/masterkey/internal/config"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

const defaultConfigFile = "masterkey.yaml"

// CLI flags that override config file values
var (
	cfgFile   string
	logLevel  string
	logFormat string
	master    []int
	maxDepth  int
	outputDir string
	noColor   bool
)

var rootCmd = &cobra.Command{
	Use:   "masterkey",
	Short: "Master key system planner for pin tumbler locks",
	Long: `A CLI tool for planning master keyed pin tumbler lock systems.

For a master key and a maximum pin depth it enumerates every possible key,
works out the pin stack (bottom + middle pin) each child key needs so that
both the master and the child open the lock, and groups the keys into a
one or two level hierarchy.

Features:
  - Exhaustive key space enumeration in lexicographic order
  - One level master/child combination report
  - Two level hierarchy with sampled secondary master keys
  - Atomic report writes with optional SHA256 checksums`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		color.Enable = colorEnabled(noColor, os.Stdout.Fd())
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", defaultConfigFile,
		"Path to configuration file (defaults apply when the default file is absent)")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Key space overrides
	rootCmd.PersistentFlags().IntSliceVar(&master, "master", nil,
		"Override master key pin depths (e.g. 1,2,3,4,5,6)")
	rootCmd.PersistentFlags().IntVar(&maxDepth, "max-depth", 0,
		"Override maximum pin depth")

	// Output overrides
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "",
		"Override report output directory")

	// Console
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colored console output")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// CLIOverrides contains flag values that override config file settings
type CLIOverrides struct {
	LogLevel  string
	LogFormat string
	Master    []int
	MaxDepth  int
	OutputDir string
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() CLIOverrides {
	return CLIOverrides{
		LogLevel:  logLevel,
		LogFormat: logFormat,
		Master:    master,
		MaxDepth:  maxDepth,
		OutputDir: outputDir,
	}
}

// loadConfig reads the config file, applies the persistent CLI overrides and
// returns the result unvalidated. A missing default config file is not an
// error: the built-in defaults are used instead.
func loadConfig() (*config.Config, error) {
	configFile := GetConfigFile()

	cfg, err := config.Load(configFile)
	if err != nil {
		if configFile != defaultConfigFile || !isNotExist(configFile) {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = config.DefaultConfig()
	}

	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat,
		overrides.Master, overrides.MaxDepth, overrides.OutputDir)

	return cfg, nil
}

func isNotExist(path string) bool {
	_, err := os.Stat(path)
	return errors.Is(err, fs.ErrNotExist)
}

// colorEnabled reports whether console output on fd should be colored.
func colorEnabled(disabled bool, fd uintptr) bool {
	if disabled {
		return false
	}
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
