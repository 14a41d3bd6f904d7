package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/masterkey/internal/config"
)

// saveFlags restores every persistent flag variable when the test ends.
func saveFlags(t *testing.T) {
	t.Helper()
	origCfgFile := cfgFile
	orig := GetCLIOverrides()
	origNoColor := noColor
	t.Cleanup(func() {
		cfgFile = origCfgFile
		logLevel = orig.LogLevel
		logFormat = orig.LogFormat
		master = orig.Master
		maxDepth = orig.MaxDepth
		outputDir = orig.OutputDir
		noColor = origNoColor
	})
}

func TestGetConfigFile(t *testing.T) {
	saveFlags(t)

	tests := []struct {
		name     string
		cfgValue string
		want     string
	}{
		{
			name:     "empty config file",
			cfgValue: "",
			want:     "",
		},
		{
			name:     "custom config file",
			cfgValue: "/path/to/custom.yaml",
			want:     "/path/to/custom.yaml",
		},
		{
			name:     "config file with spaces",
			cfgValue: "/path/to/my config.yaml",
			want:     "/path/to/my config.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfgFile = tt.cfgValue
			assert.Equal(t, tt.want, GetConfigFile())
		})
	}
}

func TestGetCLIOverrides(t *testing.T) {
	saveFlags(t)

	tests := []struct {
		name      string
		logLevel  string
		logFormat string
		master    []int
		maxDepth  int
		outputDir string
		want      CLIOverrides
	}{
		{
			name: "empty overrides",
			want: CLIOverrides{},
		},
		{
			name:      "all overrides set",
			logLevel:  "debug",
			logFormat: "json",
			master:    []int{2, 1, 4},
			maxDepth:  9,
			outputDir: "out",
			want: CLIOverrides{
				LogLevel:  "debug",
				LogFormat: "json",
				Master:    []int{2, 1, 4},
				MaxDepth:  9,
				OutputDir: "out",
			},
		},
		{
			name:     "partial overrides",
			logLevel: "warn",
			maxDepth: 3,
			want: CLIOverrides{
				LogLevel: "warn",
				MaxDepth: 3,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logLevel = tt.logLevel
			logFormat = tt.logFormat
			master = tt.master
			maxDepth = tt.maxDepth
			outputDir = tt.outputDir

			assert.Equal(t, tt.want, GetCLIOverrides())
		})
	}
}

func TestRootCommandStructure(t *testing.T) {
	assert.NotNil(t, rootCmd)
	assert.Equal(t, "masterkey", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.Equal(t, Version, rootCmd.Version)
}

func TestRootCommandPersistentFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()

	configFlag := flags.Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "c", configFlag.Shorthand)
	assert.Equal(t, "masterkey.yaml", configFlag.DefValue)

	for _, name := range []string{"log-level", "log-format", "output-dir"} {
		flag := flags.Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, "", flag.DefValue, name)
	}

	noColorFlag := flags.Lookup("no-color")
	require.NotNil(t, noColorFlag)
	assert.Equal(t, "false", noColorFlag.DefValue)

	masterFlag := flags.Lookup("master")
	require.NotNil(t, masterFlag)
	assert.Equal(t, "intSlice", masterFlag.Value.Type())

	depthFlag, err := flags.GetInt("max-depth")
	assert.NoError(t, err)
	assert.Equal(t, 0, depthFlag)
}

func TestColorEnabled(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "console")
	require.NoError(t, err)
	defer f.Close()

	// A regular file is never a terminal.
	assert.False(t, colorEnabled(false, f.Fd()))
	assert.False(t, colorEnabled(true, f.Fd()))
}

func TestRootCommandSubcommands(t *testing.T) {
	commands := rootCmd.Commands()
	commandNames := make([]string, len(commands))
	for i, cmd := range commands {
		commandNames[i] = cmd.Name()
	}

	expectedCommands := []string{
		"assembly",
		"keyspace",
		"one-level",
		"run",
		"two-level",
		"validate",
		"verify",
		"version",
	}

	for _, expected := range expectedCommands {
		assert.Contains(t, commandNames, expected, "Expected command %s not found", expected)
	}
}

func TestLoadConfig_MissingDefaultFileUsesDefaults(t *testing.T) {
	saveFlags(t)
	cfgFile = filepath.Join(t.TempDir(), "masterkey.yaml")

	// Only the literal default path may be absent.
	_, err := loadConfig()
	assert.Error(t, err)

	t.Chdir(t.TempDir())

	cfgFile = defaultConfigFile
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestLoadConfig_FileAndOverrides(t *testing.T) {
	saveFlags(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "plan.yaml")
	yaml := `master: [3, 1, 2]
max_depth: 4
hierarchy:
  level: 2
  secondary_masters: 5
logging:
  level: warn
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfgFile = path
	logLevel = "debug"
	maxDepth = 6
	outputDir = dir

	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, []int{3, 1, 2}, cfg.Master)
	assert.Equal(t, 6, cfg.MaxDepth)
	assert.Equal(t, config.LevelTwo, cfg.Hierarchy.Level)
	assert.Equal(t, 5, cfg.Hierarchy.SecondaryMasters)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, dir, cfg.Output.Dir)
}
