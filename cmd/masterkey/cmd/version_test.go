package cmd

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionCommandStructure(t *testing.T) {
	assert.NotNil(t, versionCmd)
	assert.Equal(t, "version", versionCmd.Use)
	assert.NotEmpty(t, versionCmd.Short)
	assert.NotEmpty(t, versionCmd.Long)
	assert.NotNil(t, versionCmd.Run)
}

func TestRunVersion(t *testing.T) {
	originalVersion := Version
	originalCommit := Commit
	defer func() {
		Version = originalVersion
		Commit = originalCommit
	}()

	tests := []struct {
		name         string
		version      string
		commit       string
		wantInOutput []string
	}{
		{
			name:    "dev version",
			version: "0.0.1-dev",
			commit:  "unknown",
			wantInOutput: []string{
				"masterkey version 0.0.1-dev",
				"Commit: unknown",
				"Go version:",
				"OS/Arch:",
			},
		},
		{
			name:    "release version",
			version: "1.0.0",
			commit:  "abc123def456",
			wantInOutput: []string{
				"masterkey version 1.0.0",
				"Commit: abc123def456",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version = tt.version
			Commit = tt.commit

			var buf bytes.Buffer
			versionCmd.SetOut(&buf)

			runVersion(versionCmd, []string{})

			output := buf.String()
			for _, want := range tt.wantInOutput {
				assert.Contains(t, output, want)
			}
		})
	}
}

func TestVersionOutputFormat(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)

	runVersion(versionCmd, []string{})

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	assert.Len(t, lines, 5)

	assert.Contains(t, string(lines[2]), runtime.Version())
	assert.Contains(t, string(lines[3]), runtime.GOOS)
	assert.Contains(t, string(lines[3]), runtime.GOARCH)
	assert.Equal(t, "Limits: 12 pins, depth 255, 10000000 keys", string(bytes.TrimSpace(lines[4])))
}

func TestVersionIsAddedToRoot(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "version" {
			found = true
			break
		}
	}
	assert.True(t, found, "version command should be added to root command")
}
