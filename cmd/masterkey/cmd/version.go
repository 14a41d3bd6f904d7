package cmd

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/masterkey/internal/keyspace"
	"github.com/dbsmedya/masterkey/internal/pin"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Display version information, build details and key space limits.`,
	Run:   runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) {
	cmd.Printf("masterkey version %s\n", Version)
	cmd.Printf("  Commit: %s\n", Commit)
	cmd.Printf("  Go version: %s\n", runtime.Version())
	cmd.Printf("  OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	cmd.Printf("  Limits: %d pins, depth %d, %d keys\n", pin.MaxPins, pin.MaxDepth, keyspace.MaxKeys)
}
