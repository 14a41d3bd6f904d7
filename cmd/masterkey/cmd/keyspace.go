package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var keySpaceCmd = &cobra.Command{
	Use:   "keyspace",
	Short: "Write every key in the key space with its pin stack",
	Long: `Keyspace enumerates every key for the master's pin count and max depth
and writes each one, the master included, with the pin stack computed
against the master.

Example:
  masterkey keyspace --master 1,2,3 --max-depth 5 --output-dir ./out`,
	RunE: runKeySpace,
}

func init() {
	rootCmd.AddCommand(keySpaceCmd)
}

func runKeySpace(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	orch, log, err := newPlanner(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	result, err := orch.DumpKeySpace()
	if err != nil {
		return fmt.Errorf("key space dump failed: %w", err)
	}

	return finishRun(cfg, result)
}
