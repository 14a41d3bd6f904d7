package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var oneLevelCmd = &cobra.Command{
	Use:   "one-level",
	Short: "Write the one level master/child combination report",
	Long: `One-level lists every key the master can be combined with. For each
child key the report shows the pin stack (bottom + middle) that lets both the
master and the child operate the lock.

Example:
  masterkey one-level --master 1,2,3,4,5,6 --max-depth 7`,
	RunE: runOneLevel,
}

func init() {
	rootCmd.AddCommand(oneLevelCmd)
}

func runOneLevel(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	orch, log, err := newPlanner(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	result, err := orch.RunOneLevel()
	if err != nil {
		return fmt.Errorf("one level planning failed: %w", err)
	}

	return finishRun(cfg, result)
}
