package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	twoLevelSecondaries       int
	twoLevelIncludeUnassigned bool
)

var twoLevelCmd = &cobra.Command{
	Use:   "two-level",
	Short: "Write the two level master/secondary/child hierarchy report",
	Long: `Two-level samples evenly spaced keys from the key space as secondary
master keys and assigns every remaining key to the first secondary master
that can be combined with it.

Keys that no secondary master can be combined with are reported as
unassigned. They are counted in the summary and, with --include-unassigned,
listed at the end of the report.

Example:
  masterkey two-level --master 1,2,3,4,5,6 --max-depth 7 --secondaries 100`,
	RunE: runTwoLevel,
}

func init() {
	twoLevelCmd.Flags().IntVarP(&twoLevelSecondaries, "secondaries", "n", 0,
		"Override number of secondary master keys")
	twoLevelCmd.Flags().BoolVar(&twoLevelIncludeUnassigned, "include-unassigned", false,
		"List keys without a secondary master at the end of the report")

	rootCmd.AddCommand(twoLevelCmd)
}

func runTwoLevel(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.ApplyHierarchyOverrides(0, twoLevelSecondaries, twoLevelIncludeUnassigned)

	orch, log, err := newPlanner(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	result, err := orch.RunTwoLevel()
	if err != nil {
		return fmt.Errorf("two level planning failed: %w", err)
	}

	return finishRun(cfg, result)
}
