package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/masterkey/internal/config"
	"github.com/dbsmedya/masterkey/internal/logger"
	"github.com/dbsmedya/masterkey/internal/metrics"
	"github.com/dbsmedya/masterkey/internal/planner"
	"github.com/dbsmedya/masterkey/internal/report"
)

var (
	runLevel        int
	runSkipKeySpace bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Enumerate the key space and write the configured hierarchy report",
	Long: `Run performs a complete planning pass for the configured master key.

The run process follows these steps:
  1. Enumerate every key for the master's pin count and max depth
  2. Write the key space dump (every key with its pin stack)
  3. Build the hierarchy selected by hierarchy.level (or --level)
  4. Write the hierarchy report and print a summary

Example:
  masterkey run --config masterkey.yaml
  masterkey run --master 1,2,3,4,5,6 --max-depth 7 --level 2`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().IntVarP(&runLevel, "level", "l", 0,
		"Override hierarchy level (1 or 2)")
	runCmd.Flags().BoolVar(&runSkipKeySpace, "skip-keyspace", false,
		"Do not write the key space dump")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.ApplyHierarchyOverrides(runLevel, 0, false)

	orch, log, err := newPlanner(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	var results []*planner.Result

	if !runSkipKeySpace {
		dump, err := orch.DumpKeySpace()
		if err != nil {
			return fmt.Errorf("key space dump failed: %w", err)
		}
		results = append(results, dump)
	}

	result, err := orch.Run()
	if err != nil {
		return fmt.Errorf("planning failed: %w", err)
	}
	results = append(results, result)

	return finishRun(cfg, results...)
}

// newPlanner validates cfg, builds the logger and a file-backed orchestrator
// with an enumerated key space.
func newPlanner(cfg *config.Config) (*planner.Orchestrator, *logger.Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	log.Infow("Starting planning",
		"config", GetConfigFile(),
		"output_dir", cfg.Output.Dir,
	)

	sink := report.NewFileSink(cfg.Output.Dir, cfg.Output.Checksum)

	orch, err := planner.NewOrchestrator(cfg, sink, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create orchestrator: %w", err)
	}

	if err := orch.Initialize(); err != nil {
		return nil, nil, fmt.Errorf("orchestrator initialization failed: %w", err)
	}

	return orch, log, nil
}

// finishRun writes the metrics textfile when one is configured and prints
// the console summary.
func finishRun(cfg *config.Config, results ...*planner.Result) error {
	if cfg.Output.MetricsFile != "" {
		recorder := metrics.NewRecorder()
		for _, result := range results {
			recorder.Observe(result)
		}

		sink := report.NewFileSink(cfg.Output.Dir, false)
		if _, err := sink.Write(cfg.Output.MetricsFile, recorder.Render); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}

	printSummary(cfg, results...)
	return nil
}
