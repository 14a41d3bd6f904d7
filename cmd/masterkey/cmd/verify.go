package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/masterkey/internal/report"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify written reports against their SHA256 checksums",
	Long: `Verify recomputes the SHA256 of every report found in the output
directory and compares it with the .sha256 file written next to it when
output.checksum is enabled. Reports that were never written are skipped.

Example:
  masterkey verify --output-dir ./reports`,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Fprintf(outputWriter, "\n=== Report Verification ===\n")
	fmt.Fprintf(outputWriter, "Output dir: %s\n\n", cfg.Output.Dir)

	checked, failed := 0, 0
	for _, name := range []string{cfg.Output.KeySpaceFile, cfg.Output.OneLevelFile, cfg.Output.TwoLevelFile} {
		path := filepath.Join(cfg.Output.Dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}

		result, err := report.VerifyChecksum(path)
		switch {
		case errors.Is(err, report.ErrNoChecksum):
			fmt.Fprintf(outputWriter, "⚠️  %s: no checksum file\n", name)
			continue
		case err != nil:
			fmt.Fprintf(outputWriter, "❌ %s: %v\n", name, err)
			failed++
		case !result.Match:
			fmt.Fprintf(outputWriter, "❌ %s: %s\n", name, result.ErrorMessage)
			failed++
		default:
			fmt.Fprintf(outputWriter, "✅ %s\n", name)
		}
		checked++
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d reports failed verification", failed, checked)
	}
	if checked == 0 {
		fmt.Fprintln(outputWriter, "No reports with checksums found")
	}
	return nil
}
