package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dbsmedya/masterkey/internal/config"
	"github.com/dbsmedya/masterkey/internal/keyspace"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration without generating any report",
	Long: `Validate checks the configuration file and CLI overrides without
enumerating the key space or writing any report.

Checks performed:
  - Master key pin count and depths
  - Max depth range and key space size limit
  - Hierarchy level and secondary master count
  - Output directory and report file names
  - Logging level and format

Example:
  masterkey validate --config masterkey.yaml
  masterkey validate --master 1,2,3 --max-depth 5 --show`,
	RunE: runValidate,
}

var validateShow bool

func init() {
	validateCmd.Flags().BoolVar(&validateShow, "show", false,
		"Print the effective configuration as YAML")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Fprintf(outputWriter, "\n=== Configuration Validation ===\n")
	fmt.Fprintf(outputWriter, "Config file: %s\n", GetConfigFile())

	if err := cfg.Validate(); err != nil {
		var verrs config.ValidationErrors
		if errors.As(err, &verrs) {
			for _, v := range verrs {
				fmt.Fprintf(outputWriter, "❌ %s\n", v.Error())
			}
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}

	masterKey, _ := cfg.MasterKey()
	size, _ := keyspace.Size(masterKey.Len(), cfg.MaxDepth)

	fmt.Fprintf(outputWriter, "Master key: %s\n", masterKey)
	fmt.Fprintf(outputWriter, "Key space: %d keys (%d^%d)\n", size, cfg.MaxDepth, masterKey.Len())
	fmt.Fprintf(outputWriter, "Hierarchy level: %d\n", cfg.Hierarchy.Level)
	if cfg.Hierarchy.Level == config.LevelTwo {
		fmt.Fprintf(outputWriter, "Secondary masters: %d\n", cfg.Hierarchy.SecondaryMasters)
	}
	fmt.Fprintf(outputWriter, "Output dir: %s\n\n", cfg.Output.Dir)

	if validateShow {
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to render configuration: %w", err)
		}
		fmt.Fprintln(outputWriter, "--- Effective configuration ---")
		fmt.Fprintf(outputWriter, "%s\n", out)
	}

	fmt.Fprintln(outputWriter, "✅ Configuration is valid")
	return nil
}
