package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/masterkey/internal/pin"
)

var assemblyUnder string

var assemblyCmd = &cobra.Command{
	Use:   "assembly <pin>...",
	Short: "Show the pin stack for one child key",
	Long: `Assembly computes, pin by pin, the bottom and middle pin a lock needs so
that both the configured master key and the given child key operate it.

With --under, it also reports whether a secondary master key can operate the
same lock.

Example:
  masterkey assembly 2 1 4 3 6 5 --master 1,2,3,4,5,6
  masterkey assembly 2,1,4,3,6,5 --under 1,1,3,3,5,5`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAssembly,
}

func init() {
	assemblyCmd.Flags().StringVar(&assemblyUnder, "under", "",
		"Secondary master key to check against the child's pin stack")

	rootCmd.AddCommand(assemblyCmd)
}

func runAssembly(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	masterKey, err := cfg.MasterKey()
	if err != nil {
		return fmt.Errorf("invalid master key: %w", err)
	}

	child, err := parseChild(strings.Join(args, " "), masterKey.Len(), cfg.MaxDepth)
	if err != nil {
		return fmt.Errorf("invalid child key: %w", err)
	}

	asm := pin.ComputeAssembly(masterKey, child)
	printAssembly(masterKey, child, asm)

	if assemblyUnder == "" {
		return nil
	}

	secondary, err := parseChild(assemblyUnder, masterKey.Len(), cfg.MaxDepth)
	if err != nil {
		return fmt.Errorf("invalid secondary master key: %w", err)
	}

	fmt.Fprintln(outputWriter)
	printSection("Secondary Master")
	if pin.IsValidChild(secondary, child, asm) {
		fmt.Fprintf(outputWriter, "  %s can operate %s\n", secondary.Compact(), child.Compact())
	} else {
		fmt.Fprintf(outputWriter, "  %s cannot operate %s\n", secondary.Compact(), child.Compact())
	}

	return nil
}

// parseChild parses a key that must match the master's pin count and stay
// within maxDepth.
func parseChild(s string, pins, maxDepth int) (pin.Key, error) {
	key, err := pin.ParseKey(s)
	if err != nil {
		return pin.Key{}, err
	}
	if key.Len() != pins {
		return pin.Key{}, fmt.Errorf("key %s has %d pins, master has %d", key.Compact(), key.Len(), pins)
	}
	for i := 0; i < key.Len(); i++ {
		if key.Pin(i) > maxDepth {
			return pin.Key{}, fmt.Errorf("pin %d depth %d exceeds max depth %d", i+1, key.Pin(i), maxDepth)
		}
	}
	return key, nil
}
