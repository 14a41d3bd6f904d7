package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"

	"github.com/dbsmedya/masterkey/internal/config"
	"github.com/dbsmedya/masterkey/internal/pin"
	"github.com/dbsmedya/masterkey/internal/planner"
)

// outputWriter is used for printing output, can be overridden in tests
var outputWriter io.Writer = os.Stdout

// setOutputWriter sets the output writer (used for testing)
func setOutputWriter(w io.Writer) {
	outputWriter = w
}

// resetOutputWriter resets output to stdout (used for testing)
func resetOutputWriter() {
	outputWriter = os.Stdout
}

const labelWidth = 16

// printSummary prints the key space overview next to one block per result.
func printSummary(cfg *config.Config, results ...*planner.Result) {
	if len(results) == 0 {
		return
	}
	first := results[0]

	keySpaceLines := []string{
		"[ Key Space ]",
		strings.Repeat("-", 13),
		field("Master:", first.Master.String()),
		field("Pins:", fmt.Sprintf("%d", first.Master.Len())),
		field("Max Depth:", fmt.Sprintf("%d", cfg.MaxDepth)),
		field("Keys:", fmt.Sprintf("%d", first.KeySpaceSize)),
		field("Child Keys:", fmt.Sprintf("%d", first.TotalChildren)),
		field("Output Dir:", cfg.Output.Dir),
	}
	if first.RunID != "" {
		keySpaceLines = append(keySpaceLines, field("Run ID:", first.RunID))
	}

	var resultLines []string
	for i, result := range results {
		if i > 0 {
			resultLines = append(resultLines, "")
		}
		resultLines = append(resultLines, resultBlock(result)...)
	}

	fmt.Fprintln(outputWriter)
	printHeader("Master Key Plan: %s", first.Master.Compact())
	fmt.Fprintln(outputWriter)
	printSideBySide(strings.Join(keySpaceLines, "\n"), resultLines, 4)
}

func resultBlock(result *planner.Result) []string {
	var title string
	switch result.Level {
	case config.LevelOne:
		title = "[ One Level ]"
	case config.LevelTwo:
		title = "[ Two Level ]"
	default:
		title = "[ Key Space Dump ]"
	}

	lines := []string{title, strings.Repeat("-", len(title))}

	if result.Level == config.LevelTwo {
		secondaries := fmt.Sprintf("%d", result.SecondaryMasters)
		if result.Clamped {
			secondaries = color.Yellow.Sprintf("%s (clamped, every child selected)", secondaries)
		}
		lines = append(lines,
			field("Secondaries:", secondaries),
			field("Remaining Pool:", fmt.Sprintf("%d", result.RemainingPool)),
		)
	}

	if result.Level != 0 {
		unassigned := color.Green.Sprintf("%d", result.Unassigned)
		if result.Unassigned > 0 {
			unassigned = color.Yellow.Sprintf("%d", result.Unassigned)
		}
		lines = append(lines,
			field("Assigned:", fmt.Sprintf("%d", result.Assigned)),
			field("Unassigned:", unassigned),
		)
	}

	return append(lines,
		field("Report:", result.ReportPath),
		field("Duration:", result.Duration.String()),
	)
}

// printAssembly prints the per-pin split of child against master.
func printAssembly(master, child pin.Key, asm pin.Assembly) {
	printHeader("Pin Stack: %s", child.Compact())
	fmt.Fprintln(outputWriter)

	printSection("Pins")
	fmt.Fprintf(outputWriter, "  %-5s %-7s %-7s %-7s %s\n", "Pin", "Master", "Child", "Bottom", "Middle")
	for i, p := range asm {
		fmt.Fprintf(outputWriter, "  %-5d %-7d %-7d %-7d %d\n",
			i+1, master.Pin(i), child.Pin(i), p.Bottom, p.Middle)
	}

	fmt.Fprintln(outputWriter)
	printSection("Assembly")
	fmt.Fprintf(outputWriter, "  %s  |  %s\n", child.Compact(), asm)
}

// field left-aligns label in a fixed-width column followed by value.
func field(label, value string) string {
	return runewidth.FillRight(label, labelWidth) + value
}

// printHeader prints a formatted header
func printHeader(format string, args ...interface{}) {
	title := fmt.Sprintf(format, args...)
	width := visualWidth(title) + 4
	fmt.Fprintln(outputWriter, strings.Repeat("=", width))
	fmt.Fprintf(outputWriter, "  %s\n", color.Bold.Sprint(title))
	fmt.Fprintln(outputWriter, strings.Repeat("=", width))
}

// printSection prints a section header
func printSection(title string) {
	fmt.Fprintf(outputWriter, "[%s]\n", title)
	fmt.Fprintln(outputWriter, strings.Repeat("-", visualWidth(title)+2))
}

// printSideBySide prints two blocks of text side by side
// padding is the minimum spaces between the two columns
func printSideBySide(leftContent string, rightLines []string, padding int) {
	leftLines := strings.Split(strings.TrimRight(leftContent, "\n"), "\n")

	leftWidth := 0
	for _, line := range leftLines {
		if w := visualWidth(line); w > leftWidth {
			leftWidth = w
		}
	}

	maxHeight := len(leftLines)
	if len(rightLines) > maxHeight {
		maxHeight = len(rightLines)
	}

	for i := 0; i < maxHeight; i++ {
		leftPart := ""
		rightPart := ""
		if i < len(leftLines) {
			leftPart = leftLines[i]
		}
		if i < len(rightLines) {
			rightPart = rightLines[i]
		}

		fmt.Fprint(outputWriter, leftPart)
		if rightPart == "" {
			fmt.Fprintln(outputWriter)
			continue
		}

		spacesNeeded := leftWidth - visualWidth(leftPart) + padding
		if spacesNeeded > 0 {
			fmt.Fprint(outputWriter, strings.Repeat(" ", spacesNeeded))
		}
		fmt.Fprintln(outputWriter, rightPart)
	}
}

// visualWidth returns the terminal width of s, ignoring color codes and
// counting wide characters twice.
func visualWidth(s string) int {
	return runewidth.StringWidth(color.ClearCode(s))
}
