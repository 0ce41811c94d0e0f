// Package main implements the irty CLI, a workbench around the IR type
// store: evaluate type definition scripts, dump canonical tables, browse
// them interactively.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/th3flyboy/llvm-mirror/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "irty",
	Short: "IR type store workbench",
	Long:  `irty evaluates type definition scripts (.ty) against the canonicalizing IR type store and reports the resulting canonical types.`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(exploreCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cleanCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("trace", "off", "trace level (off|phase|detail)")
	rootCmd.PersistentFlags().Bool("no-cache", false, "bypass the report disk cache")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(flagValue string, f *os.File) bool {
	return flagValue == "on" || (flagValue == "auto" && isTerminal(f))
}
