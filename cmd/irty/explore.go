package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/th3flyboy/llvm-mirror/internal/driver"
	"github.com/th3flyboy/llvm-mirror/internal/ui"
)

var exploreCmd = &cobra.Command{
	Use:   "explore <file>",
	Short: "Browse an evaluated type table interactively",
	Long:  "Evaluate a single .ty script and open the result in an interactive browser with filtering and per-type detail.",
	Args:  cobra.ExactArgs(1),
	RunE:  runExplore,
}

func runExplore(cmd *cobra.Command, args []string) error {
	if !isTerminal(os.Stdout) {
		return fmt.Errorf("explore needs a terminal; use `irty dump %s` instead", args[0])
	}
	opts, err := buildOptions(cmd)
	if err != nil {
		return err
	}
	rep, err := driver.EvaluateFile(args[0], opts)
	if err != nil {
		return err
	}
	prog := tea.NewProgram(ui.NewExplorerModel(rep), tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("explorer failed: %w", err)
	}
	return nil
}
