package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/th3flyboy/llvm-mirror/internal/driver"
)

var (
	dumpTimings bool
	dumpStats   bool
	dumpJobs    int
)

func init() {
	dumpCmd.Flags().BoolVar(&dumpTimings, "timings", false, "print per-phase evaluation timings")
	dumpCmd.Flags().BoolVar(&dumpStats, "stats", false, "print store statistics per file")
	dumpCmd.Flags().IntVar(&dumpJobs, "jobs", 0, "max parallel evaluations (0 = all CPUs)")
}

var dumpCmd = &cobra.Command{
	Use:   "dump <file-or-dir>...",
	Short: "Evaluate type scripts and print the canonical tables",
	Long:  "Evaluate one or more .ty scripts (directories are walked recursively) and print every named type in canonical form.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDump,
}

func runDump(cmd *cobra.Command, args []string) error {
	paths, err := collectScripts(args)
	if err != nil {
		return err
	}
	opts, err := buildOptions(cmd)
	if err != nil {
		return err
	}
	opts.Jobs = dumpJobs

	reports, err := driver.EvaluateAll(cmd.Context(), paths, opts)
	if err != nil {
		return err
	}

	colorValue, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	colored := useColor(colorValue, os.Stdout)

	out := cmd.OutOrStdout()
	for i, rep := range reports {
		if i > 0 {
			fmt.Fprintln(out)
		}
		printReport(out, rep, colored)
	}
	return nil
}

func printReport(out io.Writer, rep *driver.Report, colored bool) {
	header := color.New(color.FgWhite, color.Bold)
	nameColor := color.New(color.FgCyan)
	abstractColor := color.New(color.FgYellow)
	dim := color.New(color.Faint)
	if !colored {
		for _, c := range []*color.Color{header, nameColor, abstractColor, dim} {
			c.DisableColor()
		}
	}

	title := rep.Path
	if rep.Cached {
		title += dim.Sprint(" (cached)")
	}
	fmt.Fprintln(out, header.Sprint(title))

	nameWidth := 0
	for _, e := range rep.Entries {
		if len(e.Name) > nameWidth {
			nameWidth = len(e.Name)
		}
	}
	for _, e := range rep.Entries {
		form := e.Named
		if e.Abstract {
			form += abstractColor.Sprint("  ; abstract")
		}
		fmt.Fprintf(out, "  %s = type %s\n", nameColor.Sprintf("%%%-*s", nameWidth, e.Name), form)
	}
	if len(rep.Entries) == 0 {
		fmt.Fprintln(out, dim.Sprint("  (no named types)"))
	}

	if dumpStats {
		s := rep.Stats
		fmt.Fprintf(out, "  %s\n", dim.Sprintf("nodes=%d ints=%d fns=%d structs=%d arrays=%d vecs=%d ptrs=%d opaques=%d",
			s.Nodes, s.Integers, s.Functions, s.Structs, s.Arrays, s.Vectors, s.Pointers, s.Opaques))
	}
	if dumpTimings && !rep.Cached {
		for _, p := range rep.Timing.Phases {
			line := fmt.Sprintf("%-14s %7.2f ms", p.Name, p.DurationMS)
			if p.Note != "" {
				line += "  // " + p.Note
			}
			fmt.Fprintf(out, "  %s\n", dim.Sprint(line))
		}
		fmt.Fprintf(out, "  %s\n", dim.Sprintf("%-14s %7.2f ms", "total", rep.Timing.TotalMS))
	}
}
