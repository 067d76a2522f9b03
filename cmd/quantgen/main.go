package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"quantgen/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "quantgen",
	Short:         "Unit and quantity declaration checker and planner",
	Long:          `quantgen validates unit and quantity declarations and plans the definitions a code generator emits`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// errDiagnostics reports that the run finished but produced errors; they
// have already been printed.
var errDiagnostics = errors.New("declarations have errors")

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to keep")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug|info|warn|error); defaults to the project setting")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile of the run to this file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile after the run to this file")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a runtime execution trace to this file")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errDiagnostics) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

// isTerminal reports whether f is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
