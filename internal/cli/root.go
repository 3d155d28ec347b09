// Package cli wires the loadcurve commands: analyze, generate and serve.
package cli

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "loadcurve",
	Short:   "Statistical latency-vs-concurrency analysis for API benchmarks",
	Version: version,
	Long: `Loadcurve fits weighted quadratic models to P95 latency measured across
concurrency levels, tests whether the curvature is statistically
significant, estimates the concurrency where degradation crosses a
threshold, and ranks APIs by resilience.

It reads bombardier-style result files or a consolidated CSV, and can
generate synthetic datasets and run a demo target server.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print help
		cmd.Help()
	},
}

// Execute runs the root command. Called by main.Main.
func Execute() error {
	return RootCmd.Execute()
}

func setupLogging(cmd *cobra.Command) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    !isTerminal(os.Stderr),
	})))
}

func init() {
	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	RootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	RootCmd.AddCommand(analyzeCmd)
	RootCmd.AddCommand(generateCmd)
	RootCmd.AddCommand(serveCmd)
}
