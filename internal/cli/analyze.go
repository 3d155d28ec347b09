package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/loadcurve/internal/analysis"
	"github.com/wesleyorama2/loadcurve/internal/ingest"
	"github.com/wesleyorama2/loadcurve/internal/report"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Fit latency curves and rank APIs by resilience",
	Long: `Analyze benchmark results in a directory. When a consolidated
consolidated_benchmark_*.csv is present the newest one is used; otherwise
the raw bomb_<concurrency>_<API>_run<n>.json files are aggregated first.

Examples:
  loadcurve analyze --input results/
  loadcurve analyze --input results/ --replicates --output report.md
  loadcurve analyze --input results/ --json analysis.json --csv analysis.csv`,
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	configPath, _ := cmd.Flags().GetString("config")
	fromReplicates, _ := cmd.Flags().GetBool("replicates")
	markdownPath, _ := cmd.Flags().GetString("output")
	csvPath, _ := cmd.Flags().GetString("csv")
	jsonPath, _ := cmd.Flags().GetString("json")
	quiet, _ := cmd.Flags().GetBool("quiet")
	noColor, _ := cmd.Flags().GetBool("no-color")

	cfg := analysis.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = analysis.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	batch, err := loadAndAnalyze(input, fromReplicates, cfg)
	if err != nil {
		return err
	}
	if len(batch.Analyses) == 0 && len(batch.Failures) == 0 {
		return fmt.Errorf("no benchmark data found in %s", input)
	}

	if !quiet {
		scheme := report.DefaultColorScheme()
		if noColor || !isTerminal(os.Stdout) {
			scheme = report.NoColorScheme()
		}
		report.Console(os.Stdout, batch, cfg, scheme)
	}

	if markdownPath != "" {
		if err := writeFileWith(markdownPath, func(f *os.File) error {
			return report.Markdown(f, batch, cfg)
		}); err != nil {
			return err
		}
		slog.Info("wrote markdown report", "path", markdownPath)
	}
	if csvPath != "" {
		if err := writeFileWith(csvPath, func(f *os.File) error {
			return report.CSV(f, batch.Records())
		}); err != nil {
			return err
		}
		slog.Info("wrote CSV export", "path", csvPath)
	}
	if jsonPath != "" {
		if err := writeFileWith(jsonPath, func(f *os.File) error {
			enc := json.NewEncoder(f)
			enc.SetIndent("", "  ")
			return enc.Encode(batch.Records())
		}); err != nil {
			return err
		}
		slog.Info("wrote JSON export", "path", jsonPath)
	}

	if len(batch.Analyses) == 0 {
		return fmt.Errorf("every API failed analysis")
	}
	return nil
}

// loadAndAnalyze prefers the consolidated CSV and falls back to raw
// replicate files.
func loadAndAnalyze(input string, fromReplicates bool, cfg analysis.Config) (*analysis.BatchResult, error) {
	if !fromReplicates {
		if path, err := ingest.FindConsolidated(input); err == nil {
			slog.Debug("using consolidated CSV", "path", path)
			stats, err := ingest.LoadConsolidated(path)
			if err != nil {
				return nil, err
			}
			return analysis.AnalyzeAll(stats, cfg), nil
		}
		slog.Debug("no consolidated CSV, falling back to replicate files", "dir", input)
	}

	runs, skipped, err := ingest.LoadReplicates(input)
	if err != nil {
		return nil, err
	}
	for _, s := range skipped {
		slog.Warn("skipped result file", "file", s.Path, "reason", s.Reason)
	}
	return analysis.AnalyzeRuns(runs, cfg), nil
}

func writeFileWith(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func init() {
	analyzeCmd.Flags().StringP("input", "i", ".", "Directory containing benchmark results")
	analyzeCmd.Flags().StringP("config", "c", "", "Analysis configuration YAML file")
	analyzeCmd.Flags().Bool("replicates", false, "Aggregate raw result files even when a consolidated CSV exists")
	analyzeCmd.Flags().StringP("output", "o", "", "Write a markdown report to this path")
	analyzeCmd.Flags().String("csv", "", "Write a CSV export to this path")
	analyzeCmd.Flags().String("json", "", "Write a JSON export to this path")
	analyzeCmd.Flags().BoolP("quiet", "q", false, "Suppress the console summary")
}
