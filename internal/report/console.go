package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/guptarohit/asciigraph"

	"github.com/wesleyorama2/loadcurve/internal/analysis"
)

// chartSamples is how many points of the fitted curve get plotted.
const chartSamples = 48

// Console writes a colored interactive-terminal summary of the batch:
// the ranking, each API's model and fitted latency curve, the observed
// extremes and any skipped APIs. Pass NoColorScheme when the output is
// not a terminal.
func Console(w io.Writer, batch *analysis.BatchResult, cfg analysis.Config, scheme *ColorScheme) {
	scheme.Header.Fprintln(w, "Load Resilience Analysis")
	fmt.Fprintln(w)

	if len(batch.Ranking) > 0 {
		scheme.Header.Fprintln(w, "Ranking (flattest degradation first):")
		for i, id := range batch.Ranking {
			a := batch.Analyses[id]
			fmt.Fprintf(w, "  %d. %s  a=%.6f  t=%.2f  %s\n",
				i+1,
				scheme.APIName.Sprint(id),
				a.Fit.Coeffs[0],
				a.Verdict.TStatistic,
				scheme.resilienceColor(a.Verdict.Resilience).Sprint(a.Verdict.Resilience))
		}
	} else {
		scheme.Warn.Fprintln(w, "No API showed statistically significant curvature.")
	}
	fmt.Fprintln(w)

	for _, rec := range batch.Records() {
		a := batch.Analyses[rec.API]

		scheme.APIName.Fprintln(w, rec.API)
		fmt.Fprintf(w, "  %s\n", scheme.Equation.Sprint(a.Fit.Equation()))
		fmt.Fprintf(w, "  R² = %.4f, curvature t = %.2f, resilience %s\n",
			rec.RSquared,
			rec.TStatistic,
			scheme.resilienceColor(rec.Resilience).Sprint(rec.Resilience))
		if rec.CriticalX != nil {
			if rec.CriticalXError != nil {
				fmt.Fprintf(w, "  Critical concurrency: x* = %.1f ± %.1f (T'(x) = %.1f ms/unit)\n",
					*rec.CriticalX, *rec.CriticalXError, cfg.DegradationThreshold)
			} else {
				fmt.Fprintf(w, "  Critical concurrency: x* = %.1f\n", *rec.CriticalX)
			}
		} else {
			fmt.Fprintln(w, "  Critical concurrency: none within the analyzed range")
		}

		if chart := latencyChart(a); chart != "" {
			fmt.Fprintln(w, chart)
		}
		fmt.Fprintln(w)
	}

	if batch.Extremes.BestThroughputAPI != "" {
		fmt.Fprintf(w, "Best throughput: %s at %.0f req/s\n",
			scheme.Highlight.Sprint(batch.Extremes.BestThroughputAPI), batch.Extremes.BestThroughputRPS)
	}
	if batch.Extremes.LowestLatencyAPI != "" {
		fmt.Fprintf(w, "Lowest P95 latency: %s at %.2f ms\n",
			scheme.Highlight.Sprint(batch.Extremes.LowestLatencyAPI), batch.Extremes.LowestLatencyMS)
	}

	if len(batch.Failures) > 0 {
		fmt.Fprintln(w)
		scheme.Failure.Fprintln(w, "Skipped APIs:")
		ids := make([]string, 0, len(batch.Failures))
		for id := range batch.Failures {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			fmt.Fprintf(w, "  %s: %v\n", id, batch.Failures[id])
		}
	}
}

// latencyChart plots the fitted T(x) over the observed concurrency range.
func latencyChart(a *analysis.APIAnalysis) string {
	if len(a.Points) < 2 {
		return ""
	}

	lo := float64(a.Points[0].Concurrency)
	hi := float64(a.Points[len(a.Points)-1].Concurrency)
	if hi <= lo {
		return ""
	}

	data := make([]float64, chartSamples)
	step := (hi - lo) / float64(chartSamples-1)
	for i := range data {
		data[i] = a.Fit.Predict(lo + float64(i)*step)
	}

	return asciigraph.Plot(data,
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.Precision(1),
		asciigraph.Caption(fmt.Sprintf("fitted P95 ms, concurrency %.0f..%.0f", lo, hi)))
}
