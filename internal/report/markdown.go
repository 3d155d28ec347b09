// Package report renders analysis results for humans and downstream
// tooling: a markdown report, a flat CSV export and a colored console
// summary with latency curve charts.
package report

import (
	"fmt"
	"io"
	"text/template"
	"time"

	"github.com/wesleyorama2/loadcurve/internal/analysis"
)

const markdownTemplate = `# Load Resilience Analysis

Generated: {{ .Generated }}

Model: weighted degree-{{ .Config.Degree }} polynomial fit of P95 latency vs concurrency.
Curvature significance cutoff: t > {{ printf "%.1f" .Config.SignificanceThreshold }}.
Critical concurrency: first x where T'(x) = {{ printf "%.1f" .Config.DegradationThreshold }} ms/unit.

## Resilience Ranking

Significant APIs ordered by ascending curvature (flatter degradation first).

| Rank | API | Curvature (a) | t-stat | R² | Resilience | Critical x* |
|------|-----|---------------|--------|----|------------|-------------|
{{- range $i, $id := .Batch.Ranking }}
{{- with (index $.Batch.Analyses $id) }}
| {{ add $i 1 }} | {{ .API }} | {{ printf "%.6f" (index .Fit.Coeffs 0) }} | {{ printf "%.2f" .Verdict.TStatistic }} | {{ printf "%.4f" .Fit.RSquared }} | {{ .Verdict.Resilience }} | {{ critical .Derivative }} |
{{- end }}
{{- end }}
{{- if not .Batch.Ranking }}

No API showed statistically significant curvature.
{{- end }}

## Per-API Models
{{ range .Records }}{{ $rec := . }}
### {{ .API }}

- Model: {{ equation .Coeffs }}
- R² = {{ printf "%.4f" .RSquared }}{{ if .MSE }}, MSE = {{ printf "%.4f" (deref .MSE) }}{{ end }}
- Coefficients (highest power first):
{{- range $i, $c := .Coeffs }}
  - {{ coeffName $i }}{{ printf "%.6f" $c }}{{ if $.HasErrors $rec.API }} ± {{ printf "%.6f" (stderr $.Batch $rec.API $i) }} (95% CI half-width {{ printf "%.6f" (confint $.Batch $rec.API $i) }}){{ end }}
{{- end }}
- T'(x) = {{ printf "%.6f" (index .FirstDerivCoeffs 0) }}x + {{ printf "%.6f" (index .FirstDerivCoeffs 1) }}, T''(x) = {{ printf "%.6f" .SecondDeriv }}
{{- if .CriticalX }}
- Critical concurrency: x* = {{ printf "%.1f" (deref .CriticalX) }}{{ if .CriticalXError }} ± {{ printf "%.1f" (deref .CriticalXError) }}{{ end }}
{{- else }}
- Critical concurrency: none within the analyzed range
{{- end }}
- Curvature t = {{ printf "%.2f" .TStatistic }}, significant: {{ .IsSignificant }}, resilience: {{ .Resilience }}
{{ end }}
{{- if .HasExtremes }}
## Observed Extremes

- Best throughput: {{ .Batch.Extremes.BestThroughputAPI }} at {{ printf "%.0f" .Batch.Extremes.BestThroughputRPS }} req/s
- Lowest P95 latency: {{ .Batch.Extremes.LowestLatencyAPI }} at {{ printf "%.2f" .Batch.Extremes.LowestLatencyMS }} ms
{{- end }}
{{- if .Batch.Failures }}

## Skipped APIs
{{ range $id, $err := .Batch.Failures }}
- {{ $id }}: {{ $err }}
{{- end }}
{{- end }}
`

type markdownContext struct {
	Generated string
	Config    analysis.Config
	Batch     *analysis.BatchResult
	Records   []analysis.Record
}

// HasExtremes reports whether any extreme was observed.
func (c markdownContext) HasExtremes() bool {
	return c.Batch.Extremes.BestThroughputAPI != "" || c.Batch.Extremes.LowestLatencyAPI != ""
}

// HasErrors reports whether the API's fit produced standard errors.
func (c markdownContext) HasErrors(api string) bool {
	a, ok := c.Batch.Analyses[api]
	return ok && a.Fit.StdErrors != nil
}

var markdownFuncs = template.FuncMap{
	"add":   func(a, b int) int { return a + b },
	"deref": func(p *float64) float64 { return *p },
	"critical": func(d *analysis.DerivativeModel) string {
		if d.CriticalX == nil {
			return "n/a"
		}
		if d.CriticalXError != nil {
			return fmt.Sprintf("%.1f ± %.1f", *d.CriticalX, *d.CriticalXError)
		}
		return fmt.Sprintf("%.1f", *d.CriticalX)
	},
	"equation": func(coeffs []float64) string {
		if len(coeffs) == 3 {
			return fmt.Sprintf("T(x) = %.6fx² + %.6fx + %.6f", coeffs[0], coeffs[1], coeffs[2])
		}
		return fmt.Sprintf("T(x) coefficients %v", coeffs)
	},
	"coeffName": func(i int) string {
		names := []string{"a = ", "b = ", "c = "}
		if i < len(names) {
			return names[i]
		}
		return ""
	},
	"stderr": func(b *analysis.BatchResult, api string, i int) float64 {
		return b.Analyses[api].Fit.StdErrors[i]
	},
	"confint": func(b *analysis.BatchResult, api string, i int) float64 {
		return b.Analyses[api].Fit.ConfIntervals[i]
	},
}

var markdownTmpl = template.Must(template.New("markdown").Funcs(markdownFuncs).Parse(markdownTemplate))

// Markdown writes the full analysis report to w.
func Markdown(w io.Writer, batch *analysis.BatchResult, cfg analysis.Config) error {
	ctx := markdownContext{
		Generated: time.Now().Format("2006-01-02 15:04:05"),
		Config:    cfg,
		Batch:     batch,
		Records:   batch.Records(),
	}
	if err := markdownTmpl.Execute(w, ctx); err != nil {
		return fmt.Errorf("report: rendering markdown: %w", err)
	}
	return nil
}
