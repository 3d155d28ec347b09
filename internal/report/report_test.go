package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/wesleyorama2/loadcurve/internal/analysis"
)

// quadPoints builds aggregated stats lying exactly on a*x² + b*x + c.
func quadPoints(api string, a, b, c float64, levels []int) []analysis.ConcurrencyPointStats {
	pts := make([]analysis.ConcurrencyPointStats, 0, len(levels))
	for _, x := range levels {
		fx := float64(x)
		pts = append(pts, analysis.ConcurrencyPointStats{
			API:           api,
			Concurrency:   x,
			MeanLatency:   a*fx*fx + b*fx + c,
			StddevLatency: 0.5,
			MeanRPS:       15000 - 10*fx,
			SampleCount:   5,
		})
	}
	return pts
}

func testBatch() *analysis.BatchResult {
	input := map[string][]analysis.ConcurrencyPointStats{
		"Go":     quadPoints("Go", 0.001, 0.3, 1.0, []int{10, 20, 30, 40, 50}),
		"Python": quadPoints("Python", 0.005, 0.8, 2.0, []int{10, 20, 30, 40, 50}),
	}
	return analysis.AnalyzeAll(input, analysis.DefaultConfig())
}

func TestMarkdownSections(t *testing.T) {
	var buf bytes.Buffer
	if err := Markdown(&buf, testBatch(), analysis.DefaultConfig()); err != nil {
		t.Fatalf("Markdown failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Load Resilience Analysis",
		"## Resilience Ranking",
		"## Per-API Models",
		"### Go",
		"### Python",
		"T(x) =",
		"Critical concurrency",
		"## Observed Extremes",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown report missing %q", want)
		}
	}

	// Go's flatter curve must rank first.
	if strings.Index(out, "| 1 | Go |") == -1 {
		t.Errorf("expected Go at rank 1, report:\n%s", out)
	}
}

func TestMarkdownNoSignificantAPIs(t *testing.T) {
	// Three points give a minimal fit with no error estimates, so the
	// verdict is indeterminate and the ranking stays empty.
	input := map[string][]analysis.ConcurrencyPointStats{
		"Go": quadPoints("Go", 0.001, 0.3, 1.0, []int{10, 20, 30}),
	}
	batch := analysis.AnalyzeAll(input, analysis.DefaultConfig())

	var buf bytes.Buffer
	if err := Markdown(&buf, batch, analysis.DefaultConfig()); err != nil {
		t.Fatalf("Markdown failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No API showed statistically significant curvature.") {
		t.Error("expected the empty-ranking notice")
	}
	if !strings.Contains(buf.String(), "INDETERMINATE") {
		t.Error("expected the indeterminate label in the per-API section")
	}
}

func TestMarkdownReportsFailures(t *testing.T) {
	input := map[string][]analysis.ConcurrencyPointStats{
		"Go":     quadPoints("Go", 0.001, 0.3, 1.0, []int{10, 20, 30, 40, 50}),
		"Broken": quadPoints("Broken", 0.001, 0.3, 1.0, []int{10, 10, 10, 10}),
	}
	batch := analysis.AnalyzeAll(input, analysis.DefaultConfig())

	var buf bytes.Buffer
	if err := Markdown(&buf, batch, analysis.DefaultConfig()); err != nil {
		t.Fatalf("Markdown failed: %v", err)
	}
	if !strings.Contains(buf.String(), "## Skipped APIs") {
		t.Error("expected the skipped APIs section")
	}
	if !strings.Contains(buf.String(), "Broken") {
		t.Error("expected the failed API to be listed")
	}
}

func TestCSVExport(t *testing.T) {
	var buf bytes.Buffer
	if err := CSV(&buf, testBatch().Records()); err != nil {
		t.Fatalf("CSV failed: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parsing exported CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d rows", len(rows))
	}
	if rows[0][0] != "api_id" || rows[0][len(rows[0])-1] != "resilience_label" {
		t.Errorf("unexpected header %v", rows[0])
	}
	for _, row := range rows[1:] {
		if len(row) != len(csvHeader) {
			t.Errorf("row for %s has %d fields, want %d", row[0], len(row), len(csvHeader))
		}
	}
	if rows[1][0] != "Go" {
		t.Errorf("expected ranked API Go first, got %s", rows[1][0])
	}
}

func TestCSVEmptyFieldsForMinimalFit(t *testing.T) {
	input := map[string][]analysis.ConcurrencyPointStats{
		"Go": quadPoints("Go", 0.001, 0.3, 1.0, []int{10, 20, 30}),
	}
	batch := analysis.AnalyzeAll(input, analysis.DefaultConfig())

	var buf bytes.Buffer
	if err := CSV(&buf, batch.Records()); err != nil {
		t.Fatalf("CSV failed: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parsing exported CSV: %v", err)
	}

	col := map[string]int{}
	for i, name := range rows[0] {
		col[name] = i
	}
	row := rows[1]
	for _, name := range []string{"std_err_a", "conf_int_a", "mse"} {
		if row[col[name]] != "" {
			t.Errorf("expected empty %s for a minimal fit, got %q", name, row[col[name]])
		}
	}
	if row[col["coeff_a"]] == "" {
		t.Error("coefficients should still be present for a minimal fit")
	}
}

func TestConsoleSummary(t *testing.T) {
	var buf bytes.Buffer
	Console(&buf, testBatch(), analysis.DefaultConfig(), NoColorScheme())
	out := buf.String()

	for _, want := range []string{
		"Load Resilience Analysis",
		"Ranking (flattest degradation first):",
		"1. Go",
		"fitted P95 ms",
		"Best throughput:",
		"Lowest P95 latency:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("console summary missing %q, got:\n%s", want, out)
		}
	}
}

func TestConsoleListsFailures(t *testing.T) {
	batch := &analysis.BatchResult{
		Analyses: map[string]*analysis.APIAnalysis{},
		Failures: map[string]error{"Broken": analysis.ErrEmptyInput},
	}

	var buf bytes.Buffer
	Console(&buf, batch, analysis.DefaultConfig(), NoColorScheme())
	if !strings.Contains(buf.String(), "Broken") {
		t.Error("expected the failed API in the console output")
	}
}
