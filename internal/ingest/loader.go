package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/wesleyorama2/loadcurve/internal/analysis"
)

// resultFilePattern matches bomb_<concurrency>_<api>_run<n>.json.
var resultFilePattern = regexp.MustCompile(`^bomb_(\d+)_([A-Za-z][A-Za-z0-9-]*)_run(\d+)\.json$`)

// SkippedFile records a result file that could not be ingested.
type SkippedFile struct {
	Path   string
	Reason error
}

// LoadReplicates discovers bombardier-style result files in dir and
// parses them into per-API replicate runs. The concurrency level and API
// name come from the filename, the measurements from the validated JSON
// body; latency percentiles are converted from nanoseconds to
// milliseconds. Files that fail validation or parsing are skipped and
// reported, never fatal.
func LoadReplicates(dir string) (map[string][]analysis.ReplicateRun, []SkippedFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("reading results directory: %w", err)
	}

	runs := make(map[string][]analysis.ReplicateRun)
	var skipped []SkippedFile

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := resultFilePattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		run, err := loadResultFile(path, m)
		if err != nil {
			skipped = append(skipped, SkippedFile{Path: path, Reason: err})
			continue
		}
		runs[run.API] = append(runs[run.API], run)
	}

	// Stable per-API ordering: by concurrency, then by file order.
	for api := range runs {
		rs := runs[api]
		sort.SliceStable(rs, func(i, j int) bool { return rs[i].Concurrency < rs[j].Concurrency })
	}

	return runs, skipped, nil
}

func loadResultFile(path string, nameParts []string) (analysis.ReplicateRun, error) {
	var run analysis.ReplicateRun

	concurrency, err := strconv.Atoi(nameParts[1])
	if err != nil || concurrency <= 0 {
		return run, fmt.Errorf("bad concurrency in filename: %q", nameParts[1])
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return run, err
	}
	if err := ValidateResult(data); err != nil {
		return run, err
	}

	body := string(data)
	p95ns := gjson.Get(body, "result.latencies.p95").Float()

	run = analysis.ReplicateRun{
		API:         nameParts[2],
		Concurrency: concurrency,
		LatencyP95:  p95ns / 1e6,
		RPS:         gjson.Get(body, "result.rps.mean").Float(),
		ErrorCount:  int(gjson.Get(body, "result.errors.total").Int()),
	}
	return run, nil
}

// FindConsolidated returns the newest consolidated_benchmark_*.csv in
// dir, or an error when none exists.
func FindConsolidated(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "consolidated_benchmark_*.csv"))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no consolidated benchmark CSV in %s", dir)
	}

	newest := matches[0]
	var newestMod int64
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		if mod := info.ModTime().UnixNano(); mod >= newestMod {
			newest = m
			newestMod = mod
		}
	}
	return newest, nil
}

// LoadConsolidated parses a consolidated benchmark CSV into per-API
// aggregated stats keyed by API id. Required columns: API, x,
// mean_p95_ms, stddev_ms; cv_percent, mean_rps, total_errors and
// valid_runs are picked up when present.
func LoadConsolidated(path string) (map[string][]analysis.ConcurrencyPointStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening consolidated CSV: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading consolidated CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("consolidated CSV %s has no data rows", path)
	}

	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[name] = i
	}
	for _, required := range []string{"API", "x", "mean_p95_ms", "stddev_ms"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("consolidated CSV %s is missing column %q", path, required)
		}
	}

	stats := make(map[string][]analysis.ConcurrencyPointStats)
	for i, row := range records[1:] {
		point, err := parseConsolidatedRow(row, col)
		if err != nil {
			return nil, fmt.Errorf("consolidated CSV %s row %d: %w", path, i+2, err)
		}
		stats[point.API] = append(stats[point.API], point)
	}

	for api := range stats {
		ps := stats[api]
		sort.Slice(ps, func(i, j int) bool { return ps[i].Concurrency < ps[j].Concurrency })
	}

	return stats, nil
}

func parseConsolidatedRow(row []string, col map[string]int) (analysis.ConcurrencyPointStats, error) {
	var p analysis.ConcurrencyPointStats

	p.API = row[col["API"]]
	if p.API == "" {
		return p, fmt.Errorf("empty API id")
	}

	x, err := strconv.Atoi(row[col["x"]])
	if err != nil || x <= 0 {
		return p, fmt.Errorf("bad concurrency %q", row[col["x"]])
	}
	p.Concurrency = x

	p.MeanLatency, err = strconv.ParseFloat(row[col["mean_p95_ms"]], 64)
	if err != nil || p.MeanLatency <= 0 {
		return p, fmt.Errorf("bad mean_p95_ms %q", row[col["mean_p95_ms"]])
	}

	p.StddevLatency, err = strconv.ParseFloat(row[col["stddev_ms"]], 64)
	if err != nil || p.StddevLatency < 0 {
		return p, fmt.Errorf("bad stddev_ms %q", row[col["stddev_ms"]])
	}

	// Optional columns.
	if i, ok := col["cv_percent"]; ok {
		p.CV, _ = strconv.ParseFloat(row[i], 64)
	}
	if i, ok := col["mean_rps"]; ok {
		p.MeanRPS, _ = strconv.ParseFloat(row[i], 64)
	}
	if i, ok := col["total_errors"]; ok {
		p.TotalErrors, _ = strconv.Atoi(row[i])
	}
	p.SampleCount = 1
	if i, ok := col["valid_runs"]; ok {
		if n, err := strconv.Atoi(row[i]); err == nil && n >= 1 {
			p.SampleCount = n
		}
	}
	p.LowConfidence = p.SampleCount == 1

	return p, nil
}
