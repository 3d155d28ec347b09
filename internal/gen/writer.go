package gen

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/wesleyorama2/loadcurve/internal/analysis"
)

// consolidatedHeader matches the CSV layout the ingest loader reads.
var consolidatedHeader = []string{
	"API", "x", "mean_p95_ms", "stddev_ms", "cv_percent",
	"mean_rps", "stddev_rps", "total_errors", "valid_runs",
	"min_p95", "max_p95",
}

// WriteTo materializes the dataset under dir: one JSON file per
// replicate plus a timestamped consolidated CSV. It returns the path of
// the CSV.
func (d *Dataset) WriteTo(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("gen: creating output dir: %w", err)
	}

	for _, f := range d.Files {
		path := filepath.Join(dir, f.Name)
		if err := os.WriteFile(path, f.Data, 0o644); err != nil {
			return "", fmt.Errorf("gen: writing %s: %w", f.Name, err)
		}
	}

	csvPath := filepath.Join(dir, fmt.Sprintf("consolidated_benchmark_%s.csv", time.Now().Format("20060102_150405")))
	if err := d.writeConsolidated(csvPath); err != nil {
		return "", err
	}
	return csvPath, nil
}

func (d *Dataset) writeConsolidated(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("gen: creating consolidated CSV: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(consolidatedHeader); err != nil {
		return err
	}

	for _, api := range d.APIs() {
		for _, row := range consolidateRuns(d.Runs[api]) {
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("gen: writing consolidated CSV: %w", err)
	}
	return f.Close()
}

// consolidateRuns collapses one API's replicates into per-concurrency
// CSV rows, concurrency ascending.
func consolidateRuns(runs []analysis.ReplicateRun) [][]string {
	byConc := make(map[int][]analysis.ReplicateRun)
	for _, r := range runs {
		byConc[r.Concurrency] = append(byConc[r.Concurrency], r)
	}

	levels := make([]int, 0, len(byConc))
	for c := range byConc {
		levels = append(levels, c)
	}
	sort.Ints(levels)

	rows := make([][]string, 0, len(levels))
	for _, c := range levels {
		group := byConc[c]
		lat := make([]float64, len(group))
		rps := make([]float64, len(group))
		errs := 0
		minP95, maxP95 := group[0].LatencyP95, group[0].LatencyP95
		for i, r := range group {
			lat[i] = r.LatencyP95
			rps[i] = r.RPS
			errs += r.ErrorCount
			if r.LatencyP95 < minP95 {
				minP95 = r.LatencyP95
			}
			if r.LatencyP95 > maxP95 {
				maxP95 = r.LatencyP95
			}
		}

		meanLat := stat.Mean(lat, nil)
		sdLat := 0.0
		sdRPS := 0.0
		if len(group) > 1 {
			sdLat = stat.StdDev(lat, nil)
			sdRPS = stat.StdDev(rps, nil)
		}
		cv := 0.0
		if meanLat > 0 {
			cv = sdLat / meanLat * 100
		}

		rows = append(rows, []string{
			group[0].API,
			strconv.Itoa(c),
			formatFloat(meanLat),
			formatFloat(sdLat),
			formatFloat(cv),
			formatFloat(stat.Mean(rps, nil)),
			formatFloat(sdRPS),
			strconv.Itoa(errs),
			strconv.Itoa(len(group)),
			formatFloat(minP95),
			formatFloat(maxP95),
		})
	}
	return rows
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
