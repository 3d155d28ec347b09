package analysis

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ReplicateRun is a single benchmark measurement: one run of one API at
// one concurrency level. Runs are immutable once recorded.
type ReplicateRun struct {
	API         string  `json:"api_id"`
	Concurrency int     `json:"concurrency"`
	LatencyP95  float64 `json:"latency_p95_ms"`
	RPS         float64 `json:"rps,omitempty"`
	ErrorCount  int     `json:"error_count,omitempty"`
}

// ConcurrencyPointStats collapses the replicates of one (API, concurrency)
// pair into summary statistics.
type ConcurrencyPointStats struct {
	API           string  `json:"api_id"`
	Concurrency   int     `json:"concurrency"`
	MeanLatency   float64 `json:"mean_p95_ms"`
	StddevLatency float64 `json:"stddev_ms"`
	// CV is the coefficient of variation (stddev/mean) in percent, a
	// data-quality signal: replicates with CV below ~20% are considered
	// acceptably stable.
	CV          float64 `json:"cv_percent"`
	MeanRPS     float64 `json:"mean_rps,omitempty"`
	TotalErrors int     `json:"total_errors,omitempty"`
	SampleCount int     `json:"sample_count"`
	// LowConfidence flags points backed by a single replicate, whose
	// stddev is necessarily 0 and carries no information.
	LowConfidence bool `json:"low_confidence,omitempty"`
}

// Aggregate groups runs by concurrency and computes per-point statistics,
// returned in ascending concurrency order. The standard deviation is the
// sample deviation (n−1 divisor); a group with a single run gets stddev 0
// and is marked LowConfidence rather than failing. An empty input returns
// ErrEmptyInput.
//
// All runs are expected to share one API id; the id of the first run is
// carried onto every point.
func Aggregate(runs []ReplicateRun) ([]ConcurrencyPointStats, error) {
	if len(runs) == 0 {
		return nil, fmt.Errorf("aggregate: %w", ErrEmptyInput)
	}

	groups := make(map[int][]ReplicateRun)
	for _, r := range runs {
		groups[r.Concurrency] = append(groups[r.Concurrency], r)
	}

	levels := make([]int, 0, len(groups))
	for c := range groups {
		levels = append(levels, c)
	}
	sort.Ints(levels)

	points := make([]ConcurrencyPointStats, 0, len(levels))
	for _, c := range levels {
		group := groups[c]

		latencies := make([]float64, len(group))
		var rpsSum float64
		var errTotal int
		for i, r := range group {
			latencies[i] = r.LatencyP95
			rpsSum += r.RPS
			errTotal += r.ErrorCount
		}

		mean := stat.Mean(latencies, nil)
		stddev := 0.0
		if len(latencies) > 1 {
			stddev = stat.StdDev(latencies, nil)
		}

		cv := 0.0
		if mean > 0 {
			cv = stddev / mean * 100
		}

		points = append(points, ConcurrencyPointStats{
			API:           runs[0].API,
			Concurrency:   c,
			MeanLatency:   mean,
			StddevLatency: stddev,
			CV:            cv,
			MeanRPS:       rpsSum / float64(len(group)),
			TotalErrors:   errTotal,
			SampleCount:   len(group),
			LowConfidence: len(group) == 1,
		})
	}

	return points, nil
}
