package analysis

import (
	"fmt"
	"sync"
)

// APIAnalysis is the complete analysis artifact for one API: the fit, its
// derivatives and the significance verdict, together with the aggregated
// points the fit consumed.
type APIAnalysis struct {
	API        string
	Fit        *FitResult
	Derivative *DerivativeModel
	Verdict    SignificanceVerdict
	Points     []ConcurrencyPointStats
}

// BatchResult is the outcome of analyzing a batch of APIs. A partial
// result set is always produced: APIs that failed are recorded in
// Failures with the reason, and never abort the others.
type BatchResult struct {
	Analyses map[string]*APIAnalysis
	Failures map[string]error

	// Ranking lists the significant APIs by ascending curvature.
	Ranking []string

	// Extremes are the throughput/latency min-max reductions over the
	// input stats, including APIs whose fit failed.
	Extremes Extremes
}

// AnalyzeOne runs the fit → derive → evaluate sequence for a single API's
// aggregated points. Fit weights are 1/(stddev + cfg.WeightEpsilon), so
// noisier points pull less.
func AnalyzeOne(api string, points []ConcurrencyPointStats, cfg Config) (*APIAnalysis, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("%s: %w", api, ErrEmptyInput)
	}

	x := make([]float64, len(points))
	y := make([]float64, len(points))
	w := make([]float64, len(points))
	for i, p := range points {
		x[i] = float64(p.Concurrency)
		y[i] = p.MeanLatency
		w[i] = 1.0 / (p.StddevLatency + cfg.WeightEpsilon)
	}

	fit, err := Fit(x, y, w, cfg.Degree, cfg.ConfidenceLevel)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", api, err)
	}

	deriv, err := Derive(fit, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", api, err)
	}

	return &APIAnalysis{
		API:        api,
		Fit:        fit,
		Derivative: deriv,
		Verdict:    Evaluate(fit, deriv, cfg),
		Points:     points,
	}, nil
}

// AnalyzeAll runs the per-API pipeline for every entry of input. APIs are
// independent, so they are analyzed concurrently; within one API the
// stages run strictly in sequence. The result is deterministic regardless
// of scheduling.
func AnalyzeAll(input map[string][]ConcurrencyPointStats, cfg Config) *BatchResult {
	result := &BatchResult{
		Analyses: make(map[string]*APIAnalysis, len(input)),
		Failures: make(map[string]error),
	}

	var mu sync.Mutex
	var wg sync.WaitGroup

	for api, points := range input {
		wg.Add(1)
		go func(api string, points []ConcurrencyPointStats) {
			defer wg.Done()

			a, err := AnalyzeOne(api, points, cfg)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failures[api] = err
				return
			}
			result.Analyses[api] = a
		}(api, points)
	}
	wg.Wait()

	result.Ranking = Rank(result.Analyses)
	result.Extremes = Summarize(input)

	return result
}

// AnalyzeRuns aggregates raw replicate runs per API and then analyzes the
// batch. Aggregation failures (an API with no data) are isolated the same
// way fit failures are.
func AnalyzeRuns(runs map[string][]ReplicateRun, cfg Config) *BatchResult {
	stats := make(map[string][]ConcurrencyPointStats, len(runs))
	failed := make(map[string]error)

	for api, rs := range runs {
		points, err := Aggregate(rs)
		if err != nil {
			failed[api] = err
			continue
		}
		stats[api] = points
	}

	result := AnalyzeAll(stats, cfg)
	for api, err := range failed {
		result.Failures[api] = err
	}
	return result
}
