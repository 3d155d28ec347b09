package analysis

import "sort"

// Rank orders APIs with a statistically significant curvature by
// ascending coefficient a: lower (more negative) curvature means slower
// degradation growth, i.e. better resilience. APIs whose curvature is not
// significant are excluded. Ties break on API id so the ordering is
// deterministic.
func Rank(analyses map[string]*APIAnalysis) []string {
	ids := make([]string, 0, len(analyses))
	for id, a := range analyses {
		if a.Verdict.IsSignificant {
			ids = append(ids, id)
		}
	}

	sort.Slice(ids, func(i, j int) bool {
		ai := analyses[ids[i]].Fit.Coeffs[0]
		aj := analyses[ids[j]].Fit.Coeffs[0]
		if ai != aj {
			return ai < aj
		}
		return ids[i] < ids[j]
	})

	return ids
}

// Extremes are simple min/max reductions over the aggregated stats,
// reported alongside the fits. They carry no model of their own.
type Extremes struct {
	BestThroughputAPI string  `json:"best_throughput_api,omitempty"`
	BestThroughputRPS float64 `json:"best_throughput_rps,omitempty"`
	LowestLatencyAPI  string  `json:"lowest_latency_api,omitempty"`
	LowestLatencyMS   float64 `json:"lowest_latency_ms,omitempty"`
}

// Summarize scans the aggregated points of every API for the highest mean
// throughput and the lowest mean P95 latency observed at any concurrency
// level. Ties keep the lexicographically smaller API id.
func Summarize(stats map[string][]ConcurrencyPointStats) Extremes {
	var e Extremes

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		for _, p := range stats[id] {
			if p.MeanRPS > e.BestThroughputRPS {
				e.BestThroughputAPI = id
				e.BestThroughputRPS = p.MeanRPS
			}
			if e.LowestLatencyAPI == "" || p.MeanLatency < e.LowestLatencyMS {
				e.LowestLatencyAPI = id
				e.LowestLatencyMS = p.MeanLatency
			}
		}
	}

	return e
}
