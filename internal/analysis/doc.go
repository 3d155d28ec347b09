// Package analysis turns repeated latency measurements into a validated
// mathematical performance model.
//
// Given replicated P95 latency observations at increasing concurrency for
// one or more competing API implementations, the package fits a weighted
// degree-2 polynomial latency model
//
//	T(x) = ax² + bx + c
//
// per API and derives everything needed to compare implementations on a
// statistically defensible footing:
//
//   - Aggregate: per-concurrency-point mean, sample standard deviation,
//     and coefficient of variation across replicates
//   - Fit: weighted least-squares coefficients with covariance-based
//     standard errors, Student-t confidence intervals, R² and MSE
//   - Derive: T'(x), T''(x), curvature classification and the critical
//     concurrency where the degradation rate crosses a threshold, with
//     propagated uncertainty
//   - Evaluate: a t-test on the curvature coefficient and a resilience
//     label (LOW, MEDIUM, HIGH, INDETERMINATE)
//   - Rank: cross-API ordering by curvature among significant fits
//
// # Pipeline
//
// Stages flow strictly forward; each consumes only the previous stage's
// output plus a Config. AnalyzeAll runs the whole pipeline for a batch of
// APIs, isolating per-API failures so one degenerate dataset never aborts
// the rest:
//
//	stats, _ := analysis.Aggregate(runs)
//	batch := analysis.AnalyzeAll(map[string][]analysis.ConcurrencyPointStats{"go": stats}, analysis.DefaultConfig())
//	for id, a := range batch.Analyses {
//	    fmt.Println(id, a.Verdict.Resilience)
//	}
//
// Every operation is a pure function of its inputs: no shared mutable
// state, no randomness, identical inputs yield identical outputs.
package analysis
