// Package ingest loads benchmark measurement data produced by external
// collaborators into the analysis pipeline's input types.
//
// Two formats are supported, matching what the benchmark harness emits:
//
//   - Per-run bombardier-style result files named
//     bomb_<concurrency>_<api>_run<n>.json, validated against an embedded
//     JSON Schema before extraction
//   - Consolidated per-point CSV files named
//     consolidated_benchmark_<timestamp>.csv, which carry the already
//     aggregated statistics
//
// Malformed files are skipped with a recorded reason; ingestion of a
// directory never fails because of a single bad file.
package ingest
