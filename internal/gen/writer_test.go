package gen

import (
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wesleyorama2/loadcurve/internal/ingest"
)

func TestWriteToRoundTrip(t *testing.T) {
	dir := t.TempDir()

	ds, err := New(testOptions()).Generate(DefaultProfiles())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	csvPath, err := ds.WriteTo(dir)
	if err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(csvPath), "consolidated_benchmark_") {
		t.Errorf("unexpected consolidated CSV name %s", filepath.Base(csvPath))
	}

	runs, skipped, err := ingest.LoadReplicates(dir)
	if err != nil {
		t.Fatalf("LoadReplicates failed: %v", err)
	}
	if len(skipped) != 0 {
		t.Errorf("loader skipped generated files: %v", skipped)
	}
	for _, api := range ds.APIs() {
		if len(runs[api]) != len(ds.Runs[api]) {
			t.Errorf("API %s: wrote %d runs, loaded %d", api, len(ds.Runs[api]), len(runs[api]))
		}
	}

	found, err := ingest.FindConsolidated(dir)
	if err != nil {
		t.Fatalf("FindConsolidated failed: %v", err)
	}
	if found != csvPath {
		t.Errorf("FindConsolidated returned %s, want %s", found, csvPath)
	}

	stats, err := ingest.LoadConsolidated(csvPath)
	if err != nil {
		t.Fatalf("LoadConsolidated failed: %v", err)
	}
	for _, api := range ds.APIs() {
		points := stats[api]
		if len(points) != len(testOptions().ConcurrencyPoints) {
			t.Errorf("API %s: expected %d consolidated rows, got %d", api, len(testOptions().ConcurrencyPoints), len(points))
			continue
		}
		for _, pt := range points {
			if pt.SampleCount != testOptions().Replicas {
				t.Errorf("API %s x=%d: expected %d valid runs, got %d", api, pt.Concurrency, testOptions().Replicas, pt.SampleCount)
			}
			if math.IsNaN(pt.MeanLatency) || pt.MeanLatency <= 0 {
				t.Errorf("API %s x=%d: bad mean latency %v", api, pt.Concurrency, pt.MeanLatency)
			}
		}
	}
}
