package analysis

import (
	"errors"
	"math"
	"testing"
)

func TestAggregate_GroupsByConcurrency(t *testing.T) {
	runs := []ReplicateRun{
		{API: "go", Concurrency: 20, LatencyP95: 2.0, RPS: 1000},
		{API: "go", Concurrency: 10, LatencyP95: 1.0, RPS: 1200},
		{API: "go", Concurrency: 10, LatencyP95: 3.0, RPS: 1100},
		{API: "go", Concurrency: 20, LatencyP95: 4.0, RPS: 900},
	}

	points, err := Aggregate(runs)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}

	if len(points) != 2 {
		t.Fatalf("len(points) = %d, want 2", len(points))
	}

	// Ascending concurrency order.
	if points[0].Concurrency != 10 || points[1].Concurrency != 20 {
		t.Errorf("concurrency order = %d, %d, want 10, 20", points[0].Concurrency, points[1].Concurrency)
	}

	if points[0].MeanLatency != 2.0 {
		t.Errorf("MeanLatency = %g, want 2.0", points[0].MeanLatency)
	}

	// Sample stddev of {1, 3} is sqrt(2).
	if math.Abs(points[0].StddevLatency-math.Sqrt2) > 1e-12 {
		t.Errorf("StddevLatency = %g, want %g", points[0].StddevLatency, math.Sqrt2)
	}

	if points[0].SampleCount != 2 || points[0].LowConfidence {
		t.Errorf("SampleCount = %d, LowConfidence = %v, want 2, false", points[0].SampleCount, points[0].LowConfidence)
	}

	if points[0].MeanRPS != 1150 {
		t.Errorf("MeanRPS = %g, want 1150", points[0].MeanRPS)
	}
}

func TestAggregate_CoefficientOfVariation(t *testing.T) {
	runs := []ReplicateRun{
		{API: "go", Concurrency: 10, LatencyP95: 9.0},
		{API: "go", Concurrency: 10, LatencyP95: 11.0},
	}

	points, err := Aggregate(runs)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}

	// mean 10, stddev sqrt(2) → CV = sqrt(2)/10*100
	wantCV := math.Sqrt2 / 10 * 100
	if math.Abs(points[0].CV-wantCV) > 1e-12 {
		t.Errorf("CV = %g, want %g", points[0].CV, wantCV)
	}
}

func TestAggregate_SingleReplicateIsLowConfidence(t *testing.T) {
	runs := []ReplicateRun{
		{API: "go", Concurrency: 10, LatencyP95: 5.0},
	}

	points, err := Aggregate(runs)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}

	p := points[0]
	if p.StddevLatency != 0 {
		t.Errorf("StddevLatency = %g, want 0", p.StddevLatency)
	}
	if !p.LowConfidence {
		t.Error("LowConfidence = false, want true for a single replicate")
	}
}

func TestAggregate_EmptyInput(t *testing.T) {
	_, err := Aggregate(nil)
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Aggregate(nil) error = %v, want ErrEmptyInput", err)
	}
}
