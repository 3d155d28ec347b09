// Package gen produces synthetic benchmark datasets for exercising the
// analysis pipeline without a live measurement run.
//
// The generator models each API with a base latency, a sub-quadratic
// growth term in concurrency, and run-to-run noise, then simulates the
// individual request latencies of every replicate and reads the
// percentiles off an HDR histogram, the same way a real harness would.
// Output matches what ingest consumes: per-run bombardier-style JSON
// files plus a consolidated CSV.
package gen

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/HdrHistogram/hdrhistogram-go"

	"github.com/wesleyorama2/loadcurve/internal/analysis"
)

// Profile describes the latency behavior of one simulated API.
type Profile struct {
	Name string `json:"name" yaml:"name"`

	// BaseLatency is the idle P95 latency in ms.
	BaseLatency float64 `json:"baseLatency" yaml:"baseLatency"`

	// GrowthFactor scales the concurrency^1.4 growth term.
	GrowthFactor float64 `json:"growthFactor" yaml:"growthFactor"`

	// NoiseStd is the between-run latency noise in ms (warm-up, GC and
	// scheduling effects).
	NoiseStd float64 `json:"noiseStd" yaml:"noiseStd"`

	BaseRPS        float64 `json:"baseRps" yaml:"baseRps"`
	RPSVariability float64 `json:"rpsVariability" yaml:"rpsVariability"`
}

// DefaultProfiles returns the four reference implementations with
// behavior calibrated against manual benchmark observations.
func DefaultProfiles() []Profile {
	return []Profile{
		{Name: "Go", BaseLatency: 0.7, GrowthFactor: 0.002, NoiseStd: 0.15, BaseRPS: 15000, RPSVariability: 0.08},
		{Name: "Python", BaseLatency: 1.2, GrowthFactor: 0.005, NoiseStd: 0.25, BaseRPS: 8000, RPSVariability: 0.12},
		{Name: "NodeJS", BaseLatency: 10.27, GrowthFactor: 0.015, NoiseStd: 0.8, BaseRPS: 1000, RPSVariability: 0.15},
		{Name: "DotNet", BaseLatency: 0.8, GrowthFactor: 0.003, NoiseStd: 0.18, BaseRPS: 12000, RPSVariability: 0.10},
	}
}

// Options configure a generation run.
type Options struct {
	// ConcurrencyPoints are the x-values to sample.
	ConcurrencyPoints []int

	// Replicas per concurrency point.
	Replicas int

	// RequestsPerTest is the number of simulated requests per replicate.
	RequestsPerTest int

	// Seed makes the dataset reproducible.
	Seed int64
}

// DefaultOptions mirrors the reference benchmark protocol: five
// concurrency levels, five replicas, 800 requests per test.
func DefaultOptions() Options {
	return Options{
		ConcurrencyPoints: []int{10, 20, 30, 40, 50},
		Replicas:          5,
		RequestsPerTest:   800,
		Seed:              1,
	}
}

// Generator produces synthetic datasets. Not safe for concurrent use;
// the RNG is shared across calls.
type Generator struct {
	opts Options
	rng  *rand.Rand
}

// New creates a generator with the given options.
func New(opts Options) *Generator {
	return &Generator{opts: opts, rng: rand.New(rand.NewSource(opts.Seed))}
}

// ResultFile is one bombardier-style result document.
type ResultFile struct {
	Name string
	Data []byte
}

// Dataset is a complete synthetic benchmark batch.
type Dataset struct {
	// Runs per API, ordered by concurrency then replicate.
	Runs map[string][]analysis.ReplicateRun

	// Files are the per-run bombardier-style JSON documents.
	Files []ResultFile
}

// replicate holds the full percentile set of one simulated run; only the
// P95 flows into the analysis types, the rest is written to the result
// file.
type replicate struct {
	run      analysis.ReplicateRun
	meanMS   float64
	p50MS    float64
	p99MS    float64
	requests int
}

// Generate simulates every replicate of every profile.
func (g *Generator) Generate(profiles []Profile) (*Dataset, error) {
	if len(g.opts.ConcurrencyPoints) == 0 || g.opts.Replicas < 1 || g.opts.RequestsPerTest < 1 {
		return nil, fmt.Errorf("gen: need concurrency points, at least one replica and one request per test")
	}

	ds := &Dataset{Runs: make(map[string][]analysis.ReplicateRun, len(profiles))}

	for i, p := range profiles {
		for _, c := range g.opts.ConcurrencyPoints {
			for run := 1; run <= g.opts.Replicas; run++ {
				rep, err := g.simulate(p, c)
				if err != nil {
					return nil, err
				}
				ds.Runs[p.Name] = append(ds.Runs[p.Name], rep.run)

				file, err := renderResultFile(p, rep, c, run, i)
				if err != nil {
					return nil, err
				}
				ds.Files = append(ds.Files, file)
			}
		}
	}

	return ds, nil
}

// simulate models one replicate: a run-level latency center plus
// per-request jitter, recorded into an HDR histogram to extract the
// percentiles.
func (g *Generator) simulate(p Profile, concurrency int) (replicate, error) {
	growth := p.GrowthFactor * math.Pow(float64(concurrency), 1.4)
	runNoise := g.rng.NormFloat64() * p.NoiseStd
	center := p.BaseLatency + growth + runNoise
	if center < 0.1 {
		center = 0.1
	}

	// Microsecond histogram up to one minute, three significant figures.
	hist := hdrhistogram.New(1, 60_000_000, 3)

	errProb := errorProbability(concurrency, center)
	errCount := 0

	for i := 0; i < g.opts.RequestsPerTest; i++ {
		jitter := g.rng.NormFloat64() * center * 0.25
		lat := center + jitter
		if lat < 0.05 {
			lat = 0.05
		}
		if err := hist.RecordValue(int64(lat * 1000)); err != nil {
			return replicate{}, fmt.Errorf("gen: recording latency: %w", err)
		}
		if g.rng.Float64() < errProb {
			errCount++
		}
	}

	rpsDegradation := 1.0 / (1 + center*0.05)
	rpsConcurrency := math.Min(1.0, float64(concurrency)/50.0)
	rpsNoise := 1.0 + g.rng.NormFloat64()*p.RPSVariability
	rps := p.BaseRPS * rpsDegradation * rpsConcurrency * rpsNoise
	if rps < 50 {
		rps = 50
	}

	rep := replicate{
		run: analysis.ReplicateRun{
			API:         p.Name,
			Concurrency: concurrency,
			LatencyP95:  float64(hist.ValueAtQuantile(95)) / 1000,
			RPS:         rps,
			ErrorCount:  errCount,
		},
		meanMS:   hist.Mean() / 1000,
		p50MS:    float64(hist.ValueAtQuantile(50)) / 1000,
		p99MS:    float64(hist.ValueAtQuantile(99)) / 1000,
		requests: g.opts.RequestsPerTest,
	}
	return rep, nil
}

// errorProbability ramps error incidence up with concurrency and
// latency, capped at 5%.
func errorProbability(concurrency int, latencyMS float64) float64 {
	p := float64(concurrency-30)*0.001 + latencyMS*0.0001
	if p < 0 {
		return 0
	}
	if p > 0.05 {
		return 0.05
	}
	return p
}

// renderResultFile shapes one replicate as a bombardier result document,
// latencies in nanoseconds.
func renderResultFile(p Profile, rep replicate, concurrency, run, apiIndex int) (ResultFile, error) {
	doc := map[string]any{
		"spec": map[string]any{
			"numberOfConnections": concurrency,
			"numberOfRequests":    rep.requests,
			"method":              "GET",
			"url":                 fmt.Sprintf("http://localhost:%d/compute?size=30", 8081+apiIndex),
		},
		"result": map[string]any{
			"rps": map[string]any{
				"mean":   rep.run.RPS,
				"stddev": rep.run.RPS * 0.1,
			},
			"latencies": map[string]any{
				"mean": int64(rep.meanMS * 1e6),
				"p50":  int64(rep.p50MS * 1e6),
				"p95":  int64(rep.run.LatencyP95 * 1e6),
				"p99":  int64(rep.p99MS * 1e6),
			},
			"errors":   map[string]any{"total": rep.run.ErrorCount},
			"duration": int64(float64(rep.requests) / rep.run.RPS * 1e9),
		},
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return ResultFile{}, err
	}

	return ResultFile{
		Name: fmt.Sprintf("bomb_%d_%s_run%d.json", concurrency, p.Name, run),
		Data: data,
	}, nil
}

// APIs lists the dataset's API ids in a stable order.
func (d *Dataset) APIs() []string {
	ids := make([]string, 0, len(d.Runs))
	for id := range d.Runs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
