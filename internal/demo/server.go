// Package demo implements a small CPU-bound HTTP server used to produce
// real latency curves for benchmarking. Each request computes a
// Fibonacci number iteratively; the size parameter controls how much
// work a request costs, so concurrency sweeps against it show the
// degradation shapes the analyzer is built for.
package demo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

const (
	defaultSize = 30
	maxSize     = 90
)

// Server serves the compute, health and stats endpoints and records the
// latency of every compute request into an HDR histogram.
type Server struct {
	mu      sync.Mutex
	hist    *hdrhistogram.Histogram
	served  int64
	started time.Time

	httpSrv *http.Server
}

// New creates a server listening on addr.
func New(addr string) *Server {
	s := &Server{
		// Microsecond resolution up to one minute.
		hist:    hdrhistogram.New(1, 60_000_000, 3),
		started: time.Now(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/compute", s.handleCompute)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/stats", s.handleStats)

	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// ListenAndServe blocks until the server stops.
func (s *Server) ListenAndServe() error {
	slog.Info("demo server listening", "addr", s.httpSrv.Addr)
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("demo: server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

func (s *Server) handleCompute(w http.ResponseWriter, r *http.Request) {
	size := defaultSize
	if raw := r.URL.Query().Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > maxSize {
			http.Error(w, fmt.Sprintf("size must be an integer in [0,%d]", maxSize), http.StatusBadRequest)
			return
		}
		size = n
	}

	start := time.Now()
	result := fibonacci(size)
	elapsed := time.Since(start)

	s.record(elapsed)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"input":       size,
		"result":      result,
		"duration_us": elapsed.Microseconds(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status": "ok",
		"uptime": time.Since(s.started).String(),
	})
}

// handleStats reports the latency distribution of the compute requests
// served so far, in milliseconds.
func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	served := s.served
	var mean, p50, p95, p99, max float64
	if served > 0 {
		mean = s.hist.Mean() / 1000
		p50 = float64(s.hist.ValueAtQuantile(50)) / 1000
		p95 = float64(s.hist.ValueAtQuantile(95)) / 1000
		p99 = float64(s.hist.ValueAtQuantile(99)) / 1000
		max = float64(s.hist.Max()) / 1000
	}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"requests_served": served,
		"latency_ms": map[string]float64{
			"mean": mean,
			"p50":  p50,
			"p95":  p95,
			"p99":  p99,
			"max":  max,
		},
	})
}

func (s *Server) record(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.served++
	if err := s.hist.RecordValue(d.Microseconds()); err != nil {
		slog.Debug("latency outside histogram range", "duration", d)
	}
}

// fibonacci computes F(n) iteratively. uint64 holds F(n) up to n=93.
func fibonacci(n int) uint64 {
	if n < 2 {
		return uint64(n)
	}
	a, b := uint64(0), uint64(1)
	for i := 2; i <= n; i++ {
		a, b = b, a+b
	}
	return b
}
