package demo

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFibonacci(t *testing.T) {
	cases := []struct {
		n    int
		want uint64
	}{
		{0, 0},
		{1, 1},
		{2, 1},
		{10, 55},
		{30, 832040},
		{90, 2880067194370816120},
	}
	for _, tc := range cases {
		if got := fibonacci(tc.n); got != tc.want {
			t.Errorf("fibonacci(%d) = %d, want %d", tc.n, got, tc.want)
		}
	}
}

func TestComputeEndpoint(t *testing.T) {
	srv := New(":0")
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/compute?size=10")
	if err != nil {
		t.Fatalf("GET /compute: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Input      int    `json:"input"`
		Result     uint64 `json:"result"`
		DurationUS int64  `json:"duration_us"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.Input != 10 || body.Result != 55 {
		t.Errorf("expected F(10)=55, got F(%d)=%d", body.Input, body.Result)
	}
}

func TestComputeRejectsBadSize(t *testing.T) {
	srv := New(":0")
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	for _, q := range []string{"size=-1", "size=91", "size=abc"} {
		resp, err := http.Get(ts.URL + "/compute?" + q)
		if err != nil {
			t.Fatalf("GET /compute?%s: %v", q, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("query %s: expected 400, got %d", q, resp.StatusCode)
		}
	}
}

func TestStatsTracksRequests(t *testing.T) {
	srv := New(":0")
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	for i := 0; i < 5; i++ {
		resp, err := http.Get(ts.URL + "/compute?size=20")
		if err != nil {
			t.Fatalf("GET /compute: %v", err)
		}
		resp.Body.Close()
	}

	resp, err := http.Get(ts.URL + "/stats")
	if err != nil {
		t.Fatalf("GET /stats: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		RequestsServed int64              `json:"requests_served"`
		LatencyMS      map[string]float64 `json:"latency_ms"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding stats: %v", err)
	}
	if body.RequestsServed != 5 {
		t.Errorf("expected 5 served requests, got %d", body.RequestsServed)
	}
	if body.LatencyMS["p95"] < body.LatencyMS["p50"] {
		t.Errorf("p95 (%v) below p50 (%v)", body.LatencyMS["p95"], body.LatencyMS["p50"])
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := New(":0")
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}
