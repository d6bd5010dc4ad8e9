package main

import (
	"testing"
	"time"
)

func TestParseConfigProfiles(t *testing.T) {
	cfg, err := parseConfig([]string{"--profile", "fast", "--clients", "3", "--duration", "2s"})
	if err != nil {
		t.Fatalf("parseConfig() error: %v", err)
	}
	if cfg.Profile != "fast" || cfg.Clients != 3 || cfg.Duration != 2*time.Second {
		t.Errorf("parseConfig() = %+v", cfg)
	}
	if cfg.ListSize != profiles["fast"].ListSize {
		t.Errorf("ListSize = %d, want profile default", cfg.ListSize)
	}

	if _, err := parseConfig([]string{"--profile", "nope"}); err == nil {
		t.Error("unknown profile should fail")
	}
	if _, err := parseConfig([]string{"--rps", "0"}); err == nil {
		t.Error("zero rps should fail")
	}
}

func TestPercentile(t *testing.T) {
	sorted := []time.Duration{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	tests := []struct {
		p    float64
		want time.Duration
	}{
		{0, 1},
		{0.5, 5},
		{0.95, 10},
		{1, 10},
	}
	for _, tt := range tests {
		if got := percentile(sorted, tt.p); got != tt.want {
			t.Errorf("percentile(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
	if percentile(nil, 0.5) != 0 {
		t.Error("percentile(nil) should be 0")
	}
}

func TestRunAgainstRenderServer(t *testing.T) {
	if testing.Short() {
		t.Skip("load run")
	}
	source, err := startSource(5)
	if err != nil {
		t.Fatal(err)
	}
	defer source.Close()

	cfg := benchConfig{Profile: "test", Clients: 2, Duration: 300 * time.Millisecond, RPS: 20, ListSize: 5}
	report, err := benchmark(source.URL, cfg)
	if err != nil {
		t.Fatal(err)
	}

	if report.Throughput.Requests == 0 {
		t.Fatal("no requests recorded")
	}
	if report.Throughput.Failures != 0 {
		t.Errorf("failures = %d", report.Throughput.Failures)
	}
	if report.LatencyMS.Max < report.LatencyMS.Min {
		t.Errorf("latency max %v < min %v", report.LatencyMS.Max, report.LatencyMS.Min)
	}
}
