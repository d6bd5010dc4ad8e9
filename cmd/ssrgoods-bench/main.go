// Command ssrgoods-bench measures page render latency under load.
//
// It starts an in-process data source and render server, then drives GET /
// from concurrent clients at a fixed per-client rate.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net"
	"net/http"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/pflag"

	"github.com/vango-dev/ssrgoods/pkg/goods"
	"github.com/vango-dev/ssrgoods/pkg/loader"
	"github.com/vango-dev/ssrgoods/pkg/server"
)

type profile struct {
	Name     string
	Clients  int
	Duration time.Duration
	RPS      float64
	ListSize int
}

var profiles = map[string]profile{
	"fast":     {Name: "fast", Clients: 10, Duration: 5 * time.Second, RPS: 5, ListSize: 20},
	"standard": {Name: "standard", Clients: 50, Duration: 20 * time.Second, RPS: 10, ListSize: 100},
	"stress":   {Name: "stress", Clients: 200, Duration: 30 * time.Second, RPS: 20, ListSize: 1000},
}

type benchConfig struct {
	Profile    string
	Clients    int
	Duration   time.Duration
	RPS        float64
	ListSize   int
	JSONOutput string
}

type benchCounters struct {
	requests  atomic.Uint64
	failures  atomic.Uint64
	pageBytes atomic.Uint64
}

func main() {
	log.SetFlags(0)

	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	source, err := startSource(cfg.ListSize)
	if err != nil {
		log.Fatalf("data source: %v", err)
	}
	defer source.Close()

	report, err := benchmark(source.URL, cfg)
	if err != nil {
		log.Fatal(err)
	}

	writeSummary(os.Stderr, report)
	if err := writeJSON(cfg.JSONOutput, report); err != nil {
		log.Fatalf("write json: %v", err)
	}
}

// benchmark starts a render server loading from sourceURL and drives it.
func benchmark(sourceURL string, cfg benchConfig) (benchReport, error) {
	l, err := loader.NewHTTPLoader(sourceURL)
	if err != nil {
		return benchReport{}, err
	}
	srv := server.New(server.DefaultConfig(), l)

	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		return benchReport{}, fmt.Errorf("listen: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = srv.Serve(ctx, ln) }()

	return run("http://"+ln.Addr().String()+"/", cfg), nil
}

func parseConfig(args []string) (benchConfig, error) {
	fs := pflag.NewFlagSet("ssrgoods-bench", pflag.ContinueOnError)
	profileFlag := fs.String("profile", "standard", "profile: fast|standard|stress")
	clientsFlag := fs.Int("clients", -1, "number of concurrent clients")
	durationFlag := fs.Duration("duration", 0, "benchmark duration, e.g. 30s")
	rpsFlag := fs.Float64("rps", -1, "target page requests/sec per client")
	listFlag := fs.Int("list", -1, "goods list size answered by the data source")
	jsonFlag := fs.String("json", "-", "JSON output path ('-' for stdout, '' to skip)")
	if err := fs.Parse(args); err != nil {
		return benchConfig{}, err
	}

	name := strings.ToLower(strings.TrimSpace(*profileFlag))
	base, ok := profiles[name]
	if !ok {
		return benchConfig{}, fmt.Errorf("unknown profile %q", name)
	}

	cfg := benchConfig{
		Profile:    base.Name,
		Clients:    base.Clients,
		Duration:   base.Duration,
		RPS:        base.RPS,
		ListSize:   base.ListSize,
		JSONOutput: strings.TrimSpace(*jsonFlag),
	}
	if *clientsFlag != -1 {
		cfg.Clients = *clientsFlag
	}
	if *durationFlag > 0 {
		cfg.Duration = *durationFlag
	}
	if *rpsFlag != -1 {
		cfg.RPS = *rpsFlag
	}
	if *listFlag != -1 {
		cfg.ListSize = *listFlag
	}

	if cfg.Clients <= 0 {
		return benchConfig{}, fmt.Errorf("--clients must be positive")
	}
	if cfg.RPS <= 0 {
		return benchConfig{}, fmt.Errorf("--rps must be positive")
	}
	if cfg.ListSize < 0 {
		return benchConfig{}, fmt.Errorf("--list must not be negative")
	}
	return cfg, nil
}

type sourceServer struct {
	URL string
	srv *http.Server
}

func (s *sourceServer) Close() { _ = s.srv.Close() }

// startSource serves a fixed goods payload of n items.
func startSource(n int) (*sourceServer, error) {
	values := make([]string, n)
	for i := range values {
		values[i] = fmt.Sprintf("goods-%05d", i)
	}
	body, err := json.Marshal(map[string]any{
		"data": map[string]any{"list": goods.Strings(values...)},
	})
	if err != nil {
		return nil, err
	}

	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}
	srv := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	})}
	go func() { _ = srv.Serve(ln) }()

	return &sourceServer{URL: "http://" + ln.Addr().String() + "/goods", srv: srv}, nil
}

func run(pageURL string, cfg benchConfig) benchReport {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Duration)
	defer cancel()

	client := &http.Client{Transport: &http.Transport{MaxIdleConnsPerHost: cfg.Clients}}

	var (
		counters  benchCounters
		samplesMu sync.Mutex
		samples   []time.Duration
	)

	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(cfg.Clients)
	for i := 0; i < cfg.Clients; i++ {
		go func() {
			defer wg.Done()
			local := runClient(ctx, client, pageURL, cfg.RPS, &counters)
			samplesMu.Lock()
			samples = append(samples, local...)
			samplesMu.Unlock()
		}()
	}
	wg.Wait()
	elapsed := time.Since(start)

	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return buildReport(cfg, elapsed, samples, &counters, mem)
}

func runClient(ctx context.Context, client *http.Client, pageURL string, rps float64, counters *benchCounters) []time.Duration {
	ticker := time.NewTicker(time.Duration(float64(time.Second) / rps))
	defer ticker.Stop()

	var samples []time.Duration
	for {
		select {
		case <-ctx.Done():
			return samples
		case <-ticker.C:
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			counters.failures.Add(1)
			continue
		}

		sent := time.Now()
		resp, err := client.Do(req)
		if err != nil {
			if ctx.Err() == nil {
				counters.failures.Add(1)
			}
			continue
		}
		n, _ := io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		counters.requests.Add(1)
		counters.pageBytes.Add(uint64(n))
		if resp.StatusCode != http.StatusOK {
			counters.failures.Add(1)
			continue
		}
		samples = append(samples, time.Since(sent))
	}
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[len(sorted)-1]
	}
	idx := int(math.Ceil(float64(len(sorted))*p)) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

type benchReport struct {
	Workload   workloadInfo   `json:"workload"`
	LatencyMS  latencyInfo    `json:"latency_ms"`
	Throughput throughputInfo `json:"throughput"`
	Memory     memoryInfo     `json:"memory"`
}

type workloadInfo struct {
	Profile      string  `json:"profile"`
	Clients      int     `json:"clients"`
	DurationMS   int64   `json:"duration_ms"`
	RPSPerClient float64 `json:"rps_per_client"`
	ListSize     int     `json:"list_size"`
}

type latencyInfo struct {
	Min float64 `json:"min"`
	P50 float64 `json:"p50"`
	P95 float64 `json:"p95"`
	P99 float64 `json:"p99"`
	Max float64 `json:"max"`
}

type throughputInfo struct {
	Requests     uint64  `json:"requests"`
	Failures     uint64  `json:"failures"`
	PagesPerSec  float64 `json:"pages_per_sec"`
	AvgPageBytes float64 `json:"avg_page_bytes"`
}

type memoryInfo struct {
	AllocMB      float64 `json:"alloc_mb"`
	NumGC        uint32  `json:"num_gc"`
	PauseTotalMS float64 `json:"gc_pause_total_ms"`
}

func buildReport(cfg benchConfig, elapsed time.Duration, latencies []time.Duration, counters *benchCounters, mem runtime.MemStats) benchReport {
	requests := counters.requests.Load()

	report := benchReport{
		Workload: workloadInfo{
			Profile:      cfg.Profile,
			Clients:      cfg.Clients,
			DurationMS:   cfg.Duration.Milliseconds(),
			RPSPerClient: cfg.RPS,
			ListSize:     cfg.ListSize,
		},
		Throughput: throughputInfo{
			Requests: requests,
			Failures: counters.failures.Load(),
		},
		Memory: memoryInfo{
			AllocMB:      float64(mem.TotalAlloc) / (1024 * 1024),
			NumGC:        mem.NumGC,
			PauseTotalMS: ms(time.Duration(mem.PauseTotalNs)),
		},
	}
	if elapsed > 0 {
		report.Throughput.PagesPerSec = float64(requests) / elapsed.Seconds()
	}
	if requests > 0 {
		report.Throughput.AvgPageBytes = float64(counters.pageBytes.Load()) / float64(requests)
	}
	if len(latencies) > 0 {
		report.LatencyMS = latencyInfo{
			Min: ms(latencies[0]),
			P50: ms(percentile(latencies, 0.50)),
			P95: ms(percentile(latencies, 0.95)),
			P99: ms(percentile(latencies, 0.99)),
			Max: ms(latencies[len(latencies)-1]),
		}
	}
	return report
}

func writeSummary(w io.Writer, report benchReport) {
	fmt.Fprintln(w, "=== ssrgoods page benchmark ===")
	fmt.Fprintf(w, "Profile: %s\n", report.Workload.Profile)
	fmt.Fprintf(w, "Clients: %d\n", report.Workload.Clients)
	fmt.Fprintf(w, "Duration: %s\n", time.Duration(report.Workload.DurationMS)*time.Millisecond)
	fmt.Fprintf(w, "Target per-client rate: %.2f pages/s\n", report.Workload.RPSPerClient)
	fmt.Fprintf(w, "List size: %d\n", report.Workload.ListSize)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Requests: %d (%d failed)\n", report.Throughput.Requests, report.Throughput.Failures)
	fmt.Fprintf(w, "Throughput: %.1f pages/s\n", report.Throughput.PagesPerSec)
	fmt.Fprintf(w, "Average page: %.0f bytes\n", report.Throughput.AvgPageBytes)
	fmt.Fprintln(w)

	if report.LatencyMS.Max == 0 {
		fmt.Fprintln(w, "No latency samples recorded.")
	} else {
		fmt.Fprintln(w, "Page latency (request -> fetch -> render -> body read):")
		fmt.Fprintf(w, "  min: %.2f ms\n", report.LatencyMS.Min)
		fmt.Fprintf(w, "  p50: %.2f ms\n", report.LatencyMS.P50)
		fmt.Fprintf(w, "  p95: %.2f ms\n", report.LatencyMS.P95)
		fmt.Fprintf(w, "  p99: %.2f ms\n", report.LatencyMS.P99)
		fmt.Fprintf(w, "  max: %.2f ms\n", report.LatencyMS.Max)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Go runtime (process-wide):")
	fmt.Fprintf(w, "  alloc:    %.2f MB\n", report.Memory.AllocMB)
	fmt.Fprintf(w, "  num_gc:   %d\n", report.Memory.NumGC)
	fmt.Fprintf(w, "  gc_pause: %.2f ms (total)\n", report.Memory.PauseTotalMS)
}

func writeJSON(path string, report benchReport) error {
	if path == "" {
		return nil
	}
	var out io.Writer
	if path == "-" {
		out = os.Stdout
	} else {
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
