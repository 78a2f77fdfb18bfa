// Command gamedig-bench fires concurrent queries at one game server and
// reports latency percentiles and achieved throughput.
package main

import (
	"flag"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/riftline/gamedig/internal/nio"
	"github.com/riftline/gamedig/internal/registry"
	"github.com/riftline/gamedig/internal/settings"
)

func main() {
	var (
		game        = flag.String("game", "csgo", "Registry game id")
		address     = flag.String("address", "127.0.0.1:27015", "Server address as host:port")
		concurrency = flag.Int("concurrency", 50, "Number of concurrent workers")
		requests    = flag.Int("requests", 2000, "Total number of requests")
		timeout     = flag.Duration("timeout", 2*time.Second, "Per-request timeout")
	)
	flag.Parse()

	endpoint, err := nio.ParseEndpoint(*address)
	if err != nil {
		panic(err)
	}

	timeouts := settings.TimeoutConfig{Retries: 0}
	timeouts.UDP.Read = timeout
	timeouts.TCP.Read = timeout
	timeouts.TCP.Connect = timeout

	conc := *concurrency
	if conc < 1 {
		conc = 1
	}
	total := *requests
	if total < 1 {
		total = 1
	}
	per := total / conc
	rem := total % conc

	lat := make([]float64, 0, total)
	var latMu sync.Mutex
	var failures int64
	var failMu sync.Mutex

	t0 := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < conc; i++ {
		n := per
		if i < rem {
			n++
		}
		if n <= 0 {
			continue
		}
		wg.Add(1)
		go func(num int) {
			defer wg.Done()
			for j := 0; j < num; j++ {
				start := time.Now()
				_, queryErr := registry.Query(*game, endpoint, timeouts)
				if queryErr != nil {
					failMu.Lock()
					failures++
					failMu.Unlock()
					continue
				}
				ms := float64(time.Since(start).Microseconds()) / 1000.0
				latMu.Lock()
				lat = append(lat, ms)
				latMu.Unlock()
			}
		}(n)
	}
	wg.Wait()
	elapsed := time.Since(t0).Seconds()

	fmt.Printf("game=%s address=%s concurrency=%d requests=%d failures=%d\n", *game, *address, conc, total, failures)

	if len(lat) == 0 {
		fmt.Println("no successful requests")
		return
	}
	sort.Float64s(lat)
	qps := float64(len(lat)) / elapsed
	fmt.Printf("elapsed_s=%.3f qps=%.1f\n", elapsed, qps)
	fmt.Printf("latency_ms p50=%.3f p95=%.3f p99=%.3f min=%.3f max=%.3f\n",
		percentile(lat, 50), percentile(lat, 95), percentile(lat, 99), lat[0], lat[len(lat)-1])
}

func percentile(sorted []float64, p int) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	idx := int(float64(len(sorted))*float64(p)/100.0) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
