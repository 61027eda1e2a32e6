// Command ttbench runs a synthetic search workload against the table and
// exposes optional pprof/Prometheus endpoints.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/IvanBrykalov/ttable/internal/util"
	"github.com/IvanBrykalov/ttable/metrics/prom"
	"github.com/IvanBrykalov/ttable/pool"
	"github.com/IvanBrykalov/ttable/tt"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sugawarayuuta/sonnet"
)

// summary is the machine-readable run report printed with -json.
type summary struct {
	SizeMB    int     `json:"size_mb"`
	Threads   int     `json:"threads"`
	Searches  int     `json:"searches"`
	Keys      int     `json:"keys"`
	Seed      int64   `json:"seed"`
	ElapsedMS int64   `json:"elapsed_ms"`
	Ops       uint64  `json:"ops"`
	OpsPerSec float64 `json:"ops_per_sec"`
	Reads     uint64  `json:"reads"`
	Writes    uint64  `json:"writes"`
	Hits      uint64  `json:"hits"`
	HitRate   float64 `json:"hit_rate_pct"`
	Saves     uint64  `json:"saves"`
	Hashfull  int     `json:"hashfull"`
}

func main() {
	// ---- Flags ----
	var (
		sizeMB   = flag.Int("hash", 256, "table size in megabytes")
		threads  = flag.Int("threads", runtime.GOMAXPROCS(0), "search worker count")
		searches = flag.Int("searches", 8, "number of simulated searches (generations)")
		duration = flag.Duration("duration", 10*time.Second, "total benchmark duration")
		readPct  = flag.Int("reads", 80, "probe-only percentage [0..100]")

		keys  = flag.Int("keys", 4_000_000, "position space size")
		zipfS = flag.Float64("zipf_s", 1.1, "Zipf s > 1 (skew)")
		zipfV = flag.Float64("zipf_v", 1.0, "Zipf v")
		seed  = flag.Int64("seed", time.Now().UnixNano(), "random seed")

		jsonOut     = flag.Bool("json", false, "print the summary as JSON")
		pprofAddr   = flag.String("pprof", "", "serve pprof at addr (e.g. :6060); empty = disabled")
		metricsAddr = flag.String("http", ":8080", "serve Prometheus metrics at addr; empty = disabled")
	)
	flag.Parse()

	// ---- pprof server (on DefaultServeMux) ----
	if *pprofAddr != "" {
		go func() {
			log.Printf("pprof: serving at %s", *pprofAddr)
			log.Println(http.ListenAndServe(*pprofAddr, nil))
		}()
	}

	// ---- Prometheus metrics (on DefaultServeMux) ----
	var metrics tt.Metrics
	if *metricsAddr != "" {
		metrics = prom.New(nil, "ttable", "bench", nil)
		http.Handle("/metrics", promhttp.Handler())
		go func() {
			log.Printf("metrics: serving at %s", *metricsAddr)
			log.Println(http.ListenAndServe(*metricsAddr, nil))
		}()
	}

	// ---- Snapshot flags ----
	workersN := *threads
	if workersN < 1 {
		workersN = 1
	}
	searchesN := *searches
	if searchesN < 1 {
		searchesN = 1
	}
	readPctVal := *readPct
	keysMax := uint64(*keys - 1)
	seedBase := *seed
	zipfSVal := *zipfS
	zipfVVal := *zipfV

	// ---- Pool and table ----
	p := pool.New(workersN)
	defer p.Close()

	table := tt.New(tt.Options{
		SizeMB:  *sizeMB,
		Threads: p.ThreadCount,
		Pool:    p,
		Metrics: metrics,
	})

	// ---- Load generation: one table generation per simulated search ----
	var reads, writes uint64
	perSearch := *duration / time.Duration(searchesN)

	start := time.Now()
	for s := 0; s < searchesN; s++ {
		table.NewSearch()
		deadline := time.Now().Add(perSearch)

		for w := 0; w < workersN; w++ {
			p.Go(func() {
				// Each worker gets its own RNG + Zipf (rand.Rand is NOT
				// goroutine-safe).
				localR := rand.New(rand.NewSource(seedBase + int64(s)*1_000_003 + int64(w)*9973))
				localZipf := rand.NewZipf(localR, zipfSVal, zipfVVal, keysMax)

				for n := 0; ; n++ {
					// Check the clock every 1024 ops, not on each one.
					if n&1023 == 0 && !time.Now().Before(deadline) {
						return
					}

					// Zipf draws a skewed small integer; mixing spreads it
					// over the whole fingerprint space deterministically.
					fp := util.Mix64(localZipf.Uint64())
					e, ok := table.Probe(fp)

					if int(localR.Int31n(100)) < readPctVal {
						atomic.AddUint64(&reads, 1)
						if ok {
							_ = e.Value()
						}
						continue
					}

					atomic.AddUint64(&writes, 1)
					e.Save(fp,
						int16(localR.Int31n(1<<16)-1<<15),
						drawBound(localR),
						int(localR.Int31n(40))-8,
						tt.Move(localR.Int31n(1<<16)),
					)
				}
			})
		}
		p.WaitUntilIdle()
		log.Printf("search %d/%d: hashfull=%d", s+1, searchesN, table.Hashfull())
	}
	elapsed := time.Since(start)

	// ---- Report ----
	stats := table.Stats()
	readsN := atomic.LoadUint64(&reads)
	writesN := atomic.LoadUint64(&writes)
	ops := readsN + writesN

	hitRate := 0.0
	if stats.Probes > 0 {
		hitRate = float64(stats.Hits) / float64(stats.Probes) * 100
	}

	sum := summary{
		SizeMB:    *sizeMB,
		Threads:   workersN,
		Searches:  searchesN,
		Keys:      *keys,
		Seed:      seedBase,
		ElapsedMS: elapsed.Milliseconds(),
		Ops:       ops,
		OpsPerSec: float64(ops) / elapsed.Seconds(),
		Reads:     readsN,
		Writes:    writesN,
		Hits:      stats.Hits,
		HitRate:   hitRate,
		Saves:     stats.Saves,
		Hashfull:  table.Hashfull(),
	}

	if *jsonOut {
		b, err := sonnet.Marshal(sum)
		if err != nil {
			log.Fatalf("encode summary: %v", err)
		}
		b = append(b, '\n')
		if _, err := os.Stdout.Write(b); err != nil {
			log.Fatal(err)
		}
		return
	}

	fmt.Printf("hash=%dMB threads=%d searches=%d keys=%d dur=%v seed=%d\n",
		sum.SizeMB, sum.Threads, sum.Searches, sum.Keys, elapsed, sum.Seed)
	fmt.Printf("ops=%d (%.0f ops/s)  reads=%d  writes=%d\n",
		sum.Ops, sum.OpsPerSec, sum.Reads, sum.Writes)
	fmt.Printf("probes=%d  hits=%d  hit-rate=%.2f%%  saves=%d\n",
		stats.Probes, stats.Hits, hitRate, stats.Saves)
	fmt.Printf("hashfull=%d  capacity=%d entries\n", sum.Hashfull, table.Size())
}

// drawBound draws a plausible bound mix: half the simulated results are
// exact scores, the rest split between fail-highs and fail-lows.
func drawBound(r *rand.Rand) tt.Bound {
	switch r.Int31n(4) {
	case 0, 1:
		return tt.BoundExact
	case 2:
		return tt.BoundLower
	default:
		return tt.BoundUpper
	}
}
