package main

import (
	"fmt"
	"os"
	"time"

	"sarychdb/application/crud"
	"sarychdb/domain/search"
	"sarychdb/infrastructure/cache"
	"sarychdb/infrastructure/config"
	"sarychdb/infrastructure/storage"
	"sarychdb/pkg/observability"
)

// runBenchmark exercises the CRUD Engine directly against a scratch
// database file, reporting insert throughput and the elapsed time of
// one search. The wire
// protocol, user registry, and HTTP surface are out of scope for this
// harness (spec §1 non-goals) — it drives the core engine only.
func runBenchmark() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := observability.NewLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	store := storage.NewStore()
	fileCache := cache.NewFileCache(cfg.FileCacheTTL)
	searchCache := cache.NewSearchCache(cfg.SearchCacheTTL, cfg.SearchCacheMaxSize)
	engine := crud.NewEngine(store, fileCache, searchCache, logger).
		WithSearchThreshold(cfg.SearchParallelThreshold)

	path := cfg.DataDir + "/benchmark.json"
	defer os.Remove(path)

	const inserts = 5000
	start := time.Now()
	for i := 0; i < inserts; i++ {
		_, err := engine.Insert(path, map[string]interface{}{
			"index": i,
			"label": fmt.Sprintf("record-%d", i),
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "insert %d failed: %v\n", i, err)
			os.Exit(1)
		}
	}
	insertElapsed := time.Since(start)
	fmt.Printf("inserted %d records in %s (%.0f/s)\n", inserts, insertElapsed, float64(inserts)/insertElapsed.Seconds())

	start = time.Now()
	matches, err := engine.Get(path, "record-4999", search.ModeDefault)
	if err != nil {
		fmt.Fprintf(os.Stderr, "search failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("search over %d records took %s, matched %d\n", inserts, time.Since(start), len(matches))
}
