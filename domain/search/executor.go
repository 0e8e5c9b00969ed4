package search

import (
	"sync"

	"sarychdb/domain/record"
)

// ParallelThreshold is the record count at or above which Run shards and
// evaluates the Matcher in parallel instead of sequentially (spec
// §4.5, §9 "Adaptive parallelism" — a heuristic constant, not a fixed
// requirement; callers may override via RunWithThreshold).
const ParallelThreshold = 1000

// Run evaluates the Matcher over records for query/mode, returning
// matches in database order. Below ParallelThreshold it runs
// sequentially; at or above it, it shards the records and evaluates
// each shard in its own goroutine, concatenating in shard order so the
// observable result is identical to the sequential path (spec property 4).
func Run(records []record.Record, query string, mode Mode) []record.Record {
	return RunWithThreshold(records, query, mode, ParallelThreshold)
}

// RunWithThreshold is Run with an explicit parallel-execution threshold.
func RunWithThreshold(records []record.Record, query string, mode Mode, threshold int) []record.Record {
	if query == "" {
		return record.CloneAll(records)
	}

	if len(records) < threshold {
		return runSequential(records, query, mode)
	}
	return runParallel(records, query, mode)
}

func runSequential(records []record.Record, query string, mode Mode) []record.Record {
	matches := make([]record.Record, 0)
	for _, r := range records {
		if Match(map[string]interface{}(r), query, mode) {
			matches = append(matches, r.Clone())
		}
	}
	return matches
}

func runParallel(records []record.Record, query string, mode Mode) []record.Record {
	shards := Split(len(records), 0)
	results := make([][]record.Record, len(shards))

	var wg sync.WaitGroup
	wg.Add(len(shards))
	for i, b := range shards {
		i, b := i, b
		go func() {
			defer wg.Done()
			results[i] = runSequential(records[b.Start:b.End], query, mode)
		}()
	}
	wg.Wait()

	total := 0
	for _, r := range results {
		total += len(r)
	}
	matches := make([]record.Record, 0, total)
	for _, r := range results {
		matches = append(matches, r...)
	}
	return matches
}
