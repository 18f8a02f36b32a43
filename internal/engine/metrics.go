package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	TranscriptRequests  atomic.Int64
	TranscriptSuccesses atomic.Int64
	TranscriptExhausted atomic.Int64
	MalformedIDs        atomic.Int64
	FetchRequests       atomic.Int64
	FetchErrors         atomic.Int64
	SummaryCalls        atomic.Int64
	SummaryErrors       atomic.Int64
}

// strategyCounters holds per-strategy attempt/success counts keyed by
// "<strategy>_attempts" and "<strategy>_successes".
var strategyCounters sync.Map // string → *atomic.Int64

func strategyCounter(name string) *atomic.Int64 {
	if v, ok := strategyCounters.Load(name); ok {
		return v.(*atomic.Int64)
	}
	v, _ := strategyCounters.LoadOrStore(name, new(atomic.Int64))
	return v.(*atomic.Int64)
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	m := map[string]int64{
		"transcript_requests":  metrics.TranscriptRequests.Load(),
		"transcript_successes": metrics.TranscriptSuccesses.Load(),
		"transcript_exhausted": metrics.TranscriptExhausted.Load(),
		"malformed_ids":        metrics.MalformedIDs.Load(),
		"fetch_requests":       metrics.FetchRequests.Load(),
		"fetch_errors":         metrics.FetchErrors.Load(),
		"summary_calls":        metrics.SummaryCalls.Load(),
		"summary_errors":       metrics.SummaryErrors.Load(),
		"cache_hits":           hits,
		"cache_misses":         misses,
	}
	strategyCounters.Range(func(k, v any) bool {
		m["strategy_"+k.(string)] = v.(*atomic.Int64).Load()
		return true
	})
	return m
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

func IncrTranscriptRequests()  { metrics.TranscriptRequests.Add(1) }
func IncrTranscriptSuccesses() { metrics.TranscriptSuccesses.Add(1) }
func IncrTranscriptExhausted() { metrics.TranscriptExhausted.Add(1) }
func IncrMalformedIDs()        { metrics.MalformedIDs.Add(1) }
func IncrFetchRequests()       { metrics.FetchRequests.Add(1) }
func IncrFetchErrors()         { metrics.FetchErrors.Add(1) }

// ObserveStrategy records one attempt of a retrieval strategy.
// Its signature matches transcript.Chain.Observe.
func ObserveStrategy(name string, ok bool) {
	strategyCounter(name + "_attempts").Add(1)
	if ok {
		strategyCounter(name + "_successes").Add(1)
	}
}

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > 10*time.Second {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
