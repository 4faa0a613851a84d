package server

import (
	"sync"
	"time"

	"yqhp/calculator/internal/expression"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// maxTrackedLatency caps the histogram at one minute, in microseconds.
const maxTrackedLatency = int64(time.Minute / time.Microsecond)

// Stats records evaluation outcomes and latencies.
type Stats struct {
	mu        sync.Mutex
	latencies *hdrhistogram.Histogram
	byKind    map[expression.ErrorKind]int64
	total     int64
}

// NewStats creates an empty Stats.
func NewStats() *Stats {
	return &Stats{
		latencies: hdrhistogram.New(1, maxTrackedLatency, 3),
		byKind:    make(map[expression.ErrorKind]int64),
	}
}

// Record adds one evaluation. kind is expression.KindNone for successes.
func (s *Stats) Record(elapsed time.Duration, kind expression.ErrorKind) {
	us := elapsed.Microseconds()
	if us < 1 {
		us = 1
	}
	if us > maxTrackedLatency {
		us = maxTrackedLatency
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.total++
	s.byKind[kind]++
	_ = s.latencies.RecordValue(us)
}

// Snapshot returns the current counters.
func (s *Stats) Snapshot() StatsResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	byKind := make(map[string]int64, len(s.byKind))
	for kind, n := range s.byKind {
		byKind[kind.String()] = n
	}

	return StatsResponse{
		Total:  s.total,
		ByKind: byKind,
		Latency: LatencySummary{
			Min:  s.latencies.Min(),
			P50:  s.latencies.ValueAtQuantile(50),
			P90:  s.latencies.ValueAtQuantile(90),
			P99:  s.latencies.ValueAtQuantile(99),
			Max:  s.latencies.Max(),
			Mean: s.latencies.Mean(),
		},
	}
}

// Reset clears all counters.
func (s *Stats) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latencies.Reset()
	s.byKind = make(map[expression.ErrorKind]int64)
	s.total = 0
}
