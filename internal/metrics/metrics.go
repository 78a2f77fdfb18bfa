// Package metrics collects lock-free query counters for the ambient HTTP
// API, adapted from the same atomic-counter-plus-snapshot shape used
// elsewhere in this module's server layer.
package metrics

import (
	"sync"
	"sync/atomic"
)

// QueryStats collects query outcome counters. All methods are safe for
// concurrent use.
type QueryStats struct {
	queriesTotal   atomic.Uint64
	queriesFailed  atomic.Uint64
	queriesTimeout atomic.Uint64
	latencyTotalNs atomic.Uint64

	byProtocol sync.Map
}

// NewQueryStats creates a new, empty collector.
func NewQueryStats() *QueryStats {
	return &QueryStats{}
}

// RecordQuery records one completed query attempt for protocol, including
// whether it succeeded and how long it took.
func (s *QueryStats) RecordQuery(protocol string, ok bool, timedOut bool, latencyNs int64) {
	s.queriesTotal.Add(1)
	if !ok {
		s.queriesFailed.Add(1)
	}
	if timedOut {
		s.queriesTimeout.Add(1)
	}
	if latencyNs > 0 {
		s.latencyTotalNs.Add(uint64(latencyNs))
	}

	counterAny, _ := s.byProtocol.LoadOrStore(protocol, new(atomic.Uint64))
	counterAny.(*atomic.Uint64).Add(1)
}

// Snapshot is a point-in-time view of the collected counters.
type Snapshot struct {
	QueriesTotal    uint64
	QueriesFailed   uint64
	QueriesTimeout  uint64
	AvgLatencyMs    float64
	QueriesByFamily map[string]uint64
}

// Snapshot returns the current statistics.
func (s *QueryStats) Snapshot() Snapshot {
	total := s.queriesTotal.Load()
	latencyNs := s.latencyTotalNs.Load()

	avgLatencyMs := 0.0
	if total > 0 {
		avgLatencyMs = float64(latencyNs) / float64(total) / 1e6
	}

	byFamily := map[string]uint64{}
	s.byProtocol.Range(func(key, value any) bool {
		byFamily[key.(string)] = value.(*atomic.Uint64).Load()
		return true
	})

	return Snapshot{
		QueriesTotal:    total,
		QueriesFailed:   s.queriesFailed.Load(),
		QueriesTimeout:  s.queriesTimeout.Load(),
		AvgLatencyMs:    avgLatencyMs,
		QueriesByFamily: byFamily,
	}
}
