package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordQueryAccumulates(t *testing.T) {
	s := NewQueryStats()
	s.RecordQuery("valve", true, false, int64(1_000_000))
	s.RecordQuery("valve", false, true, int64(2_000_000))
	s.RecordQuery("quake", true, false, int64(3_000_000))

	snap := s.Snapshot()
	assert.Equal(t, uint64(3), snap.QueriesTotal)
	assert.Equal(t, uint64(1), snap.QueriesFailed)
	assert.Equal(t, uint64(1), snap.QueriesTimeout)
	assert.Equal(t, uint64(2), snap.QueriesByFamily["valve"])
	assert.Equal(t, uint64(1), snap.QueriesByFamily["quake"])
	assert.InDelta(t, 2.0, snap.AvgLatencyMs, 0.001)
}

func TestSnapshotOnEmptyCollectorHasZeroLatency(t *testing.T) {
	s := NewQueryStats()
	snap := s.Snapshot()
	assert.Zero(t, snap.QueriesTotal)
	assert.Zero(t, snap.AvgLatencyMs)
}
