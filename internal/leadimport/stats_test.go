package leadimport

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatsCountsEveryDecisionKind(t *testing.T) {
	s := NewStats()

	s.Record(imported(), 100*time.Millisecond)
	s.Record(imported(), 300*time.Millisecond)
	s.Record(duplicate(), 50*time.Millisecond)
	s.Record(lowConfidence("score 40 below threshold 75"), 0)
	s.Record(missingField("email"), 0)
	s.Record(outsideBusinessHours(), 0)
	s.Record(errorDecision("duplicate lookup failed"), 0)

	snap := s.Snapshot()
	assert.Equal(t, uint64(7), snap.TotalProcessed)
	assert.Equal(t, uint64(2), snap.SuccessfulImports)
	assert.Equal(t, uint64(1), snap.DuplicatesSkipped)
	assert.Equal(t, uint64(1), snap.LowConfidenceSkipped)
	assert.Equal(t, uint64(1), snap.MissingFieldSkipped)
	assert.Equal(t, uint64(1), snap.OutsideHoursSkipped)
	assert.Equal(t, uint64(1), snap.Errors)

	assert.InDelta(t, 2.0/7.0, snap.SuccessRate, 1e-9)
	// Only positive latencies feed the average: (100+300+50)/3 = 150ms.
	assert.Equal(t, int64(150), snap.AverageLatencyMS)
}

func TestStatsEmptySnapshot(t *testing.T) {
	snap := NewStats().Snapshot()
	assert.Zero(t, snap.TotalProcessed)
	assert.Zero(t, snap.SuccessRate)
	assert.Zero(t, snap.AverageLatencyMS)
}

func TestStatsReset(t *testing.T) {
	s := NewStats()
	s.Record(imported(), time.Second)
	s.Record(errorDecision("boom"), time.Second)

	s.Reset()

	snap := s.Snapshot()
	assert.Equal(t, StatsSnapshot{}, snap)

	// Still usable after reset.
	s.Record(imported(), 200*time.Millisecond)
	snap = s.Snapshot()
	assert.Equal(t, uint64(1), snap.TotalProcessed)
	assert.Equal(t, float64(1), snap.SuccessRate)
	assert.Equal(t, int64(200), snap.AverageLatencyMS)
}

func TestStatsConcurrentRecords(t *testing.T) {
	s := NewStats()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				s.Record(imported(), time.Millisecond)
				s.Record(duplicate(), time.Millisecond)
			}
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	assert.Equal(t, uint64(8000), snap.TotalProcessed)
	assert.Equal(t, uint64(4000), snap.SuccessfulImports)
	assert.Equal(t, uint64(4000), snap.DuplicatesSkipped)
	assert.Equal(t, 0.5, snap.SuccessRate)
}
