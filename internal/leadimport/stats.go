package leadimport

import (
	"sync"
	"time"
)

// Stats accumulates per-decision counters and a rolling average latency.
// Safe for concurrent use; counters only grow until an explicit Reset.
type Stats struct {
	mu sync.Mutex

	totalProcessed       uint64
	successfulImports    uint64
	duplicatesSkipped    uint64
	lowConfidenceSkipped uint64
	missingFieldSkipped  uint64
	outsideHoursSkipped  uint64
	errors               uint64

	latencySum   time.Duration
	latencyCount uint64
}

func NewStats() *Stats { return &Stats{} }

// Record counts exactly one decision. latency is the time from message
// receipt to decision emission.
func (s *Stats) Record(d Decision, latency time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.totalProcessed++
	switch d.Kind {
	case DecisionImported:
		s.successfulImports++
	case DecisionDuplicate:
		s.duplicatesSkipped++
	case DecisionLowConfidence:
		s.lowConfidenceSkipped++
	case DecisionMissingRequiredField:
		s.missingFieldSkipped++
	case DecisionOutsideBusinessHours:
		s.outsideHoursSkipped++
	case DecisionError:
		s.errors++
	}
	if latency > 0 {
		s.latencySum += latency
		s.latencyCount++
	}
}

// Reset zeroes every counter. Operator action only.
func (s *Stats) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totalProcessed = 0
	s.successfulImports = 0
	s.duplicatesSkipped = 0
	s.lowConfidenceSkipped = 0
	s.missingFieldSkipped = 0
	s.outsideHoursSkipped = 0
	s.errors = 0
	s.latencySum = 0
	s.latencyCount = 0
}

// StatsSnapshot is a consistent copy of the counters for the dashboard.
type StatsSnapshot struct {
	TotalProcessed       uint64  `json:"total_processed"`
	SuccessfulImports    uint64  `json:"successful_imports"`
	DuplicatesSkipped    uint64  `json:"duplicates_skipped"`
	LowConfidenceSkipped uint64  `json:"low_confidence_skipped"`
	MissingFieldSkipped  uint64  `json:"missing_field_skipped"`
	OutsideHoursSkipped  uint64  `json:"outside_hours_skipped"`
	Errors               uint64  `json:"errors"`
	SuccessRate          float64 `json:"success_rate"`
	AverageLatencyMS     int64   `json:"average_latency_ms"`
}

func (s *Stats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := StatsSnapshot{
		TotalProcessed:       s.totalProcessed,
		SuccessfulImports:    s.successfulImports,
		DuplicatesSkipped:    s.duplicatesSkipped,
		LowConfidenceSkipped: s.lowConfidenceSkipped,
		MissingFieldSkipped:  s.missingFieldSkipped,
		OutsideHoursSkipped:  s.outsideHoursSkipped,
		Errors:               s.errors,
	}
	if s.totalProcessed > 0 {
		snap.SuccessRate = float64(s.successfulImports) / float64(s.totalProcessed)
	}
	if s.latencyCount > 0 {
		snap.AverageLatencyMS = (s.latencySum / time.Duration(s.latencyCount)).Milliseconds()
	}
	return snap
}
