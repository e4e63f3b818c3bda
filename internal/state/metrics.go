package state

import "time"

// Metrics holds the loop counters stored in metrics.json.
// CurrentIteration only ever moves forward; ConsecutiveTestFailures resets to
// zero on any passing test run.
type Metrics struct {
	CurrentIteration        int       `json:"current_iteration"`
	MaxIterations           int       `json:"max_iterations"`
	ConsecutiveTestFailures int       `json:"consecutive_test_failures"`
	TotalTestRuns           int       `json:"total_test_runs"`
	TotalTestPasses         int       `json:"total_test_passes"`
	TotalTestFailures       int       `json:"total_test_failures"`
	Commits                 int       `json:"commits,omitempty"`
	LastActivity            time.Time `json:"last_activity,omitzero"`
}

// RecordPass resets the consecutive failure counter and bumps the totals.
func (m *Metrics) RecordPass(now time.Time) {
	m.ConsecutiveTestFailures = 0
	m.TotalTestRuns++
	m.TotalTestPasses++
	m.LastActivity = now
}

// RecordFailure bumps the consecutive failure counter and the totals.
func (m *Metrics) RecordFailure(now time.Time) {
	m.ConsecutiveTestFailures++
	m.TotalTestRuns++
	m.TotalTestFailures++
	m.LastActivity = now
}
