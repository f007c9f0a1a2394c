package usecase

import "time"

// Session carries the per-run API call tally and the safety threshold
// against the provider's daily quota. One session covers exactly one
// sync run; it is not shared between concurrent runs.
type Session struct {
	calls     int
	budget    int
	startedAt time.Time
}

func NewSession(budget int) *Session {
	return &Session{
		budget:    budget,
		startedAt: time.Now(),
	}
}

// RecordCall counts one successful network call. Cache hits and failed
// attempts never reach this.
func (s *Session) RecordCall() {
	s.calls++
}

func (s *Session) Calls() int {
	return s.calls
}

// BudgetExhausted reports whether the tally reached the threshold.
// Phases treat this as a planned early exit, not an error.
func (s *Session) BudgetExhausted() bool {
	return s.calls >= s.budget
}

func (s *Session) Elapsed() time.Duration {
	return time.Since(s.startedAt)
}
