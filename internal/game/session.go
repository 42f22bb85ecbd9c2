package game

import "time"

// Session holds the per-process statistics the achievement rules read. It is
// not persisted.
type Session struct {
	Start time.Time

	// Retries counts RetryLevel calls since the current level was entered.
	Retries int

	// LevelsCompleted counts completions during this process.
	LevelsCompleted int

	now func() time.Time
}

// NewSession starts a session at now().
func NewSession(now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	return &Session{
		Start: now(),
		now:   now,
	}
}

// Duration returns how long the session has been running.
func (s *Session) Duration() time.Duration {
	return s.now().Sub(s.Start)
}

func (s *Session) countRetry() {
	s.Retries++
}

func (s *Session) countCompletion() {
	s.LevelsCompleted++
}

// levelChanged clears the per-level counters.
func (s *Session) levelChanged() {
	s.Retries = 0
}
