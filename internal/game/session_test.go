package game

import (
	"testing"
	"time"
)

func TestSession_Duration(t *testing.T) {
	clock := &tickingClock{t: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)}
	sess := NewSession(clock.Now)

	// Start took one reading; the next is one second later.
	if got := sess.Duration(); got != time.Second {
		t.Errorf("expected 1s, got %v", got)
	}
	if got := sess.Duration(); got != 2*time.Second {
		t.Errorf("expected 2s, got %v", got)
	}
}

func TestSession_RetriesResetOnLevelChange(t *testing.T) {
	sess := NewSession(nil)
	sess.countRetry()
	sess.countRetry()
	sess.countCompletion()

	if sess.Retries != 2 || sess.LevelsCompleted != 1 {
		t.Fatalf("unexpected counters: %+v", sess)
	}

	sess.levelChanged()
	if sess.Retries != 0 {
		t.Errorf("retries should reset, got %d", sess.Retries)
	}
	if sess.LevelsCompleted != 1 {
		t.Error("completions are per session, not per level")
	}
}

func TestGame_MarathonSession(t *testing.T) {
	g, listener := newTestGame(t, nil, twoLevels)
	g.session.Start = g.session.Start.Add(-31 * time.Minute)

	solveLevel(t, g)

	if !listener.unlockedIDs()["marathon_runner"] {
		t.Error("a 31 minute session should unlock marathon_runner")
	}
	if g.Session().LevelsCompleted != 1 {
		t.Errorf("expected 1 completion, got %d", g.Session().LevelsCompleted)
	}
}
