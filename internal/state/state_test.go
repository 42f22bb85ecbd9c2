package state

import (
	"testing"
	"time"

	"go-pairs/internal/deck"
	"go-pairs/internal/levels"
	"go-pairs/internal/scoring"
)

var levelOne = levels.Definition{Level: 1, Name: "Warm Up", GridCols: 2, GridRows: 2, Pairs: 2, TimeBonusSeconds: 30}

// fixedDeck returns a level-one deck laid out as values [1, 2, 1, 2].
func fixedDeck() []deck.Card {
	return []deck.Card{
		{ID: 1, Value: 1},
		{ID: 3, Value: 2},
		{ID: 2, Value: 1},
		{ID: 4, Value: 2},
	}
}

// fakeClock advances by step on every call.
type fakeClock struct {
	t    time.Time
	step time.Duration
}

func (c *fakeClock) Now() time.Time {
	now := c.t
	c.t = c.t.Add(c.step)
	return now
}

func newTestState() (*State, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC), step: time.Second}
	s := NewState(levelOne, fixedDeck(), 0)
	s.Now = clock.Now
	return s, clock
}

func card(s *State, id int) deck.Card {
	return s.Cards[s.cardIndex(id)]
}

func TestState_Initial(t *testing.T) {
	s, _ := newTestState()

	if !s.FSM.Is(StatePlaying) {
		t.Errorf("expected initial state %q, got %q", StatePlaying, s.FSM.Current())
	}
	if s.Moves != 0 || s.IsComplete || s.StartTime != nil || s.EndTime != nil {
		t.Errorf("unexpected initial state: %+v", s.GameState)
	}
	if s.CurrentLevel != 1 {
		t.Errorf("expected level 1, got %d", s.CurrentLevel)
	}
}

func TestState_FirstFlipStartsTimer(t *testing.T) {
	s, _ := newTestState()

	if !s.Flip(1) {
		t.Fatal("first flip should be accepted")
	}
	if s.StartTime == nil {
		t.Fatal("first flip should set the start time")
	}
	start := *s.StartTime

	s.Flip(3)
	if !s.StartTime.Equal(start) {
		t.Error("second flip must not move the start time")
	}
	if !s.IsResolving() {
		t.Errorf("two flipped cards should put the machine in %q, got %q", StateResolving, s.FSM.Current())
	}
}

// Scenario A: mismatch, then two matches complete level one.
func TestState_ScenarioA(t *testing.T) {
	s, _ := newTestState()

	// 1. Values [1, 2]: no match
	s.Flip(1)
	s.Flip(3)
	out, ok := s.Resolve(s.Token())
	if !ok {
		t.Fatal("resolution should apply")
	}
	if out.Matched {
		t.Error("values 1 and 2 should not match")
	}
	if card(s, 1).IsFlipped || card(s, 3).IsFlipped {
		t.Error("mismatched cards should flip back")
	}
	if s.Moves != 1 {
		t.Errorf("expected 1 move, got %d", s.Moves)
	}
	if len(s.FlippedSelection) != 0 {
		t.Errorf("selection should be cleared, got %v", s.FlippedSelection)
	}
	if !s.FSM.Is(StatePlaying) {
		t.Errorf("expected back to %q, got %q", StatePlaying, s.FSM.Current())
	}

	// 2. The two value-1 cards: match
	s.Flip(1)
	s.Flip(2)
	out, _ = s.Resolve(s.Token())
	if !out.Matched || out.Completed {
		t.Errorf("expected a match without completion, got %+v", out)
	}
	if !card(s, 1).IsMatched || !card(s, 2).IsMatched {
		t.Error("matched cards should be marked")
	}
	if s.Moves != 2 {
		t.Errorf("expected 2 moves, got %d", s.Moves)
	}

	// 3. The two value-2 cards: match and complete
	s.Flip(3)
	s.Flip(4)
	out, _ = s.Resolve(s.Token())
	if !out.Completed {
		t.Fatal("matching the last pair should complete the level")
	}
	if !s.IsComplete || s.EndTime == nil || !s.FSM.Is(StateComplete) {
		t.Errorf("expected completed state, got %+v in %q", s.GameState, s.FSM.Current())
	}

	duration := s.EndTime.Sub(*s.StartTime)
	want := scoring.LevelBonus(levelOne, duration, s.Moves)
	if s.Score != want.Total() {
		t.Errorf("expected score %d, got %d", want.Total(), s.Score)
	}
	if out.Bonus != want || out.Duration != duration {
		t.Errorf("outcome mismatch: %+v, want bonus %+v over %v", out, want, duration)
	}
	// The clock is read twice: at the first flip and at completion, 1s apart.
	// (30000-1000)/100 = 290, (2*3-3)*100 = 300, 1*500 = 500.
	if want.TimeBonus != 290 || want.MoveBonus != 300 || want.LevelBonus != 500 {
		t.Errorf("unexpected breakdown %+v", want)
	}
}

func TestState_NoThirdCardWhileResolving(t *testing.T) {
	s, _ := newTestState()
	s.Flip(1)
	s.Flip(3)

	if s.Flip(2) {
		t.Error("a third flip must be rejected while two cards are up")
	}
	if card(s, 2).IsFlipped {
		t.Error("rejected flip must not turn the card")
	}
	if len(s.FlippedSelection) != 2 {
		t.Errorf("selection should stay at 2, got %v", s.FlippedSelection)
	}
}

// Scenario D: flipping an already matched card twice changes nothing.
func TestState_ScenarioD(t *testing.T) {
	s, _ := newTestState()
	s.Flip(1)
	s.Flip(2)
	s.Resolve(s.Token())

	before := s.Snapshot()
	if s.Flip(1) || s.Flip(1) {
		t.Error("flipping a matched card must be a no-op")
	}
	after := s.Snapshot()

	if after.Moves != before.Moves || len(after.FlippedSelection) != 0 {
		t.Errorf("state changed: before %+v after %+v", before.GameState, after.GameState)
	}
}

func TestState_FlipRejects(t *testing.T) {
	s, _ := newTestState()

	if s.Flip(99) {
		t.Error("unknown card id must be rejected")
	}
	s.Flip(1)
	if s.Flip(1) {
		t.Error("already flipped card must be rejected")
	}
	if len(s.FlippedSelection) != 1 {
		t.Errorf("expected selection of 1, got %v", s.FlippedSelection)
	}
}

func TestState_NoFlipAfterComplete(t *testing.T) {
	s, _ := newTestState()
	for _, pair := range [][2]int{{1, 2}, {3, 4}} {
		s.Flip(pair[0])
		s.Flip(pair[1])
		s.Resolve(s.Token())
	}
	if !s.IsComplete {
		t.Fatal("level should be complete")
	}
	// Unmatch a card by hand to prove completion alone blocks the flip.
	s.Cards[0].IsMatched = false
	if s.Flip(s.Cards[0].ID) {
		t.Error("flips after completion must be ignored")
	}
}

func TestState_StaleTokenDiscarded(t *testing.T) {
	s, _ := newTestState()
	s.Flip(1)
	s.Flip(2)
	stale := s.Token()

	s.Reset(levelOne, fixedDeck())

	if _, ok := s.Resolve(stale); ok {
		t.Error("resolution taken before a reset must be discarded")
	}
	if s.Moves != 0 {
		t.Errorf("stale resolution must not count a move, got %d", s.Moves)
	}
	for _, c := range s.Cards {
		if c.IsMatched || c.IsFlipped {
			t.Errorf("fresh deck touched by stale resolution: %+v", c)
		}
	}
}

func TestState_ResolveWithoutPendingPair(t *testing.T) {
	s, _ := newTestState()
	s.Flip(1)
	if _, ok := s.Resolve(s.Token()); ok {
		t.Error("resolve with one card up must not apply")
	}
}

func TestState_ResetKeepsScore(t *testing.T) {
	s, _ := newTestState()
	s.Score = 1500
	s.Flip(1)
	s.Flip(3)
	s.Resolve(s.Token())

	next := levels.Definition{Level: 2, Name: "First Glance", GridCols: 3, GridRows: 2, Pairs: 3, TimeBonusSeconds: 40}
	cards := deck.NewBuilder(1, nil).Build(next)
	gen := s.Generation
	s.Reset(next, cards)

	if s.Score != 1500 {
		t.Errorf("reset must keep score, got %d", s.Score)
	}
	if s.Moves != 0 || s.StartTime != nil || s.IsComplete || len(s.FlippedSelection) != 0 {
		t.Errorf("reset must clear the attempt, got %+v", s.GameState)
	}
	if s.CurrentLevel != 2 || len(s.Cards) != 6 {
		t.Errorf("expected level 2 with 6 cards, got level %d with %d", s.CurrentLevel, len(s.Cards))
	}
	if s.Generation != gen+1 {
		t.Errorf("reset must bump the generation")
	}
}

func TestState_Elapsed(t *testing.T) {
	s, _ := newTestState()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	if s.Elapsed(now) != 0 {
		t.Error("elapsed before first flip should be zero")
	}

	s.Flip(1) // start at 12:00:00
	if got := s.Elapsed(now.Add(7 * time.Second)); got != 7*time.Second {
		t.Errorf("expected 7s elapsed, got %v", got)
	}
}

func TestState_SnapshotIsDetached(t *testing.T) {
	s, _ := newTestState()
	s.Flip(1)
	snap := s.Snapshot()

	s.Flip(3)
	if len(snap.FlippedSelection) != 1 || snap.Cards[1].IsFlipped {
		t.Error("snapshot must not observe later transitions")
	}
	if snap.LevelName != "Warm Up" || snap.Phase != StatePlaying || snap.Pairs != 2 {
		t.Errorf("unexpected snapshot metadata: %+v", snap)
	}
}
