package state

import (
	"context"
	"time"

	"go-pairs/internal/deck"
	"go-pairs/internal/levels"
	"go-pairs/internal/scoring"

	"github.com/looplab/fsm"
)

// FSM state names.
const (
	StatePlaying   = "playing"
	StateResolving = "resolving"
	StateCheckPair = "checkPair"
	StateGotMatch  = "gotMatch"
	StateNoMatch   = "noMatch"
	StateComplete  = "complete"
)

// GameState is the authoritative game data for the current level attempt.
type GameState struct {
	Cards            []deck.Card `json:"cards"`
	FlippedSelection []int       `json:"flippedSelection"`
	Moves            int         `json:"moves"`
	IsComplete       bool        `json:"isComplete"`
	StartTime        *time.Time  `json:"startTime"`
	EndTime          *time.Time  `json:"endTime"`
	CurrentLevel     int         `json:"currentLevel"`
	Score            int         `json:"score"`
}

// Token identifies the level attempt a pending resolution belongs to.
// Every reset bumps the generation, so a token taken before a reset no
// longer matches afterwards.
type Token struct {
	Level      int
	Generation uint64
}

// Outcome describes what a resolution did.
type Outcome struct {
	Matched   bool
	Completed bool
	Bonus     scoring.Breakdown
	Duration  time.Duration
}

type State struct {
	GameState
	Level      levels.Definition
	Generation uint64
	FSM        *fsm.FSM
	Now        func() time.Time

	outcome Outcome
}

// NewState starts an attempt at def with the given deck and cumulative score.
func NewState(def levels.Definition, cards []deck.Card, score int) *State {
	s := &State{
		GameState: GameState{
			Cards:        cards,
			CurrentLevel: def.Level,
			Score:        score,
		},
		Level: def,
		Now:   time.Now,
	}

	s.FSM = fsm.NewFSM(
		StatePlaying,
		getStateTransitions(),
		getStateCallbacks(s),
	)

	return s
}

// Reset begins a fresh attempt at def: new deck, moves, flags and timers
// cleared, score kept. Any resolution pending for the previous attempt
// becomes stale.
func (s *State) Reset(def levels.Definition, cards []deck.Card) {
	s.Level = def
	s.CurrentLevel = def.Level
	s.Cards = cards
	s.FlippedSelection = nil
	s.Moves = 0
	s.IsComplete = false
	s.StartTime = nil
	s.EndTime = nil
	s.Generation++
	s.FSM.SetState(StatePlaying)
}

// Flip turns card id face up. It reports false, changing nothing, when the
// flip is not allowed: not playing, two cards already up, unknown card, or
// card already flipped or matched.
func (s *State) Flip(id int) bool {
	if !s.FSM.Is(StatePlaying) || s.IsComplete || len(s.FlippedSelection) >= 2 {
		return false
	}
	idx := s.cardIndex(id)
	if idx < 0 {
		return false
	}
	card := &s.Cards[idx]
	if card.IsFlipped || card.IsMatched {
		return false
	}

	card.IsFlipped = true
	s.FlippedSelection = append(s.FlippedSelection, id)
	if s.StartTime == nil {
		now := s.Now()
		s.StartTime = &now
	}

	if len(s.FlippedSelection) == 2 {
		_ = s.FSM.Event(context.Background(), "reveal")
	}
	return true
}

// Token returns the token of the current attempt.
func (s *State) Token() Token {
	return Token{Level: s.CurrentLevel, Generation: s.Generation}
}

// Resolve settles the two face-up cards if tok still names the current
// attempt and a resolution is pending. A stale token is discarded.
func (s *State) Resolve(tok Token) (Outcome, bool) {
	if tok != s.Token() || !s.FSM.Is(StateResolving) {
		return Outcome{}, false
	}

	s.outcome = Outcome{}
	if err := s.FSM.Event(context.Background(), "resolve"); err != nil {
		return Outcome{}, false
	}
	return s.outcome, true
}

func getStateTransitions() []fsm.EventDesc {
	return fsm.Events{
		{Name: "reveal", Src: []string{StatePlaying}, Dst: StateResolving},
		{Name: "resolve", Src: []string{StateResolving}, Dst: StateCheckPair},

		// Pair checking
		{Name: "match", Src: []string{StateCheckPair}, Dst: StateGotMatch},
		{Name: "mismatch", Src: []string{StateCheckPair}, Dst: StateNoMatch},

		// Back to play, or done
		{Name: "settle", Src: []string{StateGotMatch, StateNoMatch}, Dst: StatePlaying},
		{Name: "finish", Src: []string{StateGotMatch}, Dst: StateComplete},
	}
}

func getStateCallbacks(s *State) map[string]fsm.Callback {
	return fsm.Callbacks{
		"enter_" + StateCheckPair: func(ctx context.Context, e *fsm.Event) {
			first, second := s.selectedCards()
			if first != nil && second != nil && first.Value == second.Value {
				e.FSM.Event(ctx, "match")
				return
			}
			e.FSM.Event(ctx, "mismatch")
		},
		"enter_" + StateGotMatch: func(ctx context.Context, e *fsm.Event) {
			first, second := s.selectedCards()
			first.IsMatched = true
			second.IsMatched = true
			s.FlippedSelection = nil
			s.Moves++
			s.outcome.Matched = true

			if s.AllMatched() {
				e.FSM.Event(ctx, "finish")
				return
			}
			e.FSM.Event(ctx, "settle")
		},
		"enter_" + StateNoMatch: func(ctx context.Context, e *fsm.Event) {
			first, second := s.selectedCards()
			if first != nil {
				first.IsFlipped = false
			}
			if second != nil {
				second.IsFlipped = false
			}
			s.FlippedSelection = nil
			s.Moves++
			e.FSM.Event(ctx, "settle")
		},
		"enter_" + StateComplete: func(_ context.Context, _ *fsm.Event) {
			end := s.Now()
			s.EndTime = &end
			s.IsComplete = true

			duration := s.Elapsed(end)
			bonus := scoring.LevelBonus(s.Level, duration, s.Moves)
			s.Score += bonus.Total()

			s.outcome.Completed = true
			s.outcome.Bonus = bonus
			s.outcome.Duration = duration
		},
	}
}
