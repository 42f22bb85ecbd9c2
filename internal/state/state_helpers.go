package state

import (
	"time"

	"go-pairs/internal/deck"
)

// Snapshot is a detached copy of the state handed to the presentation.
type Snapshot struct {
	GameState
	LevelName string
	GridCols  int
	GridRows  int
	Pairs     int
	Phase     string
	Token     Token
}

func (s *State) cardIndex(id int) int {
	for i := range s.Cards {
		if s.Cards[i].ID == id {
			return i
		}
	}
	return -1
}

// selectedCards returns pointers to the cards in the selection, nil where
// the slot is empty.
func (s *State) selectedCards() (*deck.Card, *deck.Card) {
	var first, second *deck.Card
	if len(s.FlippedSelection) > 0 {
		if i := s.cardIndex(s.FlippedSelection[0]); i >= 0 {
			first = &s.Cards[i]
		}
	}
	if len(s.FlippedSelection) > 1 {
		if i := s.cardIndex(s.FlippedSelection[1]); i >= 0 {
			second = &s.Cards[i]
		}
	}
	return first, second
}

func (s State) AllMatched() bool {
	for _, c := range s.Cards {
		if !c.IsMatched {
			return false
		}
	}
	return true
}

func (s State) MatchedPairs() int {
	n := 0
	for _, c := range s.Cards {
		if c.IsMatched {
			n++
		}
	}
	return n / 2
}

// IsResolving reports whether two cards are up and awaiting resolution.
func (s *State) IsResolving() bool {
	return s.FSM.Is(StateResolving)
}

// Elapsed returns the attempt's play time: zero before the first flip,
// frozen once the level is complete.
func (s State) Elapsed(now time.Time) time.Duration {
	if s.StartTime == nil {
		return 0
	}
	if s.EndTime != nil {
		return s.EndTime.Sub(*s.StartTime)
	}
	return now.Sub(*s.StartTime)
}

// Snapshot copies the state so the caller can hold it across transitions.
func (s *State) Snapshot() Snapshot {
	gs := s.GameState
	gs.Cards = make([]deck.Card, len(s.Cards))
	copy(gs.Cards, s.Cards)
	gs.FlippedSelection = append([]int(nil), s.FlippedSelection...)
	if s.StartTime != nil {
		t := *s.StartTime
		gs.StartTime = &t
	}
	if s.EndTime != nil {
		t := *s.EndTime
		gs.EndTime = &t
	}

	return Snapshot{
		GameState: gs,
		LevelName: s.Level.Name,
		GridCols:  s.Level.GridCols,
		GridRows:  s.Level.GridRows,
		Pairs:     s.Level.Pairs,
		Phase:     s.FSM.Current(),
		Token:     s.Token(),
	}
}
