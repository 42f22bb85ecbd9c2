package scoring

import (
	"math"
	"time"

	"go-pairs/internal/levels"
)

// Breakdown is the bonus awarded for completing a level, split by component.
type Breakdown struct {
	TimeBonus  int `json:"timeBonus"`
	MoveBonus  int `json:"moveBonus"`
	LevelBonus int `json:"levelBonus"`
}

// Total returns the score delta added to the cumulative score.
func (b Breakdown) Total() int {
	return b.TimeBonus + b.MoveBonus + b.LevelBonus
}

// LevelBonus computes the completion bonus for a level finished in duration
// using moves resolutions. Every component floors at zero.
func LevelBonus(def levels.Definition, duration time.Duration, moves int) Breakdown {
	table := getScoreTable()

	remainingMs := int64(def.TimeBonusSeconds)*1000 - duration.Milliseconds()
	if remainingMs < 0 {
		remainingMs = 0
	}
	timeBonus := int(math.Round(float64(remainingMs) / float64(table["timeBonusMsPerPoint"])))

	moveBonus := (def.Pairs*table["parMovesPerPair"] - moves) * table["moveBonus"]
	if moveBonus < 0 {
		moveBonus = 0
	}

	return Breakdown{
		TimeBonus:  timeBonus,
		MoveBonus:  moveBonus,
		LevelBonus: def.Level * table["levelBonus"],
	}
}

// WithinTimeBonus reports whether a level finished before its time-bonus
// threshold ran out.
func WithinTimeBonus(def levels.Definition, duration time.Duration) bool {
	return duration < time.Duration(def.TimeBonusSeconds)*time.Second
}

// getScoreTable returns the predefined values used by the bonus formula.
func getScoreTable() map[string]int {
	return map[string]int{
		"timeBonusMsPerPoint": 100,
		"parMovesPerPair":     3,
		"moveBonus":           100,
		"levelBonus":          500,
	}
}
