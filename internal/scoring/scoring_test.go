package scoring

import (
	"testing"
	"time"

	"go-pairs/internal/levels"
)

func TestLevelBonus(t *testing.T) {
	def := levels.Definition{Level: 3, Pairs: 4, GridCols: 4, GridRows: 2, TimeBonusSeconds: 45}

	tests := []struct {
		name     string
		duration time.Duration
		moves    int
		want     Breakdown
	}{
		{
			name:     "fast and perfect",
			duration: 12 * time.Second,
			moves:    4,
			// (45000-12000)/100 = 330, (12-4)*100 = 800, 3*500 = 1500
			want: Breakdown{TimeBonus: 330, MoveBonus: 800, LevelBonus: 1500},
		},
		{
			name:     "time bonus rounds half up",
			duration: 44950 * time.Millisecond,
			moves:    12,
			want:     Breakdown{TimeBonus: 1, MoveBonus: 0, LevelBonus: 1500},
		},
		{
			name:     "time bonus rounds down below half",
			duration: 44960 * time.Millisecond,
			moves:    12,
			want:     Breakdown{TimeBonus: 0, MoveBonus: 0, LevelBonus: 1500},
		},
		{
			name:     "over par floors at zero",
			duration: 2 * time.Minute,
			moves:    30,
			want:     Breakdown{TimeBonus: 0, MoveBonus: 0, LevelBonus: 1500},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LevelBonus(def, tt.duration, tt.moves)
			if got != tt.want {
				t.Errorf("LevelBonus() = %+v, want %+v", got, tt.want)
			}
			if got.Total() != tt.want.TimeBonus+tt.want.MoveBonus+tt.want.LevelBonus {
				t.Errorf("Total() = %d, inconsistent with %+v", got.Total(), got)
			}
		})
	}
}

func TestLevelBonus_NeverNegative(t *testing.T) {
	def := levels.Definition{Level: 1, Pairs: 2, TimeBonusSeconds: 0}
	got := LevelBonus(def, time.Hour, 1000)
	if got.TimeBonus < 0 || got.MoveBonus < 0 {
		t.Errorf("bonus components must floor at zero, got %+v", got)
	}
	if got.Total() != 500 {
		t.Errorf("expected only the level bonus (500), got %d", got.Total())
	}
}

func TestWithinTimeBonus(t *testing.T) {
	def := levels.Definition{Level: 1, Pairs: 2, TimeBonusSeconds: 30}
	if !WithinTimeBonus(def, 29*time.Second) {
		t.Error("29s should be within a 30s bonus window")
	}
	if WithinTimeBonus(def, 30*time.Second) {
		t.Error("30s should not be within a 30s bonus window")
	}
}
