package deck

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"go-pairs/internal/levels"

	"github.com/charmbracelet/log"
)

func TestBuild_EveryLevelHasTwoOfEachValue(t *testing.T) {
	b := NewBuilder(1, nil)

	for _, def := range levels.Default().All() {
		cards := b.Build(def)

		if len(cards) != def.Pairs*2 {
			t.Fatalf("level %d: expected %d cards, got %d", def.Level, def.Pairs*2, len(cards))
		}

		counts := make(map[int]int)
		ids := make(map[int]bool)
		for _, c := range cards {
			counts[c.Value]++
			if ids[c.ID] {
				t.Errorf("level %d: duplicate card id %d", def.Level, c.ID)
			}
			ids[c.ID] = true
			if c.IsFlipped || c.IsMatched {
				t.Errorf("level %d: card %d dealt face up or matched", def.Level, c.ID)
			}
		}
		for v := 1; v <= def.Pairs; v++ {
			if counts[v] != 2 {
				t.Errorf("level %d: value %d occurs %d times, want 2", def.Level, v, counts[v])
			}
		}
		if len(counts) != def.Pairs {
			t.Errorf("level %d: expected %d distinct values, got %d", def.Level, def.Pairs, len(counts))
		}
	}
}

func TestBuild_SameSeedSameDeck(t *testing.T) {
	def, _ := levels.Default().DefinitionFor(5)
	a := NewBuilder(42, nil).Build(def)
	b := NewBuilder(42, nil).Build(def)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("decks differ at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

// TestBuild_ShuffleIsUniform checks each card id lands in each position with
// roughly equal frequency, using a chi-square statistic per id.
func TestBuild_ShuffleIsUniform(t *testing.T) {
	def := levels.Definition{Level: 1, GridCols: 3, GridRows: 2, Pairs: 3}
	const trials = 60000
	n := def.Pairs * 2

	counts := make([][]int, n+1) // counts[id][position]
	for id := range counts {
		counts[id] = make([]int, n)
	}

	b := NewBuilder(7, nil)
	for i := 0; i < trials; i++ {
		for pos, c := range b.Build(def) {
			counts[c.ID][pos]++
		}
	}

	expected := float64(trials) / float64(n)
	// Chi-square critical value for 5 degrees of freedom, p < 0.0001.
	const critical = 25.7
	for id := 1; id <= n; id++ {
		chi := 0.0
		for pos := 0; pos < n; pos++ {
			d := float64(counts[id][pos]) - expected
			chi += d * d / expected
		}
		if chi > critical || math.IsNaN(chi) {
			t.Errorf("card %d position distribution not uniform: chi2=%.2f counts=%v", id, chi, counts[id])
		}
	}
}

func TestBuild_GridMismatchLogsAndStillDeals(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)

	def := levels.Definition{Level: 3, Name: "bad", GridCols: 3, GridRows: 3, Pairs: 4}
	cards := NewBuilder(3, logger).Build(def)

	if len(cards) != 8 {
		t.Errorf("expected deck built from pairs (8 cards), got %d", len(cards))
	}
	if !strings.Contains(buf.String(), "inconsistent level") {
		t.Errorf("expected a warning about the grid, got log %q", buf.String())
	}
}
