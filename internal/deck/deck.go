// Package deck deals the shuffled, paired cards for a level.
package deck

import (
	"io"
	"math/rand"
	"time"

	"go-pairs/internal/levels"

	"github.com/charmbracelet/log"
)

// Card is a single card on the board. Value identifies its pair.
type Card struct {
	ID        int  `json:"id"`
	Value     int  `json:"value"`
	IsFlipped bool `json:"isFlipped"`
	IsMatched bool `json:"isMatched"`
}

// Builder deals decks from level definitions using its own random source.
type Builder struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewBuilder creates a Builder. A zero seed picks one from the clock.
func NewBuilder(seed int64, logger *log.Logger) *Builder {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Builder{
		rng:    rand.New(rand.NewSource(seed)),
		logger: logger,
	}
}

// Build returns pairs*2 face-down cards, two per value in 1..pairs, in
// uniformly random order. A grid that does not fit the cards is logged and
// otherwise ignored: layout belongs to the presentation.
func (b *Builder) Build(def levels.Definition) []Card {
	if err := def.Check(); err != nil {
		b.logger.Warn("dealing deck for inconsistent level", "level", def.Level, "error", err)
	}

	cards := make([]Card, 0, def.Cards())
	for v := 1; v <= def.Pairs; v++ {
		cards = append(cards,
			Card{ID: v*2 - 1, Value: v},
			Card{ID: v * 2, Value: v},
		)
	}

	// Fisher-Yates
	b.rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})

	return cards
}
