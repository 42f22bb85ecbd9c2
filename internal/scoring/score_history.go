package scoring

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"go-pairs/internal/gameerrors"
	"go-pairs/internal/kvstore"
)

// HistoryKey is the store key the finished-run history lives under.
const HistoryKey = "memory-game-history"

// ScoreHistoryEntry represents a single finished run.
type ScoreHistoryEntry struct {
	Score     int    `json:"score"`
	Level     int    `json:"level"`
	Timestamp string `json:"timestamp"`
}

// ScoreHistory holds every recorded run and persists it on change.
type ScoreHistory struct {
	kv             kvstore.Store
	Entries        []ScoreHistoryEntry
	HighScoreEntry *ScoreHistoryEntry
}

// LoadHistory reads the history from kv. A missing key is an empty history.
// A corrupt value is reported together with an empty, usable history.
func LoadHistory(kv kvstore.Store) (*ScoreHistory, error) {
	sh := &ScoreHistory{kv: kv}

	data, err := kv.Get(HistoryKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		return sh, nil
	}
	if err != nil {
		return sh, gameerrors.ErrStorageUnavailable("read", HistoryKey, err)
	}

	var entries []ScoreHistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return sh, gameerrors.ErrStorageCorrupt(HistoryKey, err)
	}
	sh.Entries = entries
	sh.refreshHighScore()
	return sh, nil
}

// Record appends a finished run and writes the history back.
func (sh *ScoreHistory) Record(entry ScoreHistoryEntry) error {
	sh.Entries = append(sh.Entries, entry)
	sh.refreshHighScore()

	data, err := json.Marshal(sh.Entries)
	if err != nil {
		return fmt.Errorf("could not encode score history: %w", err)
	}
	if err := sh.kv.Set(HistoryKey, data); err != nil {
		return gameerrors.ErrStorageUnavailable("write", HistoryKey, err)
	}
	return nil
}

func (sh *ScoreHistory) refreshHighScore() {
	sh.HighScoreEntry = nil
	for i := range sh.Entries {
		if sh.HighScoreEntry == nil || sh.Entries[i].Score > sh.HighScoreEntry.Score {
			sh.HighScoreEntry = &sh.Entries[i]
		}
	}
}

// GetHighScoreEntry returns the highest score entry from the loaded history.
func (sh *ScoreHistory) GetHighScoreEntry() *ScoreHistoryEntry {
	return sh.HighScoreEntry
}

// Attempts returns the number of recorded runs.
func (sh *ScoreHistory) Attempts() int {
	return len(sh.Entries)
}

// GetNScoreEntries returns the top N score entries from the history, sorted by score.
func (sh *ScoreHistory) GetNScoreEntries(n int) []ScoreHistoryEntry {
	if n <= 0 {
		return []ScoreHistoryEntry{}
	}
	// Make a copy to avoid modifying the original slice.
	entriesCopy := make([]ScoreHistoryEntry, len(sh.Entries))
	copy(entriesCopy, sh.Entries)

	sort.SliceStable(entriesCopy, func(i, j int) bool {
		return entriesCopy[i].Score > entriesCopy[j].Score
	})

	if len(entriesCopy) < n {
		return entriesCopy
	}
	return entriesCopy[:n]
}

// GotHighScore checks if score is greater than or equal to the recorded
// high score.
func (sh *ScoreHistory) GotHighScore(score int) bool {
	if sh.HighScoreEntry == nil {
		// If there's no high score, it's vacuously a "high score".
		return true
	}
	return score >= sh.HighScoreEntry.Score
}
