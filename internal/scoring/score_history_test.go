package scoring

import (
	"testing"

	"go-pairs/internal/gameerrors"
)

func TestScoreHistory_RecordAndReload(t *testing.T) {
	kv := newMockKV()

	sh, err := LoadHistory(kv)
	if err != nil {
		t.Fatalf("LoadHistory on empty store returned error: %v", err)
	}
	if sh.Attempts() != 0 || sh.GetHighScoreEntry() != nil {
		t.Fatalf("expected empty history, got %+v", sh.Entries)
	}
	if !sh.GotHighScore(0) {
		t.Error("any score is a high score on an empty history")
	}

	runs := []ScoreHistoryEntry{
		{Score: 1200, Level: 2, Timestamp: "2026-01-01T10:00:00Z"},
		{Score: 9800, Level: 6, Timestamp: "2026-01-02T10:00:00Z"},
		{Score: 4300, Level: 4, Timestamp: "2026-01-03T10:00:00Z"},
	}
	for _, r := range runs {
		if err := sh.Record(r); err != nil {
			t.Fatalf("Record returned error: %v", err)
		}
	}

	reloaded, err := LoadHistory(kv)
	if err != nil {
		t.Fatalf("LoadHistory returned error: %v", err)
	}
	if reloaded.Attempts() != 3 {
		t.Errorf("expected 3 attempts, got %d", reloaded.Attempts())
	}
	if hs := reloaded.GetHighScoreEntry(); hs == nil || hs.Score != 9800 {
		t.Errorf("expected high score 9800, got %+v", hs)
	}
	if reloaded.GotHighScore(5000) {
		t.Error("5000 is not a high score against 9800")
	}
	if !reloaded.GotHighScore(9800) {
		t.Error("tying the high score counts")
	}
}

func TestScoreHistory_GetNScoreEntries(t *testing.T) {
	sh := &ScoreHistory{
		kv: newMockKV(),
		Entries: []ScoreHistoryEntry{
			{Score: 100}, {Score: 500}, {Score: 300},
		},
	}

	top := sh.GetNScoreEntries(2)
	if len(top) != 2 || top[0].Score != 500 || top[1].Score != 300 {
		t.Errorf("unexpected top entries: %+v", top)
	}
	// Original order is untouched.
	if sh.Entries[0].Score != 100 {
		t.Error("GetNScoreEntries must not reorder the history")
	}
	if all := sh.GetNScoreEntries(10); len(all) != 3 {
		t.Errorf("expected all 3 entries, got %d", len(all))
	}
}

func TestScoreHistory_GetNScoreEntries_NonPositive(t *testing.T) {
	sh := &ScoreHistory{
		kv:      newMockKV(),
		Entries: []ScoreHistoryEntry{{Score: 10}},
	}

	tests := []struct {
		name string
		n    int
	}{
		{"zero", 0},
		{"negative", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			top := sh.GetNScoreEntries(tt.n)
			if top == nil || len(top) != 0 {
				t.Errorf("expected no entries for n=%d, got %+v", tt.n, top)
			}
		})
	}
}

func TestScoreHistory_Corrupt(t *testing.T) {
	kv := newMockKV()
	kv.Set(HistoryKey, []byte("[{"))

	sh, err := LoadHistory(kv)
	if !gameerrors.Is(err, gameerrors.ErrCodeStorageCorrupt) {
		t.Errorf("expected StorageCorrupt, got %v", err)
	}
	if sh == nil || sh.Attempts() != 0 {
		t.Fatal("a corrupt history should still yield an empty, usable history")
	}
	if err := sh.Record(ScoreHistoryEntry{Score: 10}); err != nil {
		t.Errorf("recording after corrupt load failed: %v", err)
	}
}
