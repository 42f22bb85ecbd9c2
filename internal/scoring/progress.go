package scoring

import (
	"encoding/json"
	"errors"
	"fmt"

	"go-pairs/internal/gameerrors"
	"go-pairs/internal/kvstore"
)

// ProgressKey is the store key the saved progress lives under.
const ProgressKey = "memory-game-progress"

// SavedProgress is the persisted snapshot of a run.
type SavedProgress struct {
	CurrentLevel int `json:"currentLevel"`
	Score        int `json:"score"`
}

// ProgressStore reads and writes SavedProgress through a key-value store.
type ProgressStore struct {
	kv kvstore.Store
}

// NewProgressStore creates a ProgressStore over kv.
func NewProgressStore(kv kvstore.Store) *ProgressStore {
	return &ProgressStore{kv: kv}
}

// Load returns the saved progress, or nil when nothing was saved.
// Unparsable or out-of-range data yields a StorageCorrupt error.
func (p *ProgressStore) Load() (*SavedProgress, error) {
	data, err := p.kv.Get(ProgressKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, gameerrors.ErrStorageUnavailable("read", ProgressKey, err)
	}

	var sp SavedProgress
	if err := json.Unmarshal(data, &sp); err != nil {
		return nil, gameerrors.ErrStorageCorrupt(ProgressKey, err)
	}
	if sp.CurrentLevel < 1 || sp.Score < 0 {
		return nil, gameerrors.ErrStorageCorrupt(ProgressKey,
			fmt.Errorf("level %d, score %d", sp.CurrentLevel, sp.Score))
	}
	return &sp, nil
}

// Save overwrites the saved progress.
func (p *ProgressStore) Save(sp SavedProgress) error {
	data, err := json.Marshal(sp)
	if err != nil {
		return fmt.Errorf("could not encode progress: %w", err)
	}
	if err := p.kv.Set(ProgressKey, data); err != nil {
		return gameerrors.ErrStorageUnavailable("write", ProgressKey, err)
	}
	return nil
}

// Clear removes the saved progress.
func (p *ProgressStore) Clear() error {
	if err := p.kv.Delete(ProgressKey); err != nil {
		return gameerrors.ErrStorageUnavailable("delete", ProgressKey, err)
	}
	return nil
}
