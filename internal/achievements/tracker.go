package achievements

import (
	"encoding/json"
	"errors"
	"io"
	"time"

	"go-pairs/internal/gameerrors"
	"go-pairs/internal/kvstore"

	"github.com/charmbracelet/log"
)

// StorageKey is the store key achievement state lives under.
const StorageKey = "memory-game-achievements"

// Achievement is the persisted record for one catalog entry. UnlockedAt is
// milliseconds since the Unix epoch.
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Unlocked    bool   `json:"unlocked"`
	UnlockedAt  *int64 `json:"unlockedAt,omitempty"`
	Progress    *int   `json:"progress,omitempty"`
	MaxProgress *int   `json:"maxProgress,omitempty"`
}

// UnlockedTime returns the unlock time, or the zero time while locked.
func (a Achievement) UnlockedTime() time.Time {
	if a.UnlockedAt == nil {
		return time.Time{}
	}
	return time.UnixMilli(*a.UnlockedAt)
}

// ProgressValue returns the current progress, zero when unset.
func (a Achievement) ProgressValue() int {
	if a.Progress == nil {
		return 0
	}
	return *a.Progress
}

// Tracker owns the state of every achievement and writes it through to the
// store after each change.
type Tracker struct {
	kv     kvstore.Store
	logger *log.Logger
	now    func() time.Time

	list  []Achievement
	index map[string]int
}

// NewTracker loads achievement state from kv. A missing or corrupt value
// starts every achievement locked with zero progress.
func NewTracker(kv kvstore.Store, logger *log.Logger, now func() time.Time) *Tracker {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if now == nil {
		now = time.Now
	}
	t := &Tracker{
		kv:     kv,
		logger: logger,
		now:    now,
	}
	t.list, t.index = freshList()

	if err := t.load(); err != nil {
		t.logger.Warn("achievements unreadable, starting locked", "error", err)
		t.list, t.index = freshList()
	}
	return t
}

func freshList() ([]Achievement, map[string]int) {
	list := make([]Achievement, len(definitions))
	index := make(map[string]int, len(definitions))
	for i, d := range definitions {
		maxProgress := d.MaxProgress
		progress := 0
		list[i] = Achievement{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
			Icon:        d.Icon,
			Progress:    &progress,
			MaxProgress: &maxProgress,
		}
		index[d.ID] = i
	}
	return list, index
}

// load merges stored records into the catalog by id. Unknown ids are
// dropped; names and limits always come from the catalog.
func (t *Tracker) load() error {
	data, err := t.kv.Get(StorageKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil
	}
	if err != nil {
		return gameerrors.ErrStorageUnavailable("read", StorageKey, err)
	}

	var stored []Achievement
	if err := json.Unmarshal(data, &stored); err != nil {
		return gameerrors.ErrStorageCorrupt(StorageKey, err)
	}

	for _, rec := range stored {
		i, ok := t.index[rec.ID]
		if !ok {
			continue
		}
		a := &t.list[i]
		a.Unlocked = rec.Unlocked
		if rec.Unlocked {
			a.UnlockedAt = rec.UnlockedAt
		}
		if rec.Progress != nil {
			p := clamp(*rec.Progress, 0, *a.MaxProgress)
			a.Progress = &p
		}
	}
	return nil
}

func (t *Tracker) save() {
	data, err := json.Marshal(t.list)
	if err != nil {
		t.logger.Error("could not encode achievements", "error", err)
		return
	}
	if err := t.kv.Set(StorageKey, data); err != nil {
		t.logger.Warn("could not save achievements", "error", err)
	}
}

// All returns a copy of every achievement in catalog order.
func (t *Tracker) All() []Achievement {
	out := make([]Achievement, len(t.list))
	copy(out, t.list)
	return out
}

// Get returns the achievement with id.
func (t *Tracker) Get(id string) (Achievement, bool) {
	i, ok := t.index[id]
	if !ok {
		return Achievement{}, false
	}
	return t.list[i], true
}

// UnlockedCount returns how many achievements are unlocked.
func (t *Tracker) UnlockedCount() int {
	n := 0
	for _, a := range t.list {
		if a.Unlocked {
			n++
		}
	}
	return n
}

// Unlock unlocks id. It reports false for unknown or already unlocked ids.
func (t *Tracker) Unlock(id string) (Achievement, bool) {
	if !t.unlock(id) {
		return Achievement{}, false
	}
	t.save()
	return t.list[t.index[id]], true
}

// UpdateProgress sets the progress of id, clamped to its maximum, unlocking
// it on reaching the maximum. Unlocked achievements are left alone. It
// reports whether this call unlocked the achievement.
func (t *Tracker) UpdateProgress(id string, progress int) (Achievement, bool) {
	i, ok := t.index[id]
	if !ok || t.list[i].Unlocked {
		return Achievement{}, false
	}
	unlocked := t.setProgress(id, progress)
	t.save()
	return t.list[i], unlocked
}

// Reset locks every achievement and zeroes its progress.
func (t *Tracker) Reset() {
	t.list, t.index = freshList()
	t.save()
}

func (t *Tracker) unlock(id string) bool {
	i, ok := t.index[id]
	if !ok || t.list[i].Unlocked {
		return false
	}
	at := t.now().UnixMilli()
	a := &t.list[i]
	a.Unlocked = true
	a.UnlockedAt = &at
	t.logger.Info("achievement unlocked", "id", id, "name", a.Name)
	return true
}

func (t *Tracker) setProgress(id string, progress int) bool {
	i, ok := t.index[id]
	if !ok || t.list[i].Unlocked {
		return false
	}
	a := &t.list[i]
	p := clamp(progress, 0, *a.MaxProgress)
	a.Progress = &p
	if p >= *a.MaxProgress {
		return t.unlock(id)
	}
	return false
}

func (t *Tracker) addProgress(id string, delta int) bool {
	i, ok := t.index[id]
	if !ok {
		return false
	}
	return t.setProgress(id, t.list[i].ProgressValue()+delta)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
