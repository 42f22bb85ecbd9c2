package achievements

import "time"

// Completion carries everything a finished level tells the tracker.
type Completion struct {
	Level           int
	Pairs           int
	Moves           int
	Duration        time.Duration
	Score           int // cumulative, after the level bonus
	WithinTimeBonus bool
	Retries         int // retries of this level before the winning attempt
	SessionDuration time.Duration
	LevelCount      int // levels in the catalog; 0 means the default 20
}

// Perfect reports whether every resolution was a match.
func (c Completion) Perfect() bool {
	return c.Moves == c.Pairs
}

func (c Completion) levelCount() int {
	if c.LevelCount > 0 {
		return c.LevelCount
	}
	return defaultLevelCount
}

// Final reports whether the completed level is the last one in the catalog.
func (c Completion) Final() bool {
	return c.Level >= c.levelCount()
}

const (
	defaultLevelCount    = 20
	hardLevel            = 6
	perfectionistLevel   = 10
	speedDemonMoves      = 10
	comebackRetries      = 3
	marathonSessionLimit = 30 * time.Minute
)

var reachMilestones = []struct {
	level int
	id    string
}{
	{5, Level5},
	{10, Level10},
	{15, Level15},
}

var scoreTiers = []string{HighScorer, MegaScorer, LegendaryScorer}

// RecordLevelCompleted applies a level completion and returns the
// achievements it unlocked.
func (t *Tracker) RecordLevelCompleted(c Completion) []Achievement {
	var unlocked []string
	note := func(id string, ok bool) {
		if ok {
			unlocked = append(unlocked, id)
		}
	}

	note(FirstWin, t.unlock(FirstWin))
	if c.Moves < speedDemonMoves {
		note(SpeedDemon, t.unlock(SpeedDemon))
	}
	if c.Perfect() {
		note(PerfectMemory, t.unlock(PerfectMemory))
	}
	if c.Final() {
		note(Level20, t.unlock(Level20))
	}

	for _, id := range scoreTiers {
		note(id, t.setProgress(id, c.Score))
	}

	// Completionist progress is the share of the catalog cleared, scaled to
	// its max.
	if a, ok := t.Get(Completionist); ok {
		progress := c.Level * *a.MaxProgress / c.levelCount()
		if c.Final() {
			progress = *a.MaxProgress
		}
		if progress > a.ProgressValue() {
			note(Completionist, t.setProgress(Completionist, progress))
		}
	}

	note(Persistent, t.addProgress(Persistent, 1))
	note(Dedicated, t.addProgress(Dedicated, 1))

	if c.WithinTimeBonus {
		note(LightningFast, t.addProgress(LightningFast, 1))
		note(TimeMaster, t.addProgress(TimeMaster, 1))
	} else {
		t.setProgress(LightningFast, 0)
	}

	if c.Perfect() {
		note(FlawlessStreak, t.addProgress(FlawlessStreak, 1))
		if c.Level >= hardLevel {
			note(EfficiencyMaster, t.unlock(EfficiencyMaster))
		}
		if c.Level >= perfectionistLevel {
			note(Perfectionist, t.addProgress(Perfectionist, 1))
		}
	} else {
		t.setProgress(FlawlessStreak, 0)
	}

	if c.Retries >= comebackRetries {
		note(ComebackKid, t.unlock(ComebackKid))
	}
	if c.SessionDuration >= marathonSessionLimit {
		note(MarathonRunner, t.unlock(MarathonRunner))
	}

	t.save()
	return t.collect(unlocked)
}

// RecordLevelReached applies reaching level (at boot or on advancing) and
// returns the achievements it unlocked.
func (t *Tracker) RecordLevelReached(level int) []Achievement {
	var unlocked []string
	for _, m := range reachMilestones {
		if level >= m.level && t.unlock(m.id) {
			unlocked = append(unlocked, m.id)
		}
	}
	if len(unlocked) > 0 {
		t.save()
	}
	return t.collect(unlocked)
}

func (t *Tracker) collect(ids []string) []Achievement {
	out := make([]Achievement, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.list[t.index[id]])
	}
	return out
}
