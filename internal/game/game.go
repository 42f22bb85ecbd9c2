// Package game owns a play-through: it seeds the state machine from saved
// progress, forwards player intents into it, and fans the outcomes out to the
// stores, the achievement tracker and the presentation.
package game

import (
	"io"
	"time"

	"go-pairs/internal/achievements"
	"go-pairs/internal/deck"
	"go-pairs/internal/gameerrors"
	"go-pairs/internal/kvstore"
	"go-pairs/internal/levels"
	"go-pairs/internal/scoring"
	"go-pairs/internal/state"

	"github.com/charmbracelet/log"
)

// LevelResult describes a completed level.
type LevelResult struct {
	Level           int
	Name            string
	Pairs           int
	Moves           int
	Duration        time.Duration
	Bonus           scoring.Breakdown
	Score           int
	WithinTimeBonus bool
	HasNext         bool
}

// Listener receives the game's outbound events. Calls happen synchronously on
// the goroutine that drove the game.
type Listener interface {
	StateChanged(snap state.Snapshot)
	LevelCompleted(result LevelResult)
	AchievementUnlocked(a achievements.Achievement)
}

// NopListener ignores every event.
type NopListener struct{}

func (NopListener) StateChanged(state.Snapshot)                  {}
func (NopListener) LevelCompleted(LevelResult)                   {}
func (NopListener) AchievementUnlocked(achievements.Achievement) {}

// Options configures NewGame. Zero fields get defaults: the embedded catalog,
// a clock-seeded builder, an in-memory store, a discard logger.
type Options struct {
	Catalog  *levels.Catalog
	Builder  *deck.Builder
	Store    kvstore.Store
	Logger   *log.Logger
	Listener Listener
	Now      func() time.Time
}

// Game encapsulates the core game logic, independent of the UI.
type Game struct {
	State *state.State

	catalog  *levels.Catalog
	builder  *deck.Builder
	progress *scoring.ProgressStore
	history  *scoring.ScoreHistory
	tracker  *achievements.Tracker
	session  *Session
	logger   *log.Logger
	listener Listener
	now      func() time.Time

	// loaded is set once boot has read the saved progress; writes before
	// that would clobber it.
	loaded bool
	// runRecorded is set once the current run is in the history.
	runRecorded bool
}

// NewGame boots a game from the saved progress in opts.Store. Unreadable or
// out-of-range progress starts a fresh run at level 1.
func NewGame(opts Options) *Game {
	g := &Game{
		catalog:  opts.Catalog,
		builder:  opts.Builder,
		logger:   opts.Logger,
		listener: opts.Listener,
		now:      opts.Now,
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	if g.catalog == nil {
		g.catalog = levels.Default()
	}
	if g.builder == nil {
		g.builder = deck.NewBuilder(0, g.logger)
	}
	if g.listener == nil {
		g.listener = NopListener{}
	}
	if g.now == nil {
		g.now = time.Now
	}
	kv := opts.Store
	if kv == nil {
		kv = kvstore.NewMemoryStore()
	}

	g.progress = scoring.NewProgressStore(kv)
	history, err := scoring.LoadHistory(kv)
	if err != nil {
		g.logger.Warn("score history unreadable, starting empty", "error", err)
	}
	g.history = history
	g.tracker = achievements.NewTracker(kv, g.logger, g.now)
	g.session = NewSession(g.now)

	level, score := g.restore()
	def, _ := g.catalog.DefinitionFor(level)
	g.State = state.NewState(def, g.builder.Build(def), score)
	g.State.Now = g.now
	g.loaded = true

	g.logger.Debug("game booted", "level", level, "score", score)
	g.reachLevel(level)
	return g
}

func (g *Game) restore() (level, score int) {
	saved, err := g.progress.Load()
	if err != nil {
		g.logger.Warn("saved progress unreadable, starting fresh", "error", err)
		return 1, 0
	}
	if saved == nil {
		return 1, 0
	}
	if _, err := g.catalog.DefinitionFor(saved.CurrentLevel); err != nil {
		g.logger.Warn("saved progress outside catalog, starting fresh", "error", err)
		return 1, 0
	}
	return saved.CurrentLevel, saved.Score
}

// FlipCard turns card id face up. It reports false when the flip was not
// allowed; nothing changes in that case.
func (g *Game) FlipCard(id int) bool {
	if !g.State.Flip(id) {
		return false
	}
	g.emitState()
	return true
}

// Pending returns the token of the resolution the caller should schedule,
// if two cards are up.
func (g *Game) Pending() (state.Token, bool) {
	if !g.State.IsResolving() {
		return state.Token{}, false
	}
	return g.State.Token(), true
}

// Resolve settles the pending pair named by tok. Stale tokens are discarded
// and reported as false.
func (g *Game) Resolve(tok state.Token) bool {
	out, ok := g.State.Resolve(tok)
	if !ok {
		g.logger.Debug("discarding stale resolution", "token", tok, "current", g.State.Token())
		return false
	}
	if out.Completed {
		g.completeLevel(out)
	}
	g.emitState()
	return true
}

func (g *Game) completeLevel(out state.Outcome) {
	def := g.State.Level
	g.session.countCompletion()
	g.saveProgress()

	result := LevelResult{
		Level:           def.Level,
		Name:            def.Name,
		Pairs:           def.Pairs,
		Moves:           g.State.Moves,
		Duration:        out.Duration,
		Bonus:           out.Bonus,
		Score:           g.State.Score,
		WithinTimeBonus: scoring.WithinTimeBonus(def, out.Duration),
		HasNext:         g.catalog.HasNext(def.Level),
	}
	g.logger.Info("level complete",
		"level", result.Level,
		"moves", result.Moves,
		"duration", result.Duration,
		"bonus", result.Bonus.Total(),
		"score", result.Score,
	)

	unlocked := g.tracker.RecordLevelCompleted(achievements.Completion{
		Level:           result.Level,
		Pairs:           result.Pairs,
		Moves:           result.Moves,
		Duration:        result.Duration,
		Score:           result.Score,
		WithinTimeBonus: result.WithinTimeBonus,
		Retries:         g.session.Retries,
		SessionDuration: g.session.Duration(),
		LevelCount:      g.catalog.Size(),
	})

	if !result.HasNext {
		g.recordRun()
	}

	g.listener.LevelCompleted(result)
	g.emitUnlocks(unlocked)
}

// RetryLevel deals a fresh deck for the current level. Score is kept.
func (g *Game) RetryLevel() {
	g.session.countRetry()
	g.deal(g.State.Level)
	g.emitState()
}

// NextLevel advances to the following level, keeping the score. Past the end
// of the catalog it returns a LEVEL_OUT_OF_RANGE error and changes nothing.
func (g *Game) NextLevel() error {
	next := g.State.CurrentLevel + 1
	if !g.catalog.HasNext(g.State.CurrentLevel) {
		return gameerrors.ErrLevelOutOfRange(next, g.catalog.Size())
	}
	def, err := g.catalog.DefinitionFor(next)
	if err != nil {
		return err
	}

	g.session.levelChanged()
	g.deal(def)
	g.saveProgress()
	g.reachLevel(next)
	g.emitState()
	return nil
}

// RestartGame starts a new run at level 1 with score 0 and clears the saved
// progress. The run being abandoned goes into the history if it scored.
func (g *Game) RestartGame() {
	if g.State.Score > 0 {
		g.recordRun()
	}
	if err := g.progress.Clear(); err != nil {
		g.logger.Warn("could not clear saved progress", "error", err)
	}

	def, _ := g.catalog.DefinitionFor(1)
	g.State.Score = 0
	g.runRecorded = false
	g.session.levelChanged()
	g.deal(def)
	g.emitState()
}

func (g *Game) deal(def levels.Definition) {
	g.State.Reset(def, g.builder.Build(def))
}

func (g *Game) recordRun() {
	if g.runRecorded {
		return
	}
	entry := scoring.ScoreHistoryEntry{
		Score:     g.State.Score,
		Level:     g.State.CurrentLevel,
		Timestamp: g.now().Format(time.RFC3339),
	}
	if err := g.history.Record(entry); err != nil {
		g.logger.Warn("could not save score history", "error", err)
	}
	g.runRecorded = true
}

func (g *Game) saveProgress() {
	if !g.loaded {
		return
	}
	sp := scoring.SavedProgress{CurrentLevel: g.State.CurrentLevel, Score: g.State.Score}
	if err := g.progress.Save(sp); err != nil {
		g.logger.Warn("could not save progress", "error", err)
	}
}

func (g *Game) reachLevel(level int) {
	g.emitUnlocks(g.tracker.RecordLevelReached(level))
}

func (g *Game) emitUnlocks(list []achievements.Achievement) {
	for _, a := range list {
		g.listener.AchievementUnlocked(a)
	}
}

func (g *Game) emitState() {
	g.listener.StateChanged(g.State.Snapshot())
}

// Snapshot returns a detached copy of the current state.
func (g *Game) Snapshot() state.Snapshot {
	return g.State.Snapshot()
}

// Elapsed returns the play time of the current attempt.
func (g *Game) Elapsed() time.Duration {
	return g.State.Elapsed(g.now())
}

// Catalog returns the level catalog in use.
func (g *Game) Catalog() *levels.Catalog {
	return g.catalog
}

// Achievements returns the achievement tracker.
func (g *Game) Achievements() *achievements.Tracker {
	return g.tracker
}

// History returns the finished-run history.
func (g *Game) History() *scoring.ScoreHistory {
	return g.history
}

// Session returns the statistics of this process.
func (g *Game) Session() *Session {
	return g.session
}
