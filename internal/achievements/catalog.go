// Package achievements tracks unlock and progress state for the fixed
// achievement catalog and evaluates it against game outcomes.
package achievements

// Achievement ids.
const (
	FirstWin         = "first_win"
	SpeedDemon       = "speed_demon"
	PerfectMemory    = "perfect_memory"
	Level5           = "level_5"
	Level10          = "level_10"
	Level15          = "level_15"
	Level20          = "level_20"
	HighScorer       = "high_scorer"
	MegaScorer       = "mega_scorer"
	LegendaryScorer  = "legendary_scorer"
	Completionist    = "completionist"
	Persistent       = "persistent"
	Dedicated        = "dedicated"
	LightningFast    = "lightning_fast"
	TimeMaster       = "time_master"
	FlawlessStreak   = "flawless_streak"
	EfficiencyMaster = "efficiency_master"
	MarathonRunner   = "marathon_runner"
	ComebackKid      = "comeback_kid"
	Perfectionist    = "perfectionist"
)

// Definition is the static part of an achievement.
type Definition struct {
	ID          string
	Name        string
	Description string
	Icon        string
	MaxProgress int
}

var definitions = []Definition{
	// Beginner
	{FirstWin, "First Steps", "Complete your first level", "🎯", 1},
	{SpeedDemon, "Speed Demon", "Complete a level in under 10 moves", "⚡", 1},
	{PerfectMemory, "Perfect Memory", "Complete a level without any wrong matches", "🧠", 1},

	// Level milestones
	{Level5, "Expert Player", "Reach Level 5", "🏅", 1},
	{Level10, "Elite Status", "Reach Level 10", "💫", 1},
	{Level15, "Virtuoso Mind", "Reach Level 15", "🎭", 1},
	{Level20, "Ultimate Champion", "Complete the final level", "👑", 1},

	// Score
	{HighScorer, "High Scorer", "Reach 10,000 points", "💎", 10000},
	{MegaScorer, "Mega Scorer", "Reach 50,000 points", "💰", 50000},
	{LegendaryScorer, "Legendary Scorer", "Reach 100,000 points", "🌠", 100000},

	{Completionist, "Completionist", "Complete every level", "🌟", 20},

	// Play count
	{Persistent, "Persistent", "Complete 50 levels total", "🎮", 50},
	{Dedicated, "Dedicated Player", "Complete 100 levels total", "🔥", 100},

	// Speed
	{LightningFast, "Lightning Fast", "Complete 3 levels in a row under time bonus", "⚡️", 3},
	{TimeMaster, "Time Master", "Complete 10 levels under time bonus", "⏱️", 10},

	{FlawlessStreak, "Flawless Streak", "Complete 5 perfect levels in a row", "✨", 5},
	{EfficiencyMaster, "Efficiency Master", "Complete a hard level (6+) with minimum moves", "🎪", 1},
	{MarathonRunner, "Marathon Runner", "Play for 30 minutes straight", "🏃", 1},
	{ComebackKid, "Comeback Kid", "Complete a level after retrying it 3 times", "🎯", 1},
	{Perfectionist, "Perfectionist", "Get 3 perfect games in levels 10+", "🌈", 3},
}
