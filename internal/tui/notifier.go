package tui

import (
	"fmt"

	"go-pairs/internal/achievements"
	"go-pairs/internal/game"
	"go-pairs/internal/state"
)

const maxNotices = 3

// Notifier is the game.Listener behind the board. It keeps the latest
// snapshot, the last completion and a short list of notices for the view.
type Notifier struct {
	snap    state.Snapshot
	result  *game.LevelResult
	notices []string
}

// NewNotifier creates an empty Notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) StateChanged(snap state.Snapshot) {
	if n.result != nil && (snap.Token != n.snap.Token || !snap.IsComplete) {
		n.result = nil
	}
	n.snap = snap
}

func (n *Notifier) LevelCompleted(r game.LevelResult) {
	n.result = &r
}

func (n *Notifier) AchievementUnlocked(a achievements.Achievement) {
	n.notify(fmt.Sprintf("%s Achievement unlocked: %s", a.Icon, a.Name))
}

func (n *Notifier) notify(msg string) {
	n.notices = append(n.notices, msg)
	if len(n.notices) > maxNotices {
		n.notices = n.notices[len(n.notices)-maxNotices:]
	}
}

// Snapshot returns the last state the game reported.
func (n *Notifier) Snapshot() state.Snapshot {
	return n.snap
}

// Result returns the completion of the current attempt, if any.
func (n *Notifier) Result() *game.LevelResult {
	return n.result
}

// Notices returns the most recent notices, oldest first.
func (n *Notifier) Notices() []string {
	return n.notices
}

func (n *Notifier) clearNotices() {
	n.notices = nil
}
