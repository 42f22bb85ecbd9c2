// Package tui renders the board in the terminal and forwards the player's
// intents into the game.
package tui

import (
	"fmt"
	"strings"
	"time"

	"go-pairs/internal/deck"
	"go-pairs/internal/game"
	"go-pairs/internal/state"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TickMsg refreshes the elapsed time.
type TickMsg time.Time

// ResolveMsg fires when the reveal delay of a pair is over.
type ResolveMsg struct {
	Token state.Token
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func resolveCmd(delay time.Duration, tok state.Token) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ResolveMsg{Token: tok}
	})
}

// Model is the Bubble Tea model for the board.
type Model struct {
	game        *game.Game
	notifier    *Notifier
	keys        KeyMap
	help        help.Model
	revealDelay time.Duration

	cursor int
	width  int
	height int
}

// New creates the board model. notifier must be the listener g was built
// with.
func New(g *game.Game, notifier *Notifier, revealDelay time.Duration, width, height int) Model {
	notifier.StateChanged(g.Snapshot())
	return Model{
		game:        g,
		notifier:    notifier,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		revealDelay: revealDelay,
		width:       width,
		height:      height,
	}
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		return m, tickCmd()

	case ResolveMsg:
		m.game.Resolve(msg.Token)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := m.notifier.Snapshot()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		m.cursor = moveCursor(m.cursor, -columns(snap), len(snap.Cards))
	case key.Matches(msg, m.keys.Down):
		m.cursor = moveCursor(m.cursor, columns(snap), len(snap.Cards))
	case key.Matches(msg, m.keys.Left):
		m.cursor = moveCursor(m.cursor, -1, len(snap.Cards))
	case key.Matches(msg, m.keys.Right):
		m.cursor = moveCursor(m.cursor, 1, len(snap.Cards))

	case key.Matches(msg, m.keys.Flip):
		if m.cursor >= len(snap.Cards) {
			return m, nil
		}
		if !m.game.FlipCard(snap.Cards[m.cursor].ID) {
			return m, nil
		}
		if tok, ok := m.game.Pending(); ok {
			return m, resolveCmd(m.revealDelay, tok)
		}

	case key.Matches(msg, m.keys.Retry):
		m.notifier.clearNotices()
		m.game.RetryLevel()
		m.cursor = 0

	case key.Matches(msg, m.keys.Next):
		if !snap.IsComplete {
			return m, nil
		}
		if err := m.game.NextLevel(); err != nil {
			m.notifier.notify("That was the last level. Press ctrl+r for a new game.")
			return m, nil
		}
		m.notifier.clearNotices()
		m.cursor = 0

	case key.Matches(msg, m.keys.Restart):
		m.notifier.clearNotices()
		m.game.RestartGame()
		m.cursor = 0
	}
	return m, nil
}

// columns returns the board width in cards.
func columns(snap state.Snapshot) int {
	if snap.GridCols < 1 {
		return 1
	}
	return snap.GridCols
}

// moveCursor moves by delta, staying put when the move would leave the board.
func moveCursor(cursor, delta, total int) int {
	next := cursor + delta
	if next < 0 || next >= total {
		return cursor
	}
	return next
}

func (m Model) View() string {
	snap := m.notifier.Snapshot()
	var b strings.Builder

	b.WriteString(m.renderHeader(snap))
	b.WriteString("\n")
	b.WriteString(boardBorder.Render(m.renderBoard(snap)))
	b.WriteString("\n")
	b.WriteString(m.renderStatus(snap))

	if r := m.notifier.Result(); r != nil {
		b.WriteString("\n\n")
		b.WriteString(m.renderResult(*r))
	}
	for _, n := range m.notifier.Notices() {
		b.WriteString("\n")
		b.WriteString(noticeStyle.Render(n))
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
	}
	return b.String()
}

func (m Model) renderHeader(snap state.Snapshot) string {
	title := fmt.Sprintf("LEVEL %d/%d: %s", snap.CurrentLevel, m.game.Catalog().Size(), snap.LevelName)
	return boldStyle.Render(title) + faintStyle.Render(fmt.Sprintf("  (%dx%d, %d pairs)", snap.GridCols, snap.GridRows, snap.Pairs))
}

func (m Model) renderBoard(snap state.Snapshot) string {
	cols := columns(snap)
	var rows []string
	for start := 0; start < len(snap.Cards); start += cols {
		end := start + cols
		if end > len(snap.Cards) {
			end = len(snap.Cards)
		}
		cells := make([]string, 0, cols)
		for i := start; i < end; i++ {
			cells = append(cells, m.renderCard(snap.Cards[i], i == m.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderCard(c deck.Card, selected bool) string {
	style := cardStyle
	text := "·"
	switch {
	case c.IsMatched:
		glyph, _ := Face(c.Value)
		text = glyph
		style = style.Faint(true)
	case c.IsFlipped:
		glyph, color := Face(c.Value)
		text = glyph
		style = style.Bold(true).Foreground(color)
	}
	if selected {
		style = style.Inherit(cursorStyle)
	}
	return style.Render(text)
}

func (m Model) renderStatus(snap state.Snapshot) string {
	elapsed := m.game.Elapsed()
	timeStr := formatDuration(elapsed)

	timeStyle := scoreStyle
	bonus := time.Duration(m.game.State.Level.TimeBonusSeconds) * time.Second
	if elapsed >= bonus {
		timeStyle = redStyle
	}

	statusLine := "SCORE: " + fmt.Sprint(snap.Score) + " | " +
		"MOVES: " + fmt.Sprint(snap.Moves) + " | " +
		"PAIRS: " + fmt.Sprintf("%d/%d", matchedPairs(snap), snap.Pairs) + " | " +
		"TIME: "
	return scoreStyle.Render(statusLine) + timeStyle.Render(timeStr)
}

func (m Model) renderResult(r game.LevelResult) string {
	lines := []string{
		greenStyle.Render(fmt.Sprintf("Level %d complete in %d moves! +%d", r.Level, r.Moves, r.Bonus.Total())),
		boldStyle.Render(Rating(r.Level, r.Moves)) + faintStyle.Render("  time "+formatDuration(r.Duration)),
		fmt.Sprintf("  time bonus %d | move bonus %d | level bonus %d", r.Bonus.TimeBonus, r.Bonus.MoveBonus, r.Bonus.LevelBonus),
	}
	if r.HasNext {
		lines = append(lines, "Press n for the next level or r to replay this one.")
		return strings.Join(lines, "\n")
	}

	lines = append(lines, greenStyle.Render(fmt.Sprintf("Congratulations! All levels complete. Final score: %d", r.Score)))
	history := m.game.History()
	if history.GotHighScore(r.Score) {
		lines = append(lines, "You got a high score! Top 5 scores:")
		for _, entry := range history.GetNScoreEntries(5) {
			lines = append(lines, fmt.Sprintf("  * %d (level %d) on %s", entry.Score, entry.Level, entry.Timestamp))
		}
	}
	return strings.Join(lines, "\n")
}

// Rating grades a finished level. Early levels demand fewer moves.
func Rating(level, moves int) string {
	switch {
	case level <= 2 && moves <= 8:
		return "Perfect! 🏆"
	case level <= 4 && moves <= 15:
		return "Excellent! 🌟"
	case level <= 6 && moves <= 25:
		return "Great job! 🎉"
	case moves <= 35:
		return "Well done! 👏"
	}
	return "Keep practicing! 💪"
}

// formatDuration renders d as mm:ss.
func formatDuration(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func matchedPairs(snap state.Snapshot) int {
	n := 0
	for _, c := range snap.Cards {
		if c.IsMatched {
			n++
		}
	}
	return n / 2
}
