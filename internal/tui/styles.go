package tui

import "github.com/charmbracelet/lipgloss"

var (
	redStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // Red for time past the bonus window
	greenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // Green for completions
	scoreStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // Color for the status line
	boldStyle   = lipgloss.NewStyle().Bold(true)
	cursorStyle = lipgloss.NewStyle().Reverse(true)
	faintStyle  = lipgloss.NewStyle().Faint(true)
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))

	cardStyle = lipgloss.NewStyle().Padding(0, 1)

	boardBorder = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			Padding(0, 1)
)

// faceGlyphs and faceColors give each pair value its face. Values past the
// glyph list reuse glyphs with a different color.
const faceGlyphs = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var faceColors = []lipgloss.Color{"9", "10", "11", "12", "13", "14"}

// Face returns the glyph and color a card of value shows when face up.
func Face(value int) (string, lipgloss.Color) {
	i := value - 1
	if i < 0 {
		i = 0
	}
	glyph := string(faceGlyphs[i%len(faceGlyphs)])
	color := faceColors[(i+i/len(faceGlyphs))%len(faceColors)]
	return glyph, color
}
