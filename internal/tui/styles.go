package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/arabic-wordle/internal/game"
)

// keyboardRows is the on-screen Arabic keyboard in display order: the
// terminal draws left to right, so each row is stored mirrored and ض ends up
// at the top right.
var keyboardRows = [][]rune{
	[]rune("جحخهعغفقثصض"),
	[]rune("كمنتالبيسش"),
	[]rune("ىةورزدذطظ"),
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Padding(0, 1)
	bannerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("255")).Padding(0, 1)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))

	tileBase = lipgloss.NewStyle().Bold(true).Width(3).Align(lipgloss.Center).Foreground(lipgloss.Color("255"))
	keyBase  = lipgloss.NewStyle().Width(3).Align(lipgloss.Center).Foreground(lipgloss.Color("255"))
)

// markColor matches the familiar green / yellow / grey scheme.
func markColor(m game.Mark) lipgloss.Color {
	switch m {
	case game.MarkCorrect:
		return lipgloss.Color("28")
	case game.MarkPresent:
		return lipgloss.Color("178")
	case game.MarkAbsent:
		return lipgloss.Color("240")
	}
	return lipgloss.Color("237")
}

func tileStyle(m game.Mark) lipgloss.Style { return tileBase.Background(markColor(m)) }

func keyStyle(m game.Mark) lipgloss.Style { return keyBase.Background(markColor(m)) }
