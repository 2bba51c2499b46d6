package headless

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// tintStyles maps canvas tints to lipgloss styles.
var tintStyles = map[Tint]lipgloss.Style{
	TintDefault: lipgloss.NewStyle(),
	TintRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	TintGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	TintBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	TintYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	TintPurple:  lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	TintOrange:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	TintCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	TintWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	TintWall:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	TintPath:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	TintLanding: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
	TintSpecial: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
	TintBlocker: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
}

// Render converts a canvas to a string. With color set, runs of cells with
// the same tint are wrapped in one lipgloss style to keep escape sequences
// short; otherwise the plain text is returned.
func Render(c *Canvas, color bool) string {
	if !color {
		return c.String()
	}

	var sb strings.Builder
	sb.Grow(c.Width()*c.Height()*2 + c.Height())

	for y := 0; y < c.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < c.Width() {
			start := c.Get(x, y).Tint

			var run strings.Builder
			for x < c.Width() {
				cell := c.Get(x, y)
				if cell.Tint != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := tintStyles[start]
			if !ok {
				style = tintStyles[TintDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
