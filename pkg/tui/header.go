package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader draws the one-line title bar: brand and title on the left,
// the right text right-aligned
func renderHeader(width int, title, right string) string {
	brandStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")). // Pink/magenta color
		Bold(true)

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorNormal)).
		Bold(true)

	rightStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDim))

	left := brandStyle.Render("▙▌ brickyard")
	if title != "" {
		left = fmt.Sprintf("%s  %s", left, titleStyle.Render(title))
	}
	rightRendered := rightStyle.Render(right)

	gap := width - 2 - lipgloss.Width(left) - lipgloss.Width(rightRendered)
	if gap < 1 {
		gap = 1
	}

	return lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1).
		Render(left + lipgloss.NewStyle().Width(gap).Render("") + rightRendered)
}
