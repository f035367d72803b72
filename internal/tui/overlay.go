package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// composite splices the overlay block into the base view at cell (x, y).
// Terminal output has no z-order, so the floating card is layered by
// cutting each underlying line around it, preserving ANSI styling on
// both sides.
func composite(base, overlay string, x, y int) string {
	if overlay == "" {
		return base
	}
	baseLines := strings.Split(base, "\n")
	overLines := strings.Split(overlay, "\n")

	for i, ol := range overLines {
		row := y + i
		if row < 0 || row >= len(baseLines) {
			continue
		}
		ow := lipgloss.Width(ol)
		if ow == 0 {
			continue
		}
		line := baseLines[row]

		left := ansi.Truncate(line, x, "")
		if pad := x - lipgloss.Width(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		right := ansi.TruncateLeft(line, x+ow, "")

		baseLines[row] = left + ol + right
	}
	return strings.Join(baseLines, "\n")
}
