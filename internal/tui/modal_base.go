package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is a self-contained modal that owns its own Update/View
// lifecycle. The topmost modal on the stack receives all input and
// renders full-screen.
type Modal interface {
	// ID returns a unique identifier used to deduplicate pushes.
	ID() string
	// Update processes a message. Return pop=true to close the modal.
	Update(msg tea.Msg) (pop bool, cmd tea.Cmd)
	// View renders the modal content for the given terminal dimensions.
	View(width, height int) string
}

// renderModalFrame renders title + scrollable content inside a centered
// bordered frame.
func renderModalFrame(vp *viewport.Model, title, content string, width, height int) string {
	modalWidth := width - 8
	modalHeight := height - 6

	contentWidth := modalWidth - 4
	contentHeight := modalHeight - 4

	vp.Width = contentWidth
	vp.Height = contentHeight
	vp.SetContent(content)

	contentPane := lipgloss.NewStyle().
		Width(contentWidth).
		Height(contentHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorGray).
		Render(vp.View())

	header := lipgloss.NewStyle().
		Width(contentWidth).
		Foreground(ColorBlue).
		Bold(true).
		Render(title)

	statusBar := lipgloss.NewStyle().
		Foreground(ColorGray).
		Render(strings.Join([]string{"up/down: Scroll", "ESC: Close"}, " | "))

	modal := lipgloss.JoinVertical(lipgloss.Left, header, contentPane, statusBar)

	framed := lipgloss.NewStyle().
		Width(modalWidth).
		Height(modalHeight).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBlue).
		Render(modal)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, framed)
}

// handleModalScroll applies shared scrolling keys to a modal viewport.
// Returns pop=true for the close keys.
func handleModalScroll(vp *viewport.Model, msg tea.Msg) (pop bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return false
	}
	switch keyMsg.String() {
	case "esc", "q":
		return true
	case "up", "k":
		vp.ScrollUp(1)
	case "down", "j":
		vp.ScrollDown(1)
	case "pgup":
		vp.HalfPageUp()
	case "pgdown":
		vp.HalfPageDown()
	}
	return false
}
