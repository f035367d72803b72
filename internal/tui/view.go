package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// View renders the loop display.
func (m *LoopModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "Initializing display..."
	}

	// If a modal is on the stack, render it full-screen.
	if modal := m.TopModal(); modal != nil {
		return modal.View(m.width, m.height)
	}

	if _, _, _, _, ok := m.gridGeometry(); !ok {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			"Terminal too small. Resize to at least 60x16.")
	}

	now := time.Now()
	base := lipgloss.JoinVertical(lipgloss.Left, m.renderGrid(), m.renderStatusLine())

	// Floating card flies above the grid; composite it cell-by-cell.
	if rect, ok := m.sched.FrameRect(now); ok {
		level := captionLevelAt(m.caption.visible, now.Sub(m.caption.flippedAt))
		card := renderFloatingCard(m.sched.Cycle().Card,
			int(rect.W+0.5), int(rect.H+0.5), level)
		base = composite(base, card, int(rect.X+0.5), int(rect.Y+0.5))
	}

	return base
}

// renderGrid renders the two column blocks with the stage gap between.
func (m *LoopModel) renderGrid() string {
	cardW, cardH, _, rightX, _ := m.gridGeometry()
	gridH := m.height - statusLineHeight
	blockW := m.cfg.GridCols * cardW

	cards := m.sched.Cards()
	if len(cards) == 0 {
		return m.renderEmptyFeed(gridH)
	}

	left := m.renderBlock(0, cardW, cardH)
	right := m.renderBlock(1, cardW, cardH)
	gap := lipgloss.NewStyle().Width(rightX - blockW).Height(gridH).Render("")

	grid := lipgloss.JoinHorizontal(lipgloss.Top, left, gap, right)
	return lipgloss.NewStyle().Width(m.width).Height(gridH).Render(grid)
}

// renderBlock renders one side of the grid (0 = left, 1 = right).
func (m *LoopModel) renderBlock(side, cardW, cardH int) string {
	cards := m.sched.Cards()
	perSide := m.cfg.GridRows * m.cfg.GridCols
	cycle := m.sched.Cycle()

	rows := make([]string, 0, m.cfg.GridRows)
	for row := 0; row < m.cfg.GridRows; row++ {
		cells := make([]string, 0, m.cfg.GridCols)
		for col := 0; col < m.cfg.GridCols; col++ {
			idx := side*perSide + row*m.cfg.GridCols + col
			switch {
			case idx >= len(cards):
				cells = append(cells, strings.Repeat(" ", cardW))
			case cycle != nil && cycle.Index == idx:
				// The flying card's slot stays open until it returns.
				cells = append(cells, renderEmptySlot(cardW, cardH))
			default:
				cells = append(cells, renderCard(cards[idx], cardW, cardH, m.entranceScale(cards[idx])))
			}
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderEmptyFeed is shown while no cards exist: a spinner during the
// first fetch, the fetch error if nothing ever loaded.
func (m *LoopModel) renderEmptyFeed(height int) string {
	if !m.everLoaded && m.lastError != "" {
		msg := errorStyle.Render("feed unavailable: " + m.lastError)
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, msg)
	}
	if m.fetchInFlight || !m.everLoaded {
		return renderLoadingPlaceholder(m.width, height)
	}
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center,
		partnerStyle.Render("feed returned no cards"))
}
