package tui

import "github.com/photoloop/photoloop/internal/model"

const (
	statusLineHeight = 1
	minGridWidth     = 60
	minGridHeight    = 16
)

// gridCapacity is the number of card slots across both column blocks.
func (m *LoopModel) gridCapacity() int {
	return m.cfg.GridRows * m.cfg.GridCols * 2
}

// gridGeometry derives the per-card cell size and the side block
// origins from the current window. ok=false when the window is too
// small to lay out the grid.
func (m *LoopModel) gridGeometry() (cardW, cardH, leftX, rightX int, ok bool) {
	if m.width < minGridWidth || m.height < minGridHeight {
		return 0, 0, 0, 0, false
	}
	gridH := m.height - statusLineHeight

	// The middle third is the stage the animated card flies across.
	sideW := m.width / 3
	cardW = sideW / m.cfg.GridCols
	cardH = gridH / m.cfg.GridRows
	if cardW < 8 || cardH < 3 {
		return 0, 0, 0, 0, false
	}
	leftX = 0
	rightX = m.width - m.cfg.GridCols*cardW
	return cardW, cardH, leftX, rightX, true
}

// slotRect is the scheduler's RectResolver: the on-screen rect of the
// card at a grid index. The first half of the indices fill the left
// block row-major, the rest the right block.
func (m *LoopModel) slotRect(i int) (model.Rect, bool) {
	cardW, cardH, leftX, rightX, ok := m.gridGeometry()
	if !ok {
		return model.Rect{}, false
	}
	if i < 0 || i >= len(m.sched.Cards()) || i >= m.gridCapacity() {
		return model.Rect{}, false
	}

	perSide := m.cfg.GridRows * m.cfg.GridCols
	side, slot := i/perSide, i%perSide
	row, col := slot/m.cfg.GridCols, slot%m.cfg.GridCols

	x := leftX + col*cardW
	if side == 1 {
		x = rightX + col*cardW
	}
	return model.Rect{
		X: float64(x),
		Y: float64(row * cardH),
		W: float64(cardW),
		H: float64(cardH),
	}, true
}

// centerTarget is the enlarged rect the in-flight card travels to:
// double a grid cell, centered on the stage.
func (m *LoopModel) centerTarget() model.Rect {
	cardW, cardH, _, _, ok := m.gridGeometry()
	if !ok {
		return model.Rect{}
	}
	gridH := m.height - statusLineHeight

	tw := cardW * 2
	th := cardH * 2
	if tw > m.width-4 {
		tw = m.width - 4
	}
	if th > gridH-2 {
		th = gridH - 2
	}
	return model.Rect{
		X: float64((m.width - tw) / 2),
		Y: float64((gridH - th) / 2),
		W: float64(tw),
		H: float64(th),
	}
}
