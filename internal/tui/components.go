package tui

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/photoloop/photoloop/internal/model"
)

// renderBranding renders "photoloop" with a blue-to-green gradient.
func renderBranding() string {
	colors := []string{
		"#00b7ff", "#00bed8", "#00c5b1", "#00cc8a",
		"#17d363", "#2ed93c", "#49E209", "#49E209", "#49E209",
	}
	var b strings.Builder
	for i, ch := range "photoloop" {
		style := lipgloss.NewStyle().
			Background(ColorNavy).
			Foreground(lipgloss.Color(colors[i%len(colors)])).Bold(true)
		b.WriteString(style.Render(string(ch)))
	}
	return b.String()
}

// thumbnailLook derives a stable color and fill glyph from the image
// URL, so a card keeps the same look across refreshes and cycles.
func thumbnailLook(url string) (lipgloss.Color, rune) {
	glyphs := []rune{'▚', '▞', '▓', '▒', '░', '▤', '▥', '▦'}
	h := fnv.New32a()
	h.Write([]byte(url))
	sum := h.Sum32()
	return thumbnailPalette[sum%uint32(len(thumbnailPalette))], glyphs[(sum>>8)%uint32(len(glyphs))]
}

// renderThumbnail fills w x h cells with the card's glyph art.
func renderThumbnail(c model.Card, w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	color, glyph := thumbnailLook(c.ImageURL)
	if c.ImageURL == model.PlaceholderImageURL {
		color, glyph = ColorDim, '·'
	}
	row := strings.Repeat(string(glyph), w)
	lines := make([]string, h)
	style := lipgloss.NewStyle().Foreground(color)
	for i := range lines {
		lines[i] = style.Render(row)
	}
	return strings.Join(lines, "\n")
}

// renderCard renders one grid card at w x h. scale below 1 shrinks the
// box inside its slot (entrance pop-in); the slot footprint stays w x h.
func renderCard(c model.Card, w, h int, scale float64) string {
	boxW, boxH := w, h
	if scale < 1 {
		boxW = int(float64(w)*scale + 0.5)
		boxH = int(float64(h)*scale + 0.5)
	}
	if boxW < 4 || boxH < 3 {
		// Too small to draw yet; hold the slot open.
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, "")
	}

	style := cardStyle
	if c.New {
		style = newCardStyle
	}

	innerW, innerH := boxW-2, boxH-2
	name := ansi.Truncate(c.Outlet, innerW, "…")
	if c.New {
		badge := badgeStyle.Render("✦")
		name = ansi.Truncate(c.Outlet, innerW-2, "…") + " " + badge
	}
	thumb := renderThumbnail(c, innerW, innerH-1)
	content := lipgloss.JoinVertical(lipgloss.Left, thumb, outletStyle.Render(name))

	box := style.Width(innerW).Height(innerH).Render(content)
	if boxW == w && boxH == h {
		return box
	}
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, box)
}

// renderEmptySlot keeps the grid footprint of a card that is currently
// flying, so its neighbours do not shift.
func renderEmptySlot(w, h int) string {
	return emptySlotStyle.Width(w - 2).Height(h - 2).Render("")
}

// captionLevel maps the time since the caption visibility flip to a
// fade step: 0 hidden through 3 fully visible.
const captionFadeTime = 400 * time.Millisecond

func captionLevelAt(visible bool, sinceFlip time.Duration) int {
	step := int(3 * sinceFlip / captionFadeTime)
	if step > 3 {
		step = 3
	}
	if visible {
		return step
	}
	return 3 - step
}

var captionFadeColors = []lipgloss.Color{ColorDim, ColorGray, ColorWhite}

// renderFloatingCard renders the in-flight card at its current size
// with the caption faded to level (0 = hidden).
func renderFloatingCard(c model.Card, w, h, level int) string {
	if w < 6 || h < 4 {
		return ""
	}
	innerW, innerH := w-2, h-2

	captionLines := 0
	if level > 0 {
		captionLines = 2
	}
	thumb := renderThumbnail(c, innerW, innerH-captionLines)

	parts := []string{thumb}
	if level > 0 {
		fade := captionFadeColors[level-1]
		outlet := outletStyle.Foreground(fade).Render(ansi.Truncate(c.Outlet, innerW, "…"))
		partner := partnerStyle.Foreground(fade).Render(ansi.Truncate(c.Partner, innerW, "…"))
		parts = append(parts, outlet, partner)
	}

	content := lipgloss.JoinVertical(lipgloss.Center, parts...)
	return floatingCardStyle.Width(innerW).Height(innerH).Render(content)
}

// renderStatusLine renders the bottom status bar: branding, phase,
// countdown, policies, and feed health.
func (m *LoopModel) renderStatusLine() string {
	left := renderBranding()

	var mid string
	switch {
	case m.paused:
		mid = "paused"
	case m.sched.Animating():
		mid = m.sched.Phase().String()
	default:
		mid = fmt.Sprintf("next in %ds", m.sched.Countdown())
	}
	if m.sched.RefreshPending() {
		mid += " · refresh queued"
	}
	cfg := m.sched.Config()
	mid += fmt.Sprintf(" · %s · %s", cfg.Selection, cfg.Merge)

	right := m.feedStatus()

	w := m.width
	pad := w - lipgloss.Width(left) - lipgloss.Width(mid) - lipgloss.Width(right) - 4
	if pad < 2 {
		return statusStyle.Width(w).Render(left + "  " + mid)
	}
	line := left + "  " + mid + strings.Repeat(" ", pad) + right + "  "
	return statusStyle.Width(w).Render(line)
}

func (m *LoopModel) feedStatus() string {
	switch {
	case !m.everLoaded && m.lastError != "":
		return statusStyle.Foreground(ColorRed).Render("feed: " + ansi.Truncate(m.lastError, 40, "…"))
	case !m.everLoaded:
		return "feed: loading"
	case !m.lastFetchOK:
		return statusStyle.Foreground(ColorOrange).Render("feed: stale " + m.sinceLastFetch())
	default:
		return fmt.Sprintf("feed: %d cards %s", len(m.sched.Cards()), m.sinceLastFetch())
	}
}

func (m *LoopModel) sinceLastFetch() string {
	if m.lastFetchAt.IsZero() {
		return ""
	}
	return fmt.Sprintf("(%ds ago)", int(time.Since(m.lastFetchAt).Seconds()))
}

// entranceScale returns the grid render scale for a card: its spring
// value while an entrance plays, 1 otherwise.
func (m *LoopModel) entranceScale(c model.Card) float64 {
	if e, ok := m.entrances[c.Key()]; ok {
		s := e.Scale()
		if s < 0 {
			return 0
		}
		if s > 1 {
			return 1 // overshoot must not overflow the slot
		}
		return s
	}
	return 1
}
