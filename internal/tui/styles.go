package tui

import "github.com/charmbracelet/lipgloss"

// Palette shared across the loop display.
var (
	ColorNavy   = lipgloss.Color("#1a1b4b")
	ColorWhite  = lipgloss.Color("#ffffff")
	ColorGray   = lipgloss.Color("#808080")
	ColorDim    = lipgloss.Color("#4a4a4a")
	ColorBlue   = lipgloss.Color("#00b7ff")
	ColorGreen  = lipgloss.Color("#49E209")
	ColorOrange = lipgloss.Color("#ff9f1c")
	ColorRed    = lipgloss.Color("#ff4d4d")
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDim)

	newCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorGreen)

	floatingCardStyle = lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(ColorBlue)

	emptySlotStyle = lipgloss.NewStyle().
			Border(lipgloss.HiddenBorder())

	outletStyle  = lipgloss.NewStyle().Foreground(ColorWhite).Bold(true)
	partnerStyle = lipgloss.NewStyle().Foreground(ColorGray)
	badgeStyle   = lipgloss.NewStyle().Foreground(ColorGreen).Bold(true)

	statusStyle = lipgloss.NewStyle().Background(ColorNavy).Foreground(ColorWhite)
	errorStyle  = lipgloss.NewStyle().Foreground(ColorRed).Bold(true)
)

// thumbnailPalette colors glyph-art thumbnails; the color is picked by
// hashing the image URL so a card keeps its look across refreshes.
var thumbnailPalette = []lipgloss.Color{
	"#e76f51", "#f4a261", "#e9c46a", "#2a9d8f", "#8ab17d",
	"#6d597a", "#b56576", "#355070", "#43aa8b", "#577590",
}
