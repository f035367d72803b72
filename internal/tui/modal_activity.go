package tui

import (
	"fmt"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// activityModal charts recent poll results: cards per fetch, with
// failed polls marked in red.
type activityModal struct {
	vp      viewport.Model
	history []FetchSample
}

func newActivityModal(history []FetchSample) *activityModal {
	return &activityModal{
		vp:      viewport.New(80, 20),
		history: append([]FetchSample(nil), history...),
	}
}

func (a *activityModal) ID() string { return "activity" }

func (a *activityModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	return handleModalScroll(&a.vp, msg), nil
}

func (a *activityModal) View(width, height int) string {
	return renderModalFrame(&a.vp, "Feed Activity", a.content(width), width, height)
}

func (a *activityModal) content(width int) string {
	if len(a.history) == 0 {
		return partnerStyle.Render("No polls yet")
	}

	chartWidth := width - 16
	if chartWidth < 24 {
		chartWidth = 24
	}
	chartHeight := 8
	maxBars := chartWidth / 3

	samples := a.history
	if len(samples) > maxBars {
		samples = samples[len(samples)-maxBars:]
	}

	okStyle := lipgloss.NewStyle().Foreground(ColorBlue).Background(ColorBlue)
	failStyle := lipgloss.NewStyle().Foreground(ColorRed).Background(ColorRed)

	bc := barchart.New(chartWidth, chartHeight,
		barchart.WithBarGap(1),
		barchart.WithBarWidth(2),
		barchart.WithNoAxis(),
	)
	for _, s := range samples {
		value := float64(s.Count)
		style := okStyle
		if s.Failed {
			// A failed poll shows as a single red notch.
			value = 1
			style = failStyle
		}
		bc.Push(barchart.BarData{
			Label: s.At.Format("15:04"),
			Values: []barchart.BarValue{
				{Name: "cards", Value: value, Style: style},
			},
		})
	}
	bc.Draw()

	var okCount, failCount int
	for _, s := range a.history {
		if s.Failed {
			failCount++
		} else {
			okCount++
		}
	}
	summary := fmt.Sprintf("%d polls ok, %d failed", okCount, failCount)

	return lipgloss.JoinVertical(lipgloss.Left,
		bc.View(),
		"",
		partnerStyle.Render(summary),
	)
}
