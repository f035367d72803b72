package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// helpModal lists every key binding.
type helpModal struct {
	vp   viewport.Model
	keys KeyMap
}

func newHelpModal(keys KeyMap) *helpModal {
	return &helpModal{vp: viewport.New(80, 20), keys: keys}
}

func (h *helpModal) ID() string { return "help" }

func (h *helpModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	return handleModalScroll(&h.vp, msg), nil
}

func (h *helpModal) View(width, height int) string {
	return renderModalFrame(&h.vp, "Keys", h.content(), width, height)
}

func (h *helpModal) content() string {
	groups := []struct {
		title    string
		bindings []key.Binding
	}{
		{"Loop", []key.Binding{h.keys.Pause, h.keys.ForceCycle, h.keys.RefreshNow}},
		{"Policies", []key.Binding{h.keys.CyclePolicy, h.keys.MergePolicy}},
		{"Display", []key.Binding{h.keys.Activity, h.keys.Help, h.keys.Escape, h.keys.Quit, h.keys.ForceQuit}},
	}

	var b strings.Builder
	for _, g := range groups {
		b.WriteString(outletStyle.Render(g.title))
		b.WriteString("\n")
		for _, binding := range g.bindings {
			help := binding.Help()
			fmt.Fprintf(&b, "  %-10s %s\n", help.Key, help.Desc)
		}
		b.WriteString("\n")
	}
	return b.String()
}
