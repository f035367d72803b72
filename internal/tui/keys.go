package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all loop display key bindings with built-in help text.
type KeyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Help      key.Binding
	Escape    key.Binding

	Pause       key.Binding
	ForceCycle  key.Binding
	CyclePolicy key.Binding
	MergePolicy key.Binding
	Activity    key.Binding
	RefreshNow  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?", "h"),
			key.WithHelp("?/h", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause countdown"),
		),
		ForceCycle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "animate now"),
		),
		CyclePolicy: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "selection policy"),
		),
		MergePolicy: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "merge policy"),
		),
		Activity: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "feed activity"),
		),
		RefreshNow: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh feed"),
		),
	}
}
