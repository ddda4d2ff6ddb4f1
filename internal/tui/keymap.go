package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding
	Home key.Binding
	End  key.Binding

	// Threshold editing
	Decrease     key.Binding
	Increase     key.Binding
	FastDecrease key.Binding
	FastIncrease key.Binding
	Commit       key.Binding

	// Months
	PrevMonth key.Binding
	NextMonth key.Binding

	// Application
	Refresh     key.Binding
	ToggleHelp  key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding
	ClearScreen key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("Home/g", "first category"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("End/G", "last category"),
		),

		// Threshold editing
		Decrease: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("←/h", "lower threshold"),
		),
		Increase: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("→/l", "raise threshold"),
		),
		FastDecrease: key.NewBinding(
			key.WithKeys("H", "shift+left"),
			key.WithHelp("Shift+←/H", "lower threshold x5"),
		),
		FastIncrease: key.NewBinding(
			key.WithKeys("L", "shift+right"),
			key.WithHelp("Shift+→/L", "raise threshold x5"),
		),
		Commit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "save now"),
		),

		// Months
		PrevMonth: key.NewBinding(
			key.WithKeys("[", "pgup"),
			key.WithHelp("[/PgUp", "previous month"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("]", "pgdown"),
			key.WithHelp("]/PgDn", "next month"),
		),

		// Application
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		ToggleHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q/Esc", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "force quit"),
		),
		ClearScreen: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("Ctrl+L", "clear screen"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Decrease, k.Increase, k.ToggleHelp, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Home, k.End},
		{k.Decrease, k.Increase, k.FastDecrease, k.FastIncrease, k.Commit},
		{k.PrevMonth, k.NextMonth, k.Refresh},
		{k.ToggleHelp, k.Quit, k.ForceQuit},
	}
}
