package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/h0rv/taskdeck/internal/dashboard"
)

// KeyMap defines all key bindings of the dashboard.
type KeyMap struct {
	// Navigation
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// Actions
	Confirm   key.Binding
	Cancel    key.Binding
	Refresh   key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding

	// Task detail
	Copy     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous column"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next column"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy task reference"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "scroll description up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "scroll description down"),
		),
	}
}

// Command maps a key press to a dashboard command.
func (k KeyMap) Command(msg tea.KeyMsg) (dashboard.Command, bool) {
	switch {
	case key.Matches(msg, k.Up):
		return dashboard.Up, true
	case key.Matches(msg, k.Down):
		return dashboard.Down, true
	case key.Matches(msg, k.Left):
		return dashboard.Left, true
	case key.Matches(msg, k.Right):
		return dashboard.Right, true
	case key.Matches(msg, k.Confirm):
		return dashboard.Confirm, true
	case key.Matches(msg, k.Cancel):
		return dashboard.Cancel, true
	case key.Matches(msg, k.Refresh):
		return dashboard.Refresh, true
	case key.Matches(msg, k.Help):
		return dashboard.Help, true
	case key.Matches(msg, k.Quit):
		return dashboard.Quit, true
	}
	return 0, false
}

// ShortHelp returns key bindings to be shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel, k.Refresh, k.Help, k.Quit}
}

// FullHelp returns key bindings for the help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Confirm, k.Cancel, k.Refresh},
		{k.Copy, k.PageUp, k.PageDown},
		{k.Help, k.Quit},
	}
}

// boardHelp returns the footer bindings of the Kanban views.
func (k KeyMap) boardHelp(detail bool) []key.Binding {
	b := []key.Binding{k.Left, k.Right, k.Up, k.Down, k.Confirm, k.Cancel, k.Refresh}
	if detail {
		b = append(b, k.Copy, k.PageDown)
	}
	return append(b, k.Help)
}
