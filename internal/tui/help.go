package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

var (
	// HelpOverlayStyle defines the style for the help screen container.
	HelpOverlayStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2).
		MarginTop(1)
)

// HelpModel wraps the bubbles help component.
type HelpModel struct {
	help   help.Model
	keymap KeyMap
}

// NewHelpModel creates a new help model.
func NewHelpModel(keymap KeyMap) HelpModel {
	h := help.New()
	h.ShowAll = true

	return HelpModel{
		help:   h,
		keymap: keymap,
	}
}

// View renders the full key list.
func (m HelpModel) View(width int) string {
	m.help.Width = width - 8 // Account for padding and border
	body := TitleStyle.Render("Key bindings") + "\n" + m.help.View(m.keymap)
	return HelpOverlayStyle.Render(body)
}

// ShortView renders bindings on one line, as used by the footer.
func (m HelpModel) ShortView(width int, bindings []key.Binding) string {
	m.help.Width = width
	return m.help.ShortHelpView(bindings)
}
