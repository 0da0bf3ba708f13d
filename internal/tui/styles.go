package tui

import "github.com/charmbracelet/lipgloss"

var (
	// TitleStyle is used for screen titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")) // Purple

	// SelectedItemStyle is used for highlighted/selected items.
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("170")). // Light purple
				Bold(true)

	// NormalItemStyle is used for non-selected items.
	NormalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")) // Light gray

	// ErrorStyle is used for error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true)

	// HelpStyle is used for help text.
	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")) // Dark gray

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	errorBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(1, 2)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	selectedCardStyle = cardStyle.
				BorderForeground(lipgloss.Color("205"))

	doneMarkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")) // Green
)

// columnPalette maps service color indices 1-16 to terminal colors.
var columnPalette = [...]lipgloss.Color{
	"245", // 1 gray
	"203", // 2 red
	"209", // 3 orange
	"221", // 4 yellow
	"149", // 5 light green
	"71",  // 6 green
	"80",  // 7 teal
	"117", // 8 sky
	"75",  // 9 blue
	"63",  // 10 indigo
	"141", // 11 violet
	"177", // 12 purple
	"212", // 13 pink
	"174", // 14 rose
	"137", // 15 brown
	"252", // 16 light
}

// columnColor returns the header color of a column color index. Indices
// outside 1-16 get a neutral gray.
func columnColor(index int) lipgloss.Color {
	if index < 1 || index > len(columnPalette) {
		return lipgloss.Color("245")
	}
	return columnPalette[index-1]
}
