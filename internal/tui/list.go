package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/h0rv/taskdeck/internal/layout"
	"github.com/muesli/reflow/truncate"
)

// listRow is one selectable row of the projects or boards list.
type listRow struct {
	title  string
	detail string
}

// renderList draws rows with a selection marker inside a width x height area.
// The first and last line are reserved for the scroll indicators.
func renderList(rows []listRow, selected, offset, width, height int, empty string) string {
	capacity := layout.ListCapacity(height)
	win := layout.FixedWindow(len(rows), selected, offset, capacity)

	lines := make([]string, 0, capacity+2)
	if win.HasBefore() {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("  ↑ %d more", win.Start)))
	} else {
		lines = append(lines, "")
	}

	if len(rows) == 0 {
		lines = append(lines, dimStyle.Render("  "+empty))
	}
	for i := win.Start; i < win.End; i++ {
		lines = append(lines, renderRow(rows[i], i == selected, width))
	}

	for len(lines) < capacity+1 {
		lines = append(lines, "")
	}
	if win.HasAfter() {
		_, after := win.Hidden()
		lines = append(lines, dimStyle.Render(fmt.Sprintf("  ↓ %d more", after)))
	}

	return lipgloss.NewStyle().Width(width).Height(height).MaxHeight(height).
		Render(strings.Join(lines, "\n"))
}

func renderRow(r listRow, selected bool, width int) string {
	text := r.title
	if r.detail != "" {
		text += "  " + dimStyle.Render(r.detail)
	}
	text = truncate.StringWithTail(text, uint(max(width-2, 1)), "…")
	if selected {
		return SelectedItemStyle.Render("> ") + SelectedItemStyle.Render(text)
	}
	return NormalItemStyle.Render("  " + text)
}
