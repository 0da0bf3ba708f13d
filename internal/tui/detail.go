package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/h0rv/taskdeck/internal/domain"
	"github.com/h0rv/taskdeck/internal/store"
	"github.com/muesli/reflow/wordwrap"
)

// Split layout of the task detail view
const (
	boardPanelRatio = 0.6 // The board keeps 60% of the width
	minDetailWidth  = 30
	borderSize      = 2 // Left + right, or top + bottom
)

// Detail view styles
var (
	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("205"))

	detailLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("241"))

	detailValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))

	detailPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("205")).
				Padding(0, 1)
)

// splitWidths divides width between the board and the detail panel.
func splitWidths(width int) (board, detail int) {
	detail = width - int(float64(width)*boardPanelRatio)
	if detail < minDetailWidth {
		detail = minDetailWidth
	}
	if detail > width {
		detail = width
	}
	return width - detail, detail
}

// detailTextWidth is the text width inside a detail panel of outer width w.
func detailTextWidth(w int) int {
	return max(w-borderSize-2, 1) // Border + padding
}

// detailHeader renders everything above the description.
func detailHeader(t domain.Task, s *store.Store, width int) string {
	var b strings.Builder
	b.WriteString(detailTitleStyle.Render(wordwrap.String(t.Title, width)))
	b.WriteString("\n\n")

	field := func(label, value string) {
		line := detailLabelStyle.Render(label+": ") + detailValueStyle.Render(value)
		b.WriteString(wordwrap.String(line, width))
		b.WriteString("\n")
	}

	if col := s.ColumnTitle(t.ColumnID); col != "" {
		field("Column", col)
	}

	state := "open"
	if t.Completed {
		state = "done"
	}
	if t.Archived {
		state += ", archived"
	}
	field("State", state)

	if len(t.Assigned) > 0 {
		names := make([]string, 0, len(t.Assigned))
		for _, id := range t.Assigned {
			names = append(names, s.Users().Name(id))
		}
		field("Assignees", strings.Join(names, ", "))
	}
	if t.CreatedBy != "" {
		field("Created by", s.Users().Name(t.CreatedBy))
	}
	if t.Timestamp > 0 {
		field("Created", time.UnixMilli(t.Timestamp).Format("2006-01-02 15:04"))
	}
	if t.Color != "" {
		field("Color", strings.TrimPrefix(t.Color, "task-"))
	}

	if len(t.Stickers) > 0 {
		ids := make([]string, 0, len(t.Stickers))
		for id := range t.Stickers {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			field(s.Stickers().Title(id), s.Stickers().Label(id, t.Stickers[id]))
		}
	}

	b.WriteString(detailLabelStyle.Render(strings.Repeat("─", width)))
	return b.String()
}

// taskReference is the text copied to the clipboard.
func taskReference(t domain.Task) string {
	return fmt.Sprintf("%s (%s)", t.Title, t.ID)
}

// markdownRenderer renders markdown for the description and recreates the
// renderer when the wrap width changes.
type markdownRenderer struct {
	width    int
	renderer *glamour.TermRenderer
}

// render converts markdown into ANSI-styled text wrapped at width.
func (r *markdownRenderer) render(markdown string, width int) string {
	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return dimStyle.Render("No description.")
	}

	if r.renderer == nil || r.width != width {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return wordwrap.String(markdown, width)
		}
		r.renderer = renderer
		r.width = width
	}

	rendered, err := r.renderer.Render(markdown)
	if err != nil {
		return wordwrap.String(markdown, width)
	}
	return strings.Trim(rendered, "\n")
}
