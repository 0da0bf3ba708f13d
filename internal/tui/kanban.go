package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/h0rv/taskdeck/internal/domain"
	"github.com/h0rv/taskdeck/internal/layout"
	"github.com/h0rv/taskdeck/internal/store"
	"github.com/muesli/reflow/truncate"
)

// KanbanFrame is one frame of the Kanban board as plain data.
type KanbanFrame struct {
	Geometry layout.KanbanGeometry
	Columns  []ColumnFrame // Visible columns, left to right
	HasLeft  bool          // Columns hidden to the left
	HasRight bool          // Columns hidden to the right
}

// ColumnFrame is one visible column.
type ColumnFrame struct {
	ID          string
	Title       string
	Color       int
	TaskCount   int
	Selected    bool
	Cards       []CardFrame // Visible cards, top to bottom
	HiddenAbove int
	HiddenBelow int
}

// CardFrame is one visible task card.
type CardFrame struct {
	TaskID       string
	TitleLines   []string
	StickerLines []string
	Completed    bool
	Archived     bool
	Initials     []string
	Selected     bool
}

// Height returns the rendered height of the card, border included.
func (c CardFrame) Height() int {
	return layout.CardOverhead + len(c.TitleLines) + len(c.StickerLines)
}

// BuildKanbanFrame computes the visible part of the board for an area of
// width x height cells from the store's selection and scroll offsets.
func BuildKanbanFrame(s *store.Store, width, height int) KanbanFrame {
	columns := s.Columns()
	sel := s.Selection()
	g := layout.Kanban(width, height, len(columns))

	frame := KanbanFrame{Geometry: g}
	if len(columns) == 0 {
		return frame
	}

	colWin := layout.FixedWindow(len(columns), sel.Column, s.ColumnOffset(), g.VisibleColumns)
	frame.HasLeft = colWin.HasBefore()
	frame.HasRight = colWin.HasAfter()

	for i := colWin.Start; i < colWin.End; i++ {
		col := columns[i]
		selected := i == sel.Column

		selTask, offset := 0, 0
		if selected {
			selTask, offset = sel.Task, sel.TaskScroll
		}
		heights := layout.CardHeights(col.Tasks, g.CardWidth)
		win := layout.ScrollWindow(heights, selTask, offset, g.CardCapacity)
		above, below := win.Hidden()

		cf := ColumnFrame{
			ID:          col.Column.ID,
			Title:       col.Column.Title,
			Color:       col.Column.Color,
			TaskCount:   len(col.Tasks),
			Selected:    selected,
			HiddenAbove: above,
			HiddenBelow: below,
		}
		for j := win.Start; j < win.End; j++ {
			card := buildCard(col.Tasks[j], g.CardWidth, s.Users(), s.Stickers())
			card.Selected = selected && j == sel.Task
			cf.Cards = append(cf.Cards, card)
		}
		frame.Columns = append(frame.Columns, cf)
	}
	return frame
}

func buildCard(t domain.Task, width int, users store.UserIndex, stickers store.StickerIndex) CardFrame {
	c := CardFrame{
		TaskID:     t.ID,
		TitleLines: layout.WrapText(t.Title, width),
		Completed:  t.Completed,
		Archived:   t.Archived,
	}

	for _, id := range sortedStickerIDs(t.Stickers, stickers) {
		line := stickers.Title(id) + ": " + stickers.Label(id, t.Stickers[id])
		c.StickerLines = append(c.StickerLines, truncate.StringWithTail(line, uint(width), "…"))
	}

	for _, id := range t.Assigned {
		if name, ok := users.Lookup(id); ok {
			c.Initials = append(c.Initials, layout.Initials(name))
		} else {
			c.Initials = append(c.Initials, layout.InitialsPlaceholder)
		}
	}
	return c
}

// sortedStickerIDs orders sticker IDs by title, then ID.
func sortedStickerIDs(values map[string]domain.StickerValue, ix store.StickerIndex) []string {
	ids := make([]string, 0, len(values))
	for id := range values {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		ti, tj := ix.Title(ids[i]), ix.Title(ids[j])
		if ti != tj {
			return ti < tj
		}
		return ids[i] < ids[j]
	})
	return ids
}

// renderKanban draws a frame. The result is exactly width cells wide.
func renderKanban(f KanbanFrame, width int) string {
	g := f.Geometry
	outerHeight := g.InnerHeight + 2

	if len(f.Columns) == 0 {
		return lipgloss.Place(width, outerHeight, lipgloss.Center, lipgloss.Center,
			dimStyle.Render("No columns on this board. Press 'r' to refresh."))
	}

	views := make([]string, 0, len(f.Columns)+2)
	views = append(views, scrollMarker("◀", f.HasLeft, outerHeight))
	for _, col := range f.Columns {
		views = append(views, renderColumn(col, g))
	}
	views = append(views, scrollMarker("▶", f.HasRight, outerHeight))

	board := lipgloss.JoinHorizontal(lipgloss.Top, views...)
	return lipgloss.NewStyle().MaxWidth(width).Render(board)
}

// scrollMarker renders the ◀ / ▶ indicator, or a blank gutter when hidden.
func scrollMarker(symbol string, show bool, height int) string {
	if !show {
		symbol = ""
	}
	return lipgloss.NewStyle().
		Width(layout.MarkerWidth).
		Height(height).
		Foreground(lipgloss.Color("205")).
		Align(lipgloss.Center, lipgloss.Center).
		Render(symbol)
}

func renderColumn(col ColumnFrame, g layout.KanbanGeometry) string {
	contentWidth := g.ColumnWidth - 2

	header := fmt.Sprintf("%s (%d)", col.Title, col.TaskCount)
	header = truncate.StringWithTail(header, uint(contentWidth-1), "…")
	headerStyle := lipgloss.NewStyle().Bold(true).PaddingLeft(1).Foreground(columnColor(col.Color))

	lines := []string{headerStyle.Render(header)}

	// The indicator rows are always reserved so cards never jump.
	if col.HiddenAbove > 0 {
		lines = append(lines, dimStyle.Render(fmt.Sprintf(" ↑ %d more", col.HiddenAbove)))
	} else {
		lines = append(lines, "")
	}

	if col.TaskCount == 0 {
		lines = append(lines, dimStyle.Render(" (empty)"))
	}
	for _, card := range col.Cards {
		lines = append(lines, strings.Split(renderCard(card, g.CardWidth), "\n")...)
	}

	// An oversized card may overflow; keep room for the bottom indicator.
	if limit := g.InnerHeight - 1; len(lines) > limit {
		lines = lines[:limit]
	}
	for len(lines) < g.InnerHeight-1 {
		lines = append(lines, "")
	}
	if col.HiddenBelow > 0 {
		lines = append(lines, dimStyle.Render(fmt.Sprintf(" ↓ %d more", col.HiddenBelow)))
	} else {
		lines = append(lines, "")
	}

	borderColor := lipgloss.Color("240")
	if col.Selected {
		borderColor = lipgloss.Color("205")
	}

	// Width excludes the border; Height(InnerHeight) plus the border fills
	// the board area exactly.
	colStyle := lipgloss.NewStyle().
		Width(contentWidth).
		Height(g.InnerHeight).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor)

	return colStyle.Render(strings.Join(lines, "\n"))
}

func renderCard(c CardFrame, width int) string {
	var lines []string
	for _, l := range c.TitleLines {
		if c.Selected {
			l = lipgloss.NewStyle().Bold(true).Render(l)
		}
		lines = append(lines, l)
	}
	for _, l := range c.StickerLines {
		lines = append(lines, dimStyle.Render(l))
	}
	lines = append(lines, cardFooter(c, width))

	style := cardStyle
	if c.Selected {
		style = selectedCardStyle
	}
	// Width includes the padding, the border adds 2 more cells.
	return style.Width(width + 2).Render(strings.Join(lines, "\n"))
}

// cardFooter renders the completion mark, archive tag and assignee initials.
func cardFooter(c CardFrame, width int) string {
	mark := dimStyle.Render("○")
	if c.Completed {
		mark = doneMarkStyle.Render("✓")
	}

	parts := []string{mark}
	if c.Archived {
		parts = append(parts, dimStyle.Render("archived"))
	}
	if len(c.Initials) > 0 {
		parts = append(parts, accentStyle.Render(strings.Join(c.Initials, " ")))
	}
	return truncate.StringWithTail(strings.Join(parts, " "), uint(width), "…")
}
