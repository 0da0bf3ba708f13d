package layout

// Kanban layout constants
const (
	MaxColumnsVisible = 4  // Never show more columns than this at once
	MinColumnWidth    = 20 // Columns narrower than this are scrolled off instead
	MarkerWidth       = 2  // Width reserved on each side for the ◀ / ▶ markers
	columnChrome      = 2  // Column border (left + right)
	cardChrome        = 4  // Card border + 1 cell padding each side
	columnHeaderLines = 1  // "Title (count)" line
	indicatorLines    = 2  // "↑ N more" and "↓ N more" lines, always reserved
)

// KanbanGeometry describes how a board area of a given size is divided.
type KanbanGeometry struct {
	VisibleColumns int // Columns shown side by side
	ColumnWidth    int // Outer width of one column, border included
	InnerHeight    int // Column content height, border excluded
	CardWidth      int // Width available to card text
	CardCapacity   int // Lines available to cards in one column
}

// Kanban computes the geometry for a board area of width x height cells
// holding the given number of columns.
func Kanban(width, height, columns int) KanbanGeometry {
	usable := width - 2*MarkerWidth
	if usable < MinColumnWidth {
		usable = MinColumnWidth
	}

	fit := usable / MinColumnWidth
	visible := min(MaxColumnsVisible, fit, columns)
	if visible < 1 {
		visible = 1
	}

	colWidth := usable / visible
	innerHeight := height - columnChrome
	if innerHeight < 1 {
		innerHeight = 1
	}

	cardWidth := colWidth - columnChrome - cardChrome
	if cardWidth < 1 {
		cardWidth = 1
	}

	capacity := innerHeight - columnHeaderLines - indicatorLines
	if capacity < 1 {
		capacity = 1
	}

	g := KanbanGeometry{
		VisibleColumns: visible,
		ColumnWidth:    colWidth,
		InnerHeight:    innerHeight,
		CardWidth:      cardWidth,
		CardCapacity:   capacity,
	}
	if columns == 0 {
		g.VisibleColumns = 0
	}
	return g
}

// ListCapacity returns how many single-line rows fit in a list area of the
// given height once the two scroll indicator lines are reserved.
func ListCapacity(height int) int {
	c := height - indicatorLines
	if c < 1 {
		c = 1
	}
	return c
}
