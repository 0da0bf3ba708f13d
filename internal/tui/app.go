package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/h0rv/taskdeck/internal/dashboard"
	"github.com/h0rv/taskdeck/internal/layout"
	"github.com/h0rv/taskdeck/internal/store"
	"github.com/muesli/reflow/truncate"
)

// Frame layout
const (
	defaultWidth  = 80
	defaultHeight = 24
	headerHeight  = 1
	footerHeight  = 1
	minBodyHeight = 3
)

// Model is the root Bubble Tea model. It turns key presses into dashboard
// commands, runs loads as commands and renders the store every frame.
type Model struct {
	// Dependencies
	ctx    context.Context
	store  *store.Store
	orch   *dashboard.Orchestrator
	logger *log.Logger
	copyFn func(string) error

	// UI components
	keymap   KeyMap
	help     HelpModel
	spinner  spinner.Model
	detail   viewport.Model
	markdown *markdownRenderer

	detailKey string // Task and width the detail viewport was filled for
	toast     string // One-shot footer message
}

// NewModel creates the root model. The store and orchestrator are owned by the
// model from here on.
func NewModel(ctx context.Context, s *store.Store, orch *dashboard.Orchestrator, logger *log.Logger) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = accentStyle

	keymap := DefaultKeyMap()
	return Model{
		ctx:      ctx,
		store:    s,
		orch:     orch,
		logger:   logger,
		copyFn:   clipboard.WriteAll,
		keymap:   keymap,
		help:     NewHelpModel(keymap),
		spinner:  sp,
		detail:   viewport.New(defaultWidth, defaultHeight),
		markdown: &markdownRenderer{},
	}
}

// Init starts the startup load chain.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.WindowSize(),
		func() tea.Msg { return startMsg{} },
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.store.SetViewport(msg.Width, msg.Height)

	case startMsg:
		cmd = m.begin(m.orch.Startup())

	case loadDoneMsg:
		next, more := m.orch.Complete(m.store, msg.result)
		if more {
			cmd = m.begin(next)
		}

	case copiedMsg:
		if msg.err != nil {
			m.logger.Warn("clipboard write failed", "err", msg.err)
			m.toast = "Copy failed: " + msg.err.Error()
		} else {
			m.toast = "Copied " + msg.text
		}

	case spinner.TickMsg:
		if !m.store.Loading() {
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		m, cmd = m.handleKeyPress(msg)
	}

	m.syncScroll()
	m.syncDetail()
	return m, cmd
}

// handleKeyPress processes keyboard input.
func (m Model) handleKeyPress(msg tea.KeyMsg) (Model, tea.Cmd) {
	// Global quit, honored even while loading
	if key.Matches(msg, m.keymap.ForceQuit) {
		m.store.Quit()
		return m, tea.Quit
	}
	m.toast = ""

	if m.store.State() == store.StateTaskDetail && !m.store.Loading() && m.store.Err() == "" {
		switch {
		case key.Matches(msg, m.keymap.Copy):
			return m, m.copySelected()
		case key.Matches(msg, m.keymap.PageDown):
			m.detail.SetYOffset(m.detail.YOffset + max(m.detail.Height/2, 1))
			return m, nil
		case key.Matches(msg, m.keymap.PageUp):
			m.detail.SetYOffset(m.detail.YOffset - max(m.detail.Height/2, 1))
			return m, nil
		}
	}

	command, ok := m.keymap.Command(msg)
	if !ok {
		return m, nil
	}

	eff := dashboard.Navigate(m.store, command)
	if eff.Quit {
		return m, tea.Quit
	}
	if eff.Load != nil {
		return m, m.begin(*eff.Load)
	}
	return m, nil
}

// begin starts req and returns the command that performs the gateway call.
func (m Model) begin(req dashboard.Request) tea.Cmd {
	begun, ok := m.orch.Begin(m.store, req)
	if !ok {
		return nil
	}
	ctx, orch := m.ctx, m.orch
	fetch := func() tea.Msg {
		return loadDoneMsg{result: orch.Fetch(ctx, begun)}
	}
	return tea.Batch(fetch, m.spinner.Tick)
}

func (m Model) copySelected() tea.Cmd {
	v, ok := m.store.View().(store.TaskDetailView)
	if !ok {
		return nil
	}
	text := taskReference(v.Task)
	copyFn := m.copyFn
	return func() tea.Msg {
		return copiedMsg{text: text, err: copyFn(text)}
	}
}

// size returns the terminal size, or a default before the first resize.
func (m Model) size() (width, height int) {
	width, height = m.store.Viewport()
	if width == 0 {
		width = defaultWidth
	}
	if height == 0 {
		height = defaultHeight
	}
	return width, height
}

func (m Model) bodyHeight() int {
	_, h := m.size()
	return max(h-headerHeight-footerHeight, minBodyHeight)
}

// boardWidth returns the width of the Kanban area of the current view.
func (m Model) boardWidth() int {
	w, _ := m.size()
	if m.store.State() == store.StateTaskDetail {
		board, _ := splitWidths(w)
		return board
	}
	return w
}

// syncScroll records the minimal scroll offsets that keep every selection
// visible, so the next frame starts from them.
func (m Model) syncScroll() {
	s := m.store
	sel := s.Selection()
	bodyH := m.bodyHeight()

	switch s.State() {
	case store.StateProjects:
		win := layout.FixedWindow(len(s.Projects()), sel.Project, s.ListOffset(), layout.ListCapacity(bodyH))
		s.SetListOffset(win.Start)

	case store.StateBoards:
		win := layout.FixedWindow(len(s.Boards()), sel.Board, s.ListOffset(), layout.ListCapacity(bodyH))
		s.SetListOffset(win.Start)

	case store.StateTasks, store.StateTaskDetail:
		columns := s.Columns()
		if len(columns) == 0 {
			return
		}
		g := layout.Kanban(m.boardWidth(), bodyH, len(columns))
		colWin := layout.FixedWindow(len(columns), sel.Column, s.ColumnOffset(), g.VisibleColumns)
		s.SetColumnOffset(colWin.Start)

		heights := layout.CardHeights(columns[sel.Column].Tasks, g.CardWidth)
		taskWin := layout.ScrollWindow(heights, sel.Task, sel.TaskScroll, g.CardCapacity)
		s.SetTaskScrollOffset(taskWin.Start)
	}
}

// syncDetail sizes the description viewport and refills it when the task or
// the panel width changed.
func (m *Model) syncDetail() {
	v, ok := m.store.View().(store.TaskDetailView)
	if !ok {
		m.detailKey = ""
		return
	}

	w, _ := m.size()
	_, panelW := splitWidths(w)
	textW := detailTextWidth(panelW)
	header := detailHeader(v.Task, m.store, textW)

	m.detail.Width = textW
	m.detail.Height = max(m.bodyHeight()-borderSize-lipgloss.Height(header), 1)

	fill := fmt.Sprintf("%s|%d|%d", v.Task.ID, textW, len(v.Task.Description))
	if fill != m.detailKey {
		m.detail.SetContent(m.markdown.render(v.Task.Description, textW))
		m.detail.GotoTop()
		m.detailKey = fill
	}
}

// View renders the current state.
func (m Model) View() string {
	if m.store.ShouldQuit() {
		return ""
	}

	width, _ := m.size()
	bodyH := m.bodyHeight()

	var body string
	switch {
	case m.store.Err() != "":
		body = m.renderError(width, bodyH)
	default:
		body = m.renderBody(width, bodyH)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(width),
		body,
		m.renderFooter(width),
	)
}

func (m Model) renderBody(width, height int) string {
	s := m.store
	sel := s.Selection()

	switch v := s.View().(type) {
	case store.ProjectsView:
		projects := s.Projects()
		rows := make([]listRow, len(projects))
		for i, p := range projects {
			rows[i] = listRow{title: p.Title}
			if n := len(p.Users); n > 0 {
				rows[i].detail = fmt.Sprintf("%d members", n)
			}
		}
		return renderList(rows, sel.Project, s.ListOffset(), width, height, "No projects")

	case store.BoardsView:
		boards := s.Boards()
		rows := make([]listRow, len(boards))
		for i, b := range boards {
			rows[i] = listRow{title: b.Title}
		}
		return renderList(rows, sel.Board, s.ListOffset(), width, height, "No boards in "+v.Project.Title)

	case store.TasksView:
		return renderKanban(BuildKanbanFrame(s, width, height), width)

	case store.TaskDetailView:
		boardW, panelW := splitWidths(width)
		board := ""
		if boardW > 0 {
			board = renderKanban(BuildKanbanFrame(s, boardW, height), boardW)
		}
		textW := detailTextWidth(panelW)
		content := detailHeader(v.Task, s, textW) + "\n" + m.detail.View()
		panel := detailPanelStyle.
			Width(panelW - borderSize).
			Height(height - borderSize).
			MaxHeight(height).
			Render(content)
		return lipgloss.JoinHorizontal(lipgloss.Top, board, panel)

	case store.HelpView:
		helpLines := strings.Split(m.help.View(width), "\n")
		if len(helpLines) > height {
			helpLines = helpLines[:height]
		}
		return lipgloss.NewStyle().Height(height).Render(strings.Join(helpLines, "\n"))
	}
	return ""
}

// renderError replaces the body with a centered, dismissible error box.
func (m Model) renderError(width, height int) string {
	boxW := min(max(width-8, 20), 72)
	text := ErrorStyle.Render("Error: ") + m.store.Err()
	box := errorBoxStyle.Width(boxW).Render(text + "\n\n" + dimStyle.Render("[esc] dismiss"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// renderHeader renders the breadcrumb on the left and status on the right.
func (m Model) renderHeader(width int) string {
	title := strings.Join(m.breadcrumb(), " › ")

	var status []string
	if m.store.Loading() {
		status = append(status, m.spinner.View()+"loading")
	}
	status = append(status, "[?]help")
	right := dimStyle.Render(strings.Join(status, " | "))

	rightW := lipgloss.Width(right)
	title = truncate.StringWithTail(title, uint(max(width-rightW-2, 1)), "…")
	left := TitleStyle.Render(title)

	padding := max(width-lipgloss.Width(left)-rightW, 1)
	return left + strings.Repeat(" ", padding) + right
}

func (m Model) breadcrumb() []string {
	crumbs := []string{"Projects"}
	switch v := m.store.View().(type) {
	case store.BoardsView:
		crumbs = append(crumbs, v.Project.Title)
	case store.TasksView:
		crumbs = append(crumbs, v.Project.Title, v.Board.Title)
	case store.TaskDetailView:
		crumbs = append(crumbs, v.Project.Title, v.Board.Title, v.Task.Title)
	case store.HelpView:
		crumbs = []string{"Help"}
	}
	return crumbs
}

func (m Model) renderFooter(width int) string {
	if m.toast != "" {
		return accentStyle.Render(truncate.StringWithTail(m.toast, uint(width), "…"))
	}

	var bindings []key.Binding
	switch m.store.State() {
	case store.StateTasks:
		bindings = m.keymap.boardHelp(false)
	case store.StateTaskDetail:
		bindings = m.keymap.boardHelp(true)
	case store.StateHelp:
		bindings = []key.Binding{m.keymap.Cancel, m.keymap.Quit}
	default:
		bindings = m.keymap.ShortHelp()
	}
	return m.help.ShortView(width, bindings)
}
