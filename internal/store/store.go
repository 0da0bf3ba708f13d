// Package store holds the in-memory view state of the dashboard: the current
// view, the loaded collections, the selection indices and the load status.
// It follows the "deep modules" principle - a small interface that keeps every
// selection index inside the bounds of its collection.
package store

import (
	"errors"

	"github.com/h0rv/taskdeck/internal/domain"
)

var (
	// ErrNoProject indicates there is no project under the selection.
	ErrNoProject = errors.New("no project selected")
	// ErrNoBoard indicates there is no board under the selection.
	ErrNoBoard = errors.New("no board selected")
	// ErrNoColumn indicates there is no column under the selection.
	ErrNoColumn = errors.New("no column selected")
	// ErrNoTask indicates there is no task under the selection.
	ErrNoTask = errors.New("no task selected")
)

// Selection holds the zero-based selection indices. Every index is either
// smaller than the length of its collection or 0 when the collection is empty.
type Selection struct {
	Project    int
	Board      int
	Column     int
	Task       int
	TaskScroll int // First visible task of the selected column
}

// Store is the single owner of the dashboard state. It is not safe for
// concurrent use; only the event loop touches it.
type Store struct {
	view View

	// Loaded collections, replaced wholesale on every load
	projects []domain.Project
	boards   []domain.Board
	columns  []domain.ColumnWithTasks

	sel          Selection
	columnOffset int // First visible column
	listOffset   int // First visible row of the projects/boards list

	// Load status
	loading bool
	loadErr string

	// Lookup snapshots built at startup
	users    UserIndex
	stickers StickerIndex

	width  int
	height int
	quit   bool
}

// New creates a store showing the project list.
func New() *Store {
	return &Store{view: ProjectsView{}}
}

// View returns the current view.
func (s *Store) View() View {
	return s.view
}

// State returns the ViewState of the current view.
func (s *Store) State() ViewState {
	return s.view.State()
}

// SetView switches to v. Switching to a different state resets the list scroll.
func (s *Store) SetView(v View) {
	if v.State() != s.view.State() {
		s.listOffset = 0
	}
	s.view = v
}

// Projects returns a copy of the loaded projects.
func (s *Store) Projects() []domain.Project {
	out := make([]domain.Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// SetProjects replaces the project list and selects the first project.
func (s *Store) SetProjects(projects []domain.Project) {
	s.projects = projects
	s.sel.Project = 0
	s.listOffset = 0
	s.clamp()
}

// Boards returns a copy of the loaded boards.
func (s *Store) Boards() []domain.Board {
	out := make([]domain.Board, len(s.boards))
	copy(out, s.boards)
	return out
}

// SetBoards replaces the board list and selects the first board.
func (s *Store) SetBoards(boards []domain.Board) {
	s.boards = boards
	s.sel.Board = 0
	s.listOffset = 0
	s.clamp()
}

// ClearBoards drops the loaded boards.
func (s *Store) ClearBoards() {
	s.SetBoards(nil)
}

// Columns returns a copy of the loaded columns. Task slices are shared.
func (s *Store) Columns() []domain.ColumnWithTasks {
	out := make([]domain.ColumnWithTasks, len(s.columns))
	copy(out, s.columns)
	return out
}

// SetColumns replaces the columns and selects the first task of the first column.
func (s *Store) SetColumns(columns []domain.ColumnWithTasks) {
	s.columns = columns
	s.sel.Column = 0
	s.sel.Task = 0
	s.sel.TaskScroll = 0
	s.columnOffset = 0
	s.clamp()
}

// ClearColumns drops the loaded columns and tasks.
func (s *Store) ClearColumns() {
	s.SetColumns(nil)
}

// Selection returns the current selection indices.
func (s *Store) Selection() Selection {
	return s.sel
}

// MoveProject moves the project selection by delta, staying in bounds.
// It reports whether the selection changed.
func (s *Store) MoveProject(delta int) bool {
	return move(&s.sel.Project, delta, len(s.projects))
}

// MoveBoard moves the board selection by delta, staying in bounds.
func (s *Store) MoveBoard(delta int) bool {
	return move(&s.sel.Board, delta, len(s.boards))
}

// MoveTask moves the task selection inside the selected column by delta.
func (s *Store) MoveTask(delta int) bool {
	return move(&s.sel.Task, delta, s.taskCount())
}

// MoveColumn moves the column selection by delta. Landing on another column
// always selects its first task and scrolls it to the top.
func (s *Store) MoveColumn(delta int) bool {
	if !move(&s.sel.Column, delta, len(s.columns)) {
		return false
	}
	s.sel.Task = 0
	s.sel.TaskScroll = 0
	return true
}

// SelectedProject returns the project under the selection.
func (s *Store) SelectedProject() (domain.Project, error) {
	if len(s.projects) == 0 {
		return domain.Project{}, ErrNoProject
	}
	return s.projects[s.sel.Project], nil
}

// SelectedBoard returns the board under the selection.
func (s *Store) SelectedBoard() (domain.Board, error) {
	if len(s.boards) == 0 {
		return domain.Board{}, ErrNoBoard
	}
	return s.boards[s.sel.Board], nil
}

// SelectedColumn returns the column under the selection.
func (s *Store) SelectedColumn() (domain.ColumnWithTasks, error) {
	if len(s.columns) == 0 {
		return domain.ColumnWithTasks{}, ErrNoColumn
	}
	return s.columns[s.sel.Column], nil
}

// SelectedTask returns the task under the selection.
func (s *Store) SelectedTask() (domain.Task, error) {
	col, err := s.SelectedColumn()
	if err != nil {
		return domain.Task{}, ErrNoTask
	}
	if len(col.Tasks) == 0 {
		return domain.Task{}, ErrNoTask
	}
	return col.Tasks[s.sel.Task], nil
}

// FindTask looks a task up by ID across all loaded columns.
func (s *Store) FindTask(id string) (domain.Task, bool) {
	for _, col := range s.columns {
		for _, t := range col.Tasks {
			if t.ID == id {
				return t, true
			}
		}
	}
	return domain.Task{}, false
}

// SelectTask moves the selection onto the loaded task with the given ID. The
// task scroll offset is left for the next frame to adjust. It reports whether
// the task was found.
func (s *Store) SelectTask(id string) bool {
	for ci, col := range s.columns {
		for ti, t := range col.Tasks {
			if t.ID == id {
				s.sel.Column = ci
				s.sel.Task = ti
				s.clamp()
				return true
			}
		}
	}
	return false
}

// ColumnTitle returns the title of the loaded column with the given ID.
func (s *Store) ColumnTitle(id string) string {
	for _, col := range s.columns {
		if col.Column.ID == id {
			return col.Column.Title
		}
	}
	return ""
}

// Loading reports whether a load is in flight.
func (s *Store) Loading() bool {
	return s.loading
}

// Err returns the message of the last failed load, or "".
func (s *Store) Err() string {
	return s.loadErr
}

// BeginLoad marks a load as in flight and clears any previous error.
func (s *Store) BeginLoad() {
	s.loading = true
	s.loadErr = ""
}

// SetLoading sets the loading flag and leaves any surfaced error in place.
func (s *Store) SetLoading(loading bool) {
	s.loading = loading
}

// FinishLoad clears the loading flag and records errMsg when it is not empty.
func (s *Store) FinishLoad(errMsg string) {
	s.loading = false
	if errMsg != "" {
		s.loadErr = errMsg
	}
}

// DismissError clears the surfaced error. It reports whether there was one.
func (s *Store) DismissError() bool {
	if s.loadErr == "" {
		return false
	}
	s.loadErr = ""
	return true
}

// Users returns the user index snapshot.
func (s *Store) Users() UserIndex {
	return s.users
}

// SetUsers replaces the user index snapshot.
func (s *Store) SetUsers(ix UserIndex) {
	s.users = ix
}

// Stickers returns the sticker index snapshot.
func (s *Store) Stickers() StickerIndex {
	return s.stickers
}

// SetStickers replaces the sticker index snapshot.
func (s *Store) SetStickers(ix StickerIndex) {
	s.stickers = ix
}

// TaskScrollOffset returns the first visible task of the selected column.
func (s *Store) TaskScrollOffset() int {
	return s.sel.TaskScroll
}

// SetTaskScrollOffset records the first visible task of the selected column.
func (s *Store) SetTaskScrollOffset(offset int) {
	s.sel.TaskScroll = offset
	s.clamp()
}

// ColumnOffset returns the first visible column.
func (s *Store) ColumnOffset() int {
	return s.columnOffset
}

// SetColumnOffset records the first visible column.
func (s *Store) SetColumnOffset(offset int) {
	s.columnOffset = clampIndex(offset, len(s.columns))
}

// ListOffset returns the first visible row of the projects or boards list.
func (s *Store) ListOffset() int {
	return s.listOffset
}

// SetListOffset records the first visible row of the projects or boards list.
func (s *Store) SetListOffset(offset int) {
	if offset < 0 {
		offset = 0
	}
	s.listOffset = offset
}

// SetViewport records the terminal size.
func (s *Store) SetViewport(width, height int) {
	s.width = width
	s.height = height
}

// Viewport returns the terminal size, 0x0 until the first resize.
func (s *Store) Viewport() (width, height int) {
	return s.width, s.height
}

// Quit flags the application for termination.
func (s *Store) Quit() {
	s.quit = true
}

// ShouldQuit reports whether the application should terminate.
func (s *Store) ShouldQuit() bool {
	return s.quit
}

func (s *Store) taskCount() int {
	if len(s.columns) == 0 {
		return 0
	}
	return len(s.columns[s.sel.Column].Tasks)
}

// clamp pulls every selection index back inside its collection.
func (s *Store) clamp() {
	s.sel.Project = clampIndex(s.sel.Project, len(s.projects))
	s.sel.Board = clampIndex(s.sel.Board, len(s.boards))
	s.sel.Column = clampIndex(s.sel.Column, len(s.columns))
	s.columnOffset = clampIndex(s.columnOffset, len(s.columns))
	n := s.taskCount()
	s.sel.Task = clampIndex(s.sel.Task, n)
	s.sel.TaskScroll = clampIndex(s.sel.TaskScroll, n)
}

// clampIndex returns i limited to [0, n-1], or 0 when n is 0.
func clampIndex(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// move shifts *idx by delta inside a collection of n items and reports
// whether the index changed.
func move(idx *int, delta, n int) bool {
	next := clampIndex(*idx+delta, n)
	if next == *idx {
		return false
	}
	*idx = next
	return true
}
