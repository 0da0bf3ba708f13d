package store

import "github.com/h0rv/taskdeck/internal/domain"

// ViewState identifies the navigational mode of the dashboard.
type ViewState int

const (
	StateProjects ViewState = iota
	StateBoards
	StateTasks
	StateTaskDetail
	StateHelp
)

func (s ViewState) String() string {
	switch s {
	case StateProjects:
		return "projects"
	case StateBoards:
		return "boards"
	case StateTasks:
		return "tasks"
	case StateTaskDetail:
		return "task-detail"
	case StateHelp:
		return "help"
	default:
		return "unknown"
	}
}

// View is the current view together with the data that only makes sense in it.
// The concrete types are ProjectsView, BoardsView, TasksView, TaskDetailView
// and HelpView.
type View interface {
	State() ViewState
}

// ProjectsView lists the projects.
type ProjectsView struct{}

// BoardsView lists the boards of Project.
type BoardsView struct {
	Project domain.Project
}

// TasksView shows the Kanban board of Board.
type TasksView struct {
	Project domain.Project
	Board   domain.Board
}

// TaskDetailView shows Task on top of the Kanban board it was opened from.
type TaskDetailView struct {
	TasksView
	Task domain.Task
}

// HelpView shows the key bindings.
type HelpView struct{}

func (ProjectsView) State() ViewState   { return StateProjects }
func (BoardsView) State() ViewState     { return StateBoards }
func (TasksView) State() ViewState      { return StateTasks }
func (TaskDetailView) State() ViewState { return StateTaskDetail }
func (HelpView) State() ViewState       { return StateHelp }
