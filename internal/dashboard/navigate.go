// Package dashboard contains the navigation state machine and the load
// orchestration of the dashboard. Both operate on a *store.Store owned by the
// caller and perform no I/O apart from the gateway call in Orchestrator.Fetch.
package dashboard

import "github.com/h0rv/taskdeck/internal/store"

// Command is an abstract input. Physical keys are mapped to commands by the UI.
type Command int

const (
	Up Command = iota
	Down
	Left
	Right
	Confirm
	Cancel
	Refresh
	Help
	Quit
)

func (c Command) String() string {
	switch c {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	case Confirm:
		return "confirm"
	case Cancel:
		return "cancel"
	case Refresh:
		return "refresh"
	case Help:
		return "help"
	case Quit:
		return "quit"
	default:
		return "unknown"
	}
}

// Effect is what the caller must do after a transition.
type Effect struct {
	Load *Request // Load to begin, nil when the transition needs no data
	Quit bool     // The application should terminate
}

// Navigate applies cmd to the store and returns the resulting effect.
//
// While a load is in flight every command is dropped, so a refresh can never
// issue a second gateway call. With an error surfaced, Cancel only dismisses
// the error.
func Navigate(s *store.Store, cmd Command) Effect {
	if s.Loading() {
		return Effect{}
	}

	if cmd == Cancel && s.DismissError() {
		return Effect{}
	}

	switch cmd {
	case Quit:
		s.Quit()
		return Effect{Quit: true}
	case Help:
		s.SetView(store.HelpView{})
	case Refresh:
		return Effect{Load: refreshRequest(s.View())}
	case Up:
		moveVertical(s, -1)
	case Down:
		moveVertical(s, 1)
	case Left:
		moveColumn(s, -1)
	case Right:
		moveColumn(s, 1)
	case Confirm:
		return confirm(s)
	case Cancel:
		return cancel(s)
	}
	return Effect{}
}

func moveVertical(s *store.Store, delta int) {
	switch s.State() {
	case store.StateProjects:
		s.MoveProject(delta)
	case store.StateBoards:
		s.MoveBoard(delta)
	case store.StateTasks, store.StateTaskDetail:
		s.MoveTask(delta)
	}
}

func moveColumn(s *store.Store, delta int) {
	switch s.State() {
	case store.StateTasks, store.StateTaskDetail:
		s.MoveColumn(delta)
	}
}

func confirm(s *store.Store) Effect {
	switch v := s.View().(type) {
	case store.ProjectsView:
		p, err := s.SelectedProject()
		if err != nil {
			return Effect{}
		}
		s.SetView(store.BoardsView{Project: p})
		return Effect{Load: &Request{Kind: LoadBoards, ProjectID: p.ID}}

	case store.BoardsView:
		b, err := s.SelectedBoard()
		if err != nil {
			return Effect{}
		}
		s.ClearColumns()
		s.SetView(store.TasksView{Project: v.Project, Board: b})
		return Effect{Load: &Request{Kind: LoadColumns, BoardID: b.ID}}

	case store.TasksView:
		openTask(s, v)

	case store.TaskDetailView:
		openTask(s, v.TasksView)
	}
	return Effect{}
}

func openTask(s *store.Store, board store.TasksView) {
	task, err := s.SelectedTask()
	if err != nil {
		return
	}
	s.SetView(store.TaskDetailView{TasksView: board, Task: task})
}

func cancel(s *store.Store) Effect {
	switch v := s.View().(type) {
	case store.ProjectsView:
		s.Quit()
		return Effect{Quit: true}

	case store.BoardsView:
		s.ClearBoards()
		s.SetView(store.ProjectsView{})

	case store.TasksView:
		s.ClearColumns()
		s.SetView(store.BoardsView{Project: v.Project})

	case store.TaskDetailView:
		s.SetView(v.TasksView)

	case store.HelpView:
		// Always back to the project list, whatever was open before Help.
		s.ClearBoards()
		s.ClearColumns()
		s.SetView(store.ProjectsView{})
	}
	return Effect{}
}

// refreshRequest returns the load that re-fetches the collection of view.
func refreshRequest(view store.View) *Request {
	switch v := view.(type) {
	case store.ProjectsView:
		return &Request{Kind: LoadProjects}
	case store.BoardsView:
		return &Request{Kind: LoadBoards, ProjectID: v.Project.ID}
	case store.TasksView:
		return &Request{Kind: LoadColumns, BoardID: v.Board.ID}
	case store.TaskDetailView:
		return &Request{Kind: LoadColumns, BoardID: v.Board.ID}
	}
	return nil
}
