package dashboard

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/h0rv/taskdeck/internal/domain"
	"github.com/h0rv/taskdeck/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGateway serves canned collections and counts calls.
type fakeGateway struct {
	projects []domain.Project
	boards   map[string][]domain.Board
	columns  map[string][]domain.ColumnWithTasks
	users    []domain.User
	stickers []domain.Sticker

	projectsErr error
	boardsErr   error
	columnsErr  error
	usersErr    error
	stickersErr error

	calls       map[string]int
	lastProject string
	lastBoard   string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		projects: []domain.Project{
			{ID: "p0", Title: "Zero"},
			{ID: "p1", Title: "One"},
			{ID: "p2", Title: "Two"},
		},
		boards: map[string][]domain.Board{
			"p0": {{ID: "b0", Title: "Main", ProjectID: "p0"}, {ID: "b1", Title: "Ops", ProjectID: "p0"}},
		},
		columns: map[string][]domain.ColumnWithTasks{
			"b0": testColumns(),
		},
		users:    []domain.User{{ID: "u1", Name: "Ada Lovelace"}},
		stickers: []domain.Sticker{{ID: "s1", Title: "Priority"}},
		calls:    map[string]int{},
	}
}

func testColumns() []domain.ColumnWithTasks {
	return []domain.ColumnWithTasks{
		{Column: domain.Column{ID: "c0", Title: "Todo"}, Tasks: []domain.Task{
			{ID: "t0", Title: "First"}, {ID: "t1", Title: "Second"},
		}},
		{Column: domain.Column{ID: "c1", Title: "Doing"}, Tasks: []domain.Task{{ID: "t2", Title: "Third"}}},
		{Column: domain.Column{ID: "c2", Title: "Review"}},
		{Column: domain.Column{ID: "c3", Title: "Done"}, Tasks: []domain.Task{{ID: "t3", Title: "Fourth"}}},
	}
}

func (g *fakeGateway) FetchProjects(ctx context.Context) ([]domain.Project, error) {
	g.calls["projects"]++
	return g.projects, g.projectsErr
}

func (g *fakeGateway) FetchBoards(ctx context.Context, projectID string) ([]domain.Board, error) {
	g.calls["boards"]++
	g.lastProject = projectID
	return g.boards[projectID], g.boardsErr
}

func (g *fakeGateway) FetchColumnsWithTasks(ctx context.Context, boardID string) ([]domain.ColumnWithTasks, error) {
	g.calls["columns"]++
	g.lastBoard = boardID
	return g.columns[boardID], g.columnsErr
}

func (g *fakeGateway) FetchUsers(ctx context.Context) ([]domain.User, error) {
	g.calls["users"]++
	return g.users, g.usersErr
}

func (g *fakeGateway) FetchStickers(ctx context.Context, boardID string) ([]domain.Sticker, error) {
	g.calls["stickers"]++
	return g.stickers, g.stickersErr
}

func (g *fakeGateway) total() int {
	n := 0
	for _, c := range g.calls {
		n += c
	}
	return n
}

func newTestOrchestrator(gw Gateway) *Orchestrator {
	return NewOrchestrator(gw, log.New(io.Discard), 0)
}

// runLoad drives req through Begin, Fetch and Complete, following the
// startup chain.
func runLoad(t *testing.T, o *Orchestrator, s *store.Store, req *Request) {
	t.Helper()
	for req != nil {
		begun, ok := o.Begin(s, *req)
		require.True(t, ok, "load %s should begin", req.Kind)
		require.True(t, s.Loading())
		res := o.Fetch(context.Background(), begun)
		nextReq, more := o.Complete(s, res)
		require.False(t, s.Loading())
		req = nil
		if more {
			req = &nextReq
		}
	}
}

// press applies cmd and runs any load it triggers.
func press(t *testing.T, o *Orchestrator, s *store.Store, cmd Command) Effect {
	t.Helper()
	eff := Navigate(s, cmd)
	if eff.Load != nil {
		runLoad(t, o, s, eff.Load)
	}
	return eff
}

func startedStore(t *testing.T, gw *fakeGateway) (*Orchestrator, *store.Store) {
	t.Helper()
	o := newTestOrchestrator(gw)
	s := store.New()
	req := o.Startup()
	runLoad(t, o, s, &req)
	return o, s
}

func TestStartup_LoadsInOrder(t *testing.T) {
	gw := newFakeGateway()
	o := newTestOrchestrator(gw)
	s := store.New()

	req := o.Startup()
	assert.Equal(t, LoadProjects, req.Kind)

	var kinds []LoadKind
	for {
		begun, ok := o.Begin(s, req)
		require.True(t, ok)
		kinds = append(kinds, begun.Kind)
		next, more := o.Complete(s, o.Fetch(context.Background(), begun))
		if !more {
			break
		}
		req = next
	}

	assert.Equal(t, []LoadKind{LoadProjects, LoadUsers, LoadStickers}, kinds)
	assert.Len(t, s.Projects(), 3)
	assert.Equal(t, "Ada Lovelace", s.Users().Name("u1"))
	assert.Equal(t, "Priority", s.Stickers().Title("s1"))
	assert.Empty(t, s.Err())
}

func TestStartup_AuxiliaryFailuresAreSoft(t *testing.T) {
	gw := newFakeGateway()
	gw.usersErr = errors.New("users down")
	gw.stickersErr = errors.New("stickers down")

	_, s := startedStore(t, gw)

	assert.Empty(t, s.Err(), "auxiliary failures are not surfaced")
	assert.Len(t, s.Projects(), 3)
	assert.Equal(t, store.UnknownUser, s.Users().Name("u1"))
	assert.Equal(t, "s1", s.Stickers().Title("s1"))
}

func TestStartup_ProjectFailureIsSurfacedAndChainContinues(t *testing.T) {
	gw := newFakeGateway()
	gw.projectsErr = errors.New("connection refused")

	_, s := startedStore(t, gw)

	assert.Equal(t, "connection refused", s.Err())
	assert.Equal(t, 1, gw.calls["users"])
	assert.Equal(t, 1, gw.calls["stickers"])
	assert.Equal(t, "Ada Lovelace", s.Users().Name("u1"))
}

func TestEmptyProjects_MovementDoesNotCrash(t *testing.T) {
	gw := newFakeGateway()
	gw.projects = nil
	o, s := startedStore(t, gw)

	press(t, o, s, Down)
	press(t, o, s, Up)
	eff := press(t, o, s, Confirm)

	assert.Nil(t, eff.Load)
	assert.Equal(t, store.StateProjects, s.State())
	assert.Equal(t, 0, s.Selection().Project)
}

func TestConfirmThirdProject_LoadsItsBoards(t *testing.T) {
	gw := newFakeGateway()
	o, s := startedStore(t, gw)

	press(t, o, s, Down)
	press(t, o, s, Down)
	require.Equal(t, 2, s.Selection().Project)

	eff := Navigate(s, Confirm)
	require.NotNil(t, eff.Load)
	assert.Equal(t, LoadBoards, eff.Load.Kind)
	assert.Equal(t, "p2", eff.Load.ProjectID)
	assert.Equal(t, store.StateBoards, s.State())

	runLoad(t, o, s, eff.Load)
	assert.Equal(t, "p2", gw.lastProject)
	assert.Empty(t, s.Boards())
	assert.Equal(t, 0, s.Selection().Board)
}

func TestSelectBoard_OneColumnLoadAndReset(t *testing.T) {
	gw := newFakeGateway()
	o, s := startedStore(t, gw)

	press(t, o, s, Confirm)
	require.Len(t, s.Boards(), 2)

	eff := press(t, o, s, Confirm)
	require.NotNil(t, eff.Load)
	assert.Equal(t, 1, gw.calls["columns"])
	assert.Equal(t, "b0", gw.lastBoard)
	assert.Equal(t, store.StateTasks, s.State())
	assert.Equal(t, store.Selection{}, s.Selection())

	// Move away, go back and select again: selection resets once more
	press(t, o, s, Right)
	press(t, o, s, Cancel)
	press(t, o, s, Confirm)
	assert.Equal(t, 2, gw.calls["columns"])
	sel := s.Selection()
	assert.Equal(t, 0, sel.Column)
	assert.Equal(t, 0, sel.Task)
	assert.Equal(t, 0, sel.TaskScroll)
}

func TestMoveRightAtLastColumn_NoWraparound(t *testing.T) {
	gw := newFakeGateway()
	o, s := startedStore(t, gw)
	press(t, o, s, Confirm)
	press(t, o, s, Confirm)
	require.Len(t, s.Columns(), 4)

	for i := 0; i < 3; i++ {
		press(t, o, s, Right)
	}
	require.Equal(t, 3, s.Selection().Column)

	press(t, o, s, Right)
	assert.Equal(t, 3, s.Selection().Column)
}

func TestColumnChange_ResetsTaskSelection(t *testing.T) {
	gw := newFakeGateway()
	o, s := startedStore(t, gw)
	press(t, o, s, Confirm)
	press(t, o, s, Confirm)

	press(t, o, s, Down)
	require.Equal(t, 1, s.Selection().Task)

	press(t, o, s, Right)
	assert.Equal(t, 1, s.Selection().Column)
	assert.Equal(t, 0, s.Selection().Task)
}

func TestRefreshWhileLoading_IsIgnored(t *testing.T) {
	gw := newFakeGateway()
	o, s := startedStore(t, gw)
	before := gw.total()

	begun, ok := o.Begin(s, Request{Kind: LoadProjects})
	require.True(t, ok)

	eff := Navigate(s, Refresh)
	assert.Nil(t, eff.Load)
	_, ok = o.Begin(s, Request{Kind: LoadProjects})
	assert.False(t, ok, "a second load cannot begin")

	o.Complete(s, o.Fetch(context.Background(), begun))
	assert.Equal(t, before+1, gw.total(), "exactly one gateway call")
}

func TestInputDroppedWhileLoading(t *testing.T) {
	gw := newFakeGateway()
	o, s := startedStore(t, gw)
	_, ok := o.Begin(s, Request{Kind: LoadProjects})
	require.True(t, ok)

	for _, cmd := range []Command{Down, Confirm, Cancel, Help, Quit} {
		assert.Equal(t, Effect{}, Navigate(s, cmd))
	}
	assert.Equal(t, store.StateProjects, s.State())
	assert.Equal(t, 0, s.Selection().Project)
	assert.False(t, s.ShouldQuit())
}

func TestRefresh_PerState(t *testing.T) {
	gw := newFakeGateway()
	o, s := startedStore(t, gw)

	eff := Navigate(s, Refresh)
	require.NotNil(t, eff.Load)
	assert.Equal(t, LoadProjects, eff.Load.Kind)
	runLoad(t, o, s, eff.Load)

	press(t, o, s, Confirm)
	eff = Navigate(s, Refresh)
	require.NotNil(t, eff.Load)
	assert.Equal(t, Request{Kind: LoadBoards, ProjectID: "p0"}, *eff.Load)
	runLoad(t, o, s, eff.Load)
	assert.Equal(t, store.StateBoards, s.State())

	press(t, o, s, Confirm)
	eff = Navigate(s, Refresh)
	require.NotNil(t, eff.Load)
	assert.Equal(t, Request{Kind: LoadColumns, BoardID: "b0"}, *eff.Load)
	runLoad(t, o, s, eff.Load)
	assert.Equal(t, store.StateTasks, s.State())

	press(t, o, s, Help)
	assert.Nil(t, Navigate(s, Refresh).Load)
}

func TestTaskDetail_OpenMoveAndClose(t *testing.T) {
	gw := newFakeGateway()
	o, s := startedStore(t, gw)
	press(t, o, s, Confirm)
	press(t, o, s, Confirm)
	calls := gw.total()

	press(t, o, s, Confirm)
	v, ok := s.View().(store.TaskDetailView)
	require.True(t, ok)
	assert.Equal(t, "t0", v.Task.ID)
	assert.Equal(t, "b0", v.Board.ID)

	press(t, o, s, Down)
	press(t, o, s, Confirm)
	v = s.View().(store.TaskDetailView)
	assert.Equal(t, "t1", v.Task.ID)

	press(t, o, s, Cancel)
	assert.Equal(t, store.StateTasks, s.State())
	assert.Len(t, s.Columns(), 4, "closing the detail does not reload")
	assert.Equal(t, calls, gw.total())
}

func TestTaskDetail_EmptyColumnDoesNotOpen(t *testing.T) {
	gw := newFakeGateway()
	o, s := startedStore(t, gw)
	press(t, o, s, Confirm)
	press(t, o, s, Confirm)
	press(t, o, s, Right)
	press(t, o, s, Right)

	press(t, o, s, Confirm)
	assert.Equal(t, store.StateTasks, s.State())
}

func TestTaskDetail_RefreshReresolvesTask(t *testing.T) {
	gw := newFakeGateway()
	o, s := startedStore(t, gw)
	press(t, o, s, Confirm)
	press(t, o, s, Confirm)
	press(t, o, s, Confirm)

	cols := testColumns()
	cols[0].Tasks[0].Title = "First (edited)"
	gw.columns["b0"] = cols

	press(t, o, s, Refresh)
	v, ok := s.View().(store.TaskDetailView)
	require.True(t, ok)
	assert.Equal(t, "First (edited)", v.Task.Title)

	gw.columns["b0"] = nil
	press(t, o, s, Refresh)
	v = s.View().(store.TaskDetailView)
	assert.Equal(t, "First (edited)", v.Task.Title, "a vanished task keeps its last state")
}

func TestTaskDetail_RefreshKeepsSelectionOnOpenTask(t *testing.T) {
	gw := newFakeGateway()
	o, s := startedStore(t, gw)
	press(t, o, s, Confirm)
	press(t, o, s, Confirm)
	press(t, o, s, Right)
	press(t, o, s, Right)
	press(t, o, s, Right)
	press(t, o, s, Confirm)

	v, ok := s.View().(store.TaskDetailView)
	require.True(t, ok)
	require.Equal(t, "t3", v.Task.ID)

	cols := testColumns()
	cols[0].Tasks = append(cols[0].Tasks, domain.Task{ID: "t9", Title: "New"})
	gw.columns["b0"] = cols

	press(t, o, s, Refresh)
	task, err := s.SelectedTask()
	require.NoError(t, err)
	assert.Equal(t, "t3", task.ID)
	assert.Equal(t, 3, s.Selection().Column)

	press(t, o, s, Confirm)
	v = s.View().(store.TaskDetailView)
	assert.Equal(t, "t3", v.Task.ID, "confirm reopens the same task")
}

func TestConfirmCancelPairs_ReturnToProjects(t *testing.T) {
	for depth := 1; depth <= 3; depth++ {
		gw := newFakeGateway()
		o, s := startedStore(t, gw)

		for i := 0; i < depth; i++ {
			press(t, o, s, Confirm)
		}
		for i := 0; i < depth; i++ {
			press(t, o, s, Cancel)
		}

		assert.Equal(t, store.StateProjects, s.State(), "depth %d", depth)
		assert.Empty(t, s.Boards(), "depth %d", depth)
		assert.Empty(t, s.Columns(), "depth %d", depth)
		assert.False(t, s.ShouldQuit())
	}
}

func TestCancelFromProjects_Quits(t *testing.T) {
	gw := newFakeGateway()
	o, s := startedStore(t, gw)

	eff := press(t, o, s, Cancel)
	assert.True(t, eff.Quit)
	assert.True(t, s.ShouldQuit())
}

func TestQuit_FromAnyState(t *testing.T) {
	gw := newFakeGateway()
	o, s := startedStore(t, gw)
	press(t, o, s, Confirm)
	press(t, o, s, Confirm)

	eff := press(t, o, s, Quit)
	assert.True(t, eff.Quit)
	assert.True(t, s.ShouldQuit())
}

// Cancel from Help always lands on Projects, not on the view Help was opened
// from. This records current behavior; changing it should be deliberate.
func TestHelpCancel_ReturnsToProjects(t *testing.T) {
	gw := newFakeGateway()
	o, s := startedStore(t, gw)
	press(t, o, s, Confirm)
	press(t, o, s, Confirm)
	require.Equal(t, store.StateTasks, s.State())

	press(t, o, s, Help)
	assert.Equal(t, store.StateHelp, s.State())
	press(t, o, s, Help)
	assert.Equal(t, store.StateHelp, s.State())

	press(t, o, s, Cancel)
	assert.Equal(t, store.StateProjects, s.State())
	assert.Empty(t, s.Boards())
	assert.Empty(t, s.Columns())
}

func TestLoadFailure_KeepsViewAndCollections(t *testing.T) {
	gw := newFakeGateway()
	o, s := startedStore(t, gw)
	press(t, o, s, Confirm)
	press(t, o, s, Confirm)
	require.Len(t, s.Columns(), 4)

	gw.columnsErr = errors.New("503 service unavailable")
	press(t, o, s, Refresh)

	assert.Equal(t, "503 service unavailable", s.Err())
	assert.Equal(t, store.StateTasks, s.State())
	assert.Len(t, s.Columns(), 4)
}

func TestErrorCancel_OnlyDismisses(t *testing.T) {
	gw := newFakeGateway()
	o, s := startedStore(t, gw)
	press(t, o, s, Confirm)

	gw.boardsErr = errors.New("boom")
	press(t, o, s, Refresh)
	require.Equal(t, "boom", s.Err())

	press(t, o, s, Cancel)
	assert.Empty(t, s.Err())
	assert.Equal(t, store.StateBoards, s.State(), "first cancel only dismisses")

	press(t, o, s, Cancel)
	assert.Equal(t, store.StateProjects, s.State())
}

func TestNewLoadClearsError(t *testing.T) {
	gw := newFakeGateway()
	gw.projectsErr = errors.New("offline")
	o, s := startedStore(t, gw)
	require.Equal(t, "offline", s.Err())

	gw.projectsErr = nil
	_, ok := o.Begin(s, Request{Kind: LoadProjects})
	require.True(t, ok)
	assert.Empty(t, s.Err())
}

func TestComplete_IgnoresStaleResult(t *testing.T) {
	gw := newFakeGateway()
	o := newTestOrchestrator(gw)
	s := store.New()

	_, more := o.Complete(s, Result{Request: Request{Kind: LoadProjects, Seq: 42}})
	assert.False(t, more)
	assert.Empty(t, s.Projects())
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "confirm", Confirm.String())
	assert.Equal(t, "stickers", LoadStickers.String())
}

// slowGateway blocks project loads until the context ends.
type slowGateway struct {
	*fakeGateway
}

func (g slowGateway) FetchProjects(ctx context.Context) ([]domain.Project, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestFetch_TimeoutIsALoadFailure(t *testing.T) {
	o := NewOrchestrator(slowGateway{newFakeGateway()}, log.New(io.Discard), 10*time.Millisecond)
	s := store.New()

	begun, ok := o.Begin(s, Request{Kind: LoadProjects})
	require.True(t, ok)
	res := o.Fetch(context.Background(), begun)
	require.ErrorIs(t, res.Err, context.DeadlineExceeded)

	o.Complete(s, res)
	assert.False(t, s.Loading())
	assert.Contains(t, s.Err(), "deadline exceeded")
	assert.Equal(t, store.StateProjects, s.State())
}
