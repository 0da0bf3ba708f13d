package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/h0rv/taskdeck/internal/domain"
	"github.com/h0rv/taskdeck/internal/store"
)

// Gateway fetches the dashboard collections. Errors are shown to the user
// through their Error() text only.
type Gateway interface {
	FetchProjects(ctx context.Context) ([]domain.Project, error)
	FetchBoards(ctx context.Context, projectID string) ([]domain.Board, error)
	FetchColumnsWithTasks(ctx context.Context, boardID string) ([]domain.ColumnWithTasks, error)
	FetchUsers(ctx context.Context) ([]domain.User, error)
	// FetchStickers returns the sticker definitions of boardID, or of every
	// board when boardID is empty.
	FetchStickers(ctx context.Context, boardID string) ([]domain.Sticker, error)
}

// LoadKind identifies the collection a load replaces.
type LoadKind int

const (
	LoadProjects LoadKind = iota
	LoadBoards
	LoadColumns
	LoadUsers
	LoadStickers
)

func (k LoadKind) String() string {
	switch k {
	case LoadProjects:
		return "projects"
	case LoadBoards:
		return "boards"
	case LoadColumns:
		return "columns"
	case LoadUsers:
		return "users"
	case LoadStickers:
		return "stickers"
	default:
		return "unknown"
	}
}

// auxiliary loads feed lookup indices; their failures are logged, not shown.
func (k LoadKind) auxiliary() bool {
	return k == LoadUsers || k == LoadStickers
}

// Request describes one gateway call.
type Request struct {
	Kind      LoadKind
	ProjectID string
	BoardID   string
	Startup   bool   // Part of the projects, users, stickers startup chain
	Seq       uint64 // Assigned by Begin
}

// Result is the outcome of a Request. Exactly one collection field is set
// when Err is nil.
type Result struct {
	Request  Request
	Projects []domain.Project
	Boards   []domain.Board
	Columns  []domain.ColumnWithTasks
	Users    []domain.User
	Stickers []domain.Sticker
	Err      error
}

// Orchestrator runs loads in two phases: Begin and Complete touch the store on
// the event loop, Fetch performs the gateway call and may run elsewhere. At
// most one load is outstanding at any time.
type Orchestrator struct {
	gateway Gateway
	logger  *log.Logger
	timeout time.Duration

	seq     uint64
	pending *Request
}

// NewOrchestrator creates an orchestrator. A timeout <= 0 disables the
// per-call deadline.
func NewOrchestrator(gw Gateway, logger *log.Logger, timeout time.Duration) *Orchestrator {
	return &Orchestrator{
		gateway: gw,
		logger:  logger,
		timeout: timeout,
	}
}

// Startup returns the first load of the startup chain.
func (o *Orchestrator) Startup() Request {
	return Request{Kind: LoadProjects, Startup: true}
}

// Pending reports whether a load has begun and not completed yet.
func (o *Orchestrator) Pending() bool {
	return o.pending != nil
}

// Begin marks req as in flight. It returns the numbered request to pass to
// Fetch, or false when another load is still outstanding.
func (o *Orchestrator) Begin(s *store.Store, req Request) (Request, bool) {
	if o.pending != nil || s.Loading() {
		o.logger.Debug("load dropped, another load is in flight", "kind", req.Kind)
		return Request{}, false
	}

	o.seq++
	req.Seq = o.seq
	o.pending = &req

	if req.Kind.auxiliary() {
		s.SetLoading(true)
	} else {
		s.BeginLoad()
	}
	o.logger.Debug("load started", "kind", req.Kind, "seq", req.Seq)
	return req, true
}

// Fetch performs the gateway call for req. It does not touch the store.
func (o *Orchestrator) Fetch(ctx context.Context, req Request) Result {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	res := Result{Request: req}
	switch req.Kind {
	case LoadProjects:
		res.Projects, res.Err = o.gateway.FetchProjects(ctx)
	case LoadBoards:
		res.Boards, res.Err = o.gateway.FetchBoards(ctx, req.ProjectID)
	case LoadColumns:
		res.Columns, res.Err = o.gateway.FetchColumnsWithTasks(ctx, req.BoardID)
	case LoadUsers:
		res.Users, res.Err = o.gateway.FetchUsers(ctx)
	case LoadStickers:
		res.Stickers, res.Err = o.gateway.FetchStickers(ctx, req.BoardID)
	default:
		res.Err = fmt.Errorf("unknown load kind %d", req.Kind)
	}
	return res
}

// Complete applies res to the store and clears the loading flag. A failed
// primary load surfaces its error and leaves the loaded collections alone;
// a failed auxiliary load is only logged. When res belongs to the startup
// chain, Complete returns the next request of the chain.
func (o *Orchestrator) Complete(s *store.Store, res Result) (Request, bool) {
	req := res.Request
	if o.pending == nil || o.pending.Seq != req.Seq {
		o.logger.Warn("stale load result ignored", "kind", req.Kind, "seq", req.Seq)
		return Request{}, false
	}
	o.pending = nil

	if res.Err != nil {
		if req.Kind.auxiliary() {
			o.logger.Warn("failed to load lookup index", "kind", req.Kind, "err", res.Err)
			s.SetLoading(false)
		} else {
			o.logger.Error("load failed", "kind", req.Kind, "err", res.Err)
			s.FinishLoad(res.Err.Error())
		}
		return next(req)
	}

	switch req.Kind {
	case LoadProjects:
		s.SetProjects(res.Projects)
		o.logger.Debug("projects loaded", "count", len(res.Projects))
	case LoadBoards:
		s.SetBoards(res.Boards)
		o.logger.Debug("boards loaded", "count", len(res.Boards))
	case LoadColumns:
		s.SetColumns(res.Columns)
		refreshDetail(s)
		o.logger.Debug("columns loaded", "count", len(res.Columns))
	case LoadUsers:
		s.SetUsers(store.NewUserIndex(res.Users))
		o.logger.Debug("users loaded", "count", len(res.Users))
	case LoadStickers:
		s.SetStickers(store.NewStickerIndex(res.Stickers))
		o.logger.Debug("stickers loaded", "count", len(res.Stickers))
	}

	if req.Kind.auxiliary() {
		s.SetLoading(false)
	} else {
		s.FinishLoad("")
	}
	return next(req)
}

// refreshDetail swaps the task shown in the detail view for its reloaded copy
// and puts the board selection back on it. A task that disappeared keeps
// showing its last known state.
func refreshDetail(s *store.Store) {
	v, ok := s.View().(store.TaskDetailView)
	if !ok {
		return
	}
	if fresh, found := s.FindTask(v.Task.ID); found {
		v.Task = fresh
		s.SetView(v)
		s.SelectTask(fresh.ID)
	}
}

func next(req Request) (Request, bool) {
	if !req.Startup {
		return Request{}, false
	}
	switch req.Kind {
	case LoadProjects:
		return Request{Kind: LoadUsers, Startup: true}, true
	case LoadUsers:
		return Request{Kind: LoadStickers, Startup: true}, true
	}
	return Request{}, false
}
