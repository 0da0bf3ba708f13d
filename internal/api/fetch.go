package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/h0rv/taskdeck/internal/domain"
)

// Wire payloads. Only the fields the dashboard shows are decoded.

type projectDTO struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Timestamp int64             `json:"timestamp"`
	Deleted   bool              `json:"deleted"`
	Users     map[string]string `json:"users"`
}

type boardDTO struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	ProjectID string `json:"projectId"`
	Deleted   bool   `json:"deleted"`
}

type columnDTO struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Color   int    `json:"color"`
	BoardID string `json:"boardId"`
	Deleted bool   `json:"deleted"`
}

type taskDTO struct {
	ID          string                         `json:"id"`
	Title       string                         `json:"title"`
	ColumnID    string                         `json:"columnId"`
	Description string                         `json:"description"`
	Completed   bool                           `json:"completed"`
	Archived    bool                           `json:"archived"`
	Assigned    []string                       `json:"assigned"`
	Color       string                         `json:"color"`
	Stickers    map[string]domain.StickerValue `json:"stickers"`
	CreatedBy   string                         `json:"createdBy"`
	Timestamp   int64                          `json:"timestamp"`
	Deleted     bool                           `json:"deleted"`
}

type userDTO struct {
	ID       string `json:"id"`
	RealName string `json:"realName"`
	Email    string `json:"email"`
}

type stickerStateDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Deleted bool   `json:"deleted"`
}

type stickerDTO struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Deleted bool              `json:"deleted"`
	States  []stickerStateDTO `json:"states"`
}

// FetchProjects returns all live projects.
func (c *Client) FetchProjects(ctx context.Context) ([]domain.Project, error) {
	dtos, err := listAll[projectDTO](ctx, c, "/projects", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %w", err)
	}

	projects := make([]domain.Project, 0, len(dtos))
	for _, d := range dtos {
		if d.Deleted {
			continue
		}
		projects = append(projects, domain.Project{
			ID:        d.ID,
			Title:     d.Title,
			Timestamp: d.Timestamp,
			Users:     d.Users,
		})
	}
	return projects, nil
}

// FetchBoards returns the live boards of a project.
func (c *Client) FetchBoards(ctx context.Context, projectID string) ([]domain.Board, error) {
	q := url.Values{"projectId": {projectID}}
	dtos, err := listAll[boardDTO](ctx, c, "/boards", q)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch boards: %w", err)
	}

	boards := make([]domain.Board, 0, len(dtos))
	for _, d := range dtos {
		if d.Deleted {
			continue
		}
		boards = append(boards, domain.Board{ID: d.ID, Title: d.Title, ProjectID: d.ProjectID})
	}
	return boards, nil
}

// FetchColumnsWithTasks returns the live columns of a board, each with its
// live tasks, in API order.
func (c *Client) FetchColumnsWithTasks(ctx context.Context, boardID string) ([]domain.ColumnWithTasks, error) {
	q := url.Values{"boardId": {boardID}}
	cols, err := listAll[columnDTO](ctx, c, "/columns", q)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch columns: %w", err)
	}

	result := make([]domain.ColumnWithTasks, 0, len(cols))
	for _, col := range cols {
		if col.Deleted {
			continue
		}
		tasks, err := c.fetchTasks(ctx, col.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch tasks of column %q: %w", col.Title, err)
		}
		result = append(result, domain.ColumnWithTasks{
			Column: domain.Column{ID: col.ID, Title: col.Title, Color: col.Color, BoardID: col.BoardID},
			Tasks:  tasks,
		})
	}
	return result, nil
}

func (c *Client) fetchTasks(ctx context.Context, columnID string) ([]domain.Task, error) {
	q := url.Values{"columnId": {columnID}}
	dtos, err := listAll[taskDTO](ctx, c, "/task-list", q)
	if err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(dtos))
	for _, d := range dtos {
		if d.Deleted {
			continue
		}
		tasks = append(tasks, domain.Task{
			ID:          d.ID,
			Title:       d.Title,
			ColumnID:    d.ColumnID,
			Description: d.Description,
			Completed:   d.Completed,
			Archived:    d.Archived,
			Assigned:    d.Assigned,
			Color:       d.Color,
			Stickers:    d.Stickers,
			CreatedBy:   d.CreatedBy,
			Timestamp:   d.Timestamp,
		})
	}
	return tasks, nil
}

// FetchUsers returns the company users.
func (c *Client) FetchUsers(ctx context.Context) ([]domain.User, error) {
	dtos, err := listAll[userDTO](ctx, c, "/users", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}

	users := make([]domain.User, 0, len(dtos))
	for _, d := range dtos {
		name := d.RealName
		if name == "" {
			name = d.Email
		}
		users = append(users, domain.User{ID: d.ID, Name: name, Email: d.Email})
	}
	return users, nil
}

// FetchStickers returns string and sprint sticker definitions merged into one
// list. An empty boardID returns the stickers of every board.
func (c *Client) FetchStickers(ctx context.Context, boardID string) ([]domain.Sticker, error) {
	var q url.Values
	if boardID != "" {
		q = url.Values{"boardId": {boardID}}
	}

	var stickers []domain.Sticker
	for _, path := range []string{"/string-stickers", "/sprint-stickers"} {
		dtos, err := listAll[stickerDTO](ctx, c, path, cloneValues(q))
		if err != nil {
			return nil, fmt.Errorf("failed to fetch stickers: %w", err)
		}
		for _, d := range dtos {
			if d.Deleted {
				continue
			}
			stickers = append(stickers, toSticker(d))
		}
	}
	return stickers, nil
}

func toSticker(d stickerDTO) domain.Sticker {
	s := domain.Sticker{ID: d.ID, Title: d.Name}
	for _, st := range d.States {
		if st.Deleted {
			continue
		}
		s.States = append(s.States, domain.StickerState{ID: st.ID, Label: st.Name})
	}
	return s
}

func cloneValues(v url.Values) url.Values {
	if v == nil {
		return nil
	}
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
