package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/todolist/todo-client/internal/domain"
)

// ListTasks returns every task of the current user.
func (c *Client) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	var out []*domain.Task
	if err := c.do(ctx, request{method: http.MethodGet, path: "/tasks", out: &out}); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTask returns one task by id.
func (c *Client) GetTask(ctx context.Context, id int) (*domain.Task, error) {
	var out domain.Task
	if err := c.do(ctx, request{method: http.MethodGet, path: taskPath(id), out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchTasks returns the tasks the server considers a match for query.
func (c *Client) SearchTasks(ctx context.Context, query string) ([]*domain.Task, error) {
	var out []*domain.Task
	path := "/tasks/search/?query=" + url.QueryEscape(query)
	if err := c.do(ctx, request{method: http.MethodGet, path: path, out: &out}); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTask creates a task.
func (c *Client) CreateTask(ctx context.Context, in domain.TaskInput) (*domain.Task, error) {
	body, err := jsonBody(in)
	if err != nil {
		return nil, err
	}
	var out domain.Task
	if err := c.do(ctx, request{method: http.MethodPost, path: "/tasks", body: body, out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTask replaces the client-owned fields of task id.
// TaskInput has no id, owner_id or created_at, so those are never sent.
func (c *Client) UpdateTask(ctx context.Context, id int, in domain.TaskInput) (*domain.Task, error) {
	body, err := jsonBody(in)
	if err != nil {
		return nil, err
	}
	var out domain.Task
	if err := c.do(ctx, request{method: http.MethodPut, path: taskPath(id), body: body, out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTask removes task id.
func (c *Client) DeleteTask(ctx context.Context, id int) error {
	return c.do(ctx, request{method: http.MethodDelete, path: taskPath(id)})
}

func taskPath(id int) string {
	return fmt.Sprintf("/tasks/%d", id)
}
