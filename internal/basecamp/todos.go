package basecamp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// ListTodoLists lists the to-do lists of a project. The project's to-do set
// is resolved through the dock.
func (c *Client) ListTodoLists(ctx context.Context, projectID int64) ([]TodoList, error) {
	todoset, err := c.dockItem(ctx, projectID, DockTodoSet)
	if err != nil {
		return nil, fmt.Errorf("failed to list todo lists: %w", err)
	}

	var lists []TodoList
	url := c.apiURL(fmt.Sprintf("/buckets/%d/todosets/%d/todolists.json", projectID, todoset.ID))
	err = c.getPages(ctx, url, func(data []byte) error {
		var page []TodoList
		if err := json.Unmarshal(data, &page); err != nil {
			return err
		}
		lists = append(lists, page...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list todo lists: %w", err)
	}
	return lists, nil
}

// GetTodoList retrieves a single to-do list.
func (c *Client) GetTodoList(ctx context.Context, projectID, todoListID int64) (*TodoList, error) {
	var list TodoList
	url := c.apiURL(fmt.Sprintf("/buckets/%d/todolists/%d.json", projectID, todoListID))
	if err := c.do(ctx, http.MethodGet, url, nil, &list); err != nil {
		return nil, fmt.Errorf("failed to get todo list: %w", err)
	}
	return &list, nil
}

// ListTodos lists the to-dos of a list. Completed to-dos are only included
// when completed is true (the API returns remaining to-dos by default).
func (c *Client) ListTodos(ctx context.Context, projectID, todoListID int64, completed bool) ([]Todo, error) {
	url := c.apiURL(fmt.Sprintf("/buckets/%d/todolists/%d/todos.json", projectID, todoListID))
	if completed {
		url += "?completed=true"
	}

	var todos []Todo
	err := c.getPages(ctx, url, func(data []byte) error {
		var page []Todo
		if err := json.Unmarshal(data, &page); err != nil {
			return err
		}
		todos = append(todos, page...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

// GetTodo retrieves a single to-do.
func (c *Client) GetTodo(ctx context.Context, projectID, todoID int64) (*Todo, error) {
	var todo Todo
	url := c.apiURL(fmt.Sprintf("/buckets/%d/todos/%d.json", projectID, todoID))
	if err := c.do(ctx, http.MethodGet, url, nil, &todo); err != nil {
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}
	return &todo, nil
}

// CreateTodo creates a to-do on a list.
func (c *Client) CreateTodo(ctx context.Context, projectID, todoListID int64, input TodoInput) (*Todo, error) {
	if input.Content == "" {
		return nil, fmt.Errorf("todo content cannot be empty")
	}

	var todo Todo
	url := c.apiURL(fmt.Sprintf("/buckets/%d/todolists/%d/todos.json", projectID, todoListID))
	if err := c.do(ctx, http.MethodPost, url, input, &todo); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}
	return &todo, nil
}

// CompleteTodo marks a to-do as completed.
func (c *Client) CompleteTodo(ctx context.Context, projectID, todoID int64) error {
	url := c.apiURL(fmt.Sprintf("/buckets/%d/todos/%d/completion.json", projectID, todoID))
	if err := c.do(ctx, http.MethodPost, url, nil, nil); err != nil {
		return fmt.Errorf("failed to complete todo: %w", err)
	}
	return nil
}

// UncompleteTodo reverts a completed to-do to pending.
func (c *Client) UncompleteTodo(ctx context.Context, projectID, todoID int64) error {
	url := c.apiURL(fmt.Sprintf("/buckets/%d/todos/%d/completion.json", projectID, todoID))
	if err := c.do(ctx, http.MethodDelete, url, nil, nil); err != nil {
		return fmt.Errorf("failed to uncomplete todo: %w", err)
	}
	return nil
}
