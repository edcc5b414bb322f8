package client

import (
	"context"
	"net/http"

	"github.com/openharness/harness-go/transport"
)

// ListHooks lists lifecycle hooks.
func (c *Client) ListHooks(ctx context.Context) ([]Hook, error) {
	return requestInto[[]Hook](ctx, c, http.MethodGet, "/hooks", nil)
}

// GetHook fetches one hook.
func (c *Client) GetHook(ctx context.Context, hookID string) (*Hook, error) {
	h, err := requestInto[Hook](ctx, c, http.MethodGet, "/hooks/"+hookID, nil)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// CreateHook creates a hook.
func (c *Client) CreateHook(ctx context.Context, req *CreateHookRequest) (*Hook, error) {
	h, err := requestInto[Hook](ctx, c, http.MethodPost, "/hooks", &transport.RequestOptions{JSON: req})
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// DeleteHook deletes a hook.
func (c *Client) DeleteHook(ctx context.Context, hookID string) error {
	_, err := c.transport.Request(ctx, http.MethodDelete, "/hooks/"+hookID, nil)
	return err
}

// EnableHook turns a hook on.
func (c *Client) EnableHook(ctx context.Context, hookID string) (*Hook, error) {
	h, err := requestInto[Hook](ctx, c, http.MethodPost, "/hooks/"+hookID+"/enable", nil)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// DisableHook turns a hook off.
func (c *Client) DisableHook(ctx context.Context, hookID string) (*Hook, error) {
	h, err := requestInto[Hook](ctx, c, http.MethodPost, "/hooks/"+hookID+"/disable", nil)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// ListTodos pages through planning items.
func (c *Client) ListTodos(ctx context.Context, page PaginationParams) (*PaginatedResponse[Todo], error) {
	return listPage[Todo](ctx, c, "/todos", page)
}

// GetTodo fetches one planning item.
func (c *Client) GetTodo(ctx context.Context, todoID string) (*Todo, error) {
	td, err := requestInto[Todo](ctx, c, http.MethodGet, "/todos/"+todoID, nil)
	if err != nil {
		return nil, err
	}
	return &td, nil
}

// CreateTodo creates a planning item.
func (c *Client) CreateTodo(ctx context.Context, req *CreateTodoRequest) (*Todo, error) {
	td, err := requestInto[Todo](ctx, c, http.MethodPost, "/todos", &transport.RequestOptions{JSON: req})
	if err != nil {
		return nil, err
	}
	return &td, nil
}

// UpdateTodo patches a planning item.
func (c *Client) UpdateTodo(ctx context.Context, todoID string, req *UpdateTodoRequest) (*Todo, error) {
	td, err := requestInto[Todo](ctx, c, http.MethodPatch, "/todos/"+todoID, &transport.RequestOptions{JSON: req})
	if err != nil {
		return nil, err
	}
	return &td, nil
}

// DeleteTodo deletes a planning item.
func (c *Client) DeleteTodo(ctx context.Context, todoID string) error {
	_, err := c.transport.Request(ctx, http.MethodDelete, "/todos/"+todoID, nil)
	return err
}

// ListModels lists the models the service can run.
func (c *Client) ListModels(ctx context.Context) ([]ModelInfo, error) {
	return requestInto[[]ModelInfo](ctx, c, http.MethodGet, "/models", nil)
}

// GetModel fetches one model description.
func (c *Client) GetModel(ctx context.Context, modelID string) (*ModelInfo, error) {
	m, err := requestInto[ModelInfo](ctx, c, http.MethodGet, "/models/"+modelID, nil)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SetModel makes a model the active default.
func (c *Client) SetModel(ctx context.Context, modelID string) error {
	_, err := c.transport.Request(ctx, http.MethodPost, "/models/active", &transport.RequestOptions{
		JSON: map[string]any{"model_id": modelID},
	})
	return err
}
