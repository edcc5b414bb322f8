package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/openharness/harness-go/transport"
)

// ListFiles lists the workspace entries under path ("/" for the root).
func (c *Client) ListFiles(ctx context.Context, path string) ([]FileInfo, error) {
	if path == "" {
		path = "/"
	}
	return requestInto[[]FileInfo](ctx, c, http.MethodGet, "/files", &transport.RequestOptions{
		Params: url.Values{"path": {path}},
	})
}

// ReadFile reads a file's text content. Offset and limit select a line
// range; zero values read the whole file.
func (c *Client) ReadFile(ctx context.Context, path string, offset, limit int) (string, error) {
	params := url.Values{"path": {path}}
	if offset > 0 {
		params.Set("offset", strconv.Itoa(offset))
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	resp, err := requestInto[struct {
		Content string `json:"content"`
	}](ctx, c, http.MethodGet, "/files/read", &transport.RequestOptions{Params: params})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// WriteFile writes text content to a workspace file.
func (c *Client) WriteFile(ctx context.Context, path, content string, createDirectories bool) (*FileInfo, error) {
	info, err := requestInto[FileInfo](ctx, c, http.MethodPost, "/files/write", &transport.RequestOptions{
		JSON: map[string]any{
			"path":               path,
			"content":            content,
			"create_directories": createDirectories,
		},
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// DeleteFile deletes a workspace file.
func (c *Client) DeleteFile(ctx context.Context, path string) error {
	_, err := c.transport.Request(ctx, http.MethodDelete, "/files", &transport.RequestOptions{
		Params: url.Values{"path": {path}},
	})
	return err
}

// SearchFiles matches workspace files against a glob pattern.
func (c *Client) SearchFiles(ctx context.Context, pattern, path string, maxResults int) ([]FileInfo, error) {
	if maxResults <= 0 {
		maxResults = 100
	}
	params := url.Values{
		"pattern":     {pattern},
		"max_results": {strconv.Itoa(maxResults)},
	}
	if path != "" {
		params.Set("path", path)
	}
	return requestInto[[]FileInfo](ctx, c, http.MethodGet, "/files/search", &transport.RequestOptions{Params: params})
}

// DownloadFile fetches a workspace file's raw bytes.
func (c *Client) DownloadFile(ctx context.Context, path string) ([]byte, error) {
	return c.transport.Download(ctx, "/files/download", url.Values{"path": {path}})
}

// UploadFile uploads raw bytes into the workspace at path.
func (c *Client) UploadFile(ctx context.Context, path string, content []byte, filename string) (*FileInfo, error) {
	raw, err := c.transport.Upload(ctx, "/files/upload", filename, content, &transport.UploadOptions{
		Params: url.Values{"path": {path}},
	})
	if err != nil {
		return nil, err
	}
	var info FileInfo
	if err := unmarshalResponse(raw, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// ListSubagents pages through delegated subagent tasks.
func (c *Client) ListSubagents(ctx context.Context, page PaginationParams) (*PaginatedResponse[Subagent], error) {
	return listPage[Subagent](ctx, c, "/subagents", page)
}

// SpawnSubagent delegates a prompt to a new subagent.
func (c *Client) SpawnSubagent(ctx context.Context, req *SpawnSubagentRequest) (*Subagent, error) {
	s, err := requestInto[Subagent](ctx, c, http.MethodPost, "/subagents", &transport.RequestOptions{JSON: req})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetSubagent fetches one subagent's state.
func (c *Client) GetSubagent(ctx context.Context, subagentID string) (*Subagent, error) {
	s, err := requestInto[Subagent](ctx, c, http.MethodGet, "/subagents/"+subagentID, nil)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// TerminateSubagent stops a running subagent.
func (c *Client) TerminateSubagent(ctx context.Context, subagentID string) error {
	_, err := c.transport.Request(ctx, http.MethodPost, "/subagents/"+subagentID+"/terminate", nil)
	return err
}

// GetSubagentResult fetches a finished subagent's result payload.
func (c *Client) GetSubagentResult(ctx context.Context, subagentID string) (any, error) {
	return requestInto[any](ctx, c, http.MethodGet, "/subagents/"+subagentID+"/result", nil)
}
