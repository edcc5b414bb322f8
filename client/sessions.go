package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/openharness/harness-go/transport"
)

// ListSessions pages through conversation sessions.
func (c *Client) ListSessions(ctx context.Context, page PaginationParams) (*PaginatedResponse[Session], error) {
	return listPage[Session](ctx, c, "/sessions", page)
}

// GetSession fetches one session.
func (c *Client) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	s, err := requestInto[Session](ctx, c, http.MethodGet, "/sessions/"+sessionID, nil)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateSession creates a session.
func (c *Client) CreateSession(ctx context.Context, req *CreateSessionRequest) (*Session, error) {
	s, err := requestInto[Session](ctx, c, http.MethodPost, "/sessions", &transport.RequestOptions{JSON: req})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteSession deletes a session, optionally with its message history.
func (c *Client) DeleteSession(ctx context.Context, sessionID string, deleteHistory bool) error {
	params := url.Values{}
	if deleteHistory {
		params.Set("delete_history", "true")
	}
	_, err := c.transport.Request(ctx, http.MethodDelete, "/sessions/"+sessionID, &transport.RequestOptions{Params: params})
	return err
}

// GetSessionHistory pages through a session's messages.
func (c *Client) GetSessionHistory(ctx context.Context, sessionID string, page PaginationParams) (*PaginatedResponse[Message], error) {
	return listPage[Message](ctx, c, "/sessions/"+sessionID+"/messages", page)
}

// ForkSession branches a session into a new one sharing history up to the
// fork point.
func (c *Client) ForkSession(ctx context.Context, sessionID, name string) (*Session, error) {
	opts := &transport.RequestOptions{}
	if name != "" {
		opts.JSON = map[string]any{"name": name}
	}
	s, err := requestInto[Session](ctx, c, http.MethodPost, "/sessions/"+sessionID+"/fork", opts)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListMemoryBlocks lists memory blocks, optionally scoped to one agent.
func (c *Client) ListMemoryBlocks(ctx context.Context, agentID string) ([]MemoryBlock, error) {
	opts := &transport.RequestOptions{}
	if agentID != "" {
		opts.Params = url.Values{"agent_id": {agentID}}
	}
	return requestInto[[]MemoryBlock](ctx, c, http.MethodGet, "/memory/blocks", opts)
}

// GetMemoryBlock fetches one memory block.
func (c *Client) GetMemoryBlock(ctx context.Context, blockID string) (*MemoryBlock, error) {
	b, err := requestInto[MemoryBlock](ctx, c, http.MethodGet, "/memory/blocks/"+blockID, nil)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// CreateMemoryBlock creates a memory block.
func (c *Client) CreateMemoryBlock(ctx context.Context, req *CreateMemoryBlockRequest) (*MemoryBlock, error) {
	b, err := requestInto[MemoryBlock](ctx, c, http.MethodPost, "/memory/blocks", &transport.RequestOptions{JSON: req})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// UpdateMemoryBlock patches a memory block.
func (c *Client) UpdateMemoryBlock(ctx context.Context, blockID string, req *UpdateMemoryBlockRequest) (*MemoryBlock, error) {
	b, err := requestInto[MemoryBlock](ctx, c, http.MethodPatch, "/memory/blocks/"+blockID, &transport.RequestOptions{JSON: req})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// DeleteMemoryBlock deletes a memory block.
func (c *Client) DeleteMemoryBlock(ctx context.Context, blockID string) error {
	_, err := c.transport.Request(ctx, http.MethodDelete, "/memory/blocks/"+blockID, nil)
	return err
}

// SearchArchive searches archival memory semantically.
func (c *Client) SearchArchive(ctx context.Context, query string, limit int) ([]ArchiveEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return requestInto[[]ArchiveEntry](ctx, c, http.MethodPost, "/memory/archive/search", &transport.RequestOptions{
		JSON: map[string]any{"query": query, "limit": limit},
	})
}

// AddToArchive appends an entry to archival memory.
func (c *Client) AddToArchive(ctx context.Context, content string, metadata map[string]any) (*ArchiveEntry, error) {
	if metadata == nil {
		metadata = map[string]any{}
	}
	e, err := requestInto[ArchiveEntry](ctx, c, http.MethodPost, "/memory/archive", &transport.RequestOptions{
		JSON: map[string]any{"content": content, "metadata": metadata},
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ExportMemory downloads an agent's memory as a ZIP snapshot (blocks plus,
// unless excluded, the archive).
func (c *Client) ExportMemory(ctx context.Context, agentID string, includeArchive bool) ([]byte, error) {
	params := url.Values{}
	if !includeArchive {
		params.Set("include_archive", "false")
	}
	return c.transport.Download(ctx, "/agents/"+agentID+"/memory/export", params)
}

// ImportMemory uploads a memory snapshot into an agent. mergeStrategy is
// "overwrite", "skip" or "merge"; empty means overwrite.
func (c *Client) ImportMemory(ctx context.Context, agentID string, snapshot []byte, filename, mergeStrategy string) (*ImportMemoryResult, error) {
	if filename == "" {
		filename = "memory.zip"
	}
	upload := &transport.UploadOptions{
		ContentType: "application/zip",
		Params:      url.Values{},
	}
	if mergeStrategy != "" {
		upload.Params.Set("merge_strategy", mergeStrategy)
	}
	raw, err := c.transport.Upload(ctx, "/agents/"+agentID+"/memory/import", filename, snapshot, upload)
	if err != nil {
		return nil, err
	}
	var result ImportMemoryResult
	if err := unmarshalResponse(raw, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
