package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/openharness/harness-go/harness"
	"github.com/openharness/harness-go/transport"
)

// ListHarnesses pages through the harnesses the service knows about.
func (c *Client) ListHarnesses(ctx context.Context, page PaginationParams) (*PaginatedResponse[Harness], error) {
	return listPage[Harness](ctx, c, "/harnesses", page)
}

// GetHarness fetches one harness description.
func (c *Client) GetHarness(ctx context.Context, harnessID string) (*Harness, error) {
	h, err := requestInto[Harness](ctx, c, http.MethodGet, "/harnesses/"+harnessID, nil)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// GetCapabilities fetches a harness's capability manifest.
func (c *Client) GetCapabilities(ctx context.Context, harnessID string) (*harness.Manifest, error) {
	m, err := requestInto[harness.Manifest](ctx, c, http.MethodGet, "/harnesses/"+harnessID+"/capabilities", nil)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListAgents pages through configured agents.
func (c *Client) ListAgents(ctx context.Context, page PaginationParams) (*PaginatedResponse[Agent], error) {
	return listPage[Agent](ctx, c, "/agents", page)
}

// GetAgent fetches one agent.
func (c *Client) GetAgent(ctx context.Context, agentID string) (*Agent, error) {
	a, err := requestInto[Agent](ctx, c, http.MethodGet, "/agents/"+agentID, nil)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateAgent creates an agent.
func (c *Client) CreateAgent(ctx context.Context, req *CreateAgentRequest) (*Agent, error) {
	a, err := requestInto[Agent](ctx, c, http.MethodPost, "/agents", &transport.RequestOptions{JSON: req})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateAgent patches an agent.
func (c *Client) UpdateAgent(ctx context.Context, agentID string, req *UpdateAgentRequest) (*Agent, error) {
	a, err := requestInto[Agent](ctx, c, http.MethodPatch, "/agents/"+agentID, &transport.RequestOptions{JSON: req})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// DeleteAgent deletes an agent.
func (c *Client) DeleteAgent(ctx context.Context, agentID string) error {
	_, err := c.transport.Request(ctx, http.MethodDelete, "/agents/"+agentID, nil)
	return err
}

// CloneAgent duplicates an agent, optionally under a new name.
func (c *Client) CloneAgent(ctx context.Context, agentID, name string) (*Agent, error) {
	opts := &transport.RequestOptions{}
	if name != "" {
		opts.JSON = map[string]any{"name": name}
	}
	a, err := requestInto[Agent](ctx, c, http.MethodPost, "/agents/"+agentID+"/clone", opts)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ExportAgent downloads an agent as a portable package (a ZIP with the
// agent manifest, skills and MCP configs).
func (c *Client) ExportAgent(ctx context.Context, agentID string, opts *ExportAgentOptions) ([]byte, error) {
	params := url.Values{}
	if opts != nil {
		if opts.IncludeMemory {
			params.Set("include_memory", "true")
		}
		if opts.IncludeVersions {
			params.Set("include_versions", "true")
		}
		if opts.ContentsMode != "" {
			params.Set("contents_mode", opts.ContentsMode)
		}
	}
	return c.transport.Download(ctx, "/agents/"+agentID+"/export", params)
}

// ImportAgent uploads a previously exported agent package.
func (c *Client) ImportAgent(ctx context.Context, bundle []byte, filename string, opts *ImportAgentOptions) (*ImportAgentResult, error) {
	if filename == "" {
		filename = "agent.zip"
	}
	upload := &transport.UploadOptions{
		ContentType: "application/zip",
		Params:      url.Values{},
	}
	if opts != nil {
		if opts.RenameTo != "" {
			upload.Params.Set("rename_to", opts.RenameTo)
		}
		if opts.MergeStrategy != "" {
			upload.Params.Set("merge_strategy", opts.MergeStrategy)
		}
	}
	raw, err := c.transport.Upload(ctx, "/agents/import", filename, bundle, upload)
	if err != nil {
		return nil, err
	}
	var result ImportAgentResult
	if err := unmarshalResponse(raw, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
