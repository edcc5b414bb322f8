package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/openharness/harness-go/transport"
)

// ListSkills pages through installed skills.
func (c *Client) ListSkills(ctx context.Context, page PaginationParams) (*PaginatedResponse[Skill], error) {
	return listPage[Skill](ctx, c, "/skills", page)
}

// GetSkill fetches one skill.
func (c *Client) GetSkill(ctx context.Context, skillID string) (*Skill, error) {
	s, err := requestInto[Skill](ctx, c, http.MethodGet, "/skills/"+skillID, nil)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// InstallSkill installs a skill from a registry, path or URL source.
func (c *Client) InstallSkill(ctx context.Context, req *InstallSkillRequest) (*Skill, error) {
	s, err := requestInto[Skill](ctx, c, http.MethodPost, "/skills", &transport.RequestOptions{JSON: req})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// UninstallSkill removes a skill.
func (c *Client) UninstallSkill(ctx context.Context, skillID string) error {
	_, err := c.transport.Request(ctx, http.MethodDelete, "/skills/"+skillID, nil)
	return err
}

// DiscoverSkills searches the skill registry.
func (c *Client) DiscoverSkills(ctx context.Context, query string) ([]Skill, error) {
	opts := &transport.RequestOptions{}
	if query != "" {
		opts.Params = url.Values{"query": {query}}
	}
	return requestInto[[]Skill](ctx, c, http.MethodGet, "/skills/discover", opts)
}

// ListTools pages through available tools, optionally filtered by source
// ("mcp", "custom" or "builtin").
func (c *Client) ListTools(ctx context.Context, source string, page PaginationParams) (*PaginatedResponse[Tool], error) {
	if err := page.validate(); err != nil {
		return nil, err
	}
	params := page.values()
	if source != "" {
		params.Set("source", source)
	}
	resp, err := requestInto[PaginatedResponse[Tool]](ctx, c, http.MethodGet, "/tools", &transport.RequestOptions{Params: params})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetTool fetches one tool.
func (c *Client) GetTool(ctx context.Context, toolID string) (*Tool, error) {
	t, err := requestInto[Tool](ctx, c, http.MethodGet, "/tools/"+toolID, nil)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// InvokeTool calls a tool directly and returns its raw result.
func (c *Client) InvokeTool(ctx context.Context, toolID string, input map[string]any) (any, error) {
	if input == nil {
		input = map[string]any{}
	}
	return requestInto[any](ctx, c, http.MethodPost, "/tools/"+toolID+"/invoke", &transport.RequestOptions{
		JSON: map[string]any{"input": input},
	})
}

// ListMcpServers lists configured MCP servers.
func (c *Client) ListMcpServers(ctx context.Context) ([]McpServer, error) {
	return requestInto[[]McpServer](ctx, c, http.MethodGet, "/mcp/servers", nil)
}

// ConnectMcpServer registers an MCP server and connects to it.
func (c *Client) ConnectMcpServer(ctx context.Context, req *ConnectMcpRequest) (*McpServer, error) {
	s, err := requestInto[McpServer](ctx, c, http.MethodPost, "/mcp/servers", &transport.RequestOptions{JSON: req})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// DisconnectMcpServer disconnects and removes an MCP server.
func (c *Client) DisconnectMcpServer(ctx context.Context, serverID string) error {
	_, err := c.transport.Request(ctx, http.MethodDelete, "/mcp/servers/"+serverID, nil)
	return err
}

// ListMcpTools lists the tools one MCP server exposes.
func (c *Client) ListMcpTools(ctx context.Context, serverID string) ([]Tool, error) {
	return requestInto[[]Tool](ctx, c, http.MethodGet, "/mcp/servers/"+serverID+"/tools", nil)
}

// ListMcpResources lists the resources one MCP server exposes.
func (c *Client) ListMcpResources(ctx context.Context, serverID string) ([]McpResource, error) {
	return requestInto[[]McpResource](ctx, c, http.MethodGet, "/mcp/servers/"+serverID+"/resources", nil)
}

// ListMcpPrompts lists the prompt templates one MCP server exposes.
func (c *Client) ListMcpPrompts(ctx context.Context, serverID string) ([]McpPrompt, error) {
	return requestInto[[]McpPrompt](ctx, c, http.MethodGet, "/mcp/servers/"+serverID+"/prompts", nil)
}
