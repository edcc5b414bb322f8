package client

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/openharness/harness-go/event"
)

// MaxPageSize is the largest page the service will return.
const MaxPageSize = 100

// PaginationParams selects a page of a listing. The zero value asks for the
// server's default page.
type PaginationParams struct {
	Limit  int
	Offset int
}

func (p PaginationParams) validate() error {
	if p.Limit < 0 || p.Limit > MaxPageSize {
		return fmt.Errorf("pagination limit %d out of range [0, %d]", p.Limit, MaxPageSize)
	}
	if p.Offset < 0 {
		return fmt.Errorf("pagination offset %d is negative", p.Offset)
	}
	return nil
}

func (p PaginationParams) values() url.Values {
	params := url.Values{}
	if p.Limit > 0 {
		params.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Offset > 0 {
		params.Set("offset", strconv.Itoa(p.Offset))
	}
	return params
}

// PaginatedResponse is one page of a listing.
type PaginatedResponse[T any] struct {
	Data    []T  `json:"data"`
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

// ExecutionType says how a harness runs: a hosted service, an embedded SDK,
// or an IDE integration.
type ExecutionType string

const (
	ExecutionTypeHosted ExecutionType = "hosted"
	ExecutionTypeSDK    ExecutionType = "sdk"
	ExecutionTypeIDE    ExecutionType = "ide"
)

// HarnessStatus is the service's lifecycle label for a harness.
type HarnessStatus string

const (
	HarnessActive      HarnessStatus = "active"
	HarnessBeta        HarnessStatus = "beta"
	HarnessComingSoon  HarnessStatus = "coming_soon"
	HarnessMaintenance HarnessStatus = "maintenance"
	HarnessDeprecated  HarnessStatus = "deprecated"
)

// DomainCapability describes one functional domain of a harness.
type DomainCapability struct {
	Supported  bool     `json:"supported"`
	Operations []string `json:"operations,omitempty"`
	Notes      string   `json:"notes,omitempty"`
}

// Harness is a remote harness as the discovery endpoint describes it.
type Harness struct {
	ID            string                      `json:"id"`
	Name          string                      `json:"name"`
	Vendor        string                      `json:"vendor"`
	Description   string                      `json:"description"`
	ExecutionType ExecutionType               `json:"execution_type"`
	Status        HarnessStatus               `json:"status"`
	Capabilities  map[string]DomainCapability `json:"capabilities"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
}

// AgentState is an agent's lifecycle state.
type AgentState string

const (
	AgentActive   AgentState = "active"
	AgentPaused   AgentState = "paused"
	AgentArchived AgentState = "archived"
)

// ModelConfig is the structured form of an agent's model setting.
type ModelConfig struct {
	Provider  string `json:"provider,omitempty"`
	Name      string `json:"name,omitempty"`
	Embedding string `json:"embedding,omitempty"`
}

// Agent is a persistent configured agent.
type Agent struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	VendorKey    string         `json:"vendorKey,omitempty"`
	AgentKey     string         `json:"agentKey,omitempty"`
	Version      string         `json:"version,omitempty"`
	Slug         string         `json:"slug,omitempty"`
	Description  string         `json:"description,omitempty"`
	Author       string         `json:"author,omitempty"`
	License      string         `json:"license,omitempty"`
	Tags         []string       `json:"tags,omitempty"`
	SystemPrompt string         `json:"system_prompt,omitempty"`
	Model        any            `json:"model,omitempty"` // string or ModelConfig
	State        AgentState     `json:"state,omitempty"`
	Tools        []string       `json:"tools,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// CreateAgentRequest creates a new agent. Name is the only required field.
type CreateAgentRequest struct {
	Name         string         `json:"name"`
	VendorKey    string         `json:"vendorKey,omitempty"`
	AgentKey     string         `json:"agentKey,omitempty"`
	Version      string         `json:"version,omitempty"`
	Slug         string         `json:"slug,omitempty"`
	Description  string         `json:"description,omitempty"`
	Author       string         `json:"author,omitempty"`
	License      string         `json:"license,omitempty"`
	Tags         []string       `json:"tags,omitempty"`
	SystemPrompt string         `json:"system_prompt,omitempty"`
	Model        any            `json:"model,omitempty"`
	Tools        []string       `json:"tools,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// UpdateAgentRequest patches an agent. Nil and zero fields are left alone.
type UpdateAgentRequest struct {
	Name         string         `json:"name,omitempty"`
	VendorKey    string         `json:"vendorKey,omitempty"`
	AgentKey     string         `json:"agentKey,omitempty"`
	Version      string         `json:"version,omitempty"`
	Slug         string         `json:"slug,omitempty"`
	Description  string         `json:"description,omitempty"`
	Author       string         `json:"author,omitempty"`
	License      string         `json:"license,omitempty"`
	Tags         []string       `json:"tags,omitempty"`
	SystemPrompt string         `json:"system_prompt,omitempty"`
	Model        any            `json:"model,omitempty"`
	State        AgentState     `json:"state,omitempty"`
	Tools        []string       `json:"tools,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// ExportAgentOptions tunes an agent package export.
type ExportAgentOptions struct {
	IncludeMemory   bool
	IncludeVersions bool
	// ContentsMode is "bundled" or "referenced"; empty means the server
	// default (bundled).
	ContentsMode string
}

// ImportAgentOptions tunes an agent package import.
type ImportAgentOptions struct {
	RenameTo string
	// MergeStrategy is "fail", "overwrite" or "skip"; empty means fail.
	MergeStrategy string
}

// ImportAgentResult is the outcome of an agent package import.
type ImportAgentResult struct {
	Agent    Agent    `json:"agent"`
	Warnings []string `json:"warnings,omitempty"`
}

// SkillStatus is a skill's health.
type SkillStatus string

const (
	SkillActive   SkillStatus = "active"
	SkillDisabled SkillStatus = "disabled"
	SkillError    SkillStatus = "error"
)

// Skill is an installed capability bundle.
type Skill struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Version     string         `json:"version"`
	Status      SkillStatus    `json:"status,omitempty"`
	Source      string         `json:"source"` // "registry", "local", "url"
	Tools       []Tool         `json:"tools,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	InstalledAt time.Time      `json:"installed_at"`
}

// InstallSkillRequest installs a skill from a source reference.
type InstallSkillRequest struct {
	Source  string         `json:"source"`
	Version string         `json:"version,omitempty"`
	Config  map[string]any `json:"config,omitempty"`
}

// Tool is a callable tool as the service describes it.
type Tool struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Source      string         `json:"source"` // "mcp", "custom", "builtin"
	InputSchema map[string]any `json:"input_schema"`
	McpServerID string         `json:"mcp_server_id,omitempty"`
}

// McpServerStatus is an MCP server's connection state.
type McpServerStatus string

const (
	McpConnected    McpServerStatus = "connected"
	McpDisconnected McpServerStatus = "disconnected"
	McpConnecting   McpServerStatus = "connecting"
	McpError        McpServerStatus = "error"
)

// McpServer is a configured MCP server process.
type McpServer struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Command     string            `json:"command"`
	Args        []string          `json:"args,omitempty"`
	Env         map[string]string `json:"env,omitempty"`
	Status      McpServerStatus   `json:"status,omitempty"`
	Tools       []Tool            `json:"tools,omitempty"`
	ConnectedAt *time.Time        `json:"connected_at,omitempty"`
}

// ConnectMcpRequest registers and connects an MCP server.
type ConnectMcpRequest struct {
	Name    string            `json:"name"`
	Command string            `json:"command"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
}

// McpResource is a resource exposed by an MCP server.
type McpResource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mime_type,omitempty"`
}

// McpPrompt is a prompt template exposed by an MCP server.
type McpPrompt struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Arguments   []map[string]any `json:"arguments,omitempty"`
}

// ExecutionStatus is an execution's lifecycle state.
type ExecutionStatus string

const (
	ExecutionPending   ExecutionStatus = "pending"
	ExecutionRunning   ExecutionStatus = "running"
	ExecutionCompleted ExecutionStatus = "completed"
	ExecutionFailed    ExecutionStatus = "failed"
	ExecutionCancelled ExecutionStatus = "cancelled"
)

// ExecuteRequest submits a prompt for execution. Message is required;
// Temperature, when set, must be in [0, 1].
type ExecuteRequest struct {
	Message      string         `json:"message"`
	AgentID      string         `json:"agent_id,omitempty"`
	SessionID    string         `json:"session_id,omitempty"`
	SystemPrompt string         `json:"system_prompt,omitempty"`
	Tools        []string       `json:"tools,omitempty"`
	Model        string         `json:"model,omitempty"`
	MaxTokens    int            `json:"max_tokens,omitempty"`
	Temperature  *float64       `json:"temperature,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// Execution is the server-side record of one execution.
type Execution struct {
	ID          string            `json:"id"`
	Status      ExecutionStatus   `json:"status"`
	Message     string            `json:"message"`
	Response    string            `json:"response,omitempty"`
	AgentID     string            `json:"agent_id,omitempty"`
	SessionID   string            `json:"session_id,omitempty"`
	Usage       *event.UsageStats `json:"usage,omitempty"`
	ToolCalls   []event.ToolCall  `json:"tool_calls,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
}

// SessionStatus is a session's lifecycle state.
type SessionStatus string

const (
	SessionActive   SessionStatus = "active"
	SessionArchived SessionStatus = "archived"
)

// Session is a conversation session.
type Session struct {
	ID           string         `json:"id"`
	Name         string         `json:"name,omitempty"`
	AgentID      string         `json:"agent_id,omitempty"`
	Status       SessionStatus  `json:"status,omitempty"`
	SystemPrompt string         `json:"system_prompt,omitempty"`
	MessageCount int            `json:"message_count,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// CreateSessionRequest creates a session.
type CreateSessionRequest struct {
	Name         string         `json:"name,omitempty"`
	AgentID      string         `json:"agent_id,omitempty"`
	SystemPrompt string         `json:"system_prompt,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// Message is one entry of a session's history.
type Message struct {
	ID        string           `json:"id"`
	Role      string           `json:"role"` // "user", "assistant", "system"
	Content   string           `json:"content"`
	ToolCalls []event.ToolCall `json:"tool_calls,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// MemoryBlockType classifies a memory block.
type MemoryBlockType string

const (
	MemoryCore     MemoryBlockType = "core"
	MemoryArchival MemoryBlockType = "archival"
	MemoryWorking  MemoryBlockType = "working"
	MemoryCustom   MemoryBlockType = "custom"
)

// MemoryBlock is one labeled block of agent memory.
type MemoryBlock struct {
	ID        string          `json:"id"`
	Type      MemoryBlockType `json:"type"`
	Label     string          `json:"label"`
	Content   string          `json:"content"`
	ReadOnly  bool            `json:"read_only,omitempty"`
	Metadata  map[string]any  `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CreateMemoryBlockRequest creates a memory block.
type CreateMemoryBlockRequest struct {
	Type     MemoryBlockType `json:"type"`
	Label    string          `json:"label"`
	Content  string          `json:"content"`
	ReadOnly bool            `json:"read_only,omitempty"`
	Metadata map[string]any  `json:"metadata,omitempty"`
}

// UpdateMemoryBlockRequest patches a memory block.
type UpdateMemoryBlockRequest struct {
	Content  string         `json:"content,omitempty"`
	Label    string         `json:"label,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// ArchiveEntry is one entry of archival memory.
type ArchiveEntry struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	Embedding []float64      `json:"embedding,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// ImportMemoryResult reports what a memory snapshot import changed.
type ImportMemoryResult struct {
	BlocksImported         int      `json:"blocks_imported"`
	ArchiveEntriesImported int      `json:"archive_entries_imported"`
	Conflicts              int      `json:"conflicts,omitempty"`
	Warnings               []string `json:"warnings,omitempty"`
}

// SubagentStatus is a subagent's lifecycle state.
type SubagentStatus string

const (
	SubagentPending   SubagentStatus = "pending"
	SubagentRunning   SubagentStatus = "running"
	SubagentCompleted SubagentStatus = "completed"
	SubagentFailed    SubagentStatus = "failed"
	SubagentCancelled SubagentStatus = "cancelled"
)

// Subagent is a delegated child task.
type Subagent struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Prompt      string         `json:"prompt"`
	Status      SubagentStatus `json:"status,omitempty"`
	Result      any            `json:"result,omitempty"`
	Error       string         `json:"error,omitempty"`
	ParentID    string         `json:"parent_id,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
}

// SpawnSubagentRequest delegates a prompt to a subagent.
type SpawnSubagentRequest struct {
	Type   string         `json:"type"`
	Prompt string         `json:"prompt"`
	Config map[string]any `json:"config,omitempty"`
}

// FileInfo describes one workspace file or directory.
type FileInfo struct {
	Path        string     `json:"path"`
	Name        string     `json:"name"`
	Size        int64      `json:"size"`
	IsDirectory bool       `json:"is_directory"`
	MimeType    string     `json:"mime_type,omitempty"`
	ModifiedAt  *time.Time `json:"modified_at,omitempty"`
}

// HookType says when a hook fires.
type HookType string

const (
	HookPreTool  HookType = "pre_tool"
	HookPostTool HookType = "post_tool"
	HookStop     HookType = "stop"
	HookCustom   HookType = "custom"
)

// Hook is a command bound to a harness lifecycle point.
type Hook struct {
	ID        string         `json:"id"`
	Type      HookType       `json:"type"`
	Name      string         `json:"name"`
	Command   string         `json:"command"`
	Enabled   bool           `json:"enabled"`
	Config    map[string]any `json:"config,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// CreateHookRequest creates a hook.
type CreateHookRequest struct {
	Type    HookType       `json:"type"`
	Name    string         `json:"name"`
	Command string         `json:"command"`
	Config  map[string]any `json:"config,omitempty"`
}

// TodoStatus is a todo item's state.
type TodoStatus string

const (
	TodoPending    TodoStatus = "pending"
	TodoInProgress TodoStatus = "in_progress"
	TodoCompleted  TodoStatus = "completed"
)

// Todo is one planning item.
type Todo struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	Status    TodoStatus     `json:"status,omitempty"`
	Priority  int            `json:"priority,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// CreateTodoRequest creates a todo.
type CreateTodoRequest struct {
	Content  string         `json:"content"`
	Priority int            `json:"priority,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// UpdateTodoRequest patches a todo.
type UpdateTodoRequest struct {
	Content  string         `json:"content,omitempty"`
	Status   TodoStatus     `json:"status,omitempty"`
	Priority *int           `json:"priority,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// ModelInfo describes a model the service can run.
type ModelInfo struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Provider          string `json:"provider"`
	Description       string `json:"description,omitempty"`
	ContextWindow     int    `json:"context_window,omitempty"`
	MaxOutputTokens   int    `json:"max_output_tokens,omitempty"`
	SupportsVision    bool   `json:"supports_vision,omitempty"`
	SupportsTools     bool   `json:"supports_tools,omitempty"`
	SupportsStreaming bool   `json:"supports_streaming,omitempty"`
}
