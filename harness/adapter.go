package harness

import (
	"context"

	"github.com/openharness/harness-go/event"
)

// Capabilities declares which operations a backend supports. Declared once
// per adapter instance and immutable for its lifetime; hosts consult it
// before invoking capability-gated operations.
type Capabilities struct {
	Agents         bool `json:"agents"`
	Skills         bool `json:"skills"`
	Execution      bool `json:"execution"`
	Streaming      bool `json:"streaming"`
	Sessions       bool `json:"sessions"`
	Memory         bool `json:"memory"`
	Subagents      bool `json:"subagents"`
	MCP            bool `json:"mcp"`
	Files          bool `json:"files"`
	Hooks          bool `json:"hooks"`
	Planning       bool `json:"planning"`
	WebSocket      bool `json:"websocket"`
	Multipart      bool `json:"multipart"`
	BinaryDownload bool `json:"binary_download"`
}

// ExecuteRequest describes one logical execution. Immutable once constructed.
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

// ExecutionResult is the complete outcome of a non-streaming execution.
// Ordinary backend failures (model errors, tool crashes) surface as partial
// output plus an error note in Metadata, not as a Go error.
type ExecutionResult struct {
	Output    string           `json:"output"`
	ToolCalls []event.ToolCall `json:"tool_calls"`
	Usage     *event.UsageStats `json:"usage,omitempty"`
	Metadata  map[string]any   `json:"metadata,omitempty"`
}

// Tool describes an available tool.
type Tool struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Source      string         `json:"source"`
	InputSchema map[string]any `json:"input_schema"`
}

// ToolDefinition is a tool registration request.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"input_schema"`
}

// Adapter is the contract every backend integration implements.
//
// ID, Name and Version are stable, never-empty strings queried synchronously.
// Capabilities must be pure. Execute runs to completion; ExecuteStream's
// channel obeys the event-stream invariants: exactly one terminal event
// (done or error), nothing after it, and well-formed tool lifecycles.
// Abandoning a stream is signaled by canceling the context passed to
// ExecuteStream, which releases the underlying connection or process.
//
// The optional operations carry documented defaults for adapters that embed
// Base: ListTools returns an empty list; RegisterTool, UnregisterTool and
// InvokeTool fail with ErrNotSupported; Close is an idempotent no-op.
type Adapter interface {
	ID() string
	Name() string
	Version() string
	Capabilities() Capabilities

	Execute(ctx context.Context, req *ExecuteRequest) (*ExecutionResult, error)
	ExecuteStream(ctx context.Context, req *ExecuteRequest) (<-chan event.Event, error)

	ListTools(ctx context.Context) ([]Tool, error)
	RegisterTool(ctx context.Context, def ToolDefinition) error
	UnregisterTool(ctx context.Context, toolID string) error
	InvokeTool(ctx context.Context, toolID string, input map[string]any) (map[string]any, error)
	Close() error
}

// Base provides the default behavior for the optional Adapter operations.
// Concrete adapters embed it and override what they support.
type Base struct{}

// ListTools returns an empty tool list.
func (Base) ListTools(ctx context.Context) ([]Tool, error) { return nil, nil }

// RegisterTool fails with ErrNotSupported.
func (Base) RegisterTool(ctx context.Context, def ToolDefinition) error {
	return &NotSupportedError{Op: "tool registration"}
}

// UnregisterTool fails with ErrNotSupported.
func (Base) UnregisterTool(ctx context.Context, toolID string) error {
	return &NotSupportedError{Op: "tool unregistration"}
}

// InvokeTool fails with ErrNotSupported.
func (Base) InvokeTool(ctx context.Context, toolID string, input map[string]any) (map[string]any, error) {
	return nil, &NotSupportedError{Op: "tool invocation"}
}

// Close is a no-op and safe to call repeatedly.
func (Base) Close() error { return nil }

// StreamFromResult wraps a completed result as a minimal event stream: one
// text event followed by done. Adapters built on a non-streaming backend use
// it to satisfy ExecuteStream.
func StreamFromResult(res *ExecutionResult) <-chan event.Event {
	ch := make(chan event.Event, 2)
	if res.Output != "" {
		ch <- event.TextEvent{Content: res.Output}
	}
	ch <- event.DoneEvent{Usage: res.Usage}
	close(ch)
	return ch
}
