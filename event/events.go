package event

// Type discriminates between event kinds. The values are the wire-level type
// tags carried in the "type" field of each serialized event.
type Type string

const (
	// TypeText is a chunk of natural-language output.
	TypeText Type = "text"
	// TypeThinking is a chunk of exposed internal reasoning.
	TypeThinking Type = "thinking"
	// TypeToolCallStart marks the beginning of a tool invocation.
	TypeToolCallStart Type = "tool_call_start"
	// TypeToolCallDelta carries partial tool input while it is assembled.
	TypeToolCallDelta Type = "tool_call_delta"
	// TypeToolCallEnd closes a tool invocation's lifecycle.
	TypeToolCallEnd Type = "tool_call_end"
	// TypeToolResult carries the outcome of a tool invocation.
	TypeToolResult Type = "tool_result"
	// TypeProgress is a coarse-grained progress signal.
	TypeProgress Type = "progress"
	// TypeError is a terminal failure of the whole stream.
	TypeError Type = "error"
	// TypeDone is a terminal, successful end of the stream.
	TypeDone Type = "done"
	// TypeArtifact is a generated side-artifact.
	TypeArtifact Type = "artifact"
)

// Event is the interface for all execution events.
type Event interface {
	EventType() Type
}

// UsageStats reports token consumption for a completed execution.
type UsageStats struct {
	InputTokens  int   `json:"input_tokens"`
	OutputTokens int   `json:"output_tokens"`
	TotalTokens  int   `json:"total_tokens"`
	DurationMs   int64 `json:"duration_ms,omitempty"`
}

// ToolCall is the aggregated record of one tool invocation, folded from the
// tool_call_start/tool_result/tool_call_end events sharing an id.
type ToolCall struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Input   map[string]any `json:"input"`
	Output  any            `json:"output,omitempty"`
	Error   string         `json:"error,omitempty"`
	Success bool           `json:"success"`
}

// TextEvent contains a chunk of natural-language output.
type TextEvent struct {
	Content string `json:"content"`
}

// EventType returns the event type.
func (e TextEvent) EventType() Type { return TypeText }

// ThinkingEvent contains a chunk of exposed internal reasoning. Backends that
// hide reasoning never emit it.
type ThinkingEvent struct {
	Thinking string `json:"thinking"`
}

// EventType returns the event type.
func (e ThinkingEvent) EventType() Type { return TypeThinking }

// ToolCallStartEvent marks the beginning of a tool invocation. Most backends
// emit it with complete input.
type ToolCallStartEvent struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Input map[string]any `json:"input"`
}

// EventType returns the event type.
func (e ToolCallStartEvent) EventType() Type { return TypeToolCallStart }

// ToolCallDeltaEvent carries a partial accumulation of a tool's input while
// it is still being assembled. Rarely emitted; consumers may ignore it.
type ToolCallDeltaEvent struct {
	ID         string         `json:"id"`
	InputDelta map[string]any `json:"input_delta"`
}

// EventType returns the event type.
func (e ToolCallDeltaEvent) EventType() Type { return TypeToolCallDelta }

// ToolCallEndEvent closes a tool invocation's lifecycle, regardless of
// whether the invocation succeeded.
type ToolCallEndEvent struct {
	ID string `json:"id"`
}

// EventType returns the event type.
func (e ToolCallEndEvent) EventType() Type { return TypeToolCallEnd }

// ToolResultEvent carries the outcome of a tool invocation. Output is present
// iff Success; Error is present iff not.
type ToolResultEvent struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Output  any    `json:"output,omitempty"`
	Error   string `json:"error,omitempty"`
}

// EventType returns the event type.
func (e ToolResultEvent) EventType() Type { return TypeToolResult }

// ProgressEvent is a coarse-grained progress signal, e.g. from a planning or
// todo subsystem. Percentage is in [0, 100].
type ProgressEvent struct {
	Percentage float64 `json:"percentage"`
	Step       string  `json:"step,omitempty"`
	StepNumber int     `json:"step_number,omitempty"`
	TotalSteps int     `json:"total_steps,omitempty"`
}

// EventType returns the event type.
func (e ProgressEvent) EventType() Type { return TypeProgress }

// ErrorEvent is a terminal failure of the whole stream. Recoverable signals
// that the caller may retry the same request.
type ErrorEvent struct {
	Code        string `json:"code"`
	Message     string `json:"message"`
	Recoverable bool   `json:"recoverable"`
}

// EventType returns the event type.
func (e ErrorEvent) EventType() Type { return TypeError }

// DoneEvent is the terminal, successful end of a stream. Usage is nil when
// the backend cannot report token counts.
type DoneEvent struct {
	Usage *UsageStats `json:"usage,omitempty"`
}

// EventType returns the event type.
func (e DoneEvent) EventType() Type { return TypeDone }

// ArtifactEvent carries a generated side-artifact such as a file or image.
type ArtifactEvent struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Content     string `json:"content"`
}

// EventType returns the event type.
func (e ArtifactEvent) EventType() Type { return TypeArtifact }

// IsTerminal reports whether e ends a stream. A well-formed stream contains
// exactly one terminal event and it is the last event.
func IsTerminal(e Event) bool {
	switch e.EventType() {
	case TypeDone, TypeError:
		return true
	default:
		return false
	}
}
