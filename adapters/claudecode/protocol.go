package claudecode

import (
	"encoding/json"
	"fmt"
)

// rawMessage is used for initial type discrimination of NDJSON lines.
type rawMessage struct {
	Type    string `json:"type"`
	Subtype string `json:"subtype,omitempty"`
}

// SystemInitMessage is the first message of a stream-json run.
// Example: {"type":"system","subtype":"init","session_id":"...","model":"...","cwd":"...","tools":[...]}
type SystemInitMessage struct {
	Type           string   `json:"type"`
	Subtype        string   `json:"subtype"`
	SessionID      string   `json:"session_id"`
	Model          string   `json:"model"`
	CWD            string   `json:"cwd"`
	Tools          []string `json:"tools"`
	PermissionMode string   `json:"permissionMode"`
}

// ContentBlock is one block of an assistant or user message: text, thinking,
// tool_use, or tool_result.
type ContentBlock struct {
	Type string `json:"type"`

	// text
	Text string `json:"text,omitempty"`

	// thinking
	Thinking string `json:"thinking,omitempty"`

	// tool_use
	ID    string         `json:"id,omitempty"`
	Name  string         `json:"name,omitempty"`
	Input map[string]any `json:"input,omitempty"`

	// tool_result
	ToolUseID string `json:"tool_use_id,omitempty"`
	Content   any    `json:"content,omitempty"`
	IsError   bool   `json:"is_error,omitempty"`
}

// AssistantMessage carries assistant content blocks.
type AssistantMessage struct {
	Type    string `json:"type"`
	Message struct {
		Role    string         `json:"role"`
		Model   string         `json:"model,omitempty"`
		Content []ContentBlock `json:"content"`
	} `json:"message"`
	SessionID string `json:"session_id"`
}

// UserMessage carries tool results echoed back into the transcript.
type UserMessage struct {
	Type    string `json:"type"`
	Message struct {
		Role    string         `json:"role"`
		Content []ContentBlock `json:"content"`
	} `json:"message"`
	SessionID string `json:"session_id"`
}

// ResultMessage closes a run with outcome and usage.
// Example: {"type":"result","subtype":"success","is_error":false,"duration_ms":1234,
// "num_turns":2,"result":"...","usage":{"input_tokens":10,"output_tokens":3},"session_id":"..."}
type ResultMessage struct {
	Type       string `json:"type"`
	Subtype    string `json:"subtype"`
	IsError    bool   `json:"is_error"`
	DurationMs int64  `json:"duration_ms"`
	NumTurns   int    `json:"num_turns"`
	Result     string `json:"result"`
	Usage      *struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage,omitempty"`
	TotalCostUSD float64 `json:"total_cost_usd,omitempty"`
	SessionID    string  `json:"session_id"`
}

// Message is the union type returned by ParseMessage.
type Message interface {
	messageType() string
}

func (m *SystemInitMessage) messageType() string { return "system" }
func (m *AssistantMessage) messageType() string  { return "assistant" }
func (m *UserMessage) messageType() string       { return "user" }
func (m *ResultMessage) messageType() string     { return "result" }

// ParseMessage parses one NDJSON line into a typed message. Message types
// this package does not model return (nil, nil) and are skipped by the
// caller.
func ParseMessage(line []byte) (Message, error) {
	var raw rawMessage
	if err := json.Unmarshal(line, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse message type: %w", err)
	}

	switch raw.Type {
	case "system":
		if raw.Subtype != "init" {
			return nil, nil
		}
		var msg SystemInitMessage
		if err := json.Unmarshal(line, &msg); err != nil {
			return nil, fmt.Errorf("failed to parse system init message: %w", err)
		}
		return &msg, nil

	case "assistant":
		var msg AssistantMessage
		if err := json.Unmarshal(line, &msg); err != nil {
			return nil, fmt.Errorf("failed to parse assistant message: %w", err)
		}
		return &msg, nil

	case "user":
		var msg UserMessage
		if err := json.Unmarshal(line, &msg); err != nil {
			return nil, fmt.Errorf("failed to parse user message: %w", err)
		}
		return &msg, nil

	case "result":
		var msg ResultMessage
		if err := json.Unmarshal(line, &msg); err != nil {
			return nil, fmt.Errorf("failed to parse result message: %w", err)
		}
		return &msg, nil

	default:
		return nil, nil
	}
}
