package claudecode

import (
	"encoding/json"
	"fmt"

	"github.com/openharness/harness-go/event"
)

// translator folds CLI messages into execution events, keeping enough state
// to close tool lifecycles the CLI leaves open. terminal reports whether a
// terminal event has been produced.
type translator struct {
	openToolID string
	terminal   bool
}

// translate maps one parsed message onto zero or more events. A nil message
// (an unknown line the parser skipped) yields nothing.
func (t *translator) translate(msg Message) []event.Event {
	var out []event.Event
	switch m := msg.(type) {
	case *AssistantMessage:
		for _, block := range m.Message.Content {
			switch block.Type {
			case "text":
				if block.Text != "" {
					out = append(out, event.TextEvent{Content: block.Text})
				}
			case "thinking":
				if block.Thinking != "" {
					out = append(out, event.ThinkingEvent{Thinking: block.Thinking})
				}
			case "tool_use":
				// A new tool_use without an intervening result means the
				// previous call's lifecycle was never closed by the CLI.
				if t.openToolID != "" {
					out = append(out, event.ToolCallEndEvent{ID: t.openToolID})
				}
				t.openToolID = block.ID
				out = append(out, event.ToolCallStartEvent{
					ID:    block.ID,
					Name:  block.Name,
					Input: block.Input,
				})
			}
		}

	case *UserMessage:
		for _, block := range m.Message.Content {
			if block.Type != "tool_result" {
				continue
			}
			result := event.ToolResultEvent{
				ID:      block.ToolUseID,
				Success: !block.IsError,
			}
			if block.IsError {
				result.Error = stringify(block.Content)
			} else {
				result.Output = block.Content
			}
			out = append(out, result, event.ToolCallEndEvent{ID: block.ToolUseID})
			if t.openToolID == block.ToolUseID {
				t.openToolID = ""
			}
		}

	case *ResultMessage:
		if t.openToolID != "" {
			out = append(out, event.ToolCallEndEvent{ID: t.openToolID})
			t.openToolID = ""
		}
		if m.IsError {
			code := m.Subtype
			if code == "" {
				code = "execution_error"
			}
			out = append(out, event.ErrorEvent{Code: code, Message: m.Result})
		} else {
			var usage *event.UsageStats
			if m.Usage != nil {
				usage = &event.UsageStats{
					InputTokens:  m.Usage.InputTokens,
					OutputTokens: m.Usage.OutputTokens,
					TotalTokens:  m.Usage.InputTokens + m.Usage.OutputTokens,
					DurationMs:   m.DurationMs,
				}
			}
			out = append(out, event.DoneEvent{Usage: usage})
		}
		t.terminal = true
	}
	return out
}

// stringify renders tool error content, which is usually a plain string but
// can be a structured block list.
func stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}
