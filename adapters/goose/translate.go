package goose

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/openharness/harness-go/event"
)

// Server event type tags carried in the "type" field of each /reply SSE
// payload. Ping, Notification, ModelChange and UpdateConversation are
// bookkeeping and carry nothing the event union expresses.
const (
	serverEventMessage = "Message"
	serverEventError   = "Error"
	serverEventFinish  = "Finish"
)

// translator folds server events into the execution event union. It tracks
// the open tool invocation so every start is closed before the next start and
// before the terminal event.
type translator struct {
	openToolID string
	terminal   bool
}

// translate converts one decoded server event into zero or more execution
// events. Unknown event types are skipped.
func (t *translator) translate(payload map[string]any) []event.Event {
	switch str(payload, "type") {
	case serverEventMessage:
		return t.translateMessage(mapVal(payload, "message"))
	case serverEventError:
		msg := str(payload, "error")
		if msg == "" {
			msg = str(payload, "message")
		}
		if msg == "" {
			msg = "unknown server error"
		}
		events := t.closeOpenTool(nil)
		t.terminal = true
		return append(events, event.ErrorEvent{Code: "goose_error", Message: msg})
	case serverEventFinish:
		events := t.closeOpenTool(nil)
		t.terminal = true
		return append(events, event.DoneEvent{})
	case "raw":
		// The server occasionally emits plain-text lines mid-stream; the
		// transport wraps them so they surface as output instead of dying.
		if data := str(payload, "data"); data != "" {
			return []event.Event{event.TextEvent{Content: data}}
		}
		return nil
	default:
		return nil
	}
}

func (t *translator) translateMessage(message map[string]any) []event.Event {
	var events []event.Event
	for _, item := range sliceVal(message, "content") {
		block, ok := item.(map[string]any)
		if !ok {
			continue
		}
		switch str(block, "type") {
		case "text":
			if text := str(block, "text"); text != "" {
				events = append(events, event.TextEvent{Content: text})
			}
		case "thinking":
			if thinking := str(block, "thinking"); thinking != "" {
				events = append(events, event.ThinkingEvent{Thinking: thinking})
			}
		case "toolRequest":
			events = t.closeOpenTool(events)
			id := str(block, "id")
			if id == "" {
				// Some server builds omit request ids; mint one so the
				// lifecycle stays pairable.
				id = "tool_" + uuid.NewString()
			}
			call := mapVal(block, "toolCall")
			value := mapVal(call, "value")
			name := str(value, "name")
			if name == "" {
				name = "unknown"
			}
			input := mapVal(value, "arguments")
			t.openToolID = id
			events = append(events, event.ToolCallStartEvent{ID: id, Name: name, Input: input})
		case "toolResponse":
			if t.openToolID == "" {
				continue // response without an open request
			}
			if id := str(block, "id"); id != "" && id != t.openToolID {
				continue // response for a tool already closed
			}
			id := t.openToolID
			result := mapVal(block, "toolResult")
			if str(result, "status") == "error" {
				events = append(events, event.ToolResultEvent{
					ID:      id,
					Success: false,
					Error:   stringify(result["value"]),
				})
			} else {
				events = append(events, event.ToolResultEvent{
					ID:      id,
					Success: true,
					Output:  result["value"],
				})
			}
			events = append(events, event.ToolCallEndEvent{ID: id})
			t.openToolID = ""
		}
	}
	return events
}

// closeOpenTool emits the end event for a tool the server never answered.
func (t *translator) closeOpenTool(events []event.Event) []event.Event {
	if t.openToolID != "" {
		events = append(events, event.ToolCallEndEvent{ID: t.openToolID})
		t.openToolID = ""
	}
	return events
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func mapVal(m map[string]any, key string) map[string]any {
	v, _ := m[key].(map[string]any)
	return v
}

func sliceVal(m map[string]any, key string) []any {
	v, _ := m[key].([]any)
	return v
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprintf("%v", x)
		}
		return string(b)
	}
}
