package event

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

// Unmarshal parses a serialized event into its concrete type. Events with an
// unknown type tag return (nil, nil) after a logged warning so that newer
// servers can add kinds without breaking older consumers.
func Unmarshal(data []byte) (Event, error) {
	var base struct {
		Type Type `json:"type"`
	}
	if err := json.Unmarshal(data, &base); err != nil {
		return nil, err
	}

	switch base.Type {
	case TypeText:
		var e TextEvent
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		return e, nil
	case TypeThinking:
		var e ThinkingEvent
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		return e, nil
	case TypeToolCallStart:
		var e ToolCallStartEvent
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		return e, nil
	case TypeToolCallDelta:
		var e ToolCallDeltaEvent
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		return e, nil
	case TypeToolCallEnd:
		var e ToolCallEndEvent
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		return e, nil
	case TypeToolResult:
		var e ToolResultEvent
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		return e, nil
	case TypeProgress:
		var e ProgressEvent
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		return e, nil
	case TypeError:
		var e ErrorEvent
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		return e, nil
	case TypeDone:
		var e DoneEvent
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		return e, nil
	case TypeArtifact:
		var e ArtifactEvent
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		return e, nil
	default:
		slog.Warn("skipping unknown execution event type", "type", base.Type)
		return nil, nil
	}
}

// FromMap parses an already-decoded JSON object into a concrete event. It is
// used by stream consumers that receive generic maps from a transport.
func FromMap(m map[string]any) (Event, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data)
}

// Marshal serializes an event with its wire-level type tag.
func Marshal(e Event) ([]byte, error) {
	type tag struct {
		Type Type `json:"type"`
	}
	switch ev := e.(type) {
	case TextEvent:
		return json.Marshal(struct {
			tag
			TextEvent
		}{tag{TypeText}, ev})
	case ThinkingEvent:
		return json.Marshal(struct {
			tag
			ThinkingEvent
		}{tag{TypeThinking}, ev})
	case ToolCallStartEvent:
		return json.Marshal(struct {
			tag
			ToolCallStartEvent
		}{tag{TypeToolCallStart}, ev})
	case ToolCallDeltaEvent:
		return json.Marshal(struct {
			tag
			ToolCallDeltaEvent
		}{tag{TypeToolCallDelta}, ev})
	case ToolCallEndEvent:
		return json.Marshal(struct {
			tag
			ToolCallEndEvent
		}{tag{TypeToolCallEnd}, ev})
	case ToolResultEvent:
		return json.Marshal(struct {
			tag
			ToolResultEvent
		}{tag{TypeToolResult}, ev})
	case ProgressEvent:
		return json.Marshal(struct {
			tag
			ProgressEvent
		}{tag{TypeProgress}, ev})
	case ErrorEvent:
		return json.Marshal(struct {
			tag
			ErrorEvent
		}{tag{TypeError}, ev})
	case DoneEvent:
		return json.Marshal(struct {
			tag
			DoneEvent
		}{tag{TypeDone}, ev})
	case ArtifactEvent:
		return json.Marshal(struct {
			tag
			ArtifactEvent
		}{tag{TypeArtifact}, ev})
	default:
		return nil, fmt.Errorf("cannot marshal event type %T", e)
	}
}
