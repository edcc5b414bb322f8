package event

import (
	"log/slog"
	"strings"
)

// Result is the fold of one event stream: concatenated text and thinking,
// aggregated tool calls, usage from the done event, and the terminal error
// event if the stream failed.
type Result struct {
	Output    string
	Thinking  string
	ToolCalls []ToolCall
	Artifacts []ArtifactEvent
	Usage     *UsageStats
	Err       *ErrorEvent
}

// Collect drains a stream and folds it into a Result. It is the shared
// implementation for adapters that build their non-streaming execute on top
// of their streaming path.
//
// Collect is lenient: lifecycle violations are logged and the offending event
// skipped, so a partially misbehaving backend still yields a usable result.
// Conformance testing uses Validator instead.
func Collect(events <-chan Event) Result {
	var (
		output   strings.Builder
		thinking strings.Builder
		res      Result
	)
	tracker := NewLifecycleTracker()

	for e := range events {
		if err := tracker.Observe(e); err != nil {
			slog.Warn("skipping tool event violating lifecycle", "error", err)
			continue
		}
		switch ev := e.(type) {
		case TextEvent:
			output.WriteString(ev.Content)
		case ThinkingEvent:
			thinking.WriteString(ev.Thinking)
		case ArtifactEvent:
			res.Artifacts = append(res.Artifacts, ev)
		case DoneEvent:
			res.Usage = ev.Usage
		case ErrorEvent:
			res.Err = &ev
		}
	}

	res.Output = output.String()
	res.Thinking = thinking.String()
	res.ToolCalls = tracker.Calls()
	return res
}
