package event

import "fmt"

// LifecycleState is the per-id state of a tool invocation.
type LifecycleState int

const (
	// StateUnseen means no event for the id has been observed.
	StateUnseen LifecycleState = iota
	// StateStarted means tool_call_start was observed; deltas may accumulate.
	StateStarted
	// StateResulted means tool_result was observed.
	StateResulted
	// StateEnded means tool_call_end was observed. Terminal.
	StateEnded
)

// String returns the state name.
func (s LifecycleState) String() string {
	switch s {
	case StateUnseen:
		return "unseen"
	case StateStarted:
		return "started"
	case StateResulted:
		return "resulted"
	case StateEnded:
		return "ended"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// LifecycleError reports a tool event that violates the lifecycle contract.
// A conformant adapter never produces one; a validating consumer treats it as
// a protocol breach by the producer, not a user error.
type LifecycleError struct {
	ID    string
	State LifecycleState
	Event Type
}

func (e *LifecycleError) Error() string {
	return fmt.Sprintf("tool call %q: %s event in state %s", e.ID, e.Event, e.State)
}

// trackedCall accumulates one tool invocation's events.
type trackedCall struct {
	id      string
	name    string
	input   map[string]any
	output  any
	errMsg  string
	state   LifecycleState
	success bool
}

// LifecycleTracker enforces the per-id tool-call state machine:
//
//	Unseen --tool_call_start--> Started
//	Started --tool_call_delta--> Started  (input accumulates)
//	Started --tool_result--> Resulted
//	Started --tool_call_end--> Ended      (unknown/empty result)
//	Resulted --tool_call_end--> Ended
//
// Any other tool-event transition is a violation. Non-tool events are ignored.
type LifecycleTracker struct {
	calls map[string]*trackedCall
	order []string
}

// NewLifecycleTracker returns an empty tracker.
func NewLifecycleTracker() *LifecycleTracker {
	return &LifecycleTracker{calls: make(map[string]*trackedCall)}
}

// Observe feeds one event through the state machine. It returns a
// *LifecycleError on a contract violation and nil otherwise.
func (t *LifecycleTracker) Observe(e Event) error {
	switch ev := e.(type) {
	case ToolCallStartEvent:
		if c, ok := t.calls[ev.ID]; ok {
			return &LifecycleError{ID: ev.ID, State: c.state, Event: TypeToolCallStart}
		}
		input := ev.Input
		if input == nil {
			input = make(map[string]any)
		}
		t.calls[ev.ID] = &trackedCall{id: ev.ID, name: ev.Name, input: input, state: StateStarted}
		t.order = append(t.order, ev.ID)

	case ToolCallDeltaEvent:
		c, ok := t.calls[ev.ID]
		if !ok {
			return &LifecycleError{ID: ev.ID, State: StateUnseen, Event: TypeToolCallDelta}
		}
		if c.state != StateStarted {
			return &LifecycleError{ID: ev.ID, State: c.state, Event: TypeToolCallDelta}
		}
		for k, v := range ev.InputDelta {
			c.input[k] = v
		}

	case ToolResultEvent:
		c, ok := t.calls[ev.ID]
		if !ok {
			return &LifecycleError{ID: ev.ID, State: StateUnseen, Event: TypeToolResult}
		}
		if c.state != StateStarted {
			return &LifecycleError{ID: ev.ID, State: c.state, Event: TypeToolResult}
		}
		c.state = StateResulted
		c.success = ev.Success
		c.output = ev.Output
		c.errMsg = ev.Error

	case ToolCallEndEvent:
		c, ok := t.calls[ev.ID]
		if !ok {
			return &LifecycleError{ID: ev.ID, State: StateUnseen, Event: TypeToolCallEnd}
		}
		if c.state != StateStarted && c.state != StateResulted {
			return &LifecycleError{ID: ev.ID, State: c.state, Event: TypeToolCallEnd}
		}
		c.state = StateEnded
	}
	return nil
}

// State returns the lifecycle state for a tool-call id.
func (t *LifecycleTracker) State(id string) LifecycleState {
	if c, ok := t.calls[id]; ok {
		return c.state
	}
	return StateUnseen
}

// Open returns the ids of tool calls that have started but not yet ended, in
// start order.
func (t *LifecycleTracker) Open() []string {
	var open []string
	for _, id := range t.order {
		if t.calls[id].state != StateEnded {
			open = append(open, id)
		}
	}
	return open
}

// Calls returns the aggregated tool calls in start order. A call ended
// without a result aggregates with Success=false and no output or error.
func (t *LifecycleTracker) Calls() []ToolCall {
	calls := make([]ToolCall, 0, len(t.order))
	for _, id := range t.order {
		c := t.calls[id]
		calls = append(calls, ToolCall{
			ID:      c.id,
			Name:    c.name,
			Input:   c.input,
			Output:  c.output,
			Error:   c.errMsg,
			Success: c.success,
		})
	}
	return calls
}

// Validator checks a whole stream against the event-stream invariants: the
// tool lifecycle contract plus termination (exactly one terminal event, and
// nothing after it).
type Validator struct {
	tracker  *LifecycleTracker
	terminal Event
	count    int
}

// NewValidator returns a validator for one stream.
func NewValidator() *Validator {
	return &Validator{tracker: NewLifecycleTracker()}
}

// Observe checks one event in stream order.
func (v *Validator) Observe(e Event) error {
	if v.terminal != nil {
		return fmt.Errorf("event %q observed after terminal %q", e.EventType(), v.terminal.EventType())
	}
	v.count++
	if err := v.tracker.Observe(e); err != nil {
		return err
	}
	if IsTerminal(e) {
		v.terminal = e
	}
	return nil
}

// Finish checks the end-of-stream invariants once the producer has closed
// the stream.
func (v *Validator) Finish() error {
	if v.terminal == nil {
		return fmt.Errorf("stream ended after %d events without a terminal event", v.count)
	}
	return nil
}

// Tracker exposes the underlying lifecycle tracker for aggregation.
func (v *Validator) Tracker() *LifecycleTracker { return v.tracker }
