package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func streamOf(events ...Event) <-chan Event {
	ch := make(chan Event, len(events))
	for _, e := range events {
		ch <- e
	}
	close(ch)
	return ch
}

func TestCollect_TextAndUsage(t *testing.T) {
	res := Collect(streamOf(
		TextEvent{Content: "The answer "},
		TextEvent{Content: "is 56."},
		DoneEvent{Usage: &UsageStats{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
	))

	assert.Equal(t, "The answer is 56.", res.Output)
	require.NotNil(t, res.Usage)
	assert.Equal(t, 15, res.Usage.TotalTokens)
	assert.Nil(t, res.Err)
	assert.Empty(t, res.ToolCalls)
}

func TestCollect_ToolCallsAggregated(t *testing.T) {
	res := Collect(streamOf(
		ToolCallStartEvent{ID: "t1", Name: "Read", Input: map[string]any{"file_path": "/tmp/a"}},
		ToolResultEvent{ID: "t1", Success: true, Output: "contents"},
		ToolCallEndEvent{ID: "t1"},
		ToolCallStartEvent{ID: "t2", Name: "Bash", Input: map[string]any{"command": "false"}},
		ToolResultEvent{ID: "t2", Success: false, Error: "exit status 1"},
		ToolCallEndEvent{ID: "t2"},
		DoneEvent{},
	))

	require.Len(t, res.ToolCalls, 2)
	assert.Equal(t, "Read", res.ToolCalls[0].Name)
	assert.True(t, res.ToolCalls[0].Success)
	assert.Equal(t, "Bash", res.ToolCalls[1].Name)
	assert.False(t, res.ToolCalls[1].Success)
	assert.Equal(t, "exit status 1", res.ToolCalls[1].Error)
}

func TestCollect_ThinkingAndArtifacts(t *testing.T) {
	res := Collect(streamOf(
		ThinkingEvent{Thinking: "let me "},
		ThinkingEvent{Thinking: "think"},
		ArtifactEvent{ID: "a1", Name: "out.txt", ContentType: "text/plain", Content: "hi"},
		DoneEvent{},
	))

	assert.Equal(t, "let me think", res.Thinking)
	require.Len(t, res.Artifacts, 1)
	assert.Equal(t, "out.txt", res.Artifacts[0].Name)
}

func TestCollect_ErrorStream(t *testing.T) {
	res := Collect(streamOf(
		TextEvent{Content: "partial"},
		ErrorEvent{Code: "tool_crash", Message: "boom", Recoverable: true},
	))

	assert.Equal(t, "partial", res.Output)
	require.NotNil(t, res.Err)
	assert.Equal(t, "tool_crash", res.Err.Code)
	assert.True(t, res.Err.Recoverable)
}

func TestCollect_SkipsViolatingToolEvents(t *testing.T) {
	res := Collect(streamOf(
		ToolResultEvent{ID: "ghost", Success: true, Output: "orphan"},
		TextEvent{Content: "still fine"},
		DoneEvent{},
	))

	assert.Equal(t, "still fine", res.Output)
	assert.Empty(t, res.ToolCalls)
}
