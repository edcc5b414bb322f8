package claudecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMessage_SystemInit(t *testing.T) {
	line := []byte(`{"type":"system","subtype":"init","session_id":"sess-1","model":"sonnet","cwd":"/work","tools":["Read","Bash"]}`)
	msg, err := ParseMessage(line)
	require.NoError(t, err)

	init, ok := msg.(*SystemInitMessage)
	require.True(t, ok)
	assert.Equal(t, "sess-1", init.SessionID)
	assert.Equal(t, "sonnet", init.Model)
	assert.Equal(t, []string{"Read", "Bash"}, init.Tools)
}

func TestParseMessage_AssistantBlocks(t *testing.T) {
	line := []byte(`{"type":"assistant","message":{"role":"assistant","content":[` +
		`{"type":"text","text":"hello"},` +
		`{"type":"thinking","thinking":"hmm"},` +
		`{"type":"tool_use","id":"tu-1","name":"Bash","input":{"command":"ls"}}` +
		`]},"session_id":"sess-1"}`)
	msg, err := ParseMessage(line)
	require.NoError(t, err)

	am, ok := msg.(*AssistantMessage)
	require.True(t, ok)
	require.Len(t, am.Message.Content, 3)
	assert.Equal(t, "hello", am.Message.Content[0].Text)
	assert.Equal(t, "hmm", am.Message.Content[1].Thinking)
	assert.Equal(t, "Bash", am.Message.Content[2].Name)
	assert.Equal(t, map[string]any{"command": "ls"}, am.Message.Content[2].Input)
}

func TestParseMessage_UserToolResult(t *testing.T) {
	line := []byte(`{"type":"user","message":{"role":"user","content":[` +
		`{"type":"tool_result","tool_use_id":"tu-1","content":"file.txt","is_error":false}` +
		`]},"session_id":"sess-1"}`)
	msg, err := ParseMessage(line)
	require.NoError(t, err)

	um, ok := msg.(*UserMessage)
	require.True(t, ok)
	require.Len(t, um.Message.Content, 1)
	assert.Equal(t, "tu-1", um.Message.Content[0].ToolUseID)
	assert.False(t, um.Message.Content[0].IsError)
}

func TestParseMessage_Result(t *testing.T) {
	line := []byte(`{"type":"result","subtype":"success","is_error":false,"duration_ms":1234,` +
		`"num_turns":2,"result":"56","usage":{"input_tokens":10,"output_tokens":3},"session_id":"sess-1"}`)
	msg, err := ParseMessage(line)
	require.NoError(t, err)

	rm, ok := msg.(*ResultMessage)
	require.True(t, ok)
	assert.Equal(t, "56", rm.Result)
	assert.Equal(t, int64(1234), rm.DurationMs)
	require.NotNil(t, rm.Usage)
	assert.Equal(t, 10, rm.Usage.InputTokens)
}

func TestParseMessage_UnknownTypeSkipped(t *testing.T) {
	msg, err := ParseMessage([]byte(`{"type":"control_request","request_id":"r1"}`))
	require.NoError(t, err)
	assert.Nil(t, msg)

	msg, err = ParseMessage([]byte(`{"type":"system","subtype":"compact_boundary"}`))
	require.NoError(t, err)
	assert.Nil(t, msg)
}

func TestParseMessage_Malformed(t *testing.T) {
	_, err := ParseMessage([]byte(`not json`))
	require.Error(t, err)
}
