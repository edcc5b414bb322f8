package goose

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openharness/harness-go/event"
	"github.com/openharness/harness-go/harness"
	"github.com/openharness/harness-go/transport"
)

// fakeServer mimics the Goose session API: health probe, agent lifecycle and
// the /reply SSE stream.
type fakeServer struct {
	*httptest.Server

	replyEvents []string
	finishReply bool

	startCalls atomic.Int32
	stopCalls  atomic.Int32

	mu       sync.Mutex
	lastChat map[string]any
}

func newFakeServer(t *testing.T, replyEvents []string, finishReply bool) *fakeServer {
	t.Helper()
	fs := &fakeServer{replyEvents: replyEvents, finishReply: finishReply}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health":
			fmt.Fprint(w, `{"status":"ok"}`)
		case "/agent/start":
			fs.startCalls.Add(1)
			fmt.Fprint(w, `{"session_id":"sess-1"}`)
		case "/agent/stop":
			fs.stopCalls.Add(1)
			w.WriteHeader(http.StatusNoContent)
		case "/reply":
			var chat map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&chat))
			fs.mu.Lock()
			fs.lastChat = chat
			fs.mu.Unlock()

			w.Header().Set("Content-Type", "text/event-stream")
			flusher := w.(http.Flusher)
			for _, ev := range fs.replyEvents {
				fmt.Fprintf(w, "data: %s\n\n", ev)
				flusher.Flush()
			}
			if fs.finishReply {
				fmt.Fprint(w, "data: {\"type\":\"Finish\",\"reason\":\"stop\"}\n\n")
				flusher.Flush()
			}
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(fs.Close)
	return fs
}

func (fs *fakeServer) chat() map[string]any {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.lastChat
}

func drain(t *testing.T, stream <-chan event.Event) []event.Event {
	t.Helper()
	var events []event.Event
	for ev := range stream {
		events = append(events, ev)
	}
	return events
}

func TestAdapter_Identity(t *testing.T) {
	a := New()
	assert.Equal(t, "goose", a.ID())
	assert.NotEmpty(t, a.Name())
	assert.NotEmpty(t, a.Version())

	caps := a.Capabilities()
	assert.True(t, caps.Execution)
	assert.True(t, caps.Streaming)
	assert.True(t, caps.Sessions)
	assert.False(t, caps.Subagents)
}

func TestAdapter_ExecuteStream_EmptyMessage(t *testing.T) {
	a := New()
	_, err := a.ExecuteStream(context.Background(), nil)
	require.Error(t, err)
}

func TestAdapter_ExecuteStream_FullRun(t *testing.T) {
	fs := newFakeServer(t, []string{
		`{"type":"Message","message":{"role":"assistant","content":[{"type":"toolRequest","id":"req-1","toolCall":{"status":"success","value":{"name":"developer__shell","arguments":{"command":"ls"}}}}]}}`,
		`{"type":"Message","message":{"role":"assistant","content":[{"type":"toolResponse","id":"req-1","toolResult":{"status":"success","value":"main.go"}}]}}`,
		`{"type":"Message","message":{"role":"assistant","content":[{"type":"text","text":"one file"}]}}`,
	}, true)

	a := New(WithBaseURL(fs.URL))
	defer a.Close()

	stream, err := a.ExecuteStream(context.Background(), &harness.ExecuteRequest{Message: "list files"})
	require.NoError(t, err)
	events := drain(t, stream)

	v := event.NewValidator()
	for _, ev := range events {
		require.NoError(t, v.Observe(ev))
	}
	require.NoError(t, v.Finish())
	assert.Equal(t, event.TypeDone, events[len(events)-1].EventType())

	assert.Equal(t, int32(1), fs.startCalls.Load(), "a request without a session id starts one")
	assert.Equal(t, int32(1), fs.stopCalls.Load(), "an adapter-started session is torn down")

	chat := fs.chat()
	assert.Equal(t, "sess-1", chat["session_id"])
	user := chat["user_message"].(map[string]any)
	assert.Equal(t, "user", user["role"])
	content := user["content"].([]any)[0].(map[string]any)
	assert.Equal(t, "text", content["type"])
	assert.Equal(t, "list files", content["text"])
}

func TestAdapter_ExecuteStream_ReusesCallerSession(t *testing.T) {
	fs := newFakeServer(t, nil, true)

	a := New(WithBaseURL(fs.URL))
	defer a.Close()

	stream, err := a.ExecuteStream(context.Background(), &harness.ExecuteRequest{
		Message:   "continue",
		SessionID: "existing-session",
	})
	require.NoError(t, err)
	drain(t, stream)

	assert.Equal(t, int32(0), fs.startCalls.Load())
	assert.Equal(t, int32(0), fs.stopCalls.Load(), "caller-owned sessions are left running")
	assert.Equal(t, "existing-session", fs.chat()["session_id"])
}

func TestAdapter_ExecuteStream_HealthFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not ready"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	a := New(WithBaseURL(srv.URL))
	_, err := a.ExecuteStream(context.Background(), &harness.ExecuteRequest{Message: "hi"})
	require.Error(t, err)

	var terr *transport.TransportError
	assert.ErrorAs(t, err, &terr)
}

func TestAdapter_ExecuteStream_DropWithoutFinish(t *testing.T) {
	fs := newFakeServer(t, []string{
		`{"type":"Message","message":{"role":"assistant","content":[{"type":"text","text":"partial"}]}}`,
	}, false)

	a := New(WithBaseURL(fs.URL))
	defer a.Close()

	stream, err := a.ExecuteStream(context.Background(), &harness.ExecuteRequest{Message: "hi"})
	require.NoError(t, err)
	events := drain(t, stream)

	require.NotEmpty(t, events)
	last, ok := events[len(events)-1].(event.ErrorEvent)
	require.True(t, ok, "a dropped stream terminates with an error event")
	assert.Equal(t, "stream_end", last.Code)
}

func TestAdapter_Execute(t *testing.T) {
	fs := newFakeServer(t, []string{
		`{"type":"Message","message":{"role":"assistant","content":[{"type":"text","text":"5"}]}}`,
		`{"type":"Message","message":{"role":"assistant","content":[{"type":"text","text":"6"}]}}`,
	}, true)

	a := New(WithBaseURL(fs.URL))
	defer a.Close()

	res, err := a.Execute(context.Background(), &harness.ExecuteRequest{Message: "7*8"})
	require.NoError(t, err)
	assert.Equal(t, "56", res.Output)
	assert.Nil(t, res.Usage)
}

func TestAdapter_Execute_ServerErrorKeepsPartialOutput(t *testing.T) {
	fs := newFakeServer(t, []string{
		`{"type":"Message","message":{"role":"assistant","content":[{"type":"text","text":"partial"}]}}`,
		`{"type":"Error","error":"model overloaded"}`,
	}, false)

	a := New(WithBaseURL(fs.URL))
	defer a.Close()

	res, err := a.Execute(context.Background(), &harness.ExecuteRequest{Message: "hi"})
	require.NoError(t, err, "in-band backend failures do not surface as Go errors")
	assert.Contains(t, res.Output, "partial")
	assert.Contains(t, res.Output, "[Error: model overloaded]")
	assert.Equal(t, "model overloaded", res.Metadata["error"])
	assert.Equal(t, "goose_error", res.Metadata["error_code"])
}

func TestAdapter_RegisterToolNotSupported(t *testing.T) {
	a := New()
	err := a.RegisterTool(context.Background(), harness.ToolDefinition{Name: "custom"})
	require.ErrorIs(t, err, harness.ErrNotSupported)
}
