package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openharness/harness-go/event"
	"github.com/openharness/harness-go/transport"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	c := New(server.URL, WithAPIKey("test-key"))
	t.Cleanup(func() { c.Close() })
	return c
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestClient_Execute(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/execute", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req ExecuteRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "What is 7*8?", req.Message)

		writeJSON(t, w, map[string]any{
			"id":         "exec-1",
			"status":     "completed",
			"message":    req.Message,
			"response":   "56",
			"usage":      map[string]any{"input_tokens": 10, "output_tokens": 2, "total_tokens": 12},
			"created_at": "2026-08-01T10:00:00Z",
		})
	}))

	exec, err := c.Execute(context.Background(), &ExecuteRequest{Message: "What is 7*8?"})
	require.NoError(t, err)
	assert.Equal(t, "exec-1", exec.ID)
	assert.Equal(t, ExecutionCompleted, exec.Status)
	assert.Equal(t, "56", exec.Response)
	require.NotNil(t, exec.Usage)
	assert.Equal(t, 12, exec.Usage.TotalTokens)
}

func TestClient_Execute_Validation(t *testing.T) {
	c := New("http://127.0.0.1:1")
	defer c.Close()

	_, err := c.Execute(context.Background(), &ExecuteRequest{})
	require.Error(t, err)

	temp := 1.5
	_, err = c.Execute(context.Background(), &ExecuteRequest{Message: "hi", Temperature: &temp})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "temperature")
}

func TestClient_ExecuteStream(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/execute/stream", r.URL.Path)
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		for _, line := range []string{
			`data: {"type":"text","content":"5"}`,
			`data: {"type":"text","content":"6"}`,
			`data: {"type":"shiny_new_kind","x":1}`,
			`data: {"type":"done","usage":{"input_tokens":10,"output_tokens":2,"total_tokens":12}}`,
		} {
			w.Write([]byte(line + "\n\n"))
			flusher.Flush()
		}
	}))

	stream, err := c.ExecuteStream(context.Background(), &ExecuteRequest{Message: "What is 7*8?"})
	require.NoError(t, err)
	defer stream.Close()

	var events []event.Event
	for stream.Next() {
		events = append(events, stream.Event())
	}
	require.NoError(t, stream.Err())

	// The unknown kind is skipped, not surfaced.
	require.Len(t, events, 3)
	assert.Equal(t, event.TextEvent{Content: "5"}, events[0])
	assert.Equal(t, event.TextEvent{Content: "6"}, events[1])
	done, ok := events[2].(event.DoneEvent)
	require.True(t, ok)
	require.NotNil(t, done.Usage)
	assert.Equal(t, 12, done.Usage.TotalTokens)
}

func TestClient_ExecuteStream_DropWithoutTerminal(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte("data: {\"type\":\"text\",\"content\":\"partial\"}\n\n"))
	}))

	stream, err := c.ExecuteStream(context.Background(), &ExecuteRequest{Message: "hi"})
	require.NoError(t, err)
	defer stream.Close()

	require.True(t, stream.Next())
	assert.False(t, stream.Next())
	require.Error(t, stream.Err(), "a dropped stream is a failure, not a silent end")
}

func TestClient_ListAgents_Pagination(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/agents", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("limit"))
		assert.Equal(t, "4", r.URL.Query().Get("offset"))
		writeJSON(t, w, map[string]any{
			"data": []map[string]any{
				{"id": "a5", "name": "five", "created_at": "2026-08-01T10:00:00Z", "updated_at": "2026-08-01T10:00:00Z"},
				{"id": "a6", "name": "six", "created_at": "2026-08-01T10:00:00Z", "updated_at": "2026-08-01T10:00:00Z"},
			},
			"total":    10,
			"limit":    2,
			"offset":   4,
			"has_more": true,
		})
	}))

	page, err := c.ListAgents(context.Background(), PaginationParams{Limit: 2, Offset: 4})
	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "a5", page.Data[0].ID)
	assert.Equal(t, 10, page.Total)
	assert.True(t, page.HasMore)
}

func TestClient_ListAgents_LimitTooLarge(t *testing.T) {
	c := New("http://127.0.0.1:1")
	defer c.Close()

	_, err := c.ListAgents(context.Background(), PaginationParams{Limit: MaxPageSize + 1})
	require.Error(t, err)
}

func TestClient_GetCapabilities(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/harnesses/claude-code/capabilities", r.URL.Path)
		writeJSON(t, w, map[string]any{
			"harness_id": "claude-code",
			"version":    "1.2.3",
			"capabilities": []map[string]any{
				{"id": "execution.run", "supported": true},
				{"id": "execution.stream", "supported": true},
			},
		})
	}))

	m, err := c.GetCapabilities(context.Background(), "claude-code")
	require.NoError(t, err)
	assert.Equal(t, "claude-code", m.HarnessID)
	require.Len(t, m.Capabilities, 2)
	assert.Equal(t, "execution.run", m.Capabilities[0].ID)
}

func TestClient_AgentExportImport(t *testing.T) {
	bundle := []byte("zip-bytes")
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/agents/a1/export":
			assert.Equal(t, "true", r.URL.Query().Get("include_memory"))
			w.Write(bundle)
		case "/agents/import":
			assert.Equal(t, "overwrite", r.URL.Query().Get("merge_strategy"))
			require.NoError(t, r.ParseMultipartForm(1<<20))
			_, header, err := r.FormFile("file")
			require.NoError(t, err)
			assert.Equal(t, "agent.zip", header.Filename)
			writeJSON(t, w, map[string]any{
				"agent":    map[string]any{"id": "a2", "name": "imported", "created_at": "2026-08-01T10:00:00Z", "updated_at": "2026-08-01T10:00:00Z"},
				"warnings": []string{"skill foo not available"},
			})
		default:
			http.NotFound(w, r)
		}
	}))

	got, err := c.ExportAgent(context.Background(), "a1", &ExportAgentOptions{IncludeMemory: true})
	require.NoError(t, err)
	assert.Equal(t, bundle, got)

	result, err := c.ImportAgent(context.Background(), got, "", &ImportAgentOptions{MergeStrategy: "overwrite"})
	require.NoError(t, err)
	assert.Equal(t, "a2", result.Agent.ID)
	assert.Len(t, result.Warnings, 1)
}

func TestClient_SessionLifecycle(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/sessions":
			writeJSON(t, w, map[string]any{"id": "s1", "name": "work", "created_at": "2026-08-01T10:00:00Z", "updated_at": "2026-08-01T10:00:00Z"})
		case r.Method == http.MethodPost && r.URL.Path == "/sessions/s1/fork":
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			assert.Equal(t, "branch", body["name"])
			writeJSON(t, w, map[string]any{"id": "s2", "name": "branch", "created_at": "2026-08-01T10:00:00Z", "updated_at": "2026-08-01T10:00:00Z"})
		case r.Method == http.MethodDelete && r.URL.Path == "/sessions/s1":
			assert.Equal(t, "true", r.URL.Query().Get("delete_history"))
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	}))

	ctx := context.Background()
	s, err := c.CreateSession(ctx, &CreateSessionRequest{Name: "work"})
	require.NoError(t, err)
	assert.Equal(t, "s1", s.ID)

	fork, err := c.ForkSession(ctx, "s1", "branch")
	require.NoError(t, err)
	assert.Equal(t, "s2", fork.ID)

	require.NoError(t, c.DeleteSession(ctx, "s1", true))
}

func TestClient_ModelsAndHooks(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/models" && r.Method == http.MethodGet:
			writeJSON(t, w, []map[string]any{
				{"id": "m1", "name": "Fast", "provider": "acme"},
			})
		case r.URL.Path == "/models/active" && r.Method == http.MethodPost:
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			assert.Equal(t, "m1", body["model_id"])
			w.WriteHeader(http.StatusNoContent)
		case r.URL.Path == "/hooks/h1/disable" && r.Method == http.MethodPost:
			writeJSON(t, w, map[string]any{"id": "h1", "type": "pre_tool", "name": "lint", "command": "lint.sh", "enabled": false, "created_at": "2026-08-01T10:00:00Z"})
		default:
			http.NotFound(w, r)
		}
	}))

	ctx := context.Background()
	models, err := c.ListModels(ctx)
	require.NoError(t, err)
	require.Len(t, models, 1)

	require.NoError(t, c.SetModel(ctx, "m1"))

	hook, err := c.DisableHook(ctx, "h1")
	require.NoError(t, err)
	assert.False(t, hook.Enabled)
}

func TestClient_ErrorsPassThroughTaxonomy(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"nope"}`, http.StatusUnauthorized)
	}))

	_, err := c.GetAgent(context.Background(), "a1")
	var authErr *transport.AuthenticationError
	require.ErrorAs(t, err, &authErr)
}
