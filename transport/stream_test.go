package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sseHandler(t *testing.T, lines ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "text/event-stream", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "text/event-stream")
		flusher, ok := w.(http.Flusher)
		require.True(t, ok)
		for _, line := range lines {
			_, err := w.Write([]byte(line + "\n"))
			require.NoError(t, err)
			flusher.Flush()
		}
	}
}

func TestStream_DecodesEvents(t *testing.T) {
	server := httptest.NewServer(sseHandler(t,
		`: keepalive`,
		`data: {"type":"text","content":"hi"}`,
		``,
		`data: {"type":"done"}`,
		``,
	))
	defer server.Close()

	rest := NewREST(server.URL)
	defer rest.Close()

	stream, err := rest.Stream(context.Background(), http.MethodPost, "/v1/executions/stream", nil)
	require.NoError(t, err)
	defer stream.Close()

	var events []map[string]any
	for stream.Next() {
		events = append(events, stream.Event())
	}
	require.NoError(t, stream.Err())

	require.Len(t, events, 2)
	assert.Equal(t, "text", events[0]["type"])
	assert.Equal(t, "hi", events[0]["content"])
	assert.Equal(t, "done", events[1]["type"])
}

func TestStream_RawFallbackForNonJSONLines(t *testing.T) {
	server := httptest.NewServer(sseHandler(t,
		`data: not json at all`,
		``,
	))
	defer server.Close()

	rest := NewREST(server.URL)
	defer rest.Close()

	stream, err := rest.Stream(context.Background(), http.MethodGet, "/v1/executions/stream", nil)
	require.NoError(t, err)
	defer stream.Close()

	require.True(t, stream.Next())
	assert.Equal(t, map[string]any{"type": "raw", "data": "not json at all"}, stream.Event())

	assert.False(t, stream.Next())
	require.NoError(t, stream.Err())
}

func TestStream_HTTPErrorBeforeStream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"bad key"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	rest := NewREST(server.URL)
	defer rest.Close()

	_, err := rest.Stream(context.Background(), http.MethodGet, "/v1/executions/stream", nil)

	var authErr *AuthenticationError
	require.ErrorAs(t, err, &authErr)
}

func TestStream_CloseReleasesConnection(t *testing.T) {
	handlerDone := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer close(handlerDone)
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		w.Write([]byte("data: {\"type\":\"text\",\"content\":\"first\"}\n\n"))
		flusher.Flush()
		// Keep the stream open until the client walks away.
		<-r.Context().Done()
	}))
	defer server.Close()

	rest := NewREST(server.URL)
	defer rest.Close()

	stream, err := rest.Stream(context.Background(), http.MethodGet, "/v1/executions/stream", nil)
	require.NoError(t, err)

	require.True(t, stream.Next())
	require.NoError(t, stream.Close())
	require.NoError(t, stream.Close(), "close is idempotent")

	select {
	case <-handlerDone:
	case <-time.After(2 * time.Second):
		t.Fatal("server handler still running after stream close")
	}
}

func TestStream_ChunkTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.(http.Flusher).Flush()
		select {
		case <-time.After(5 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	rest := NewREST(server.URL, WithTimeout(50*time.Millisecond))
	defer rest.Close()

	stream, err := rest.Stream(context.Background(), http.MethodGet, "/v1/executions/stream", nil)
	require.NoError(t, err)
	defer stream.Close()

	assert.False(t, stream.Next())

	var tErr *TransportError
	require.ErrorAs(t, stream.Err(), &tErr)
	assert.Contains(t, tErr.Message, "timed out")
}
