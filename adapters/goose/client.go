package goose

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openharness/harness-go/transport"
)

// serverClient is a thin wrapper over the Goose server's session API.
type serverClient struct {
	t transport.Transport
}

type startAgentRequest struct {
	WorkingDirectory string `json:"working_directory,omitempty"`
	RecipeName       string `json:"recipe_name,omitempty"`
}

type startAgentResponse struct {
	SessionID string `json:"session_id"`
}

// chatMessage is the server's message envelope. Content is always a single
// text block when sent by the adapter.
type chatMessage struct {
	Role    string           `json:"role"`
	Content []map[string]any `json:"content"`
}

type chatRequest struct {
	SessionID   string      `json:"session_id"`
	UserMessage chatMessage `json:"user_message"`
	RecipeName  string      `json:"recipe_name,omitempty"`
}

func userMessage(text string) chatMessage {
	return chatMessage{
		Role:    "user",
		Content: []map[string]any{{"type": "text", "text": text}},
	}
}

// Health probes the server. Used once per adapter to validate the target
// before the first execution.
func (c *serverClient) Health(ctx context.Context) error {
	if _, err := c.t.Request(ctx, "GET", "/health", nil); err != nil {
		return fmt.Errorf("goose server health check: %w", err)
	}
	return nil
}

// StartAgent opens a new session and returns its id.
func (c *serverClient) StartAgent(ctx context.Context, req startAgentRequest) (string, error) {
	raw, err := c.t.Request(ctx, "POST", "/agent/start", &transport.RequestOptions{JSON: req})
	if err != nil {
		return "", fmt.Errorf("start agent: %w", err)
	}
	var resp startAgentResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("start agent: decode response: %w", err)
	}
	if resp.SessionID == "" {
		return "", fmt.Errorf("start agent: server returned no session id")
	}
	return resp.SessionID, nil
}

// StopAgent tears a session down.
func (c *serverClient) StopAgent(ctx context.Context, sessionID string) error {
	_, err := c.t.Request(ctx, "POST", "/agent/stop", &transport.RequestOptions{
		JSON: map[string]string{"session_id": sessionID},
	})
	if err != nil {
		return fmt.Errorf("stop agent: %w", err)
	}
	return nil
}

// Reply posts the prompt and returns the server's event stream.
func (c *serverClient) Reply(ctx context.Context, req chatRequest) (*transport.Stream, error) {
	stream, err := c.t.Stream(ctx, "POST", "/reply", &transport.RequestOptions{JSON: req})
	if err != nil {
		return nil, fmt.Errorf("reply: %w", err)
	}
	return stream, nil
}
