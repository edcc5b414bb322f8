package goose

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/openharness/harness-go/event"
	"github.com/openharness/harness-go/harness"
	"github.com/openharness/harness-go/transport"
)

// Adapter runs executions through a remote Goose agent server.
type Adapter struct {
	harness.Base
	config Config
	server *serverClient

	mu        sync.Mutex
	validated bool
}

var _ harness.Adapter = (*Adapter)(nil)

// New returns an adapter with the given options applied over defaults.
func New(opts ...Option) *Adapter {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	t := cfg.transport
	if t == nil {
		var topts []transport.Option
		if cfg.APIKey != "" {
			topts = append(topts, transport.WithAPIKey(cfg.APIKey))
		}
		if cfg.Timeout > 0 {
			topts = append(topts, transport.WithTimeout(cfg.Timeout))
		}
		t = transport.NewREST(cfg.BaseURL, topts...)
	}
	return &Adapter{config: cfg, server: &serverClient{t: t}}
}

// ID returns "goose".
func (a *Adapter) ID() string { return "goose" }

// Name returns the human-readable adapter name.
func (a *Adapter) Name() string { return "Goose" }

// Version returns the adapter version.
func (a *Adapter) Version() string { return "0.1.0" }

// Capabilities declares what the server backend supports. Tools are managed
// through the server's MCP extension config, not through this adapter.
func (a *Adapter) Capabilities() harness.Capabilities {
	return harness.Capabilities{
		Execution: true,
		Streaming: true,
		Sessions:  true,
	}
}

// Execute runs a prompt to completion by draining the event stream. Backend
// failures reported in-band come back inside the result, not as a Go error;
// a Go error means the execution could not be started at all.
func (a *Adapter) Execute(ctx context.Context, req *harness.ExecuteRequest) (*harness.ExecutionResult, error) {
	stream, err := a.ExecuteStream(ctx, req)
	if err != nil {
		return nil, err
	}
	return a.buildResult(event.Collect(stream)), nil
}

// buildResult folds a collected stream into the execution result. A terminal
// error event becomes a note appended to the output and recorded in metadata,
// preserving whatever partial output preceded it.
func (a *Adapter) buildResult(res event.Result) *harness.ExecutionResult {
	metadata := map[string]any{
		"base_url": a.config.BaseURL,
	}
	output := res.Output
	if res.Err != nil {
		if output != "" {
			output += "\n"
		}
		output += fmt.Sprintf("[Error: %s]", res.Err.Message)
		metadata["error"] = res.Err.Message
		metadata["error_code"] = res.Err.Code
	}
	return &harness.ExecutionResult{
		Output:    output,
		ToolCalls: res.ToolCalls,
		Usage:     res.Usage,
		Metadata:  metadata,
	}
}

// ExecuteStream posts the prompt to the server and streams translated events.
// A request without a session id gets a fresh session, torn down after the
// stream ends; canceling ctx abandons the stream and releases the connection.
func (a *Adapter) ExecuteStream(ctx context.Context, req *harness.ExecuteRequest) (<-chan event.Event, error) {
	if req == nil || req.Message == "" {
		return nil, errors.New("execute request needs a message")
	}
	if err := a.ensureValidated(ctx); err != nil {
		return nil, err
	}

	sessionID := req.SessionID
	ownsSession := false
	if sessionID == "" {
		id, err := a.server.StartAgent(ctx, startAgentRequest{
			WorkingDirectory: a.config.WorkDir,
			RecipeName:       a.config.Recipe,
		})
		if err != nil {
			return nil, err
		}
		sessionID = id
		ownsSession = true
	}

	stream, err := a.server.Reply(ctx, chatRequest{
		SessionID:   sessionID,
		UserMessage: userMessage(req.Message),
		RecipeName:  a.config.Recipe,
	})
	if err != nil {
		if ownsSession {
			a.stopSession(sessionID)
		}
		return nil, err
	}

	out := make(chan event.Event, a.config.EventBufferSize)
	go func() {
		defer close(out)
		defer stream.Close()
		if ownsSession {
			defer a.stopSession(sessionID)
		}

		var t translator
		emit := func(ev event.Event) bool {
			select {
			case out <- ev:
				return true
			case <-ctx.Done():
				return false
			}
		}

		for stream.Next() {
			for _, ev := range t.translate(stream.Event()) {
				if !emit(ev) {
					return
				}
			}
			if t.terminal {
				return
			}
		}
		if err := stream.Err(); err != nil {
			emit(event.ErrorEvent{Code: "stream_error", Message: err.Error(), Recoverable: true})
			return
		}
		// Server closed the stream without a Finish or Error event.
		emit(event.ErrorEvent{Code: "stream_end", Message: "server ended the stream without finishing"})
	}()
	return out, nil
}

// Close releases pooled connections to the server.
func (a *Adapter) Close() error {
	return a.server.t.Close()
}

// ensureValidated probes /health once per adapter before the first execution.
func (a *Adapter) ensureValidated(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.validated {
		return nil
	}
	if err := a.server.Health(ctx); err != nil {
		return err
	}
	a.validated = true
	return nil
}

// stopSession tears down a session the adapter started. Best effort; runs on
// its own context so teardown survives the caller's cancellation.
func (a *Adapter) stopSession(sessionID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = a.server.StopAgent(ctx, sessionID)
}
