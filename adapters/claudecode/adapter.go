package claudecode

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/openharness/harness-go/event"
	"github.com/openharness/harness-go/harness"
)

// Adapter runs executions through the Claude Code CLI.
type Adapter struct {
	harness.Base
	config Config
}

var _ harness.Adapter = (*Adapter)(nil)

// New returns an adapter with the given options applied over defaults.
func New(opts ...Option) *Adapter {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Adapter{config: cfg}
}

// ID returns "claude-code".
func (a *Adapter) ID() string { return "claude-code" }

// Name returns the human-readable adapter name.
func (a *Adapter) Name() string { return "Claude Code" }

// Version returns the adapter version.
func (a *Adapter) Version() string { return "0.1.0" }

// Capabilities declares what the CLI backend supports. Sessions and memory
// are handled inside the CLI itself and not exposed here.
func (a *Adapter) Capabilities() harness.Capabilities {
	return harness.Capabilities{
		Execution: true,
		Streaming: true,
		Skills:    true,
		Subagents: true,
		MCP:       true,
		Files:     true,
		Hooks:     true,
		Planning:  true,
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
		"model": a.config.Model,
		"cwd":   a.config.WorkDir,
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

// ExecuteStream spawns the CLI and streams translated events. The channel
// closes after the terminal event; canceling ctx tears the process group
// down.
func (a *Adapter) ExecuteStream(ctx context.Context, req *harness.ExecuteRequest) (<-chan event.Event, error) {
	if req == nil || req.Message == "" {
		return nil, errors.New("execute request needs a message")
	}

	runCtx := ctx
	cancel := context.CancelFunc(func() {})
	if a.config.Timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, a.config.Timeout)
	}

	pm := newProcessManager(a.config)
	args := BuildCLIArgs(req.Message, a.config, requestOverrides{
		Model:        req.Model,
		SystemPrompt: req.SystemPrompt,
		SessionID:    req.SessionID,
		Tools:        req.Tools,
	})
	if err := pm.Start(runCtx, args); err != nil {
		cancel()
		return nil, err
	}

	if a.config.StderrHandler != nil {
		go drainStderr(pm.Stderr(), a.config.StderrHandler)
	}

	out := make(chan event.Event, a.config.EventBufferSize)
	go func() {
		defer close(out)
		defer cancel()
		defer pm.Stop()

		var t translator
		emit := func(ev event.Event) bool {
			select {
			case out <- ev:
				return true
			case <-runCtx.Done():
				return false
			}
		}

		for {
			line, err := pm.ReadLine()
			if err != nil {
				if !errors.Is(err, io.EOF) {
					emit(event.ErrorEvent{Code: "read_error", Message: err.Error()})
				} else if !t.terminal {
					if runCtx.Err() != nil {
						emit(event.ErrorEvent{Code: "timeout", Message: "execution canceled or timed out", Recoverable: true})
					} else {
						emit(event.ErrorEvent{Code: "process_exit", Message: "CLI exited before reporting a result"})
					}
				}
				return
			}

			msg, err := ParseMessage(line)
			if err != nil {
				emit(event.ErrorEvent{
					Code:    "protocol_error",
					Message: (&ProtocolError{Message: "failed to parse message", Line: string(line), Cause: err}).Error(),
				})
				return
			}
			if msg == nil {
				continue
			}
			for _, ev := range t.translate(msg) {
				if !emit(ev) {
					return
				}
			}
			if t.terminal {
				return
			}
		}
	}()
	return out, nil
}

func drainStderr(r io.Reader, handler func([]byte)) {
	if r == nil {
		return
	}
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			handler(buf[:n])
		}
		if err != nil {
			return
		}
	}
}
