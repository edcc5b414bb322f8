package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/openharness/harness-go/event"
	"github.com/openharness/harness-go/transport"
)

func validateExecuteRequest(req *ExecuteRequest) error {
	if req == nil || req.Message == "" {
		return fmt.Errorf("execute request needs a message")
	}
	if req.Temperature != nil && (*req.Temperature < 0 || *req.Temperature > 1) {
		return fmt.Errorf("temperature %v out of range [0, 1]", *req.Temperature)
	}
	return nil
}

// Execute runs a prompt synchronously and returns the finished execution.
func (c *Client) Execute(ctx context.Context, req *ExecuteRequest) (*Execution, error) {
	if err := validateExecuteRequest(req); err != nil {
		return nil, err
	}
	exec, err := requestInto[Execution](ctx, c, http.MethodPost, "/execute", &transport.RequestOptions{JSON: req})
	if err != nil {
		return nil, err
	}
	return &exec, nil
}

// ExecuteStream runs a prompt and streams execution events as the harness
// produces them. The caller must Close the stream when abandoning it early.
func (c *Client) ExecuteStream(ctx context.Context, req *ExecuteRequest) (*ExecutionStream, error) {
	if err := validateExecuteRequest(req); err != nil {
		return nil, err
	}
	stream, err := c.transport.Stream(ctx, http.MethodPost, "/execute/stream", &transport.RequestOptions{JSON: req})
	if err != nil {
		return nil, err
	}
	return &ExecutionStream{stream: stream}, nil
}

// GetExecution fetches the record of a current or past execution.
func (c *Client) GetExecution(ctx context.Context, executionID string) (*Execution, error) {
	exec, err := requestInto[Execution](ctx, c, http.MethodGet, "/executions/"+executionID, nil)
	if err != nil {
		return nil, err
	}
	return &exec, nil
}

// CancelExecution asks the service to stop a running execution.
func (c *Client) CancelExecution(ctx context.Context, executionID string) error {
	_, err := c.transport.Request(ctx, http.MethodPost, "/executions/"+executionID+"/cancel", nil)
	return err
}

// ExecutionStream iterates decoded execution events. Payloads the event
// codec does not recognize are skipped, so new server-side event kinds do
// not break older clients. A stream that drops before a terminal done or
// error event reports the failure through Err.
type ExecutionStream struct {
	stream *transport.Stream

	ev          event.Event
	err         error
	sawTerminal bool
}

// Next advances to the next recognized event.
func (s *ExecutionStream) Next() bool {
	for s.stream.Next() {
		ev, err := event.FromMap(s.stream.Event())
		if err != nil || ev == nil {
			continue
		}
		if event.IsTerminal(ev) {
			s.sawTerminal = true
		}
		s.ev = ev
		return true
	}
	s.ev = nil
	if err := s.stream.Err(); err != nil {
		s.err = err
	} else if !s.sawTerminal {
		s.err = &transport.TransportError{Message: "stream ended without a terminal event"}
	}
	return false
}

// Event returns the event read by the last successful Next.
func (s *ExecutionStream) Event() event.Event { return s.ev }

// Err returns the failure that ended the stream, or nil after a clean end.
func (s *ExecutionStream) Err() error { return s.err }

// Close releases the underlying connection. Idempotent.
func (s *ExecutionStream) Close() error { return s.stream.Close() }
