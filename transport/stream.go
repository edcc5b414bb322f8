package transport

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Stream is a forward-only server-sent-event stream. Use it like a
// bufio.Scanner: call Next until it returns false, read each payload with
// Event, then check Err. A caller abandoning the stream early must Close it
// to release the connection.
//
// Each data line is decoded as a JSON object. Lines that are not valid JSON
// objects are wrapped as {"type": "raw", "data": <line>} so malformed server
// output degrades instead of killing the stream.
type Stream struct {
	body    io.ReadCloser
	cancel  context.CancelFunc
	reader  *bufio.Reader
	timeout time.Duration

	event    map[string]any
	err      error
	timedOut atomic.Bool

	closeOnce sync.Once
}

func newStream(body io.ReadCloser, cancel context.CancelFunc, timeout time.Duration) *Stream {
	return &Stream{
		body:    body,
		cancel:  cancel,
		reader:  bufio.NewReader(body),
		timeout: timeout,
	}
}

// Next advances to the next event. It returns false when the server finishes
// the stream, the context is canceled, the per-chunk timeout elapses, or the
// connection drops; Err distinguishes the failure cases from a clean end.
func (s *Stream) Next() bool {
	if s.err != nil {
		return false
	}
	for {
		line, err := s.readLine()
		if err != nil {
			s.event = nil
			if !errors.Is(err, io.EOF) {
				s.err = s.classifyReadError(err)
			}
			return false
		}

		payload, ok := strings.CutPrefix(line, "data:")
		if !ok {
			continue // comments, event/id/retry fields, blank separators
		}
		payload = strings.TrimPrefix(payload, " ")
		if payload == "" {
			continue
		}

		var decoded map[string]any
		if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
			decoded = map[string]any{"type": "raw", "data": payload}
		}
		s.event = decoded
		return true
	}
}

// Event returns the payload read by the last successful Next.
func (s *Stream) Event() map[string]any { return s.event }

// Err returns the failure that ended the stream, or nil after a clean end.
func (s *Stream) Err() error { return s.err }

// Close releases the connection. Idempotent; safe after the stream ends on
// its own.
func (s *Stream) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()
		s.body.Close()
	})
	return nil
}

func (s *Stream) readLine() (string, error) {
	if s.timeout > 0 {
		timer := time.AfterFunc(s.timeout, func() {
			s.timedOut.Store(true)
			s.cancel()
		})
		defer timer.Stop()
	}
	line, err := s.reader.ReadString('\n')
	if err != nil {
		if line != "" && errors.Is(err, io.EOF) {
			// Final line without a newline still counts.
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (s *Stream) classifyReadError(err error) error {
	if s.timedOut.Load() {
		return &TransportError{Message: "stream timed out waiting for data", Cause: err}
	}
	if errors.Is(err, context.Canceled) {
		return &TransportError{Message: "stream canceled", Cause: err}
	}
	return &ConnectionError{TransportError{Message: "stream connection lost", Cause: err}}
}
