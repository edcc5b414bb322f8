package transport

import (
	"fmt"
)

// TransportError is the base failure for all transport operations: an
// unexpected status code, malformed response, or timeout. StatusCode is zero
// when the failure happened before a response arrived; Body carries the
// parsed or raw response body for diagnostics.
type TransportError struct {
	Message    string
	StatusCode int
	Body       any
	Cause      error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport error: %s (status %d)", e.Message, e.StatusCode)
	}
	if e.Cause != nil {
		return fmt.Sprintf("transport error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("transport error: %s", e.Message)
}

func (e *TransportError) Unwrap() error { return e.Cause }

// ConnectionError reports a DNS, TCP or TLS failure, or an unreachable peer.
// Always retryable by the caller.
type ConnectionError struct {
	TransportError
}

// Unwrap exposes the embedded TransportError so errors.As can classify a
// ConnectionError as a TransportError.
func (e *ConnectionError) Unwrap() error { return &e.TransportError }

// AuthenticationError reports a 401-class failure. Not retryable without
// fixing credentials.
type AuthenticationError struct {
	TransportError
}

// Unwrap exposes the embedded TransportError.
func (e *AuthenticationError) Unwrap() error { return &e.TransportError }

// RateLimitError reports a 429-class failure. RetryAfter is the server's
// Retry-After hint in seconds, or zero when absent.
type RateLimitError struct {
	TransportError
	RetryAfter int
}

// Unwrap exposes the embedded TransportError.
func (e *RateLimitError) Unwrap() error { return &e.TransportError }
