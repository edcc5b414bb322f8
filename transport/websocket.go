package transport

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocket is the bidirectional counterpart of REST for harness services
// that push frames. Every frame on the wire is a JSON object. A WebSocket
// supports one reader at a time: Receive, Listen and RequestResponse must
// not run concurrently with each other. Writes are serialized internally.
type WebSocket struct {
	url  string
	opts options

	dialer *websocket.Dialer

	mu        sync.Mutex // guards conn and writes
	conn      *websocket.Conn
	connected bool
}

// NewWebSocket returns an unconnected WebSocket for url (a ws:// or wss://
// endpoint). Call Connect before any other method.
func NewWebSocket(url string, opts ...Option) *WebSocket {
	o := newOptions(opts)
	return &WebSocket{
		url:  url,
		opts: o,
		dialer: &websocket.Dialer{
			HandshakeTimeout: o.timeout,
		},
	}
}

// Connect performs the handshake. Credentials and default headers configured
// on the transport are carried on the handshake request. Connecting an
// already connected transport is an error.
func (w *WebSocket) Connect(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.connected {
		return &TransportError{Message: "already connected"}
	}

	header := make(http.Header)
	for key, values := range w.opts.headers {
		header[key] = append([]string(nil), values...)
	}
	if w.opts.apiKey != "" {
		header.Set("Authorization", "Bearer "+w.opts.apiKey)
	}

	conn, resp, err := w.dialer.DialContext(ctx, w.url, header)
	if err != nil {
		if resp != nil {
			defer resp.Body.Close()
			switch resp.StatusCode {
			case http.StatusUnauthorized:
				return &AuthenticationError{TransportError{
					Message:    "authentication failed",
					StatusCode: resp.StatusCode,
					Cause:      err,
				}}
			case http.StatusTooManyRequests:
				return &RateLimitError{TransportError: TransportError{
					Message:    "rate limited",
					StatusCode: resp.StatusCode,
					Cause:      err,
				}}
			}
		}
		return &ConnectionError{TransportError{Message: "websocket handshake failed", Cause: err}}
	}
	w.conn = conn
	w.connected = true
	return nil
}

// Connected reports whether the transport holds a live connection.
func (w *WebSocket) Connected() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.connected
}

// Send writes message as a JSON text frame.
func (w *WebSocket) Send(ctx context.Context, message map[string]any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.connected {
		return &ConnectionError{TransportError{Message: "not connected"}}
	}
	if deadline, ok := ctx.Deadline(); ok {
		w.conn.SetWriteDeadline(deadline)
	} else if w.opts.timeout > 0 {
		w.conn.SetWriteDeadline(time.Now().Add(w.opts.timeout))
	}
	if err := w.conn.WriteJSON(message); err != nil {
		return &ConnectionError{TransportError{Message: "websocket write failed", Cause: err}}
	}
	return nil
}

// Receive blocks for the next frame. A context deadline, when present,
// bounds the wait; otherwise Receive waits indefinitely, matching a
// long-lived listen loop.
func (w *WebSocket) Receive(ctx context.Context) (map[string]any, error) {
	w.mu.Lock()
	conn := w.conn
	connected := w.connected
	w.mu.Unlock()
	if !connected {
		return nil, &ConnectionError{TransportError{Message: "not connected"}}
	}

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetReadDeadline(deadline)
	} else {
		conn.SetReadDeadline(time.Time{})
	}

	var message map[string]any
	if err := conn.ReadJSON(&message); err != nil {
		if ctx.Err() != nil {
			return nil, &TransportError{Message: "receive canceled", Cause: ctx.Err()}
		}
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return nil, &ConnectionError{TransportError{Message: "connection closed by peer", Cause: err}}
		}
		return nil, &ConnectionError{TransportError{Message: "websocket read failed", Cause: err}}
	}
	return message, nil
}

// Listen reads frames into the returned channel until the context is
// canceled, the peer closes, or a read fails. The channel is closed when the
// loop ends. Cancellation interrupts a read blocked on a silent peer; the
// connection is not reusable for reads afterwards.
func (w *WebSocket) Listen(ctx context.Context) <-chan map[string]any {
	out := make(chan map[string]any)

	w.mu.Lock()
	conn := w.conn
	connected := w.connected
	w.mu.Unlock()
	if !connected {
		close(out)
		return out
	}

	conn.SetReadDeadline(time.Time{})

	stop := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			// A deadline in the past fails the pending read and every read
			// after it, so the loop cannot stay blocked.
			conn.SetReadDeadline(time.Now())
		case <-stop:
		}
	}()

	go func() {
		defer close(out)
		defer close(stop)
		for {
			var message map[string]any
			if err := conn.ReadJSON(&message); err != nil {
				return
			}
			select {
			case out <- message:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// RequestResponse sends request, then reads frames until match accepts one
// and returns it. Frames that match does not accept are discarded; they
// belong to other in-flight exchanges.
func (w *WebSocket) RequestResponse(ctx context.Context, request map[string]any, match func(map[string]any) bool) (map[string]any, error) {
	if err := w.Send(ctx, request); err != nil {
		return nil, err
	}
	for {
		message, err := w.Receive(ctx)
		if err != nil {
			return nil, err
		}
		if match == nil || match(message) {
			return message, nil
		}
	}
}

// Close sends a close frame and tears the connection down. Idempotent.
func (w *WebSocket) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.connected {
		return nil
	}
	w.connected = false
	w.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	err := w.conn.Close()
	w.conn = nil
	if err != nil {
		return &TransportError{Message: "closing websocket", Cause: err}
	}
	return nil
}
