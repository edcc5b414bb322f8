package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout bounds a unary request, and the wait for each chunk of a
// stream, when no explicit timeout is configured.
const DefaultTimeout = 30 * time.Second

// RequestOptions carries the optional parts of a request. Params become the
// query string; JSON, when non-nil, is marshaled as the request body with an
// application/json content type; Headers are merged over the transport's
// defaults.
type RequestOptions struct {
	Params  url.Values
	JSON    any
	Headers http.Header
}

// UploadOptions carries the optional parts of a multipart upload.
type UploadOptions struct {
	Params url.Values
	// Fields are extra plain form fields sent alongside the file part.
	Fields map[string]string
	// ContentType overrides the file part's content type. Defaults to
	// application/octet-stream.
	ContentType string
}

// Transport is the protocol-independent surface the client façade is written
// against. Implementations map protocol failures onto the shared error
// taxonomy: *AuthenticationError for credential rejection, *RateLimitError
// for throttling, *ConnectionError when the peer is unreachable, and
// *TransportError for everything else.
type Transport interface {
	// Request performs a unary exchange and returns the raw response body.
	// A 204 response yields a nil body.
	Request(ctx context.Context, method, path string, opts *RequestOptions) (json.RawMessage, error)

	// Stream opens a server-sent-event stream. The returned stream is
	// forward-only and driven by the caller's pull; it must be closed when
	// abandoned early.
	Stream(ctx context.Context, method, path string, opts *RequestOptions) (*Stream, error)

	// Download fetches raw bytes, bypassing JSON decoding.
	Download(ctx context.Context, path string, params url.Values) ([]byte, error)

	// Upload sends content as a multipart file field named "file" and
	// returns the raw response body.
	Upload(ctx context.Context, path, filename string, content []byte, opts *UploadOptions) (json.RawMessage, error)

	// Close releases pooled connections. Idempotent.
	Close() error
}

// Option configures a transport.
type Option func(*options)

type options struct {
	apiKey  string
	headers http.Header
	timeout time.Duration
	client  *http.Client
}

func newOptions(opts []Option) options {
	o := options{
		headers: make(http.Header),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithAPIKey sends the key as a bearer token on every exchange. For
// WebSocket connections the token is carried on the handshake request.
func WithAPIKey(key string) Option {
	return func(o *options) { o.apiKey = key }
}

// WithHeader adds a default header to every exchange.
func WithHeader(key, value string) Option {
	return func(o *options) { o.headers.Set(key, value) }
}

// WithTimeout bounds each unary request, and the wait for each chunk of a
// stream. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithHTTPClient substitutes the underlying HTTP client. Mostly a test hook.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.client = c }
}
