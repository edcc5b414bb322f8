package client

import (
	"context"
	"encoding/json"
	"time"

	"github.com/openharness/harness-go/transport"
)

// DefaultBaseURL is used when New is given an empty base URL.
const DefaultBaseURL = "https://api.openharness.org/v1"

// Client talks to a remote harness service. It is safe for concurrent use;
// Close releases the underlying transport.
type Client struct {
	transport transport.Transport
}

// Option configures a Client.
type Option func(*config)

type config struct {
	apiKey    string
	timeout   time.Duration
	transport transport.Transport
}

// WithAPIKey authenticates every request with a bearer token.
func WithAPIKey(key string) Option {
	return func(c *config) { c.apiKey = key }
}

// WithTimeout bounds each request. Defaults to transport.DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *config) { c.timeout = d }
}

// WithTransport substitutes the transport entirely; base URL, API key and
// timeout options are then ignored.
func WithTransport(t transport.Transport) Option {
	return func(c *config) { c.transport = t }
}

// New returns a Client for the service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	cfg := config{timeout: transport.DefaultTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.transport == nil {
		if baseURL == "" {
			baseURL = DefaultBaseURL
		}
		cfg.transport = transport.NewREST(baseURL,
			transport.WithAPIKey(cfg.apiKey),
			transport.WithTimeout(cfg.timeout),
		)
	}
	return &Client{transport: cfg.transport}
}

// Transport exposes the underlying transport, mainly so callers can share it
// with a WebSocket channel or close it on their own schedule.
func (c *Client) Transport() transport.Transport { return c.transport }

// Close releases the underlying transport.
func (c *Client) Close() error { return c.transport.Close() }

// requestInto performs a unary request and decodes the response into T. A
// body-less response yields T's zero value.
func requestInto[T any](ctx context.Context, c *Client, method, path string, opts *transport.RequestOptions) (T, error) {
	var out T
	raw, err := c.transport.Request(ctx, method, path, opts)
	if err != nil {
		return out, err
	}
	if raw == nil {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, &transport.TransportError{Message: "decoding response body", Cause: err}
	}
	return out, nil
}

func unmarshalResponse(raw json.RawMessage, out any) error {
	if raw == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &transport.TransportError{Message: "decoding response body", Cause: err}
	}
	return nil
}

// listPage fetches one page of a paginated listing.
func listPage[T any](ctx context.Context, c *Client, path string, page PaginationParams) (*PaginatedResponse[T], error) {
	if err := page.validate(); err != nil {
		return nil, err
	}
	resp, err := requestInto[PaginatedResponse[T]](ctx, c, "GET", path, &transport.RequestOptions{
		Params: page.values(),
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
