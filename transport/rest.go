package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
)

// REST implements Transport over HTTP. The underlying connection pool is
// created lazily on first use and shared by all calls, so a REST value is
// safe for concurrent use.
type REST struct {
	baseURL string
	opts    options

	mu     sync.Mutex
	unary  *http.Client // bounded by the configured timeout
	stream *http.Client // unbounded; streams enforce a per-chunk timeout
	closed bool
}

var _ Transport = (*REST)(nil)

// NewREST returns a REST transport rooted at baseURL. A trailing slash on
// baseURL is ignored.
func NewREST(baseURL string, opts ...Option) *REST {
	return &REST{
		baseURL: strings.TrimRight(baseURL, "/"),
		opts:    newOptions(opts),
	}
}

func (r *REST) clients() (unary, stream *http.Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.unary == nil {
		if r.opts.client != nil {
			r.unary = r.opts.client
			r.stream = r.opts.client
		} else {
			r.unary = &http.Client{Timeout: r.opts.timeout}
			r.stream = &http.Client{}
		}
		r.closed = false
	}
	return r.unary, r.stream
}

func (r *REST) newRequest(ctx context.Context, method, path string, opts *RequestOptions) (*http.Request, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}

	u := r.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(opts.Params) > 0 {
		u += "?" + opts.Params.Encode()
	}

	var body io.Reader
	if opts.JSON != nil {
		buf, err := json.Marshal(opts.JSON)
		if err != nil {
			return nil, &TransportError{Message: "encoding request body", Cause: err}
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, &TransportError{Message: "building request", Cause: err}
	}

	for key, values := range r.opts.headers {
		req.Header[key] = append([]string(nil), values...)
	}
	if r.opts.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.opts.apiKey)
	}
	if opts.JSON != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range opts.Headers {
		req.Header[key] = append([]string(nil), values...)
	}
	return req, nil
}

// Request performs a unary exchange and returns the raw response body, or
// nil for a 204.
func (r *REST) Request(ctx context.Context, method, path string, opts *RequestOptions) (json.RawMessage, error) {
	req, err := r.newRequest(ctx, method, path, opts)
	if err != nil {
		return nil, err
	}

	unary, _ := r.clients()
	resp, err := unary.Do(req)
	if err != nil {
		return nil, classifyRoundTripError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Message: "reading response body", StatusCode: resp.StatusCode, Cause: err}
	}
	if err := statusError(resp, body); err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNoContent || len(body) == 0 {
		return nil, nil
	}
	return json.RawMessage(body), nil
}

// Stream opens a server-sent-event stream. Request construction and error
// mapping match Request; the stream stays open until the server finishes,
// the context is canceled, or the configured timeout elapses between chunks.
func (r *REST) Stream(ctx context.Context, method, path string, opts *RequestOptions) (*Stream, error) {
	streamCtx, cancel := context.WithCancel(ctx)

	req, err := r.newRequest(streamCtx, method, path, opts)
	if err != nil {
		cancel()
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")

	_, streamClient := r.clients()
	resp, err := streamClient.Do(req)
	if err != nil {
		cancel()
		return nil, classifyRoundTripError(err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		cancel()
		return nil, statusError(resp, body)
	}
	return newStream(resp.Body, cancel, r.opts.timeout), nil
}

// Download fetches raw bytes without JSON decoding.
func (r *REST) Download(ctx context.Context, path string, params url.Values) ([]byte, error) {
	req, err := r.newRequest(ctx, http.MethodGet, path, &RequestOptions{Params: params})
	if err != nil {
		return nil, err
	}

	unary, _ := r.clients()
	resp, err := unary.Do(req)
	if err != nil {
		return nil, classifyRoundTripError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Message: "reading download body", StatusCode: resp.StatusCode, Cause: err}
	}
	if err := statusError(resp, body); err != nil {
		return nil, err
	}
	return body, nil
}

// Upload sends content as a multipart file field named "file".
func (r *REST) Upload(ctx context.Context, path, filename string, content []byte, opts *UploadOptions) (json.RawMessage, error) {
	if opts == nil {
		opts = &UploadOptions{}
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	contentType := opts.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header := make(map[string][]string)
	header["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name="file"; filename=%q`, filename)}
	header["Content-Type"] = []string{contentType}
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, &TransportError{Message: "building multipart body", Cause: err}
	}
	if _, err := part.Write(content); err != nil {
		return nil, &TransportError{Message: "building multipart body", Cause: err}
	}
	for name, value := range opts.Fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, &TransportError{Message: "building multipart body", Cause: err}
		}
	}
	if err := writer.Close(); err != nil {
		return nil, &TransportError{Message: "building multipart body", Cause: err}
	}

	req, err := r.newRequest(ctx, http.MethodPost, path, &RequestOptions{Params: opts.Params})
	if err != nil {
		return nil, err
	}
	req.Body = io.NopCloser(&buf)
	req.ContentLength = int64(buf.Len())
	req.Header.Set("Content-Type", writer.FormDataContentType())

	unary, _ := r.clients()
	resp, err := unary.Do(req)
	if err != nil {
		return nil, classifyRoundTripError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Message: "reading response body", StatusCode: resp.StatusCode, Cause: err}
	}
	if err := statusError(resp, body); err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNoContent || len(body) == 0 {
		return nil, nil
	}
	return json.RawMessage(body), nil
}

// Close releases pooled connections. The transport remains usable; a later
// call recreates the pool.
func (r *REST) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || r.unary == nil {
		return nil
	}
	r.unary.CloseIdleConnections()
	if r.stream != r.unary {
		r.stream.CloseIdleConnections()
	}
	r.unary = nil
	r.stream = nil
	r.closed = true
	return nil
}

// classifyRoundTripError maps net/http round-trip failures onto the error
// taxonomy: timeouts stay generic TransportErrors, everything else before a
// response arrives is a ConnectionError.
func classifyRoundTripError(err error) error {
	var netErr interface{ Timeout() bool }
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &TransportError{Message: "request timed out", Cause: err}
	}
	if errors.Is(err, context.Canceled) {
		return &TransportError{Message: "request canceled", Cause: err}
	}
	return &ConnectionError{TransportError{Message: "connection failed", Cause: err}}
}

// statusError maps a non-2xx response onto the error taxonomy. The response
// body is attached parsed when it is JSON, raw otherwise.
func statusError(resp *http.Response, body []byte) error {
	if resp.StatusCode < http.StatusBadRequest {
		return nil
	}

	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		parsed = string(body)
	}

	base := TransportError{
		Message:    fmt.Sprintf("request failed: %s", http.StatusText(resp.StatusCode)),
		StatusCode: resp.StatusCode,
		Body:       parsed,
	}
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		base.Message = "authentication failed"
		return &AuthenticationError{base}
	case http.StatusTooManyRequests:
		base.Message = "rate limited"
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		return &RateLimitError{TransportError: base, RetryAfter: retryAfter}
	default:
		return &base
	}
}
