package goose

import (
	"time"

	"github.com/openharness/harness-go/transport"
)

// Config holds the connection settings for the Goose server.
type Config struct {
	// BaseURL is the Goose server root, e.g. "http://localhost:3000".
	BaseURL string
	// APIKey is sent as a bearer token when set.
	APIKey string
	// WorkDir is the working directory for agent sessions started by the
	// adapter. Empty leaves the server default.
	WorkDir string
	// Recipe names a server-side recipe to run sessions with.
	Recipe string
	// Timeout bounds each request and the wait for each stream chunk.
	// Zero uses the transport default.
	Timeout time.Duration
	// EventBufferSize sizes the event channel. Defaults to 64.
	EventBufferSize int

	// transport overrides the REST transport built from BaseURL. Test hook.
	transport transport.Transport
}

// Option adjusts the adapter configuration.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		BaseURL:         "http://localhost:3000",
		EventBufferSize: 64,
	}
}

// WithBaseURL points the adapter at a Goose server.
func WithBaseURL(url string) Option {
	return func(c *Config) { c.BaseURL = url }
}

// WithAPIKey authenticates every exchange with a bearer token.
func WithAPIKey(key string) Option {
	return func(c *Config) { c.APIKey = key }
}

// WithWorkDir sets the working directory for sessions the adapter starts.
func WithWorkDir(dir string) Option {
	return func(c *Config) { c.WorkDir = dir }
}

// WithRecipe runs sessions with a named server-side recipe.
func WithRecipe(name string) Option {
	return func(c *Config) { c.Recipe = name }
}

// WithTimeout bounds each request and the wait for each stream chunk.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) { c.Timeout = d }
}

// WithTransport substitutes the underlying transport. Mostly a test hook.
func WithTransport(t transport.Transport) Option {
	return func(c *Config) { c.transport = t }
}
