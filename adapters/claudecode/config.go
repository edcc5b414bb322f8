package claudecode

import "time"

// Config holds the CLI invocation settings.
type Config struct {
	// CLIPath is the claude binary. Defaults to "claude" on PATH.
	CLIPath string
	// WorkDir is the working directory for the CLI and its tools.
	WorkDir string
	// Model overrides the CLI's default model alias (e.g. "sonnet").
	Model string
	// PermissionMode is passed through to --permission-mode.
	PermissionMode string
	// AllowedTools restricts the builtin tool set via --allowed-tools.
	AllowedTools []string
	// MaxTurns bounds agent turns per execution; zero means CLI default.
	MaxTurns int
	// Timeout bounds one execution end to end. Zero disables the bound.
	Timeout time.Duration
	// Env is appended to the inherited environment.
	Env []string
	// StderrHandler receives raw CLI stderr chunks when set.
	StderrHandler func([]byte)
	// EventBufferSize sizes the event channel. Defaults to 64.
	EventBufferSize int
}

// Option adjusts the adapter configuration.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		CLIPath:         "claude",
		EventBufferSize: 64,
	}
}

// WithCLIPath points the adapter at a specific claude binary.
func WithCLIPath(path string) Option {
	return func(c *Config) { c.CLIPath = path }
}

// WithWorkDir sets the CLI working directory.
func WithWorkDir(dir string) Option {
	return func(c *Config) { c.WorkDir = dir }
}

// WithModel sets the default model alias for executions that do not name one.
func WithModel(model string) Option {
	return func(c *Config) { c.Model = model }
}

// WithPermissionMode sets the CLI permission mode (e.g. "acceptEdits").
func WithPermissionMode(mode string) Option {
	return func(c *Config) { c.PermissionMode = mode }
}

// WithAllowedTools restricts which builtin tools the CLI may use.
func WithAllowedTools(tools ...string) Option {
	return func(c *Config) { c.AllowedTools = tools }
}

// WithMaxTurns bounds the number of agent turns per execution.
func WithMaxTurns(n int) Option {
	return func(c *Config) { c.MaxTurns = n }
}

// WithTimeout bounds one execution end to end.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) { c.Timeout = d }
}

// WithEnv appends environment variables for the CLI process.
func WithEnv(env ...string) Option {
	return func(c *Config) { c.Env = append(c.Env, env...) }
}

// WithStderrHandler receives raw CLI stderr output.
func WithStderrHandler(fn func([]byte)) Option {
	return func(c *Config) { c.StderrHandler = fn }
}
