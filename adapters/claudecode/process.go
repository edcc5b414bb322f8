package claudecode

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/openharness/harness-go/internal/ndjson"
	"github.com/openharness/harness-go/internal/procattr"
)

// BuildCLIArgs assembles the one-shot stream-json invocation for a prompt.
func BuildCLIArgs(prompt string, cfg Config, req requestOverrides) []string {
	args := []string{
		"--print",
		"--output-format", "stream-json",
		"--verbose",
	}

	model := cfg.Model
	if req.Model != "" {
		model = req.Model
	}
	if model != "" {
		args = append(args, "--model", model)
	}
	if cfg.PermissionMode != "" {
		args = append(args, "--permission-mode", cfg.PermissionMode)
	}
	tools := cfg.AllowedTools
	if len(req.Tools) > 0 {
		tools = req.Tools
	}
	if len(tools) > 0 {
		args = append(args, "--allowed-tools", strings.Join(tools, ","))
	}
	if cfg.MaxTurns > 0 {
		args = append(args, "--max-turns", strconv.Itoa(cfg.MaxTurns))
	}
	if req.SystemPrompt != "" {
		args = append(args, "--append-system-prompt", req.SystemPrompt)
	}
	if req.SessionID != "" {
		args = append(args, "--resume", req.SessionID)
	}

	return append(args, prompt)
}

// requestOverrides carries the per-execution settings that win over Config.
type requestOverrides struct {
	Model        string
	SystemPrompt string
	SessionID    string
	Tools        []string
}

// processManager owns one CLI process: spawn, NDJSON stdout, stderr, and
// group teardown.
type processManager struct {
	config Config

	mu       sync.Mutex
	cmd      *exec.Cmd
	stdout   io.ReadCloser
	stderr   io.ReadCloser
	reader   *ndjson.Reader
	started  bool
	stopping bool
}

func newProcessManager(cfg Config) *processManager {
	return &processManager{config: cfg}
}

// Start spawns the CLI with args.
func (pm *processManager) Start(ctx context.Context, args []string) error {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.cmd = exec.CommandContext(ctx, pm.config.CLIPath, args...)
	procattr.Set(pm.cmd)

	if pm.config.WorkDir != "" {
		pm.cmd.Dir = pm.config.WorkDir
	}
	if len(pm.config.Env) > 0 {
		pm.cmd.Env = append(os.Environ(), pm.config.Env...)
	}

	var err error
	pm.stdout, err = pm.cmd.StdoutPipe()
	if err != nil {
		return &ProcessError{Message: "failed to create stdout pipe", Cause: err}
	}
	pm.stderr, err = pm.cmd.StderrPipe()
	if err != nil {
		return &ProcessError{Message: "failed to create stderr pipe", Cause: err}
	}
	pm.reader = ndjson.NewReader(pm.stdout)

	if err := pm.cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return &CLINotFoundError{Path: pm.config.CLIPath, Cause: err}
		}
		return &ProcessError{Message: "failed to start CLI process", Cause: err}
	}

	pm.started = true
	return nil
}

// ReadLine reads the next NDJSON line from stdout.
func (pm *processManager) ReadLine() ([]byte, error) {
	pm.mu.Lock()
	reader := pm.reader
	pm.mu.Unlock()

	if reader == nil {
		return nil, ErrNotStarted
	}
	return reader.ReadLine()
}

// Stderr returns the stderr reader.
func (pm *processManager) Stderr() io.Reader {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	return pm.stderr
}

// Stop tears the process group down: SIGTERM, a short grace period, then
// SIGKILL. Idempotent.
func (pm *processManager) Stop() error {
	pm.mu.Lock()
	if !pm.started || pm.stopping {
		pm.mu.Unlock()
		return nil
	}
	pm.stopping = true
	cmd := pm.cmd
	pm.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	if cmd.Process != nil {
		_ = procattr.SignalGroup(cmd.Process, syscall.SIGTERM)
	}

	select {
	case <-done:
		return nil
	case <-time.After(500 * time.Millisecond):
	}

	if cmd.Process != nil {
		_ = procattr.KillGroup(cmd.Process)
	}

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
	}
	return nil
}
