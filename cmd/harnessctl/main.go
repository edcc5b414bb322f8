// Command harnessctl drives agent harnesses from the terminal, either
// in-process through registered adapters or against a remote harness server.
package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/openharness/harness-go/adapters/claudecode"
	"github.com/openharness/harness-go/adapters/goose"
	"github.com/openharness/harness-go/client"
	"github.com/openharness/harness-go/harness"
)

var (
	configPath string
	adapterID  string
	forceLocal bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "harnessctl",
	Short: "Run prompts against agent harnesses",
	Long: `harnessctl executes prompts through agent harness adapters. With a
base_url configured it talks to a remote harness server; otherwise it runs
the bundled adapters in-process.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ~/.config/harnessctl/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&adapterID, "adapter", "a", "", "Adapter id to use (default from config)")
	rootCmd.PersistentFlags().BoolVar(&forceLocal, "local", false, "Run in-process even when a base_url is configured")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger creates a structured logger with the configured verbosity.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// remoteMode reports whether commands should go through the server client.
func remoteMode(cfg *Config) bool {
	return cfg.BaseURL != "" && !forceLocal
}

// newClient builds the server client from config.
func newClient(cfg *Config) *client.Client {
	var opts []client.Option
	if cfg.APIKey != "" {
		opts = append(opts, client.WithAPIKey(cfg.APIKey))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, client.WithTimeout(time.Duration(cfg.Timeout)))
	}
	return client.New(cfg.BaseURL, opts...)
}

// buildRegistry registers the bundled adapters for in-process runs.
func buildRegistry(cfg *Config) *harness.Registry {
	reg := harness.NewRegistry()

	var claudeOpts []claudecode.Option
	if cfg.Claude.CLIPath != "" {
		claudeOpts = append(claudeOpts, claudecode.WithCLIPath(cfg.Claude.CLIPath))
	}
	if cfg.Claude.Model != "" {
		claudeOpts = append(claudeOpts, claudecode.WithModel(cfg.Claude.Model))
	}
	if cfg.Timeout > 0 {
		claudeOpts = append(claudeOpts, claudecode.WithTimeout(time.Duration(cfg.Timeout)))
	}
	reg.Register(claudecode.New(claudeOpts...))

	var gooseOpts []goose.Option
	if cfg.Goose.BaseURL != "" {
		gooseOpts = append(gooseOpts, goose.WithBaseURL(cfg.Goose.BaseURL))
	}
	if cfg.Goose.APIKey != "" {
		gooseOpts = append(gooseOpts, goose.WithAPIKey(cfg.Goose.APIKey))
	}
	if cfg.Timeout > 0 {
		gooseOpts = append(gooseOpts, goose.WithTimeout(time.Duration(cfg.Timeout)))
	}
	reg.Register(goose.New(gooseOpts...))

	return reg
}

// pickAdapter resolves the adapter for this invocation from the flag or the
// configured default.
func pickAdapter(reg *harness.Registry, cfg *Config) (harness.Adapter, error) {
	id := adapterID
	if id == "" {
		id = cfg.DefaultAdapter
	}
	return reg.Get(id)
}
