package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so config values like "45s" parse.
type Duration time.Duration

// UnmarshalYAML decodes a Go duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config is the harnessctl configuration file.
type Config struct {
	// BaseURL points at a remote harness server. Empty means in-process.
	BaseURL string `yaml:"base_url"`
	// APIKey authenticates against the remote server.
	APIKey string `yaml:"api_key"`
	// Timeout bounds each request and the wait for each stream chunk.
	Timeout Duration `yaml:"timeout"`
	// DefaultAdapter picks the adapter when --adapter is not given.
	DefaultAdapter string `yaml:"default_adapter"`

	Claude ClaudeConfig `yaml:"claude"`
	Goose  GooseConfig  `yaml:"goose"`
}

// ClaudeConfig configures the in-process Claude Code adapter.
type ClaudeConfig struct {
	CLIPath string `yaml:"cli_path"`
	Model   string `yaml:"model"`
}

// GooseConfig configures the in-process Goose adapter.
type GooseConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "harnessctl", "config.yaml")
}

// loadConfig reads the config file named by --config, falling back to the
// default path. A missing file yields defaults, not an error.
func loadConfig() (*Config, error) {
	cfg := &Config{DefaultAdapter: "claude-code"}

	path := configPath
	explicit := path != ""
	if path == "" {
		path = defaultConfigPath()
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.DefaultAdapter == "" {
		cfg.DefaultAdapter = "claude-code"
	}
	return cfg, nil
}
