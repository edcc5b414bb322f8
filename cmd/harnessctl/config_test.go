package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
base_url: https://harness.example.com
api_key: sk-test
timeout: 45s
default_adapter: goose
goose:
  base_url: http://localhost:3000
`), 0o644))

	configPath = path
	defer func() { configPath = "" }()

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://harness.example.com", cfg.BaseURL)
	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.Equal(t, 45*time.Second, time.Duration(cfg.Timeout))
	assert.Equal(t, "goose", cfg.DefaultAdapter)
	assert.Equal(t, "http://localhost:3000", cfg.Goose.BaseURL)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	configPath = ""
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "claude-code", cfg.DefaultAdapter)
	assert.Empty(t, cfg.BaseURL)
}

func TestLoadConfig_ExplicitMissingFileFails(t *testing.T) {
	configPath = filepath.Join(t.TempDir(), "nope.yaml")
	defer func() { configPath = "" }()

	_, err := loadConfig()
	require.Error(t, err)
}

func TestBuildRegistry(t *testing.T) {
	cfg := &Config{DefaultAdapter: "claude-code"}
	reg := buildRegistry(cfg)
	defer reg.Close()

	assert.True(t, reg.Has("claude-code"))
	assert.True(t, reg.Has("goose"))

	adapterID = ""
	a, err := pickAdapter(reg, cfg)
	require.NoError(t, err)
	assert.Equal(t, "claude-code", a.ID())
}
