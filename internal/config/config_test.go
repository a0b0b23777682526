package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "worksync.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

// isolate points HOME at an empty directory so that a developer's own
// config file is not picked up.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CONFIG_PATH", "")
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.Gateway.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Gateway.Timeout)
	assert.Equal(t, 20.0, cfg.Gateway.RateLimit)
	assert.Equal(t, 40, cfg.Gateway.RateBurst)
	assert.Equal(t, 50, cfg.Gateway.MessageLimit)
	assert.Equal(t, "general", cfg.Session.DefaultChannel)
	assert.Equal(t, "private", cfg.Session.PrivateChannel)
	assert.False(t, cfg.Session.SerializeMutations)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadYAMLAndEnv(t *testing.T) {
	isolate(t)
	path := writeYAML(t, t.TempDir(), `
gateway:
  base_url: "https://workspace.example.com"
  timeout: "30s"
  message_limit: 100
session:
  tenant: "acme"
  serialize_mutations: true
log:
  level: "debug"
  format: "json"
`)
	t.Setenv("WORKSYNC_API_KEY", "k3y")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://workspace.example.com", cfg.Gateway.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Gateway.Timeout)
	assert.Equal(t, 100, cfg.Gateway.MessageLimit)
	assert.Equal(t, "k3y", cfg.Gateway.APIKey)
	assert.Equal(t, "acme", cfg.Session.Tenant)
	assert.True(t, cfg.Session.SerializeMutations)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadConfigPathEnv(t *testing.T) {
	isolate(t)
	path := writeYAML(t, t.TempDir(), "session:\n  tenant: \"beta\"\n")
	t.Setenv("CONFIG_PATH", path)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "beta", cfg.Session.Tenant)
}

func TestLoadHomeFile(t *testing.T) {
	isolate(t)
	home := os.Getenv("HOME")
	require.NoError(t, os.WriteFile(filepath.Join(home, DefaultFile), []byte("session:\n  tenant: \"gamma\"\n"), 0o644))
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "gamma", cfg.Session.Tenant)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Gateway: GatewayConfig{BaseURL: "http://localhost:8000", RateLimit: 20, RateBurst: 40, MessageLimit: 50},
			Session: SessionConfig{DefaultChannel: "general", PrivateChannel: "private"},
			Log:     LogConfig{Level: "info", Format: "text"},
		}
	}
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"relative url", func(c *Config) { c.Gateway.BaseURL = "localhost:8000" }},
		{"ftp url", func(c *Config) { c.Gateway.BaseURL = "ftp://example.com" }},
		{"negative rate", func(c *Config) { c.Gateway.RateLimit = -1 }},
		{"zero burst", func(c *Config) { c.Gateway.RateBurst = 0 }},
		{"page too large", func(c *Config) { c.Gateway.MessageLimit = 101 }},
		{"page too small", func(c *Config) { c.Gateway.MessageLimit = 0 }},
		{"bad tenant", func(c *Config) { c.Session.Tenant = "a b" }},
		{"no channel", func(c *Config) { c.Session.DefaultChannel = " " }},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }},
	}
	c := valid()
	require.NoError(t, c.Validate())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid()
			tc.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
