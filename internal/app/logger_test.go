package app

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/matta/worksync/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), "parseLevel(%q)", in)
	}
}

func TestNewLoggerJSON(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	logger := NewLogger(config.LogConfig{Level: "warn", Format: "JSON"}, &buf)
	logger.Info("hidden")
	logger.Warn("shown", slog.String("tenant", "acme"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.HasPrefix(out, "{"), "not JSON: %s", out)
	assert.Contains(t, out, `"tenant":"acme"`)
}

func TestNewLoggerText(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	NewLogger(config.LogConfig{Level: "debug", Format: "text"}, &buf).Debug("loaded")
	assert.Contains(t, buf.String(), "msg=loaded")
	assert.Contains(t, buf.String(), "source=")
}
