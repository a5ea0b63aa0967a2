package main

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/whiteakyloff/metis-back-v2/internal/config"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLogLevel(tt.level))
		})
	}
}

func TestSetupLogger_JSONFormat(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Log.Format = "json"

	logger := setupLogger(cfg)

	assert.NotNil(t, logger)
}

func TestSetupLogger_TextFormat(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Log.Format = "text"

	logger := setupLogger(cfg)

	assert.NotNil(t, logger)
}

func TestSetupLogger_DebugAddsSource(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Log.Level = "debug"

	logger := setupLogger(cfg)

	assert.NotNil(t, logger)
	assert.True(t, logger.Enabled(t.Context(), slog.LevelDebug))
}
