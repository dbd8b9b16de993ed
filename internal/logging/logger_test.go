package logging

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger_LevelFromEnv(t *testing.T) {
	tests := []struct {
		name          string
		logLevel      string
		expectedLevel log.Level
	}{
		{name: "debug_level", logLevel: "debug", expectedLevel: log.DebugLevel},
		{name: "info_level", logLevel: "info", expectedLevel: log.InfoLevel},
		{name: "warning_alias", logLevel: "warning", expectedLevel: log.WarnLevel},
		{name: "error_level", logLevel: "error", expectedLevel: log.ErrorLevel},
		{name: "default_empty_level", logLevel: "", expectedLevel: log.DebugLevel},
		{name: "default_invalid_level", logLevel: "chatty", expectedLevel: log.DebugLevel},
		{name: "case_and_whitespace", logLevel: "  InFo ", expectedLevel: log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.logLevel)
			Logger = nil

			InitLogger()

			require.NotNil(t, Logger)
			assert.Equal(t, tt.expectedLevel, Logger.GetLevel())
		})
	}
}

func TestGetLogger_LazyInit(t *testing.T) {
	Logger = nil
	first := GetLogger()
	require.NotNil(t, first)
	assert.Same(t, first, GetLogger(), "subsequent calls should reuse the global logger")
}

func TestWithChunk_AddsIndexField(t *testing.T) {
	var buf bytes.Buffer
	Logger = log.New(&buf)
	Logger.SetLevel(log.DebugLevel)

	WithChunk(7).Info("chunk ready")

	assert.Contains(t, buf.String(), "chunk_index=7")
	assert.Contains(t, buf.String(), "chunk ready")
}

func TestWithComponent_AddsComponentField(t *testing.T) {
	var buf bytes.Buffer
	Logger = log.New(&buf)

	WithComponent("scheduler").Info("started")

	assert.Contains(t, buf.String(), "component=scheduler")
}
