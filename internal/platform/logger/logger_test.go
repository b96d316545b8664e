package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/roster-api/internal/config"
	"github.com/phrazzld/roster-api/internal/platform/logger"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		want    slog.Level
		wantErr bool
	}{
		{name: "debug", want: slog.LevelDebug},
		{name: "INFO", want: slog.LevelInfo},
		{name: "", want: slog.LevelInfo},
		{name: "warn", want: slog.LevelWarn},
		{name: "error", want: slog.LevelError},
		{name: "critical", want: logger.LevelCritical},
		{name: "verbose", want: slog.LevelInfo, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := logger.ParseLevel(tc.name)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNewJSONLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := logger.New(config.ServerConfig{LogLevel: "warn", LogFormat: "json"}, &buf)
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("visible", "key", "value")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"visible"`)
	assert.Contains(t, out, `"key":"value"`)
}

func TestCriticalLevelIsRenderedByName(t *testing.T) {
	var buf bytes.Buffer
	log, err := logger.New(config.ServerConfig{LogLevel: "info", LogFormat: "json"}, &buf)
	require.NoError(t, err)

	log.Log(context.Background(), logger.LevelCritical, "database unreachable")

	assert.Contains(t, buf.String(), `"level":"CRITICAL"`)
}

func TestNewTextLogger(t *testing.T) {
	var buf bytes.Buffer
	log, err := logger.New(config.ServerConfig{LogLevel: "debug", LogFormat: "text"}, &buf)
	require.NoError(t, err)

	log.Debug("text output", "component", "test")

	assert.Contains(t, buf.String(), "text output")
	assert.Contains(t, buf.String(), "component")
}

func TestNewRejectsInvalidSettings(t *testing.T) {
	_, err := logger.New(config.ServerConfig{LogLevel: "loud", LogFormat: "json"}, &bytes.Buffer{})
	assert.Error(t, err)

	_, err = logger.New(config.ServerConfig{LogLevel: "info", LogFormat: "xml"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestSetupReplacesDefaultLogger(t *testing.T) {
	original := slog.Default()
	defer slog.SetDefault(original)

	log, err := logger.Setup(config.ServerConfig{LogLevel: "info", LogFormat: "json"})
	require.NoError(t, err)
	require.NotNil(t, log)
	assert.Same(t, log, slog.Default())
}

func TestContextLogger(t *testing.T) {
	fallback := slog.Default()
	assert.Same(t, fallback, logger.FromContext(context.Background()))

	custom, buf := logger.NewTestLogger()
	ctx := logger.WithLogger(context.Background(), custom.With("trace_id", "abc"))

	logger.FromContext(ctx).Info("scoped")

	entries, err := buf.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "abc", entries[0]["trace_id"])
}
