//nolint:err113 // Test file uses errors.New() for creating test errors
package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probekit/probekit/annotate"
)

// These tests exercise the handler directly rather than through
// ConfigureLoggingWithOptions, to avoid fighting over the global default
// logger across parallel tests.

func newJSONLogger(buf *bytes.Buffer) *slog.Logger {
	inner := slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	return slog.New(NewAnnotatedErrorHandler(inner))
}

func logLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var line map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))

	return line
}

func TestHandler_ExtractsAnnotatedAttributes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	log := newJSONLogger(&buf)

	err := annotate.WithAttrs(errors.New("element stale"), "selector", "#ok", "attempt", 2)
	log.Error("Wait action failed", "error", err)

	line := logLine(t, &buf)
	assert.Equal(t, "Wait action failed", line["msg"])
	assert.Equal(t, "#ok", line["selector"])
	assert.InDelta(t, 2, line["attempt"], 0.01)
}

func TestHandler_PlainErrorPassesThrough(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	log := newJSONLogger(&buf)
	log.Error("Something failed", "error", errors.New("plain failure"), "count", 1)

	line := logLine(t, &buf)
	assert.Equal(t, "Something failed", line["msg"])
	assert.InDelta(t, 1, line["count"], 0.01)
}

func TestHandler_WithAttrsAndGroups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	log := newJSONLogger(&buf).With("suite", "smoke")
	log.Info("hello")

	line := logLine(t, &buf)
	assert.Equal(t, "smoke", line["suite"])
}

func TestHandler_Enabled(t *testing.T) {
	t.Parallel()

	inner := slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})
	h := NewAnnotatedErrorHandler(inner)

	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestConfigureLoggingWithOptions(t *testing.T) {
	// Mutates the global default logger; not parallel.
	var buf bytes.Buffer

	log := ConfigureLoggingWithOptions(Options{
		Component: "ui-tests",
		JSON:      true,
		MinLevel:  slog.LevelInfo,
		Output:    &buf,
	})

	log.Info("configured")

	line := logLine(t, &buf)
	assert.Equal(t, "ui-tests", line["component"])
	assert.Equal(t, "configured", line["msg"])
	assert.Equal(t, "ui-tests", Component())
}
