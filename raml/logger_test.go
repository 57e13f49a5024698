package raml

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/erraggy/raml2obj/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNopLogger(t *testing.T) {
	l := NopLogger{}
	l.Debug("message", "key", "value")
	l.Info("message", "key", "value")
	l.Warn("message", "key", "value")
	l.Error("message", "key", "value")

	_, ok := l.With("key", "value").(NopLogger)
	assert.True(t, ok, "With should return NopLogger")
}

func TestSlogAdapter(t *testing.T) {
	t.Run("nil uses default", func(t *testing.T) {
		adapter := NewSlogAdapter(nil)
		assert.NotNil(t, adapter.logger)
	})

	t.Run("levels and attributes", func(t *testing.T) {
		var buf bytes.Buffer
		adapter := NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

		adapter.Debug("debug message", "n", 1)
		adapter.Info("info message")
		adapter.Warn("warn message")
		adapter.Error("error message", "code", 3)
		adapter.With("component", "loader").Info("scoped")

		out := buf.String()
		assert.Contains(t, out, "level=DEBUG msg=\"debug message\" n=1")
		assert.Contains(t, out, "level=INFO msg=\"info message\"")
		assert.Contains(t, out, "level=WARN msg=\"warn message\"")
		assert.Contains(t, out, "level=ERROR msg=\"error message\" code=3")
		assert.Contains(t, out, "msg=scoped component=loader")
	})
}

func TestLoaderLogsDebugRecords(t *testing.T) {
	var buf bytes.Buffer
	loader := New()
	loader.Logger = NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	_, err := loader.Load(context.Background(), []byte(testutil.UsersRAML))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "msg=\"applied resource type\"")
	assert.Contains(t, out, "msg=\"applied trait\"")
	assert.Equal(t, 1, strings.Count(out, "msg=\"loaded RAML document\""))
}
