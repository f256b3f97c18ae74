package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/jwebster45206/txr-engine/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerFormats(t *testing.T) {
	t.Run("text in development", func(t *testing.T) {
		var buf bytes.Buffer
		l := slog.New(handler(&config.Config{Environment: "development", LogLevel: slog.LevelInfo}, &buf))
		l.Info("hello", "k", "v")
		assert.Contains(t, buf.String(), "msg=hello")
		assert.Contains(t, buf.String(), "k=v")
	})

	t.Run("json in production", func(t *testing.T) {
		var buf bytes.Buffer
		l := slog.New(handler(&config.Config{Environment: "production", LogLevel: slog.LevelInfo}, &buf))
		l.Info("hello")
		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "hello", rec["msg"])
	})

	t.Run("respects level", func(t *testing.T) {
		var buf bytes.Buffer
		l := slog.New(handler(&config.Config{LogLevel: slog.LevelWarn}, &buf))
		l.Info("quiet")
		assert.Empty(t, buf.String())
	})
}

func TestHandlerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "txr.log")
	var buf bytes.Buffer
	l := slog.New(handler(&config.Config{LogLevel: slog.LevelInfo, LogFile: path}, &buf))

	l.Info("to both")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to both")
	assert.Contains(t, buf.String(), "to both")
}

func TestWithHelpers(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))

	WithError(WithRunID(base, "abc"), errors.New("boom")).Info("x")

	assert.Contains(t, buf.String(), "run_id=abc")
	assert.Contains(t, buf.String(), "error=boom")
}
