package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlogAdapter_NilFallsBackToDefault(t *testing.T) {
	adapter := NewSlogAdapter(nil)
	require.NotNil(t, adapter)
	assert.NotNil(t, adapter.Logger())
}

func TestSlogAdapter_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	adapter := NewSlogAdapter(logger)

	adapter.Debug("debug message", "k", "d")
	adapter.Info("info message", "k", "i")
	adapter.Warn("warn message", "k", "w")
	adapter.Error("error message", "k", "e")

	out := buf.String()
	for _, want := range []string{
		"level=DEBUG msg=\"debug message\" k=d",
		"level=INFO msg=\"info message\" k=i",
		"level=WARN msg=\"warn message\" k=w",
		"level=ERROR msg=\"error message\" k=e",
	} {
		assert.Contains(t, out, want)
	}
}

func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}
	l.Info("ignored", "k", "v")
}
