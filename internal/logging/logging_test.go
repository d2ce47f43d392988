package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSlogLogger_WithAndLevels(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	log := NewSlogLogger(base).With("component", "session")
	ctx := context.Background()

	log.Info(ctx, "restored", "userId", "u1")
	log.Warn(ctx, "store read failed")
	log.Error(ctx, "request failed", "status", 500)

	out := buf.String()
	assert.Contains(t, out, "component=session")
	assert.Contains(t, out, "msg=restored")
	assert.Contains(t, out, "userId=u1")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "level=ERROR")
}

func TestZapLogger_KeyValuePairs(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := NewZapLogger(zap.New(core)).With("component", "stubapi")

	log.Info(context.Background(), "listening", "addr", ":8081")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "listening", entries[0].Message)

	fields := entries[0].ContextMap()
	assert.Equal(t, "stubapi", fields["component"])
	assert.Equal(t, ":8081", fields["addr"])
}

func TestNopLoggerIsSafe(t *testing.T) {
	log := Nop().With("k", "v")
	log.Info(context.Background(), "ignored")
	log.Warn(context.Background(), "ignored")
	log.Error(context.Background(), "ignored")
}
