package render

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogBufferFoldsRepeats(t *testing.T) {
	lb := NewLogBuffer(4)
	at := time.Date(2024, 1, 1, 12, 30, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		lb.Add(LogEntry{Time: at, Level: slog.LevelError, Message: "Invalid Tilemap reference"})
	}
	lb.Add(LogEntry{Time: at, Level: slog.LevelInfo, Message: "scene ready"})

	entries := lb.GetRecent(0, slog.LevelDebug)
	require.Len(t, entries, 2)
	assert.Equal(t, "scene ready", entries[0].Message)
	assert.Equal(t, 3, entries[1].Repeats)
	assert.Equal(t, "12:30:00 [ERR] Invalid Tilemap reference (x3)", FormatLogEntry(entries[1]))
	assert.Equal(t, "12:30:00 [INF] scene ready", FormatLogEntry(entries[0]))
}

func TestLogBufferWrapsAndFilters(t *testing.T) {
	lb := NewLogBuffer(3)
	levels := []slog.Level{slog.LevelDebug, slog.LevelWarn, slog.LevelInfo, slog.LevelError, slog.LevelWarn}
	for i, level := range levels {
		lb.Add(LogEntry{Level: level, Message: string(rune('a' + i))})
	}

	all := lb.GetRecent(0, slog.LevelDebug)
	require.Len(t, all, 3)
	assert.Equal(t, "e", all[0].Message)
	assert.Equal(t, "c", all[2].Message)

	warn := lb.GetRecent(1, slog.LevelWarn)
	require.Len(t, warn, 1)
	assert.Equal(t, "e", warn[0].Message)

	lb.Clear()
	assert.Empty(t, lb.GetRecent(0, slog.LevelDebug))
}

func TestLogBufferHandlerAttrs(t *testing.T) {
	lb := NewLogBuffer(8)
	logger := slog.New(NewLogBufferHandler(lb, slog.LevelInfo))

	logger.Debug("hidden")
	logger.With("layer", 1).WithGroup("sprite").Info("moved", "x", 10)

	entries := lb.GetRecent(0, slog.LevelDebug)
	require.Len(t, entries, 1)
	assert.Equal(t, "moved layer=1 sprite.x=10", entries[0].Message)
}
