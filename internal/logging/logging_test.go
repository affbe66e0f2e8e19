package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", " INFO "} {
		t.Run(level, func(t *testing.T) {
			l, err := New(level)
			require.NoError(t, err)
			assert.NotNil(t, l)
		})
	}

	_, err := New("loud")
	assert.Error(t, err)
}

func TestLoggerFormatsAndFilters(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := Wrap(zap.New(core)).With("match", "m1")

	l.Debug("hidden %d", 1)
	l.Info("turn %d started", 3)
	l.Warn("seat %d empty", 2)
	l.Error("failed: %v", "boom")

	entries := logs.AllUntimed()
	require.Len(t, entries, 3)
	assert.Equal(t, "turn 3 started", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "failed: boom", entries[2].Message)
	assert.Equal(t, "m1", entries[0].ContextMap()["match"])
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() { Nop().Info("nothing %s", "here") })
}
