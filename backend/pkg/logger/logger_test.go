package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestGet_UninitializedIsNop(t *testing.T) {
	Logger = nil
	assert.NotNil(t, Get())
	assert.False(t, Get().Core().Enabled(zapcore.ErrorLevel))
}

func TestInit_LevelOverride(t *testing.T) {
	t.Cleanup(func() { Logger = nil })

	t.Setenv("LOG_LEVEL", "warn")
	require.NoError(t, Init("development"))
	assert.False(t, Get().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, Get().Core().Enabled(zapcore.WarnLevel))

	t.Setenv("LOG_LEVEL", "loud")
	assert.Error(t, Init("production"))
}

func TestInit_Production(t *testing.T) {
	t.Cleanup(func() { Logger = nil })
	t.Setenv("LOG_LEVEL", "")

	require.NoError(t, Init("production"))
	assert.False(t, Named("graph").Core().Enabled(zapcore.DebugLevel))
	assert.True(t, Named("graph").Core().Enabled(zapcore.InfoLevel))
}

func TestInit_FormatOverride(t *testing.T) {
	t.Cleanup(func() { Logger = nil })
	t.Setenv("LOG_LEVEL", "")

	t.Setenv("LOG_FORMAT", "json")
	require.NoError(t, Init("development"))

	t.Setenv("LOG_FORMAT", "console")
	require.NoError(t, Init("production"))

	t.Setenv("LOG_FORMAT", "xml")
	assert.Error(t, Init("development"))
}
