package logger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, InfoLevel, cfg.Level)
	assert.Equal(t, TextFormat, cfg.Format)
	assert.Equal(t, DefaultTimeFormat, cfg.TimeFormat)
	assert.Equal(t, DefaultMaxMessageLength, cfg.MaxMessageLength)
	assert.Equal(t, DefaultPerformanceCapacity, cfg.MaxPerformanceRecords)
	assert.True(t, cfg.EnableAsync)
	assert.Equal(t, DefaultAsyncBufferSize, cfg.AsyncBufferSize)
	assert.NotNil(t, cfg.Context)

	assert.Empty(t, cfg.File.Path)
	assert.Equal(t, int64(DefaultMaxFileSizeMB*1024*1024), cfg.File.MaxSizeBytes)
	assert.Equal(t, DefaultMaxFiles, cfg.File.MaxFiles)
	assert.Equal(t, RotationSize, cfg.File.RotationStrategy)
	assert.Equal(t, DefaultRotationInterval, cfg.File.RotationInterval)
}

func TestProductionConfig(t *testing.T) {
	cfg := ProductionConfig()

	assert.Equal(t, InfoLevel, cfg.Level)
	assert.Equal(t, JSONFormat, cfg.Format)
	require.NotNil(t, cfg.Color)
	assert.False(t, *cfg.Color)
}

func TestDevelopmentConfig(t *testing.T) {
	cfg := DevelopmentConfig()

	assert.Equal(t, DebugLevel, cfg.Level)
	assert.Equal(t, ColorFormat, cfg.Format)
	assert.Nil(t, cfg.Color)
}

func TestBool(t *testing.T) {
	enabled := Bool(true)
	require.NotNil(t, enabled)
	assert.True(t, *enabled)

	disabled := Bool(false)
	require.NotNil(t, disabled)
	assert.False(t, *disabled)
}

func TestRotationStrategy_IsValid(t *testing.T) {
	assert.True(t, RotationSize.IsValid())
	assert.True(t, RotationTime.IsValid())
	assert.True(t, RotationSizeTime.IsValid())
	assert.True(t, RotationNone.IsValid())
	assert.False(t, RotationStrategy(9).IsValid())
}

func TestConfigBuilder(t *testing.T) {
	cfg := NewConfigBuilder().
		WithDebugLevel().
		WithFormat(JSONFormat).
		WithConsole(false).
		WithFileOutput("logs/app.log").
		WithRotation(1<<20, 4, true).
		WithTimedRotation(time.Hour).
		WithTags("api", "worker").
		WithContext(map[string]any{"region": "eu"}).
		WithSampling(0.5, WarnLevel).
		WithMaxMessageLength(512).
		WithSyncWrites().
		Build()

	assert.Equal(t, DebugLevel, cfg.Level)
	assert.Equal(t, JSONFormat, cfg.Format)
	require.NotNil(t, cfg.Output.Console)
	assert.False(t, *cfg.Output.Console)

	assert.Equal(t, "logs/app.log", cfg.File.Path)
	assert.Equal(t, int64(1<<20), cfg.File.MaxSizeBytes)
	assert.Equal(t, 4, cfg.File.MaxFiles)
	assert.True(t, cfg.File.Compress)
	assert.Equal(t, RotationSizeTime, cfg.File.RotationStrategy)
	assert.Equal(t, time.Hour, cfg.File.RotationInterval)

	assert.Equal(t, []string{"api", "worker"}, cfg.Tags)
	assert.Equal(t, "eu", cfg.Context["region"])

	require.NotNil(t, cfg.Sampling)
	assert.InDelta(t, 0.5, cfg.Sampling.Rate, 0.0001)
	assert.Equal(t, []Level{WarnLevel}, cfg.Sampling.Levels)

	assert.Equal(t, 512, cfg.MaxMessageLength)
	assert.False(t, cfg.EnableAsync)
}

func TestConfigBuilder_Defaults(t *testing.T) {
	cfg := NewConfigBuilder().Build()

	assert.Equal(t, DefaultConfig().Level, cfg.Level)
	assert.Equal(t, DefaultConfig().MaxMessageLength, cfg.MaxMessageLength)
}

func TestConfigBuilder_AutoRouting(t *testing.T) {
	cfg := NewConfigBuilder().WithAutoRouting().Build()

	assert.True(t, cfg.Output.Auto)
}
