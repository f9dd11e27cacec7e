package log

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	logger "github.com/shuliangfu/logger"
)

func TestNewWithDefaults(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		wantLevel   logger.Level
		wantFormat  logger.Format
	}{
		{
			name:        "non-production environment",
			environment: NonProductionEnvironment,
			wantLevel:   logger.DebugLevel,
			wantFormat:  logger.ColorFormat,
		},
		{
			name:        "production environment",
			environment: "production",
			wantLevel:   logger.InfoLevel,
			wantFormat:  logger.JSONFormat,
		},
		{
			name:        "empty environment treated as production",
			environment: "",
			wantLevel:   logger.InfoLevel,
			wantFormat:  logger.JSONFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := NewWithDefaults(context.Background(), tt.environment, "test-service")
			require.NoError(t, err)

			t.Cleanup(func() {
				_ = log.Close()
			})

			assert.Equal(t, tt.wantLevel, log.GetLevel())
			assert.Equal(t, tt.wantFormat, log.GetConfig().Format)

			ctx := log.GetContext()
			assert.Equal(t, "test-service", ctx["service"])
			assert.Equal(t, tt.environment, ctx["environment"])
		})
	}
}

func registryConfig() logger.Config {
	cfg := logger.DefaultConfig()
	cfg.Output.Console = logger.Bool(false)

	return cfg
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Cleanup(func() {
		_ = CloseAll()
	})

	_, ok := Get("absent")
	assert.False(t, ok)

	first := logger.NewNoop()
	assert.Nil(t, Register("svc", first))

	got, ok := Get("svc")
	require.True(t, ok)
	assert.Same(t, first, got)

	// Replacing returns the previous logger.
	second := logger.NewNoop()
	previous := Register("svc", second)
	assert.Same(t, first, previous)
}

func TestRegistry_GetOrCreate(t *testing.T) {
	t.Cleanup(func() {
		_ = CloseAll()
	})

	created, err := GetOrCreate(context.Background(), "worker", registryConfig())
	require.NoError(t, err)

	again, err := GetOrCreate(context.Background(), "worker", registryConfig())
	require.NoError(t, err)
	assert.Same(t, created, again)
}

func TestRegistry_Unregister(t *testing.T) {
	t.Cleanup(func() {
		_ = CloseAll()
	})

	Register("doomed", logger.NewNoop())

	removed, ok := Unregister("doomed")
	require.True(t, ok)
	require.NotNil(t, removed)

	_, ok = Get("doomed")
	assert.False(t, ok)

	_, ok = Unregister("doomed")
	assert.False(t, ok)
}

func TestRegistry_CloseAll(t *testing.T) {
	Register("a", logger.NewNoop())
	Register("b", logger.NewNoop())

	require.NoError(t, CloseAll())

	_, ok := Get("a")
	assert.False(t, ok)

	_, ok = Get("b")
	assert.False(t, ok)
}
