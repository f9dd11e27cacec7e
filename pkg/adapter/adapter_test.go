package adapter

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	logger "github.com/shuliangfu/logger"
)

// sinkRecorder captures every entry dispatched to a custom sink.
type sinkRecorder struct {
	mu      sync.Mutex
	lines   []string
	entries []*logger.Entry
}

func (r *sinkRecorder) sink(_ context.Context, formatted string, entry *logger.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lines = append(r.lines, formatted)
	r.entries = append(r.entries, entry)

	return nil
}

func (r *sinkRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.entries)
}

func (r *sinkRecorder) entry(t *testing.T, index int) *logger.Entry {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()

	require.Greater(t, len(r.entries), index)

	return r.entries[index]
}

// newTestLogger builds an adapter that dispatches only to a recording sink.
func newTestLogger(t *testing.T, mutate func(*logger.Config)) (logger.Logger, *sinkRecorder) {
	t.Helper()

	recorder := &sinkRecorder{}

	cfg := logger.DefaultConfig()
	cfg.Level = logger.DebugLevel
	cfg.Output.Console = logger.Bool(false)
	cfg.Output.Custom = recorder.sink
	cfg.EnableAsync = false

	if mutate != nil {
		mutate(&cfg)
	}

	log, err := New(context.Background(), cfg)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = log.Close()
	})

	return log, recorder
}

func TestNew_ConfigValidation(t *testing.T) {
	tests := []struct {
		name        string
		config      logger.Config
		wantErr     bool
		errContains string
	}{
		{
			name:    "default config",
			config:  logger.DefaultConfig(),
			wantErr: false,
		},
		{
			name:    "zero config gets defaults",
			config:  logger.Config{},
			wantErr: false,
		},
		{
			name:        "invalid level",
			config:      logger.Config{Level: logger.Level(9)},
			wantErr:     true,
			errContains: "invalid log level",
		},
		{
			name:        "invalid format",
			config:      logger.Config{Format: logger.Format(9)},
			wantErr:     true,
			errContains: "invalid output format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(context.Background(), tt.config)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, log)
			require.NoError(t, log.Close())
		})
	}
}

func TestAdapter_LevelGate(t *testing.T) {
	log, recorder := newTestLogger(t, func(cfg *logger.Config) {
		cfg.Level = logger.WarnLevel
	})

	log.Debug("dropped")
	log.Info("dropped")
	log.Warn("kept")
	log.Error("kept")
	log.Fatal("kept")

	require.Equal(t, 3, recorder.count())
	assert.Equal(t, logger.WarnLevel, recorder.entry(t, 0).Level)
	assert.Equal(t, logger.ErrorLevel, recorder.entry(t, 1).Level)
	assert.Equal(t, logger.FatalLevel, recorder.entry(t, 2).Level)
}

func TestAdapter_SetLevel(t *testing.T) {
	log, recorder := newTestLogger(t, nil)

	log.SetLevel(logger.ErrorLevel)
	assert.Equal(t, logger.ErrorLevel, log.GetLevel())

	log.Info("dropped")
	log.Error("kept")

	// Invalid levels are ignored.
	log.SetLevel(logger.Level(42))
	assert.Equal(t, logger.ErrorLevel, log.GetLevel())

	require.Equal(t, 1, recorder.count())
}

func TestAdapter_PayloadShapes(t *testing.T) {
	log, recorder := newTestLogger(t, nil)

	log.Info("no payload")
	log.Info("single value", map[string]any{"key": "value"})
	log.Info("single error", errors.New("boom"))
	log.Info("multiple values", "first", 2, "third")

	require.Equal(t, 4, recorder.count())

	assert.Nil(t, recorder.entry(t, 0).Data)
	assert.Nil(t, recorder.entry(t, 0).Err)

	assert.Equal(t, map[string]any{"key": "value"}, recorder.entry(t, 1).Data)

	errEntry := recorder.entry(t, 2)
	assert.Nil(t, errEntry.Data)
	require.NotNil(t, errEntry.Err)
	assert.Equal(t, "boom", errEntry.Err.Message)

	assert.Equal(t, []any{"first", 2, "third"}, recorder.entry(t, 3).Data)
}

func TestAdapter_TagMerge(t *testing.T) {
	log, recorder := newTestLogger(t, func(cfg *logger.Config) {
		cfg.Tags = []string{"service", "db"}
	})

	log.Log(logger.InfoLevel, "query", nil, nil, "slow", "db")

	entry := recorder.entry(t, 0)
	assert.Equal(t, []string{"service", "db", "slow", "db"}, entry.Tags)
}

func TestAdapter_TagManagement(t *testing.T) {
	log, _ := newTestLogger(t, nil)

	log.AddTag("alpha")
	log.AddTag("beta")
	log.AddTag("alpha") // idempotent
	assert.Equal(t, []string{"alpha", "beta"}, log.Tags())

	log.RemoveTag("alpha")
	log.RemoveTag("missing") // no-op
	assert.Equal(t, []string{"beta"}, log.Tags())

	// Tags returns a copy.
	tags := log.Tags()
	tags[0] = "mutated"
	assert.Equal(t, []string{"beta"}, log.Tags())
}

func TestAdapter_ContextMerge(t *testing.T) {
	log, recorder := newTestLogger(t, func(cfg *logger.Config) {
		cfg.Context = map[string]any{"service": "api", "region": "eu"}
	})

	log.SetContext(map[string]any{"region": "us", "zone": "us-1"})

	expected := map[string]any{"service": "api", "region": "us", "zone": "us-1"}
	assert.Equal(t, expected, log.GetContext())

	log.Info("request")
	assert.Equal(t, expected, recorder.entry(t, 0).Context)

	// GetContext returns a copy.
	snapshot := log.GetContext()
	snapshot["service"] = "mutated"
	assert.Equal(t, "api", log.GetContext()["service"])
}

func TestAdapter_Truncation(t *testing.T) {
	tests := []struct {
		name      string
		maxLength int
		message   string
		want      string
	}{
		{
			name:      "under threshold untouched",
			maxLength: 10,
			message:   "short",
			want:      "short",
		},
		{
			name:      "over threshold truncated with marker",
			maxLength: 5,
			message:   "a very long message",
			want:      "a ver…",
		},
		{
			name:      "zero disables truncation",
			maxLength: 0,
			message:   strings.Repeat("x", 100),
			want:      strings.Repeat("x", 100),
		},
		{
			name:      "multibyte runes counted as characters",
			maxLength: 3,
			message:   "héllo wörld",
			want:      "hél…",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, recorder := newTestLogger(t, func(cfg *logger.Config) {
				cfg.MaxMessageLength = tt.maxLength
			})

			log.Info(tt.message)

			assert.Equal(t, tt.want, recorder.entry(t, 0).Message)
		})
	}
}

func TestAdapter_Child(t *testing.T) {
	parent, parentRecorder := newTestLogger(t, func(cfg *logger.Config) {
		cfg.Tags = []string{"parent"}
		cfg.Context = map[string]any{"service": "api", "region": "eu"}
	})

	childLevel := logger.WarnLevel
	child := parent.Child(logger.ChildOverrides{
		Level:   &childLevel,
		Tags:    []string{"child"},
		Context: map[string]any{"region": "us"},
	})

	t.Cleanup(func() {
		_ = child.Close()
	})

	assert.Equal(t, logger.WarnLevel, child.GetLevel())
	assert.Equal(t, []string{"parent", "child"}, child.Tags())
	assert.Equal(t, map[string]any{"service": "api", "region": "us"}, child.GetContext())

	// The child shares the parent's custom sink but is otherwise
	// independent: changing its level does not touch the parent.
	child.SetLevel(logger.ErrorLevel)
	assert.Equal(t, logger.DebugLevel, parent.GetLevel())

	parent.Info("from parent")
	require.Equal(t, 1, parentRecorder.count())
	assert.Equal(t, []string{"parent"}, parentRecorder.entry(t, 0).Tags)
}

func TestAdapter_SinkFailureIsolation(t *testing.T) {
	var calls int

	cfg := logger.DefaultConfig()
	cfg.Output.Console = logger.Bool(false)
	cfg.Output.Custom = func(context.Context, string, *logger.Entry) error {
		calls++

		if calls == 1 {
			panic("sink blew up")
		}

		return errors.New("sink failed")
	}

	log, err := New(context.Background(), cfg)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = log.Close()
	})

	// Neither the panic nor the error escapes the logging call.
	assert.NotPanics(t, func() {
		log.Info("first")
		log.Info("second")
	})
	assert.Equal(t, 2, calls)
}

func TestAdapter_FileOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")

	cfg := logger.DefaultConfig()
	cfg.Format = logger.JSONFormat
	cfg.Output.Console = logger.Bool(false)
	cfg.File.Path = path
	cfg.EnableAsync = false

	log, err := New(context.Background(), cfg)
	require.NoError(t, err)

	log.Warn("disk almost full", map[string]any{"free_mb": 12})
	require.NoError(t, log.Sync())

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Contains(t, string(content), `"level":"warn"`)
	assert.Contains(t, string(content), `"message":"disk almost full"`)
	assert.Contains(t, string(content), `"free_mb":12`)

	require.NoError(t, log.Close())
	require.NoError(t, log.Close(), "close must be idempotent")

	// Logging after close must not panic; file dispatch is skipped.
	assert.NotPanics(t, func() {
		log.Error("after close")
	})
}

func TestAdapter_FileOutputColorFormatStaysPlain(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")

	cfg := logger.DefaultConfig()
	cfg.Format = logger.ColorFormat
	cfg.Color = logger.Bool(true)
	cfg.Output.Console = logger.Bool(false)
	cfg.File.Path = path
	cfg.EnableAsync = false
	cfg.DisableTimestamp = true

	log, err := New(context.Background(), cfg)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = log.Close()
	})

	log.Error("boom")
	require.NoError(t, log.Sync())

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "[ERROR] boom\n", string(content))
	assert.NotContains(t, string(content), "\x1b[")
}

func TestAdapter_FileRotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")

	line := strings.Repeat("x", 40)

	cfg := logger.DefaultConfig()
	cfg.Output.Console = logger.Bool(false)
	cfg.File.Path = path
	cfg.File.MaxSizeBytes = 64
	cfg.File.MaxFiles = 2
	cfg.EnableAsync = false
	cfg.DisableTimestamp = true

	log, err := New(context.Background(), cfg)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = log.Close()
	})

	log.Info(line)
	log.Info(line)
	require.NoError(t, log.Sync())

	// The write crossing the threshold landed in the first backup.
	backup, err := os.ReadFile(path + ".1")
	require.NoError(t, err)
	assert.Contains(t, string(backup), line)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Less(t, info.Size(), int64(64))
}

func TestAdapter_GetConfig(t *testing.T) {
	log, _ := newTestLogger(t, func(cfg *logger.Config) {
		cfg.MaxMessageLength = 512
	})

	cfg := log.GetConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, 512, cfg.MaxMessageLength)
}

func TestSplitPayload(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name     string
		args     []any
		wantData any
		wantErr  error
	}{
		{name: "empty", args: nil, wantData: nil, wantErr: nil},
		{name: "single value", args: []any{42}, wantData: 42, wantErr: nil},
		{name: "single error", args: []any{boom}, wantData: nil, wantErr: boom},
		{name: "multiple", args: []any{"a", boom}, wantData: []any{"a", boom}, wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := splitPayload(tt.args)
			assert.Equal(t, tt.wantData, data)
			assert.Equal(t, tt.wantErr, err)
		})
	}
}

func TestMeasure(t *testing.T) {
	log, recorder := newTestLogger(t, nil)

	fetch := logger.Measure(log, "fetch-user", logger.InfoLevel, func() (string, error) {
		return "user-42", nil
	})

	result, err := fetch()
	require.NoError(t, err)
	assert.Equal(t, "user-42", result)

	require.Equal(t, 1, recorder.count())
	entry := recorder.entry(t, 0)
	assert.Equal(t, logger.InfoLevel, entry.Level)
	assert.Contains(t, entry.Message, "fetch-user completed in")

	data, ok := entry.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "fetch-user", data["operation"])
	assert.Contains(t, data, "duration_ms")
}

func TestMeasure_ErrorPassthrough(t *testing.T) {
	log, recorder := newTestLogger(t, nil)

	boom := errors.New("boom")
	failing := logger.Measure(log, "flaky", logger.DebugLevel, func() (int, error) {
		return 0, boom
	})

	_, err := failing()
	require.ErrorIs(t, err, boom)

	// The timer still ends at the configured level.
	require.Equal(t, 1, recorder.count())
	assert.Equal(t, logger.DebugLevel, recorder.entry(t, 0).Level)
}

func TestMeasure_PanicEndsTimerAtError(t *testing.T) {
	log, recorder := newTestLogger(t, nil)

	exploding := logger.Measure(log, "explode", logger.InfoLevel, func() (int, error) {
		panic("kaboom")
	})

	require.Panics(t, func() {
		_, _ = exploding()
	})

	require.Equal(t, 1, recorder.count())
	assert.Equal(t, logger.ErrorLevel, recorder.entry(t, 0).Level)
}
