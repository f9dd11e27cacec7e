package logger

// NoopLogger is a logger that does nothing.
type NoopLogger struct {
	level Level
}

// NewNoop creates a new NoopLogger.
func NewNoop() Logger {
	return &NoopLogger{
		level: InfoLevel, // Default level
	}
}

// Ensure NoopLogger implements Logger interface.
var _ Logger = (*NoopLogger)(nil)

// Basic logging methods.

// Debug logs a message at the Debug level.
func (*NoopLogger) Debug(_ string, _ ...any) {}

// Info logs a message at the Info level.
func (*NoopLogger) Info(_ string, _ ...any) {}

// Warn logs a message at the Warn level.
func (*NoopLogger) Warn(_ string, _ ...any) {}

// Error logs a message at the Error level.
func (*NoopLogger) Error(_ string, _ ...any) {}

// Fatal logs a message at the Fatal level.
func (*NoopLogger) Fatal(_ string, _ ...any) {}

// Formatted logging methods.

// Debugf logs a formatted message at the Debug level.
func (*NoopLogger) Debugf(_ string, _ ...any) {}

// Infof logs a formatted message at the Info level.
func (*NoopLogger) Infof(_ string, _ ...any) {}

// Warnf logs a formatted message at the Warn level.
func (*NoopLogger) Warnf(_ string, _ ...any) {}

// Errorf logs a formatted message at the Error level.
func (*NoopLogger) Errorf(_ string, _ ...any) {}

// Fatalf logs a formatted message at the Fatal level.
func (*NoopLogger) Fatalf(_ string, _ ...any) {}

// Log discards the entry.
func (*NoopLogger) Log(_ Level, _ string, _ any, _ error, _ ...string) {}

// Configuration and lifecycle methods.

// SetLevel sets the log level.
func (l *NoopLogger) SetLevel(level Level) { l.level = level }

// GetLevel returns the current log level.
func (l *NoopLogger) GetLevel() Level { return l.level }

// SetContext discards the given context.
func (*NoopLogger) SetContext(_ map[string]any) {}

// GetContext returns an empty context.
func (*NoopLogger) GetContext() map[string]any { return map[string]any{} }

// AddTag discards the given tag.
func (*NoopLogger) AddTag(_ string) {}

// RemoveTag is a no-op.
func (*NoopLogger) RemoveTag(_ string) {}

// Tags returns an empty tag list.
func (*NoopLogger) Tags() []string { return nil }

// SetFilter discards the given filter.
func (*NoopLogger) SetFilter(_ *FilterConfig) {}

// GetFilter returns nil.
func (*NoopLogger) GetFilter() *FilterConfig { return nil }

// SetSampling discards the given sampling configuration.
func (*NoopLogger) SetSampling(_ *SamplingConfig) {}

// GetSampling returns nil.
func (*NoopLogger) GetSampling() *SamplingConfig { return nil }

// Child returns the same logger.
func (l *NoopLogger) Child(_ ChildOverrides) Logger { return l }

// StartPerformance returns an empty id.
func (*NoopLogger) StartPerformance(_ string, _ map[string]any) string { return "" }

// EndPerformance is a no-op.
func (*NoopLogger) EndPerformance(_ string, _ Level) {}

// Sync is a no-op.
func (*NoopLogger) Sync() error { return nil }

// Close is a no-op.
func (*NoopLogger) Close() error { return nil }

// GetConfig returns nil.
func (*NoopLogger) GetConfig() *Config { return nil }
