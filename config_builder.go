package logger

import (
	"time"
)

// ConfigBuilder provides a fluent API for constructing logger configurations.
// It allows for more readable and chainable configuration setup.
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder creates a new builder with sensible defaults.
// This is the entry point for the fluent configuration API.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		config: DefaultConfig(),
	}
}

// WithLevel sets the logging level.
// Example: builder.WithLevel(logger.DebugLevel).
func (b *ConfigBuilder) WithLevel(level Level) *ConfigBuilder {
	b.config.Level = level

	return b
}

// WithDebugLevel is a convenience method for WithLevel(DebugLevel).
func (b *ConfigBuilder) WithDebugLevel() *ConfigBuilder {
	return b.WithLevel(DebugLevel)
}

// WithFormat sets the output format.
// Example: builder.WithFormat(logger.JSONFormat).
func (b *ConfigBuilder) WithFormat(format Format) *ConfigBuilder {
	b.config.Format = format

	return b
}

// WithConsole enables or disables console output.
func (b *ConfigBuilder) WithConsole(enable bool) *ConfigBuilder {
	b.config.Output.Console = Bool(enable)

	return b
}

// WithFileOutput configures the logger to write to a file.
// The file will be created if it doesn't exist, and appended to if it does.
// Example: builder.WithFileOutput("/var/log/my_app.log").
func (b *ConfigBuilder) WithFileOutput(path string) *ConfigBuilder {
	b.config.File.Path = path

	return b
}

// WithRotation configures size-based rotation for file output.
func (b *ConfigBuilder) WithRotation(maxSizeBytes int64, maxFiles int, compress bool) *ConfigBuilder {
	b.config.File.MaxSizeBytes = maxSizeBytes
	b.config.File.MaxFiles = maxFiles
	b.config.File.Compress = compress
	b.config.File.RotationStrategy = RotationSize

	return b
}

// WithTimedRotation enables time-based rotation alongside size-based
// rotation.
func (b *ConfigBuilder) WithTimedRotation(interval time.Duration) *ConfigBuilder {
	b.config.File.RotationInterval = interval
	b.config.File.RotationStrategy = RotationSizeTime

	return b
}

// WithAutoRouting resolves console/file routing from the TTY state at
// construction.
func (b *ConfigBuilder) WithAutoRouting() *ConfigBuilder {
	b.config.Output.Auto = true

	return b
}

// WithCustomSink attaches an additional output sink.
func (b *ConfigBuilder) WithCustomSink(sink Sink) *ConfigBuilder {
	b.config.Output.Custom = sink

	return b
}

// WithColor overrides automatic color detection.
func (b *ConfigBuilder) WithColor(enable bool) *ConfigBuilder {
	b.config.Color = Bool(enable)

	return b
}

// WithTimeFormat sets the time format string.
// Example: builder.WithTimeFormat(time.RFC3339).
func (b *ConfigBuilder) WithTimeFormat(format string) *ConfigBuilder {
	b.config.TimeFormat = format

	return b
}

// WithNoTimestamp disables timestamp output in log entries.
func (b *ConfigBuilder) WithNoTimestamp() *ConfigBuilder {
	b.config.DisableTimestamp = true

	return b
}

// WithTags attaches tags to every entry.
func (b *ConfigBuilder) WithTags(tags ...string) *ConfigBuilder {
	b.config.Tags = append(b.config.Tags, tags...)

	return b
}

// WithContext merges keys into the logger context.
func (b *ConfigBuilder) WithContext(ctx map[string]any) *ConfigBuilder {
	if b.config.Context == nil {
		b.config.Context = make(map[string]any, len(ctx))
	}

	for key, value := range ctx {
		b.config.Context[key] = value
	}

	return b
}

// WithFilter sets the tag filter configuration.
func (b *ConfigBuilder) WithFilter(filter *FilterConfig) *ConfigBuilder {
	b.config.Filter = filter

	return b
}

// WithSampling sets the sampling configuration.
func (b *ConfigBuilder) WithSampling(rate float64, levels ...Level) *ConfigBuilder {
	b.config.Sampling = &SamplingConfig{Rate: rate, Levels: levels}

	return b
}

// WithMaxMessageLength sets the message truncation threshold. Zero disables
// truncation.
func (b *ConfigBuilder) WithMaxMessageLength(length int) *ConfigBuilder {
	b.config.MaxMessageLength = length

	return b
}

// WithSyncWrites disables the async file-write queue so file writes happen
// inline.
func (b *ConfigBuilder) WithSyncWrites() *ConfigBuilder {
	b.config.EnableAsync = false

	return b
}

// Build returns the assembled configuration.
func (b *ConfigBuilder) Build() Config {
	return b.config
}
