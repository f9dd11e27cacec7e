// Package adapter provides the concrete implementation of the logger
// interface.
//
// The adapter package bridges the abstract Logger interface with the engine
// that filters, samples, formats, and dispatches log entries to the console,
// a rotating log file, and custom sinks. Dispatch targets fail independently:
// an I/O error on one target never prevents the others and never propagates
// to the logging call site.
package adapter

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hyp3rd/ewrap"

	logger "github.com/shuliangfu/logger"
	"github.com/shuliangfu/logger/internal/output"
	"github.com/shuliangfu/logger/pkg/console"
)

// Ensure Adapter implements the Logger interface.
var _ logger.Logger = (*Adapter)(nil)

// Adapter implements the logger.Logger interface.
//
//nolint:containedctx
type Adapter struct {
	mu          sync.RWMutex
	config      *logger.Config
	level       atomic.Uint32
	ctx         context.Context
	tags        []string
	context     map[string]any
	filterCfg   *logger.FilterConfig
	samplingCfg *logger.SamplingConfig
	filter      *tagFilter
	sampler     *sampler
	perf        *perfTracker
	routing     routing
	fileOut     output.Writer
	closed      atomic.Bool
}

// New creates a new logger with the given configuration. Every field of the
// configuration is optional; defaults are applied once here and auto output
// routing is resolved once from the current TTY state, never re-evaluated.
//
// File-output problems (unsafe path, open failure) do not fail construction:
// the error is reported to the real console and the logger operates with
// file dispatch inactive.
func New(ctx context.Context, config logger.Config) (logger.Logger, error) {
	err := applyDefaults(&config)
	if err != nil {
		return nil, err
	}

	adapter := &Adapter{
		config:      &config,
		ctx:         normalizeContext(ctx),
		tags:        slices.Clone(config.Tags),
		context:     copyContext(config.Context),
		filterCfg:   config.Filter,
		samplingCfg: config.Sampling,
		filter:      newTagFilter(config.Filter),
		sampler:     newSampler(config.Sampling),
		perf:        newPerfTracker(config.MaxPerformanceRecords),
		routing:     resolveRouting(&config),
	}

	adapter.level.Store(uint32(config.Level))
	adapter.openFileOutput(&config)

	return adapter, nil
}

// applyDefaults validates the configuration and fills the zero values whose
// zero has no meaning of its own.
func applyDefaults(config *logger.Config) error {
	if !config.Level.IsValid() {
		return ewrap.New("invalid log level").WithMetadata("level", config.Level)
	}

	if !config.Format.IsValid() {
		return ewrap.New("invalid output format").WithMetadata("format", config.Format)
	}

	if !config.File.RotationStrategy.IsValid() {
		config.File.RotationStrategy = logger.RotationSize
	}

	if config.TimeFormat == "" {
		config.TimeFormat = logger.DefaultTimeFormat
	}

	if config.AsyncBufferSize <= 0 {
		config.AsyncBufferSize = logger.DefaultAsyncBufferSize
	}

	if config.MaxPerformanceRecords <= 0 {
		config.MaxPerformanceRecords = logger.DefaultPerformanceCapacity
	}

	if config.Context == nil {
		config.Context = make(map[string]any)
	}

	return nil
}

// openFileOutput opens the rotating file writer when routing selected file
// output. Failures disable file dispatch and are reported to the real
// console rather than surfaced to the caller.
func (a *Adapter) openFileOutput(config *logger.Config) {
	if !a.routing.file || a.routing.filePath == "" {
		return
	}

	strategy := config.File.RotationStrategy

	fileCfg := output.FileConfig{
		Path:         a.routing.filePath,
		MaxSize:      config.File.MaxSizeBytes,
		MaxFiles:     config.File.MaxFiles,
		Compress:     config.File.Compress,
		FileMode:     config.File.FileMode,
		RotateOnSize: strategy == logger.RotationSize || strategy == logger.RotationSizeTime,
		ErrorHandler: func(err error) {
			console.Direct().Error("logger: file output error:", err)
		},
	}

	if strategy == logger.RotationTime || strategy == logger.RotationSizeTime {
		interval := config.File.RotationInterval
		if interval <= 0 {
			interval = logger.DefaultRotationInterval
		}

		fileCfg.RotateInterval = interval
	}

	fileWriter, err := output.NewFileWriter(fileCfg)
	if err != nil {
		console.Direct().Error("logger: file output disabled:", err)

		return
	}

	if config.EnableAsync {
		a.fileOut = output.NewAsyncWriter(fileWriter, output.AsyncConfig{
			BufferSize: config.AsyncBufferSize,
			ErrorHandler: func(err error) {
				console.Direct().Error("logger: async file write error:", err)
			},
		})

		return
	}

	a.fileOut = fileWriter
}

// Severity methods.

// Debug logs a message at debug level.
func (a *Adapter) Debug(msg string, data ...any) {
	payload, err := splitPayload(data)
	a.log(logger.DebugLevel, msg, payload, err, nil)
}

// Info logs a message at info level.
func (a *Adapter) Info(msg string, data ...any) {
	payload, err := splitPayload(data)
	a.log(logger.InfoLevel, msg, payload, err, nil)
}

// Warn logs a message at warn level.
func (a *Adapter) Warn(msg string, data ...any) {
	payload, err := splitPayload(data)
	a.log(logger.WarnLevel, msg, payload, err, nil)
}

// Error logs a message at error level.
func (a *Adapter) Error(msg string, data ...any) {
	payload, err := splitPayload(data)
	a.log(logger.ErrorLevel, msg, payload, err, nil)
}

// Fatal logs a message at fatal level. Fatal is the highest severity but
// does not terminate the process; logging never alters application control
// flow.
func (a *Adapter) Fatal(msg string, data ...any) {
	payload, err := splitPayload(data)
	a.log(logger.FatalLevel, msg, payload, err, nil)
}

// Formatted severity methods.

// Debugf logs a formatted message at debug level.
func (a *Adapter) Debugf(format string, args ...any) {
	a.log(logger.DebugLevel, fmt.Sprintf(format, args...), nil, nil, nil)
}

// Infof logs a formatted message at info level.
func (a *Adapter) Infof(format string, args ...any) {
	a.log(logger.InfoLevel, fmt.Sprintf(format, args...), nil, nil, nil)
}

// Warnf logs a formatted message at warn level.
func (a *Adapter) Warnf(format string, args ...any) {
	a.log(logger.WarnLevel, fmt.Sprintf(format, args...), nil, nil, nil)
}

// Errorf logs a formatted message at error level.
func (a *Adapter) Errorf(format string, args ...any) {
	a.log(logger.ErrorLevel, fmt.Sprintf(format, args...), nil, nil, nil)
}

// Fatalf logs a formatted message at fatal level.
func (a *Adapter) Fatalf(format string, args ...any) {
	a.log(logger.FatalLevel, fmt.Sprintf(format, args...), nil, nil, nil)
}

// Log is the shared entry point behind the severity methods.
func (a *Adapter) Log(level logger.Level, msg string, data any, err error, tags ...string) {
	a.log(level, msg, data, err, tags)
}

// log runs the pipeline: level gate, tag/context merge, tag filter,
// sampling, truncation, and dispatch. Nothing in here propagates to the
// caller.
func (a *Adapter) log(level logger.Level, msg string, data any, err error, callTags []string) {
	if uint32(level) < a.level.Load() {
		return
	}

	a.mu.RLock()
	config := a.config
	mergedTags := mergeTags(a.tags, callTags)
	mergedContext := copyContext(a.context)
	filter := a.filter
	smp := a.sampler
	a.mu.RUnlock()

	entry := &logger.Entry{
		Timestamp: time.Now().Format(config.TimeFormat),
		Level:     level,
		Message:   msg,
		Data:      data,
		Err:       logger.NormalizeError(err),
		Tags:      mergedTags,
		Context:   mergedContext,
	}

	if !filter.Allow(entry) {
		return
	}

	if !smp.Allow(level) {
		return
	}

	entry.Message = truncate(entry.Message, config.MaxMessageLength)

	a.dispatch(entry, config)
}

// dispatch writes the entry to every active target independently. A failure
// in one target is reported to the real console and never affects the
// others.
func (a *Adapter) dispatch(entry *logger.Entry, config *logger.Config) {
	if a.routing.console {
		line := formatEntry(entry, config, shouldUseColor(config, false))
		writeConsole(entry.Level, line)
	}

	// File output follows the configured format but is never colorized;
	// the color format degrades to plain text.
	if a.fileOut != nil && !a.closed.Load() {
		line := formatEntry(entry, config, false)

		_, err := a.fileOut.Write([]byte(line + "\n"))
		if err != nil {
			reportDispatchError("file", err)
		}
	}

	if a.routing.custom && config.Output.Custom != nil {
		line := formatEntry(entry, config, shouldUseColor(config, false))
		a.invokeSink(config.Output.Custom, line, entry)
	}
}

// invokeSink calls the custom sink with panic isolation so a misbehaving
// sink cannot take down the logging call.
func (a *Adapter) invokeSink(sink logger.Sink, line string, entry *logger.Entry) {
	defer func() {
		if r := recover(); r != nil {
			reportDispatchError("custom sink", fmt.Errorf("panic: %v", r))
		}
	}()

	err := sink(a.ctx, line, entry)
	if err != nil {
		reportDispatchError("custom sink", err)
	}
}

// writeConsole routes the formatted line through the console capability,
// resolved at call time so redirection never loops back into this logger.
func writeConsole(level logger.Level, line string) {
	target := console.Direct()

	switch level {
	case logger.DebugLevel:
		target.Debug(line)
	case logger.InfoLevel:
		target.Info(line)
	case logger.WarnLevel:
		target.Warn(line)
	case logger.ErrorLevel, logger.FatalLevel:
		target.Error(line)
	default:
		target.Info(line)
	}
}

func reportDispatchError(target string, err error) {
	console.Direct().Error("logger: "+target+" dispatch failed:", err)
}

// Configuration operations.

// SetLevel sets the minimum logging level.
func (a *Adapter) SetLevel(level logger.Level) {
	if level.IsValid() {
		a.level.Store(uint32(level))
	}
}

// GetLevel returns the current minimum logging level.
func (a *Adapter) GetLevel() logger.Level {
	//nolint:gosec // Levels are stored from a valid Level and cannot overflow.
	return logger.Level(a.level.Load())
}

// SetContext merges the given keys into the logger context; existing keys
// are overridden.
func (a *Adapter) SetContext(ctx map[string]any) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.context == nil {
		a.context = make(map[string]any, len(ctx))
	}

	for key, value := range ctx {
		a.context[key] = value
	}
}

// GetContext returns a copy of the logger context.
func (a *Adapter) GetContext() map[string]any {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return copyContext(a.context)
}

// AddTag appends a tag unless it is already present.
func (a *Adapter) AddTag(tag string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !slices.Contains(a.tags, tag) {
		a.tags = append(a.tags, tag)
	}
}

// RemoveTag removes every occurrence of the tag; absent tags are a no-op.
func (a *Adapter) RemoveTag(tag string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.tags = slices.DeleteFunc(a.tags, func(existing string) bool {
		return existing == tag
	})
}

// Tags returns a copy of the logger's tag list.
func (a *Adapter) Tags() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return slices.Clone(a.tags)
}

// SetFilter replaces the filter configuration and rebuilds the tag sets so
// per-entry membership checks stay constant-time.
func (a *Adapter) SetFilter(filter *logger.FilterConfig) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.filterCfg = filter
	a.filter = newTagFilter(filter)
}

// GetFilter returns the current filter configuration.
func (a *Adapter) GetFilter() *logger.FilterConfig {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.filterCfg
}

// SetSampling replaces the sampling configuration.
func (a *Adapter) SetSampling(sampling *logger.SamplingConfig) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.samplingCfg = sampling
	a.sampler = newSampler(sampling)
}

// GetSampling returns the current sampling configuration.
func (a *Adapter) GetSampling() *logger.SamplingConfig {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.samplingCfg
}

// Child derives a fully independent logger. Its tags are the parent's tags
// with the override tags appended, its context is the parent's context
// shallow-merged under the override context, and every other setting
// defaults to the parent's unless overridden. A child configured for file
// output opens its own file handle.
func (a *Adapter) Child(overrides logger.ChildOverrides) logger.Logger {
	a.mu.RLock()
	config := *a.config
	config.Tags = mergeTags(a.tags, overrides.Tags)
	config.Context = mergeContext(a.context, overrides.Context)
	config.Filter = a.filterCfg
	config.Sampling = a.samplingCfg
	a.mu.RUnlock()

	config.Level = a.GetLevel()

	if overrides.Level != nil {
		config.Level = *overrides.Level
	}

	if overrides.Format != nil {
		config.Format = *overrides.Format
	}

	if overrides.Filter != nil {
		config.Filter = overrides.Filter
	}

	if overrides.Sampling != nil {
		config.Sampling = overrides.Sampling
	}

	if overrides.MaxMessageLength != nil {
		config.MaxMessageLength = *overrides.MaxMessageLength
	}

	if overrides.FilePath != "" {
		config.File.Path = overrides.FilePath
	}

	child, err := New(a.ctx, config)
	if err != nil {
		console.Direct().Error("logger: child construction failed:", err)

		return logger.NewNoop()
	}

	return child
}

// Performance tracking.

// StartPerformance records a timer for the named operation and returns an
// opaque id. The record map is bounded; exceeding the capacity evicts the
// oldest record first. StartPerformance has no failure mode.
func (a *Adapter) StartPerformance(operation string, data map[string]any) string {
	return a.perf.start(operation, data)
}

// EndPerformance stops the timer with the given id, emits a log entry at
// the given level reporting the operation name and duration, and deletes
// the record. An unknown id emits a warning instead.
func (a *Adapter) EndPerformance(id string, level logger.Level) {
	record, ok := a.perf.end(id)
	if !ok {
		a.log(logger.WarnLevel, "performance id not found", map[string]any{"id": id}, nil, nil)

		return
	}

	duration := time.Since(record.start)

	data := make(map[string]any, len(record.data)+2)
	for key, value := range record.data {
		data[key] = value
	}

	data["operation"] = record.operation
	data["duration_ms"] = float64(duration) / float64(time.Millisecond)

	if !level.IsValid() {
		level = logger.InfoLevel
	}

	a.log(level, fmt.Sprintf("%s completed in %s", record.operation, duration), data, nil, nil)
}

// Lifecycle.

// Sync ensures all queued file output has been written.
func (a *Adapter) Sync() error {
	if a.fileOut == nil {
		return nil
	}

	err := a.fileOut.Sync()
	if err != nil {
		return ewrap.Wrap(err, "syncing file output")
	}

	return nil
}

// Close stops the rotation timer and releases the file handle. Logging
// after Close skips file dispatch; console and custom targets keep working.
// Close is idempotent.
func (a *Adapter) Close() error {
	if a.closed.Swap(true) {
		return nil
	}

	if a.fileOut == nil {
		return nil
	}

	err := a.fileOut.Close()
	if err != nil {
		return ewrap.Wrap(err, "closing file output")
	}

	return nil
}

// GetConfig returns the logger configuration.
func (a *Adapter) GetConfig() *logger.Config {
	return a.config
}

// Helpers.

// splitPayload interprets the variadic payload of a severity method: a
// single error becomes the entry error, a single value becomes the data
// payload, and multiple values are collected into a list.
func splitPayload(data []any) (any, error) {
	switch len(data) {
	case 0:
		return nil, nil
	case 1:
		if err, ok := data[0].(error); ok {
			return nil, err
		}

		return data[0], nil
	default:
		return []any(data), nil
	}
}

// mergeTags concatenates the logger tags with the call tags. Duplicates are
// permitted.
func mergeTags(base, extra []string) []string {
	if len(base) == 0 && len(extra) == 0 {
		return nil
	}

	merged := make([]string, 0, len(base)+len(extra))
	merged = append(merged, base...)
	merged = append(merged, extra...)

	return merged
}

// mergeContext shallow-merges the base context under the override context.
func mergeContext(base, override map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(override))

	for key, value := range base {
		merged[key] = value
	}

	for key, value := range override {
		merged[key] = value
	}

	return merged
}

func copyContext(ctx map[string]any) map[string]any {
	if len(ctx) == 0 {
		return map[string]any{}
	}

	copied := make(map[string]any, len(ctx))
	for key, value := range ctx {
		copied[key] = value
	}

	return copied
}

// truncate shortens a message to at most max characters, appending a single
// ellipsis marker. Zero disables truncation.
func truncate(msg string, maxLength int) string {
	if maxLength <= 0 {
		return msg
	}

	runes := []rune(msg)
	if len(runes) <= maxLength {
		return msg
	}

	return string(runes[:maxLength]) + "…"
}

func normalizeContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}

	return ctx
}
