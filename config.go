package logger

import (
	"os"
	"strings"
	"time"

	"github.com/hyp3rd/ewrap"
)

const (
	// DefaultTimeFormat is the default time format for log entries.
	DefaultTimeFormat = time.RFC3339
	// DefaultLevel is the default logging level.
	DefaultLevel = InfoLevel
	// DefaultMaxMessageLength is the default message truncation threshold
	// in characters. Zero disables truncation.
	DefaultMaxMessageLength = 32768
	// DefaultAsyncBufferSize is the default size of the async file-write
	// queue.
	DefaultAsyncBufferSize = 1024
	// DefaultPerformanceCapacity is the default bound on in-flight
	// performance records.
	DefaultPerformanceCapacity = 1000
	// DefaultMaxFileSizeMB is the default maximum size in MB for log files
	// before rotation.
	DefaultMaxFileSizeMB = 100
	// DefaultMaxFiles is the default number of rotated backups retained.
	DefaultMaxFiles = 5
	// DefaultRotationInterval is the default interval for time-based
	// rotation.
	DefaultRotationInterval = 24 * time.Hour
	// DefaultAutoLogPath is the file path used when auto routing selects
	// file output and no path was configured.
	DefaultAutoLogPath = "logs/app.log"
	// LogFilePermissions are the default file permissions for log files.
	LogFilePermissions os.FileMode = 0o644
)

// Format selects the output format of a logger.
type Format uint8

const (
	// TextFormat renders entries as plain text lines.
	TextFormat Format = iota
	// JSONFormat renders entries as single-line JSON objects.
	JSONFormat
	// ColorFormat renders entries as text with ANSI colors when the
	// environment allows it.
	ColorFormat
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case TextFormat:
		return "text"
	case JSONFormat:
		return "json"
	case ColorFormat:
		return "color"
	default:
		return "unknown"
	}
}

// IsValid reports whether the format value is recognised.
func (f Format) IsValid() bool {
	return f <= ColorFormat
}

// ParseFormat parses an output format string into a Format.
func ParseFormat(format string) (Format, error) {
	switch strings.ToLower(format) {
	case "text":
		return TextFormat, nil
	case "json":
		return JSONFormat, nil
	case "color":
		return ColorFormat, nil
	default:
		return TextFormat, ewrap.New("invalid output format: " + format)
	}
}

// RotationStrategy selects which triggers rotate the log file.
type RotationStrategy uint8

const (
	// RotationSize rotates when the file reaches the configured maximum
	// size.
	RotationSize RotationStrategy = iota
	// RotationTime rotates on a recurring timer.
	RotationTime
	// RotationSizeTime keeps both triggers active concurrently.
	RotationSizeTime
	// RotationNone disables rotation.
	RotationNone
)

// IsValid reports whether the strategy value is recognised.
func (s RotationStrategy) IsValid() bool {
	return s <= RotationNone
}

// FilterConfig decides whether a level-approved entry is emitted based on
// its merged tag list. ExcludeTags short-circuits to reject before
// IncludeTags is checked; a non-empty IncludeTags is an additional
// requirement; Predicate runs last.
type FilterConfig struct {
	// IncludeTags passes an entry only when at least one tag matches, when
	// non-empty.
	IncludeTags []string
	// ExcludeTags rejects an entry when any tag matches.
	ExcludeTags []string
	// Predicate is an optional custom check over the merged entry.
	Predicate func(entry *Entry) bool
}

// SamplingConfig suppresses entries probabilistically to reduce volume under
// high-frequency logging.
type SamplingConfig struct {
	// Rate is the pass probability in [0, 1].
	Rate float64
	// Levels restricts sampling to the listed levels. Entries at levels
	// outside the list bypass sampling and always pass. Empty applies
	// sampling to every level.
	Levels []Level
}

// FileConfig holds configuration specific to file-based logging.
type FileConfig struct {
	// Path is the path to the log file. Empty disables file output unless
	// auto routing selects it.
	Path string
	// MaxSizeBytes is the size threshold for size-based rotation.
	MaxSizeBytes int64
	// MaxFiles is the number of numbered backups retained; older backups
	// are discarded by the shift-by-rename loop.
	MaxFiles int
	// Compress gzips rotated backups.
	Compress bool
	// RotationStrategy selects the rotation triggers.
	RotationStrategy RotationStrategy
	// RotationInterval is the period of time-based rotation.
	RotationInterval time.Duration
	// FileMode sets the permissions for new log files.
	FileMode os.FileMode
}

// OutputConfig controls where log entries are dispatched.
type OutputConfig struct {
	// Console enables console output. Nil defaults to enabled.
	Console *bool
	// Custom is an optional additional sink invoked with the formatted
	// entry.
	Custom Sink
	// Auto resolves routing from the TTY state once at construction:
	// interactive processes log to the console only, non-interactive
	// processes log to a file only.
	Auto bool
}

// Config holds configuration for a logger. Every field is optional;
// DefaultConfig returns the documented defaults and construction validates
// the result once.
type Config struct {
	// Level is the minimum level to log.
	Level Level
	// Format selects text, JSON, or colorized output.
	Format Format
	// Output controls routing to console, file, and custom targets.
	Output OutputConfig
	// File configures file output and rotation.
	File FileConfig
	// Color overrides color detection when set. Nil derives color from the
	// format, the NO_COLOR environment signal, and TTY state.
	Color *bool
	// DisableTimestamp omits the timestamp from entries.
	DisableTimestamp bool
	// DisableLevelLabel omits the level label from text entries.
	DisableLevelLabel bool
	// TimeFormat specifies the format for timestamps.
	TimeFormat string
	// Tags are attached to every entry, ahead of call tags.
	Tags []string
	// Context is merged into every entry, under call-level keys.
	Context map[string]any
	// Filter holds the tag filter configuration.
	Filter *FilterConfig
	// Sampling holds the sampling configuration.
	Sampling *SamplingConfig
	// MaxMessageLength truncates longer messages. Zero disables
	// truncation.
	MaxMessageLength int
	// MaxPerformanceRecords bounds the in-flight performance-record map.
	MaxPerformanceRecords int
	// EnableAsync queues file writes through a background worker instead
	// of writing inline.
	EnableAsync bool
	// AsyncBufferSize sets the size of the async file-write queue.
	AsyncBufferSize int
}

// DefaultConfig returns the default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:                 DefaultLevel,
		Format:                TextFormat,
		TimeFormat:            DefaultTimeFormat,
		MaxMessageLength:      DefaultMaxMessageLength,
		MaxPerformanceRecords: DefaultPerformanceCapacity,
		EnableAsync:           true,
		AsyncBufferSize:       DefaultAsyncBufferSize,
		Context:               make(map[string]any),
		File: FileConfig{
			MaxSizeBytes:     DefaultMaxFileSizeMB * 1024 * 1024,
			MaxFiles:         DefaultMaxFiles,
			RotationStrategy: RotationSize,
			RotationInterval: DefaultRotationInterval,
			FileMode:         LogFilePermissions,
		},
	}
}

// ProductionConfig returns a configuration optimized for production
// environments: JSON output with colors off.
func ProductionConfig() Config {
	config := DefaultConfig()
	config.Format = JSONFormat
	config.Color = Bool(false)

	return config
}

// DevelopmentConfig returns a configuration optimized for development
// environments: colorized text output at debug level.
func DevelopmentConfig() Config {
	config := DefaultConfig()
	config.Format = ColorFormat
	config.Level = DebugLevel

	return config
}

// Bool returns a pointer to the given bool, for use in optional config
// fields.
func Bool(value bool) *bool {
	return &value
}

// ChildOverrides carries the optional settings a Child logger replaces.
// Tags and Context are combined with the parent's values rather than
// replacing them.
type ChildOverrides struct {
	// Level overrides the minimum level.
	Level *Level
	// Format overrides the output format.
	Format *Format
	// Tags are appended to the parent's tags.
	Tags []string
	// Context keys override the parent's context keys.
	Context map[string]any
	// Filter overrides the filter configuration.
	Filter *FilterConfig
	// Sampling overrides the sampling configuration.
	Sampling *SamplingConfig
	// MaxMessageLength overrides the truncation threshold.
	MaxMessageLength *int
	// FilePath points the child at its own log file. The child owns its
	// own file handle either way.
	FilePath string
}
