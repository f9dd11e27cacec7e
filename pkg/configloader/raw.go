package configloader

import (
	"time"

	"github.com/hyp3rd/ewrap"

	logger "github.com/shuliangfu/logger"
)

type rawConfig struct {
	Level            string   `mapstructure:"level"              yaml:"level"`
	Format           string   `mapstructure:"format"             yaml:"format"`
	Color            *bool    `mapstructure:"color"              yaml:"color"`
	Console          *bool    `mapstructure:"console"            yaml:"console"`
	Auto             *bool    `mapstructure:"auto"               yaml:"auto"`
	DisableTimestamp *bool    `mapstructure:"disable_timestamp"  yaml:"disable_timestamp"`
	TimeFormat       string   `mapstructure:"time_format"        yaml:"time_format"`
	Tags             []string `mapstructure:"tags"               yaml:"tags"`
	MaxMessageLength *int     `mapstructure:"max_message_length" yaml:"max_message_length"`
	EnableAsync      *bool    `mapstructure:"enable_async"       yaml:"enable_async"`
	AsyncBufferSize  *int     `mapstructure:"async_buffer_size"  yaml:"async_buffer_size"`
	File             struct {
		Path             string `mapstructure:"path"              yaml:"path"`
		MaxSize          *int64 `mapstructure:"max_size"          yaml:"max_size"`
		MaxFiles         *int   `mapstructure:"max_files"         yaml:"max_files"`
		Compress         *bool  `mapstructure:"compress"          yaml:"compress"`
		Rotation         string `mapstructure:"rotation"          yaml:"rotation"`
		RotationInterval string `mapstructure:"rotation_interval" yaml:"rotation_interval"`
	} `mapstructure:"file" yaml:"file"`
	Sampling struct {
		Rate   *float64 `mapstructure:"rate"   yaml:"rate"`
		Levels []string `mapstructure:"levels" yaml:"levels"`
	} `mapstructure:"sampling" yaml:"sampling"`
}

//nolint:cyclop // Sequential field application, one branch per optional key.
func applyRaw(raw rawConfig) (*logger.Config, error) {
	cfg := logger.DefaultConfig()

	if raw.Level != "" {
		level, err := logger.ParseLevel(raw.Level)
		if err != nil {
			return nil, err
		}

		cfg.Level = level
	}

	if raw.Format != "" {
		format, err := logger.ParseFormat(raw.Format)
		if err != nil {
			return nil, err
		}

		cfg.Format = format
	}

	cfg.Color = raw.Color
	cfg.Output.Console = raw.Console

	if raw.Auto != nil {
		cfg.Output.Auto = *raw.Auto
	}

	if raw.DisableTimestamp != nil {
		cfg.DisableTimestamp = *raw.DisableTimestamp
	}

	if raw.TimeFormat != "" {
		cfg.TimeFormat = raw.TimeFormat
	}

	if len(raw.Tags) > 0 {
		cfg.Tags = raw.Tags
	}

	if raw.MaxMessageLength != nil {
		cfg.MaxMessageLength = *raw.MaxMessageLength
	}

	if raw.EnableAsync != nil {
		cfg.EnableAsync = *raw.EnableAsync
	}

	if raw.AsyncBufferSize != nil {
		cfg.AsyncBufferSize = *raw.AsyncBufferSize
	}

	err := applyFile(&cfg, raw)
	if err != nil {
		return nil, err
	}

	err = applySampling(&cfg, raw)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyFile(cfg *logger.Config, raw rawConfig) error {
	if raw.File.Path != "" {
		cfg.File.Path = raw.File.Path
	}

	if raw.File.MaxSize != nil {
		cfg.File.MaxSizeBytes = *raw.File.MaxSize
	}

	if raw.File.MaxFiles != nil {
		cfg.File.MaxFiles = *raw.File.MaxFiles
	}

	if raw.File.Compress != nil {
		cfg.File.Compress = *raw.File.Compress
	}

	if raw.File.Rotation != "" {
		strategy, err := parseRotation(raw.File.Rotation)
		if err != nil {
			return err
		}

		cfg.File.RotationStrategy = strategy
	}

	if raw.File.RotationInterval != "" {
		interval, err := time.ParseDuration(raw.File.RotationInterval)
		if err != nil {
			return ewrap.Wrap(err, "invalid rotation interval").
				WithMetadata("value", raw.File.RotationInterval)
		}

		cfg.File.RotationInterval = interval
	}

	return nil
}

func applySampling(cfg *logger.Config, raw rawConfig) error {
	if raw.Sampling.Rate == nil && len(raw.Sampling.Levels) == 0 {
		return nil
	}

	sampling := &logger.SamplingConfig{Rate: 1}

	if raw.Sampling.Rate != nil {
		sampling.Rate = *raw.Sampling.Rate
	}

	for _, name := range raw.Sampling.Levels {
		level, err := logger.ParseLevel(name)
		if err != nil {
			return err
		}

		sampling.Levels = append(sampling.Levels, level)
	}

	cfg.Sampling = sampling

	return nil
}

func parseRotation(value string) (logger.RotationStrategy, error) {
	switch value {
	case "size":
		return logger.RotationSize, nil
	case "time":
		return logger.RotationTime, nil
	case "size-time":
		return logger.RotationSizeTime, nil
	case "none":
		return logger.RotationNone, nil
	default:
		return logger.RotationSize, ewrap.New("invalid rotation strategy").
			WithMetadata("value", value)
	}
}

func allKeys() []string {
	return []string{
		"level",
		"format",
		"color",
		"console",
		"auto",
		"disable_timestamp",
		"time_format",
		"tags",
		"max_message_length",
		"enable_async",
		"async_buffer_size",
		"file.path",
		"file.max_size",
		"file.max_files",
		"file.compress",
		"file.rotation",
		"file.rotation_interval",
		"sampling.rate",
		"sampling.levels",
	}
}
