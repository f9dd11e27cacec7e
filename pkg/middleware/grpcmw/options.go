// Package grpcmw provides gRPC server interceptors that log calls through a
// Logger.
package grpcmw

import (
	logger "github.com/shuliangfu/logger"
)

// Option defines a configuration option for the gRPC interceptors.
type Option func(*options)

type options struct {
	log        logger.Logger
	traceKey   string
	requestKey string
	tags       []string
}

func actualOptions(opts ...Option) options {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.log == nil {
		cfg.log = logger.NewNoop()
	}

	if cfg.traceKey == "" {
		cfg.traceKey = "x-trace-id"
	}

	if cfg.requestKey == "" {
		cfg.requestKey = "x-request-id"
	}

	return cfg
}

// WithLogger sets the logger receiving the call entries.
func WithLogger(log logger.Logger) Option {
	return func(o *options) {
		if o == nil || log == nil {
			return
		}

		o.log = log
	}
}

// WithTraceKey customizes the metadata key read for the trace identifier.
func WithTraceKey(name string) Option {
	return func(o *options) {
		if o == nil || name == "" {
			return
		}

		o.traceKey = name
	}
}

// WithRequestKey customizes the metadata key read for the request
// identifier.
func WithRequestKey(name string) Option {
	return func(o *options) {
		if o == nil || name == "" {
			return
		}

		o.requestKey = name
	}
}

// WithTags attaches the tags to every call entry.
func WithTags(tags ...string) Option {
	return func(o *options) {
		if o == nil {
			return
		}

		o.tags = tags
	}
}
