// Package chi provides request-logging middleware for chi routers.
package chi

import (
	"net/http"

	logger "github.com/shuliangfu/logger"
)

// Config defines the configuration options for the chi middleware.
type Config struct {
	// Logger receives the request entries. Nil falls back to a no-op
	// logger.
	Logger logger.Logger
	// IncludeHeaders lists request headers copied into the entry data.
	IncludeHeaders []string
	// ContextExtractor supplies additional entry data from the request.
	ContextExtractor func(r *http.Request) map[string]any
	// CaptureRequestID copies the X-Request-ID header when present.
	CaptureRequestID bool
	// LatencyFieldName overrides the data key for request latency.
	LatencyFieldName string
	// StatusFieldName overrides the data key for the response status.
	StatusFieldName string
	// Tags are attached to every request entry.
	Tags []string
}

func (c Config) withDefaults() Config {
	if c.Logger == nil {
		c.Logger = logger.NewNoop()
	}

	if c.ContextExtractor == nil {
		c.ContextExtractor = DefaultContextExtractor
	}

	if c.LatencyFieldName == "" {
		c.LatencyFieldName = "latency_ms"
	}

	if c.StatusFieldName == "" {
		c.StatusFieldName = "status"
	}

	return c
}
