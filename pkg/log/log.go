// Package log provides application-level logging functionality for services.
//
// This package creates and configures loggers with appropriate settings based
// on the environment (production or non-production) and service name, and
// keeps a process-wide registry of named loggers so subsystems can share
// instances without threading them through every call path.
//
// Usage:
//
//	log, err := log.NewWithDefaults(ctx, "development", "user-service")
//	if err != nil {
//		panic(err)
//	}
//
//	log.Info("service started")
package log

import (
	"context"
	"sync"

	"github.com/hyp3rd/ewrap"

	logger "github.com/shuliangfu/logger"
	"github.com/shuliangfu/logger/pkg/adapter"
)

// NonProductionEnvironment is the environment name that selects the
// development defaults.
const NonProductionEnvironment = "development"

// NewWithDefaults creates a new logger instance with the specified
// environment and service. Non-production environments get colorized text
// output at debug level; everything else gets JSON output at info level.
// The service and environment names are attached to the logger context so
// every entry carries them.
func NewWithDefaults(ctx context.Context, environment, service string) (logger.Logger, error) {
	var loggerCfg logger.Config

	if environment == NonProductionEnvironment {
		loggerCfg = logger.DevelopmentConfig()
	} else {
		loggerCfg = logger.ProductionConfig()
	}

	loggerCfg.Context = map[string]any{
		"service":     service,
		"environment": environment,
	}

	log, err := adapter.New(ctx, loggerCfg)
	if err != nil {
		return nil, ewrap.Wrap(err, "failed to create logger")
	}

	return log, nil
}

//nolint:gochecknoglobals // The registry is process-wide shared state by design.
var (
	registryMu sync.RWMutex
	registry   = make(map[string]logger.Logger)
)

// Register stores a logger under a name, replacing any previous entry. The
// replaced logger is returned so the caller can close it; nil when the name
// was free.
func Register(name string, log logger.Logger) logger.Logger {
	registryMu.Lock()
	defer registryMu.Unlock()

	previous := registry[name]
	registry[name] = log

	return previous
}

// Get returns the logger registered under the name.
func Get(name string) (logger.Logger, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	log, ok := registry[name]

	return log, ok
}

// GetOrCreate returns the logger registered under the name, creating and
// registering one from the given configuration on first use. Concurrent
// first calls for the same name resolve to a single instance.
func GetOrCreate(ctx context.Context, name string, config logger.Config) (logger.Logger, error) {
	registryMu.RLock()
	log, ok := registry[name]
	registryMu.RUnlock()

	if ok {
		return log, nil
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if log, ok := registry[name]; ok {
		return log, nil
	}

	log, err := adapter.New(ctx, config)
	if err != nil {
		return nil, ewrap.Wrap(err, "failed to create logger").
			WithMetadata("name", name)
	}

	registry[name] = log

	return log, nil
}

// Unregister removes and returns the logger registered under the name. The
// caller owns closing it.
func Unregister(name string) (logger.Logger, bool) {
	registryMu.Lock()
	defer registryMu.Unlock()

	log, ok := registry[name]
	if ok {
		delete(registry, name)
	}

	return log, ok
}

// CloseAll closes every registered logger and empties the registry. The
// first close error is returned after all loggers have been attempted.
func CloseAll() error {
	registryMu.Lock()
	defer registryMu.Unlock()

	var firstErr error

	for name, log := range registry {
		err := log.Close()
		if err != nil && firstErr == nil {
			firstErr = ewrap.Wrap(err, "closing registered logger").
				WithMetadata("name", name)
		}

		delete(registry, name)
	}

	return firstErr
}
