package console

import (
	"fmt"

	logger "github.com/shuliangfu/logger"
)

// Redirect replaces the active console methods with forwarders into the
// target Logger and returns a restore function equivalent to calling
// Restore. The original console is captured only when no redirection is
// already active, so calling Redirect twice without restoring in between
// cannot lose the true original; the second call is a no-op that still
// returns a restore function.
//
// Forwarding maps log and info to Info, warn to Warn, error to Error, and
// debug to Debug. The first argument becomes the message, stringified if
// needed; with exactly two arguments the second is passed through as the
// structured data payload, and with more the remaining arguments are
// collected into a list.
func Redirect(target logger.Logger) func() {
	mu.Lock()
	defer mu.Unlock()

	if original == nil {
		original = active
		active = &forwarder{target: target}
	}

	return Restore
}

// Restore reinstates the captured original console and clears the captured
// reference. Without an active redirection it is a no-op.
func Restore() {
	mu.Lock()
	defer mu.Unlock()

	if original == nil {
		return
	}

	active = original
	original = nil
}

// forwarder routes console calls into a Logger.
type forwarder struct {
	target logger.Logger
}

func (f *forwarder) Debug(args ...any) { f.emit(logger.DebugLevel, args) }
func (f *forwarder) Log(args ...any)   { f.emit(logger.InfoLevel, args) }
func (f *forwarder) Info(args ...any)  { f.emit(logger.InfoLevel, args) }
func (f *forwarder) Warn(args ...any)  { f.emit(logger.WarnLevel, args) }
func (f *forwarder) Error(args ...any) { f.emit(logger.ErrorLevel, args) }

func (f *forwarder) emit(level logger.Level, args []any) {
	if f.target == nil {
		return
	}

	var (
		msg  string
		data any
	)

	switch len(args) {
	case 0:
	case 1:
		msg = stringify(args[0])
	case 2: //nolint:mnd // Two arguments pass the second through as data.
		msg = stringify(args[0])
		data = args[1]
	default:
		msg = stringify(args[0])
		data = args[1:]
	}

	f.target.Log(level, msg, data, nil)
}

func stringify(value any) string {
	if s, ok := value.(string); ok {
		return s
	}

	return fmt.Sprintf("%v", value)
}
