package logger

import (
	"context"
	"fmt"
)

// Entry represents a single log entry after the logger's tags and context
// have been merged with the call-level values.
type Entry struct {
	// Timestamp is the entry creation time formatted with the configured
	// time format.
	Timestamp string
	// Level is the entry severity.
	Level Level
	// Message is the log message, possibly truncated.
	Message string
	// Data is an optional arbitrary payload supplied by the call.
	Data any
	// Err is the normalized error attached to the entry, if any.
	Err *ErrorInfo
	// Tags is the merged tag list: logger tags first, call tags appended.
	// Duplicates are permitted.
	Tags []string
	// Context is the shallow merge of the logger context under the
	// call-level context.
	Context map[string]any
}

// ErrorInfo is the normalized shape of an error attached to an entry.
type ErrorInfo struct {
	// Message is the error message.
	Message string
	// Stack carries additional diagnostic detail when the error exposes
	// any beyond its message.
	Stack string
}

// NormalizeError converts an error into its ErrorInfo shape. Errors that
// format differently with %+v (wrapped errors carrying stack traces) keep
// that detail in Stack.
func NormalizeError(err error) *ErrorInfo {
	if err == nil {
		return nil
	}

	info := &ErrorInfo{Message: err.Error()}

	if detailed := fmt.Sprintf("%+v", err); detailed != info.Message {
		info.Stack = detailed
	}

	return info
}

// Sink is a custom output target invoked with the formatted line and the
// entry it was formatted from. A non-nil return is treated as a sink failure
// and reported without affecting the other targets.
type Sink func(ctx context.Context, formatted string, entry *Entry) error
