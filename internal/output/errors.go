package output

import (
	"github.com/hyp3rd/ewrap"
)

// Common errors for the output package.
var (
	// ErrWriterClosed is returned when attempting to write to a closed writer.
	ErrWriterClosed = ewrap.New("writer is closed")

	// ErrBufferFull is returned when the async writer's buffer is full.
	ErrBufferFull = ewrap.New("write buffer is full")

	// ErrInvalidPath is returned when a log file path fails validation.
	ErrInvalidPath = ewrap.New("invalid log file path")
)
