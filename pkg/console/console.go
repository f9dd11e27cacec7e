// Package console models the process-wide console as an injected capability
// with an explicit redirection lifecycle.
//
// The package holds a single module-level slot for the active Console and,
// while a redirection is in effect, the captured original. Redirect swaps
// the active console for forwarders that route writes into a target Logger;
// Restore reinstates the captured original. Logger implementations write
// their own console output through Direct, which resolves to the original
// console whenever a redirection is active, so a Logger that is itself the
// redirection target never re-enters itself.
//
// Redirect and Restore operate on shared process state and must be used in
// strict nest-free pairs: redirecting twice without restoring in between is
// rejected so the true original is never lost.
package console

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Console is the capability consumed for console output. Implementations
// must accept fmt.Println-style argument lists.
type Console interface {
	// Debug writes a debug line.
	Debug(args ...any)
	// Log writes a general line, conventionally at info severity.
	Log(args ...any)
	// Info writes an info line.
	Info(args ...any)
	// Warn writes a warning line.
	Warn(args ...any)
	// Error writes an error line.
	Error(args ...any)
}

// stdio writes console lines to the standard streams: debug/log/info to
// stdout, warn/error to stderr.
type stdio struct {
	out    io.Writer
	errOut io.Writer
}

func (s *stdio) Debug(args ...any) { fmt.Fprintln(s.out, args...) }
func (s *stdio) Log(args ...any)   { fmt.Fprintln(s.out, args...) }
func (s *stdio) Info(args ...any)  { fmt.Fprintln(s.out, args...) }
func (s *stdio) Warn(args ...any)  { fmt.Fprintln(s.errOut, args...) }
func (s *stdio) Error(args ...any) { fmt.Fprintln(s.errOut, args...) }

// NewStdio returns a Console backed by the given writers. Nil writers
// default to os.Stdout and os.Stderr.
func NewStdio(out, errOut io.Writer) Console {
	if out == nil {
		out = os.Stdout
	}

	if errOut == nil {
		errOut = os.Stderr
	}

	return &stdio{out: out, errOut: errOut}
}

//nolint:gochecknoglobals // The console is process-wide mutable state by design.
var (
	mu       sync.RWMutex
	active   Console = NewStdio(nil, nil)
	original Console
)

// Active returns the live console: the installed forwarders while a
// redirection is active, the real console otherwise. Application code
// writing ordinary console output should use Active.
func Active() Console {
	mu.RLock()
	defer mu.RUnlock()

	return active
}

// Direct returns the real console: the captured original while a
// redirection is active, the live console otherwise. Logger internals must
// write through Direct to avoid recursing into a redirection target.
func Direct() Console {
	mu.RLock()
	defer mu.RUnlock()

	if original != nil {
		return original
	}

	return active
}

// Swap replaces the active console and returns the previous one. It is
// intended for tests and embedders that inject their own console; it must
// not be called while a redirection is active.
func Swap(c Console) Console {
	mu.Lock()
	defer mu.Unlock()

	previous := active
	active = c

	return previous
}
