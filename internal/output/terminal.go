package output

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// IsTerminal checks if the given writer is an interactive terminal. It
// returns false for redirected files, pipes, and non-file writers. This
// function is used to determine whether to enable color support and how
// auto routing resolves its output target.
func IsTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	return false
}
