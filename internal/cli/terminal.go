package cli

import (
	"os"

	"github.com/mattn/go-isatty"
)

// isTerminal returns true if the file is attached to an interactive
// terminal, including Cygwin/MSYS2 terminals on Windows.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
