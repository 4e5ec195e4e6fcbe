// Package tty provides terminal detection helpers for ytgit commands.
package tty

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/NielsdaWheelz/ytgit/internal/config"
)

// IsTTY returns true if w is an *os.File attached to a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Width returns the column count of the terminal behind w, or 0 when w is
// not a terminal.
func Width(w io.Writer) int {
	if !IsTTY(w) {
		return 0
	}
	width, _, err := term.GetSize(int(w.(*os.File).Fd()))
	if err != nil {
		return 0
	}
	return width
}

// IsInteractive returns true if both stdin and stderr are TTYs.
func IsInteractive() bool {
	return IsTTY(os.Stdin) && IsTTY(os.Stderr)
}

// ColorEnabled resolves a color mode for output written to w.
// In auto mode color is on for terminals unless NO_COLOR is set.
func ColorEnabled(mode config.ColorMode, w io.Writer, env func(string) string) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if env != nil && env("NO_COLOR") != "" {
		return false
	}
	return IsTTY(w)
}
