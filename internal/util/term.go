package util

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// IsTTY reports whether stdout is an interactive terminal. Cygwin and MSYS
// ptys count.
func IsTTY() bool {
	return isTerminal(os.Stdout)
}

// IsStdinTTY reports whether stdin is an interactive terminal.
func IsStdinTTY() bool {
	return isTerminal(os.Stdin)
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// InitColor turns off colored output for --no-color, a set NO_COLOR
// variable, or a redirected stdout.
func InitColor(noColor bool) {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		noColor = true
	}
	color.NoColor = noColor || !IsTTY()
}
