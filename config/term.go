package config

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

type TerminalIO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

var DefaultTermIO = TerminalIO{
	Stdin:  os.Stdin,
	Stdout: os.Stdout,
	Stderr: os.Stderr,
}

func (t *TerminalIO) Printf(msg string, args ...interface{}) {
	fmt.Fprintf(t.Stdout, msg, args...)
}

// IsTerminal reports whether Stdout is attached to a terminal.
func (t *TerminalIO) IsTerminal() bool {
	f, ok := t.Stdout.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
