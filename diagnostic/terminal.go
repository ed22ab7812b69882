package diagnostic

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Verbosity gates which messages WriteTerminal emits, per spec.md §6's
// single global option ("a global options handle from which it reads
// exactly one option – the verbosity level").
type Verbosity int

const (
	VerbosityQuiet Verbosity = iota
	VerbosityNormal
	VerbosityVerbose
)

// WriteTerminal writes e's single-line diagnostic to w, colorized when
// w is a terminal (go-tony/cmd/o's isatty-gated color idiom). Warnings
// (spec.md §7's "non-fatal messages") are written in yellow; Errors in
// red.
func WriteTerminal(w io.Writer, e *Error) error {
	line := e.Error()
	if !shouldColor(w) {
		_, err := fmt.Fprintln(w, line)
		return err
	}
	_, err := fmt.Fprintln(w, color.RedString("%s", line))
	return err
}

// WriteWarning writes a non-fatal warning line (spec.md §7) to w.
func WriteWarning(w io.Writer, file string, line int, message string) error {
	text := fmt.Sprintf("Warning at %s:%d: %s", file, line, message)
	if !shouldColor(w) {
		_, err := fmt.Fprintln(w, text)
		return err
	}
	_, err := fmt.Fprintln(w, color.YellowString("%s", text))
	return err
}

func shouldColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
