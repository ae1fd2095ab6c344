package ui

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/huh/spinner"
	"golang.org/x/term"
)

// ErrInterrupted is returned when the spinner stops before its work has
// finished, for example after ctrl+c.
var ErrInterrupted = errors.New("interrupted")

// Interactive reports whether prompts and spinners can be shown: stdout is a
// terminal and we are not running in CI.
func Interactive() bool {
	return !IsCI() && term.IsTerminal(int(os.Stdout.Fd()))
}

// WithSpinner shows title next to a spinner while fn runs. It returns nil
// only once fn has returned nil; if the spinner stops first, an error is
// returned and anything fn writes must not be read.
func WithSpinner(ctx context.Context, title string, fn func() error) error {
	done := make(chan error, 1)
	err := spinner.New().
		Type(spinner.Dots).
		Title(" " + title).
		Context(ctx).
		ActionWithErr(func(context.Context) error {
			actionErr := fn()
			done <- actionErr
			return actionErr
		}).
		Run()

	select {
	case actionErr := <-done:
		return actionErr
	default:
	}

	if err != nil {
		return err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return ErrInterrupted
}
