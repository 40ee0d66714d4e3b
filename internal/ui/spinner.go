package ui

import (
	"context"
	"os"

	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/x/term"
)

// IsInteractive reports whether stdout is a terminal.
func IsInteractive() bool {
	return term.IsTerminal(os.Stdout.Fd())
}

// Spinner returns a progress runner that shows a spinner while fn runs.
// Without a terminal fn runs directly.
func Spinner(ctx context.Context) func(title string, fn func() error) error {
	return func(title string, fn func() error) error {
		if !IsInteractive() {
			return fn()
		}

		var err error
		if spinErr := spinner.New().
			Title(title).
			Context(ctx).
			Action(func() { err = fn() }).
			Run(); spinErr != nil {
			return NormalizeAbort(spinErr)
		}
		return err
	}
}
