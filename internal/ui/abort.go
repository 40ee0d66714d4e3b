package ui

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/huh"

	trerrors "github.com/naoray/trellis/internal/errors"
)

// NormalizeAbort converts known abort-like errors to errors.ErrUserAborted.
// This includes huh.ErrUserAborted (Esc/Ctrl+C in huh prompts),
// io.EOF (Ctrl+D/closed stdin), and context.Canceled.
func NormalizeAbort(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, huh.ErrUserAborted) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, context.Canceled) {
		return trerrors.ErrUserAborted
	}
	return err
}

// IsAbort returns true if the error represents a user abort.
func IsAbort(err error) bool {
	return errors.Is(err, trerrors.ErrUserAborted)
}
