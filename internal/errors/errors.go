// Package errors defines the sentinel errors returned by trellis procedures and
// the single mapping from those errors to process exit codes.
package errors

import (
	"errors"
	"strings"
)

const (
	ExitSuccess = iota
	ExitFailure
)

var (
	ErrConfigNotFound     = errors.New("configuration not found")
	ErrConfigInvalid      = errors.New("configuration invalid")
	ErrBareRepoMissing    = errors.New("bare repository not found")
	ErrWorktreeExists     = errors.New("worktree already exists")
	ErrWorktreeInvalid    = errors.New("worktree directory is not a valid worktree")
	ErrWorktreeNotFound   = errors.New("worktree not found")
	ErrInstallFailed      = errors.New("dependency installation failed")
	ErrGitOperationFailed = errors.New("git operation failed")
	ErrUsage              = errors.New("invalid usage")
	ErrUserAborted        = errors.New("user aborted")
)

// CLIError wraps a sentinel error with an operator-facing message and an
// optional hint on how to recover.
type CLIError struct {
	Err        error
	Message    string
	Suggestion string
}

func (e *CLIError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)
	if e.Suggestion != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Suggestion)
	}
	return sb.String()
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// New builds a CLIError for the given sentinel.
func New(err error, message, suggestion string) *CLIError {
	return &CLIError{Err: err, Message: message, Suggestion: suggestion}
}

// ExitCode maps an error returned by a command to the process exit status.
// Every failure is fatal with status 1; nil is success.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return ExitFailure
}

// Suggestion returns the recovery hint attached to err, if any.
func Suggestion(err error) string {
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr.Suggestion
	}
	return ""
}

// Message returns the operator-facing message for err without its suggestion.
func Message(err error) string {
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr.Message
	}
	return err.Error()
}
