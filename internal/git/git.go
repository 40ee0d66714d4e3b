// Package git wraps the git command line for the bare-repository layout.
// Every call goes through an exec.Commander with an explicit argument vector.
package git

import (
	"context"
	"strings"

	trerrors "github.com/naoray/trellis/internal/errors"
	trexec "github.com/naoray/trellis/internal/exec"
)

// Client runs git commands.
type Client struct {
	executor *trexec.CommandExecutor
}

// New returns a Client backed by commander. A nil commander runs real git.
func New(commander trexec.Commander) *Client {
	return &Client{executor: trexec.NewCommandExecutor(commander)}
}

// Error wraps a failed git operation. It matches both the underlying
// command error and errors.ErrGitOperationFailed.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() []error {
	return []error{e.Err, trerrors.ErrGitOperationFailed}
}

// run executes git against gitDir via -C. An empty gitDir runs git in the
// process working directory.
func (c *Client) run(ctx context.Context, gitDir string, args ...string) (string, error) {
	fullArgs := args
	if gitDir != "" {
		fullArgs = append([]string{"-C", gitDir}, args...)
	}
	return c.executor.Output(ctx, "", "git", fullArgs...)
}

// succeeds reports whether a git query exits zero.
func (c *Client) succeeds(ctx context.Context, gitDir string, args ...string) bool {
	_, err := c.run(ctx, gitDir, args...)
	return err == nil
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

func splitLines(output string) []string {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
