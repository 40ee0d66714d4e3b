// Package exec provides interfaces and implementations for command execution.
// Commands are always an executable plus an argument vector; nothing is ever
// passed through a shell, so branch names and remote URLs cannot inject syntax.
package exec

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Commander defines the interface for executing commands.
// Implementations can provide real command execution or mock behavior for testing.
type Commander interface {
	// Run executes a command in the specified directory with the given arguments.
	// Returns stdout, and a *CommandError carrying stderr when the command fails.
	Run(ctx context.Context, dir string, command string, args ...string) ([]byte, error)
}

// CommandError is returned when an external command exits unsuccessfully.
type CommandError struct {
	Command string
	Args    []string
	Dir     string
	Stderr  string
	Err     error
}

func (e *CommandError) Error() string {
	if e.Stderr != "" {
		return e.Stderr
	}
	return fmt.Sprintf("%s exited with an error: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// RealCommander executes commands using the real operating system.
type RealCommander struct{}

// Run executes the command using exec.CommandContext, capturing stdout and
// stderr separately.
func (c *RealCommander) Run(ctx context.Context, dir string, command string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return stdout.Bytes(), &CommandError{
			Command: command,
			Args:    args,
			Dir:     dir,
			Stderr:  strings.TrimSpace(stderr.String()),
			Err:     err,
		}
	}
	return stdout.Bytes(), nil
}

// CommandExecutor provides a higher-level interface for common execution patterns.
// It wraps a Commander and provides convenience methods.
type CommandExecutor struct {
	commander Commander
}

// NewCommandExecutor creates a new CommandExecutor with the given Commander.
// If commander is nil, a RealCommander is used.
func NewCommandExecutor(commander Commander) *CommandExecutor {
	if commander == nil {
		commander = &RealCommander{}
	}
	return &CommandExecutor{commander: commander}
}

// Output runs a command and returns its stdout with surrounding whitespace trimmed.
func (e *CommandExecutor) Output(ctx context.Context, dir string, command string, args ...string) (string, error) {
	out, err := e.commander.Run(ctx, dir, command, args...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// RunBinary executes a binary command with arguments.
// The binary can contain spaces (e.g., "npx pnpm") and will be split into
// argv fields; it is not interpreted by a shell.
func (e *CommandExecutor) RunBinary(ctx context.Context, dir string, binary string, args []string) (string, error) {
	binaryParts := strings.Fields(binary)
	if len(binaryParts) == 0 {
		return "", fmt.Errorf("empty binary command")
	}

	command := binaryParts[0]
	allArgs := append(binaryParts[1:], args...)

	return e.Output(ctx, dir, command, allArgs...)
}

// Commander returns the wrapped Commander.
func (e *CommandExecutor) Commander() Commander {
	return e.commander
}

// LookPath reports whether an executable is available in PATH.
func LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
