package exec

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// MockCommander is a test double that records command calls and returns preset responses.
// Use this in tests to verify commands are executed correctly without actually running them.
type MockCommander struct {
	// Responses maps command keys to their preset responses.
	// The key is formatted as: "command arg1 arg2 ..."
	Responses map[string]CommandResponse

	// Calls records all commands that were executed.
	Calls []CommandCall

	// OnRun, when set, is invoked after a call is recorded and before the
	// preset response is returned. Tests use it to simulate side effects such
	// as a clone creating its target directory.
	OnRun func(call CommandCall)
}

// CommandCall records details of a single command execution.
type CommandCall struct {
	Dir     string
	Command string
	Args    []string
}

// Key returns the "command arg1 arg2 ..." form of the call.
func (c CommandCall) Key() string {
	return buildCommandKey(c.Command, c.Args)
}

// CommandResponse defines the response for a specific command.
type CommandResponse struct {
	Output []byte
	Err    error
}

// NewMockCommander creates a new MockCommander with empty responses and calls.
func NewMockCommander() *MockCommander {
	return &MockCommander{
		Responses: make(map[string]CommandResponse),
		Calls:     make([]CommandCall, 0),
	}
}

// Run records the command call and returns the preset response if one exists.
// If no response is found for the key, it returns nil, nil.
func (m *MockCommander) Run(ctx context.Context, dir string, command string, args ...string) ([]byte, error) {
	call := CommandCall{
		Dir:     dir,
		Command: command,
		Args:    args,
	}
	m.Calls = append(m.Calls, call)

	if m.OnRun != nil {
		m.OnRun(call)
	}

	if resp, ok := m.Responses[call.Key()]; ok {
		return resp.Output, resp.Err
	}

	return nil, nil
}

// SetResponse configures a preset response for a specific command.
func (m *MockCommander) SetResponse(command string, args []string, output []byte, err error) {
	m.Responses[buildCommandKey(command, args)] = CommandResponse{
		Output: output,
		Err:    err,
	}
}

// SetFailure configures a command to fail with the given stderr text, the way
// RealCommander reports a non-zero exit.
func (m *MockCommander) SetFailure(command string, args []string, stderr string) {
	m.SetResponse(command, args, nil, &CommandError{
		Command: command,
		Args:    args,
		Stderr:  stderr,
		Err:     errors.New("exit status 1"),
	})
}

// GetCall returns the nth command call (0-indexed).
// Returns nil if n is out of range.
func (m *MockCommander) GetCall(n int) *CommandCall {
	if n < 0 || n >= len(m.Calls) {
		return nil
	}
	return &m.Calls[n]
}

// LastCall returns the most recent command call.
// Returns nil if no commands have been executed.
func (m *MockCommander) LastCall() *CommandCall {
	if len(m.Calls) == 0 {
		return nil
	}
	return &m.Calls[len(m.Calls)-1]
}

// CallCount returns the number of commands that have been executed.
func (m *MockCommander) CallCount() int {
	return len(m.Calls)
}

// CallKeys returns the key of every recorded call in order.
func (m *MockCommander) CallKeys() []string {
	keys := make([]string, len(m.Calls))
	for i, call := range m.Calls {
		keys[i] = call.Key()
	}
	return keys
}

// WasCalled checks if a command with the given arguments was ever executed.
// The command key must match exactly.
func (m *MockCommander) WasCalled(command string, args ...string) bool {
	key := buildCommandKey(command, args)
	for _, call := range m.Calls {
		if call.Key() == key {
			return true
		}
	}
	return false
}

// CalledWithPrefix reports whether any recorded call key starts with prefix.
func (m *MockCommander) CalledWithPrefix(prefix string) bool {
	for _, call := range m.Calls {
		if strings.HasPrefix(call.Key(), prefix) {
			return true
		}
	}
	return false
}

// Reset clears all recorded calls and responses.
func (m *MockCommander) Reset() {
	m.Calls = make([]CommandCall, 0)
	m.Responses = make(map[string]CommandResponse)
}

// buildCommandKey constructs a command key from command and args.
func buildCommandKey(command string, args []string) string {
	if len(args) == 0 {
		return command
	}
	return fmt.Sprintf("%s %s", command, strings.Join(args, " "))
}
