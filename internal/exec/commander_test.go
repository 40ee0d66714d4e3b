package exec

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealCommander_Run(t *testing.T) {
	commander := &RealCommander{}
	ctx := context.Background()

	output, err := commander.Run(ctx, ".", "echo", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(output))
}

func TestRealCommander_Run_CapturesStderr(t *testing.T) {
	if !LookPath("sh") {
		t.Skip("sh not available")
	}
	commander := &RealCommander{}

	_, err := commander.Run(context.Background(), ".", "sh", "-c", "echo boom >&2; exit 3")
	require.Error(t, err)

	var cmdErr *CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, "boom", cmdErr.Stderr)
	assert.Equal(t, "boom", err.Error())
	assert.Equal(t, "sh", cmdErr.Command)
}

func TestRealCommander_Run_ArgumentsAreNotShellInterpreted(t *testing.T) {
	commander := &RealCommander{}

	output, err := commander.Run(context.Background(), ".", "echo", "bug#123; rm -rf /", "$(whoami)")
	require.NoError(t, err)
	assert.Equal(t, "bug#123; rm -rf / $(whoami)\n", string(output))
}

func TestRealCommander_Run_WithContextCancellation(t *testing.T) {
	commander := &RealCommander{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := commander.Run(ctx, ".", "sleep", "1")
	assert.Error(t, err)
}

func TestCommandError_GenericMessageWithoutStderr(t *testing.T) {
	err := &CommandError{Command: "pnpm", Args: []string{"install"}, Err: errors.New("exit status 1")}

	assert.Equal(t, "pnpm exited with an error: exit status 1", err.Error())
}

func TestCommandExecutor_Output_TrimsWhitespace(t *testing.T) {
	mock := NewMockCommander()
	mock.SetResponse("git", []string{"rev-parse", "--is-inside-work-tree"}, []byte("true\n"), nil)

	executor := NewCommandExecutor(mock)
	out, err := executor.Output(context.Background(), "/wt", "git", "rev-parse", "--is-inside-work-tree")

	require.NoError(t, err)
	assert.Equal(t, "true", out)
	assert.Equal(t, "/wt", mock.LastCall().Dir)
}

func TestCommandExecutor_Output_PropagatesFailure(t *testing.T) {
	mock := NewMockCommander()
	mock.SetFailure("git", []string{"fetch", "--all", "--prune"}, "fatal: unable to access remote")

	executor := NewCommandExecutor(mock)
	_, err := executor.Output(context.Background(), "/repo", "git", "fetch", "--all", "--prune")

	require.Error(t, err)
	assert.Equal(t, "fatal: unable to access remote", err.Error())
}

func TestCommandExecutor_RunBinary(t *testing.T) {
	mock := NewMockCommander()
	mock.SetResponse("pnpm", []string{"install"}, []byte("done"), nil)

	executor := NewCommandExecutor(mock)
	output, err := executor.RunBinary(context.Background(), "/worktree", "pnpm", []string{"install"})

	require.NoError(t, err)
	assert.Equal(t, "done", output)
	assert.Equal(t, 1, mock.CallCount())

	call := mock.LastCall()
	require.NotNil(t, call)
	assert.Equal(t, "/worktree", call.Dir)
	assert.Equal(t, "pnpm", call.Command)
}

func TestCommandExecutor_RunBinary_WithSpaces(t *testing.T) {
	mock := NewMockCommander()

	executor := NewCommandExecutor(mock)
	_, err := executor.RunBinary(context.Background(), "/worktree", "npx pnpm", []string{"install"})

	require.NoError(t, err)
	call := mock.LastCall()
	assert.Equal(t, "npx", call.Command)
	assert.Equal(t, []string{"pnpm", "install"}, call.Args)
}

func TestCommandExecutor_RunBinary_Empty(t *testing.T) {
	executor := NewCommandExecutor(NewMockCommander())

	_, err := executor.RunBinary(context.Background(), ".", "  ", nil)
	assert.EqualError(t, err, "empty binary command")
}

func TestNewCommandExecutor_DefaultsToRealCommander(t *testing.T) {
	executor := NewCommandExecutor(nil)

	_, ok := executor.Commander().(*RealCommander)
	assert.True(t, ok)
}

func TestMockCommander_RecordsCalls(t *testing.T) {
	mock := NewMockCommander()
	ctx := context.Background()

	_, _ = mock.Run(ctx, "/a", "git", "fetch")
	_, _ = mock.Run(ctx, "/b", "pnpm", "install")

	assert.Equal(t, 2, mock.CallCount())
	assert.Equal(t, []string{"git fetch", "pnpm install"}, mock.CallKeys())
	assert.True(t, mock.WasCalled("pnpm", "install"))
	assert.False(t, mock.WasCalled("pnpm"))
	assert.True(t, mock.CalledWithPrefix("git"))
	assert.Nil(t, mock.GetCall(5))

	mock.Reset()
	assert.Equal(t, 0, mock.CallCount())
	assert.Nil(t, mock.LastCall())
}

func TestDryRunCommander_ExecutesReadOnlyGit(t *testing.T) {
	mock := NewMockCommander()
	var buf bytes.Buffer
	dry := NewDryRunCommander(mock, log.New(&buf))
	ctx := context.Background()

	_, _ = dry.Run(ctx, "", "git", "-C", "/repo/.bare", "show-ref", "--verify", "--quiet", "refs/heads/main")
	_, _ = dry.Run(ctx, "", "git", "-C", "/repo/.bare", "worktree", "list", "--porcelain")
	_, _ = dry.Run(ctx, "", "git", "-C", "/repo/.bare", "config", "--get", "remote.origin.fetch")

	assert.Equal(t, 3, mock.CallCount())
}

func TestDryRunCommander_SkipsMutatingCommands(t *testing.T) {
	mock := NewMockCommander()
	var buf bytes.Buffer
	dry := NewDryRunCommander(mock, log.New(&buf))
	ctx := context.Background()

	_, err := dry.Run(ctx, "", "git", "clone", "--bare", "git@host:org/repo.git", "/repo/.bare")
	require.NoError(t, err)
	_, err = dry.Run(ctx, "", "git", "-C", "/repo/.bare", "worktree", "add", "/repo/worktrees/main", "main")
	require.NoError(t, err)
	_, err = dry.Run(ctx, "/repo/worktrees/main", "pnpm", "install")
	require.NoError(t, err)

	assert.Equal(t, 0, mock.CallCount())
	assert.Contains(t, buf.String(), "git clone --bare git@host:org/repo.git /repo/.bare")
	assert.Contains(t, buf.String(), "pnpm install")
}
