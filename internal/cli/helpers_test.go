package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	trexec "github.com/naoray/trellis/internal/exec"
)

type testCLI struct {
	app    *app
	mock   *trexec.MockCommander
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	root   string
}

const testConfig = `{
  "codebase": {"remote": "git@host:org/repo.git", "defaultBranch": "main"},
  "worktrees": {"root": "worktrees"}
}`

// newTestCLI creates a meta-repo root holding trellis.json and an app that
// runs every command through a MockCommander.
func newTestCLI(t *testing.T, configJSON string) *testCLI {
	t.Helper()
	root := t.TempDir()
	if configJSON != "" {
		require.NoError(t, os.WriteFile(filepath.Join(root, "trellis.json"), []byte(configJSON), 0644))
	}

	var stdout, stderr bytes.Buffer
	mock := trexec.NewMockCommander()
	return &testCLI{
		app: &app{
			stdout:      &stdout,
			stderr:      &stderr,
			commander:   mock,
			interactive: func() bool { return false },
			lookPath:    func(string) bool { return false },
		},
		mock:   mock,
		stdout: &stdout,
		stderr: &stderr,
		root:   root,
	}
}

func (c *testCLI) run(args ...string) int {
	full := append([]string{"--root", c.root}, args...)
	return execute(context.Background(), c.app, newRootCmd(c.app), full)
}

func (c *testCLI) bare() string {
	return filepath.Join(c.root, ".bare")
}
