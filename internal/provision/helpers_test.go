package provision

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/naoray/trellis/internal/config"
	trexec "github.com/naoray/trellis/internal/exec"
	"github.com/naoray/trellis/internal/git"
	"github.com/naoray/trellis/internal/pkgmgr"
	"github.com/naoray/trellis/internal/workspace"
)

type testEnv struct {
	*Env
	mock *trexec.MockCommander
	logs *bytes.Buffer
	root string
}

func testConfig() *config.Config {
	return &config.Config{
		Codebase:  config.CodebaseConfig{Remote: "git@host:org/repo.git", DefaultBranch: "main"},
		Worktrees: config.WorktreesConfig{Root: "worktrees"},
		PackageManager: config.PackageManagerConfig{
			Command:            config.DefaultPackageManager,
			InstallArgs:        config.DefaultInstallArgs,
			EnableCommand:      config.DefaultEnableCommand,
			FrozenLockfileFlag: config.DefaultFrozenFlag,
		},
	}
}

// newTestEnv builds an Env over a MockCommander that simulates the
// filesystem effects of clone and worktree add.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()
	ws := workspace.New(root, testConfig())

	mock := trexec.NewMockCommander()
	mock.OnRun = func(call trexec.CommandCall) {
		simulate(t, call)
	}

	var logs bytes.Buffer
	return &testEnv{
		Env: &Env{
			Workspace: ws,
			Git:       git.New(mock),
			PkgMgr:    pkgmgr.New(ws.Config.PackageManager, mock),
			Logger:    log.New(&logs),
		},
		mock: mock,
		logs: &logs,
		root: root,
	}
}

func simulate(t *testing.T, call trexec.CommandCall) {
	args := call.Args
	switch {
	case call.Command == "git" && len(args) == 4 && args[0] == "clone":
		require.NoError(t, os.MkdirAll(args[3], 0755))
	case call.Command == "gh" && len(args) >= 4 && args[0] == "repo" && args[1] == "clone":
		require.NoError(t, os.MkdirAll(args[3], 0755))
	case call.Command == "git" && len(args) >= 5 && args[2] == "worktree" && args[3] == "add":
		path := args[4]
		if path == "-b" {
			path = args[6]
		}
		writeLinkage(t, path, filepath.Join(args[1], "worktrees", filepath.Base(path)))
	}
}

func writeLinkage(t *testing.T, worktreePath, gitDir string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(worktreePath, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(worktreePath, ".git"), []byte("gitdir: "+gitDir+"\n"), 0644))
}

// indexOf returns the position of the first call whose key equals key, or -1.
func (e *testEnv) indexOf(key string) int {
	for i, k := range e.mock.CallKeys() {
		if k == key {
			return i
		}
	}
	return -1
}

func (e *testEnv) bare() string {
	return e.Workspace.BarePath()
}
