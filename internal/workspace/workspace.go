// Package workspace resolves the meta-repo root and derives every path the
// procedures operate on. A Workspace is built once per invocation and passed
// explicitly; nothing here is package-level state.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/naoray/trellis/internal/config"
	"github.com/naoray/trellis/internal/utils"
)

const (
	// BareDirName is the bare codebase repository, relative to the root.
	BareDirName = ".bare"
	// MainWorktreeName is the directory of the default branch worktree.
	MainWorktreeName = "main"
	// RootEnv overrides root discovery.
	RootEnv = "TRELLIS_ROOT"
)

// Workspace is the resolved meta-repo layout plus its configuration.
type Workspace struct {
	Root   string
	Config *config.Config
}

// New builds a Workspace for an already loaded configuration.
func New(root string, cfg *config.Config) *Workspace {
	return &Workspace{Root: root, Config: cfg}
}

// Open loads the configuration under root and returns the Workspace.
func Open(root string) (*Workspace, error) {
	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}
	return New(root, cfg), nil
}

// BarePath returns the bare repository directory.
func (w *Workspace) BarePath() string {
	return filepath.Join(w.Root, BareDirName)
}

// WorktreesDir returns the directory holding all worktrees.
func (w *Workspace) WorktreesDir() string {
	return filepath.Join(w.Root, w.Config.Worktrees.Root)
}

// MainWorktreePath returns the path of the default branch worktree.
func (w *Workspace) MainWorktreePath() string {
	return filepath.Join(w.WorktreesDir(), MainWorktreeName)
}

// WorktreePath returns the path a branch is checked out to.
func (w *Workspace) WorktreePath(branch string) string {
	return filepath.Join(w.WorktreesDir(), utils.SanitiseBranch(branch))
}

// ResolveRoot determines the meta-repo root. In order: the explicit flag
// value, TRELLIS_ROOT, the nearest ancestor of cwd holding trellis.json, and
// finally two directory levels above the executable's directory.
func ResolveRoot(flagValue, cwd, executable string) (string, error) {
	if flagValue != "" {
		return filepath.Abs(flagValue)
	}
	if env := os.Getenv(RootEnv); env != "" {
		return filepath.Abs(env)
	}

	if cwd != "" {
		if root, ok := findConfigAncestor(cwd); ok {
			return root, nil
		}
	}

	if executable != "" {
		exe, err := filepath.EvalSymlinks(executable)
		if err != nil {
			exe = executable
		}
		exeDir, err := filepath.Abs(filepath.Dir(exe))
		if err != nil {
			return "", fmt.Errorf("resolving executable directory: %w", err)
		}
		return filepath.Dir(filepath.Dir(exeDir)), nil
	}

	return "", errors.New("unable to resolve meta-repo root")
}

func findConfigAncestor(start string) (string, bool) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false
	}
	for {
		if info, err := os.Stat(config.Path(dir)); err == nil && !info.IsDir() {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
