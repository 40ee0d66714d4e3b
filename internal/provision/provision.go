// Package provision implements the two workspace procedures: bootstrapping
// the bare repository with its main worktree, and creating per-branch
// worktrees. Procedures return typed errors and never exit the process.
package provision

import (
	"errors"
	"os"

	"github.com/charmbracelet/log"

	"github.com/naoray/trellis/internal/git"
	"github.com/naoray/trellis/internal/pkgmgr"
	"github.com/naoray/trellis/internal/workspace"
)

// ProgressFunc runs a long step, typically behind a spinner.
type ProgressFunc func(title string, fn func() error) error

// Env carries everything a procedure needs. It is built once per invocation.
type Env struct {
	Workspace *workspace.Workspace
	Git       *git.Client
	PkgMgr    *pkgmgr.Manager
	Logger    *log.Logger

	// UseGH clones GitHub owner/repo remotes through the gh CLI.
	UseGH bool

	// Progress wraps dependency installation. Nil runs the step directly.
	Progress ProgressFunc
}

func (e *Env) progress(title string, fn func() error) error {
	if e.Progress == nil {
		return fn()
	}
	return e.Progress(title, fn)
}

// BranchSource records how a worktree's branch was resolved.
type BranchSource int

const (
	SourceLocal BranchSource = iota
	SourceRemote
	SourceNew
)

func (s BranchSource) String() string {
	switch s {
	case SourceLocal:
		return "local"
	case SourceRemote:
		return "remote"
	case SourceNew:
		return "new"
	default:
		return "unknown"
	}
}

// Result describes a provisioned worktree.
type Result struct {
	Path   string
	Branch string
	Source BranchSource
	// Cloned is set when bootstrap created the bare repository.
	Cloned bool
}

func installTitle(env *Env) string {
	return "Installing dependencies with " + env.PkgMgr.Name()
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, os.ErrNotExist)
}
