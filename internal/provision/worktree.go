package provision

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	trerrors "github.com/naoray/trellis/internal/errors"
	"github.com/naoray/trellis/internal/utils"
)

// Options configures CreateWorktree.
type Options struct {
	Branch string
	// Base is the start point for a brand-new branch. Empty uses the bare
	// repository's HEAD.
	Base           string
	FrozenLockfile bool
}

// CreateWorktree checks out opts.Branch into its sanitized directory under
// the worktree root, creating or tracking the branch as needed, and installs
// dependencies there.
func CreateWorktree(ctx context.Context, env *Env, opts Options) (*Result, error) {
	branch := strings.TrimSpace(opts.Branch)
	if branch == "" {
		return nil, trerrors.New(trerrors.ErrUsage, "branch name is required", "Usage: trellis new <branch>")
	}

	ws := env.Workspace
	barePath := ws.BarePath()
	target := ws.WorktreePath(branch)

	if !pathExists(barePath) {
		return nil, trerrors.New(trerrors.ErrBareRepoMissing,
			fmt.Sprintf("bare repository not found at %s", barePath),
			"Run trellis bootstrap first")
	}

	if pathExists(target) {
		return nil, existingTargetError(ctx, env, branch, target)
	}

	env.Logger.Debug("fetching remote refs", "repo", barePath)
	if err := env.Git.Fetch(ctx, barePath); err != nil {
		env.Logger.Warn("fetch failed, continuing with local refs", "err", err)
	}

	local := env.Git.LocalBranchExists(ctx, barePath, branch)
	remote := env.Git.RemoteBranchExists(ctx, barePath, branch)

	result := &Result{Path: target, Branch: branch}
	switch {
	case local:
		result.Source = SourceLocal
		if opts.Base != "" {
			env.Logger.Debug("branch exists locally, ignoring base", "branch", branch, "base", opts.Base)
		}
		env.Logger.Info("Using local branch", "branch", branch)
		if err := env.Git.AddWorktree(ctx, barePath, target, branch); err != nil {
			return nil, fmt.Errorf("creating worktree for %s: %w", branch, err)
		}
	case remote:
		result.Source = SourceRemote
		env.Logger.Info("Tracking remote branch", "branch", branch)
		if err := env.Git.CreateTrackingBranch(ctx, barePath, branch); err != nil {
			return nil, fmt.Errorf("tracking origin/%s: %w", branch, err)
		}
		if err := env.Git.AddWorktree(ctx, barePath, target, branch); err != nil {
			return nil, fmt.Errorf("creating worktree for %s: %w", branch, err)
		}
	default:
		result.Source = SourceNew
		env.Logger.Info("Creating new branch", "branch", branch, "base", baseLabel(opts.Base))
		if err := env.Git.AddWorktreeNewBranch(ctx, barePath, target, branch, opts.Base); err != nil {
			return nil, fmt.Errorf("creating branch %s: %w", branch, err)
		}
	}

	if err := env.progress(installTitle(env), func() error {
		return env.PkgMgr.Install(ctx, target, opts.FrozenLockfile)
	}); err != nil {
		return nil, err
	}

	return result, nil
}

func baseLabel(base string) string {
	if base == "" {
		return "HEAD"
	}
	return base
}

// existingTargetError reports a pre-existing target directory. When git
// knows the directory as a worktree of a different branch, the two branch
// names sanitize to the same directory and the message says so.
func existingTargetError(ctx context.Context, env *Env, branch, target string) error {
	barePath := env.Workspace.BarePath()
	suggestion := fmt.Sprintf("Remove it with: git -C %s worktree remove %s", barePath, target)

	worktrees, err := env.Git.ListWorktrees(ctx, barePath)
	if err == nil {
		for _, wt := range worktrees {
			if filepath.Clean(wt.Path) != filepath.Clean(target) || wt.Branch == "" || wt.Branch == branch {
				continue
			}
			return trerrors.New(trerrors.ErrWorktreeExists,
				fmt.Sprintf("%s already holds branch %q; %q sanitizes to the same directory name %q",
					target, wt.Branch, branch, utils.SanitiseBranch(branch)),
				suggestion)
		}
	}

	return trerrors.New(trerrors.ErrWorktreeExists,
		fmt.Sprintf("worktree path already exists: %s", target),
		suggestion)
}
