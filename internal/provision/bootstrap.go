package provision

import (
	"context"
	"fmt"

	trerrors "github.com/naoray/trellis/internal/errors"
	"github.com/naoray/trellis/internal/git"
	"github.com/naoray/trellis/internal/utils"
)

// Bootstrap clones the bare repository when absent, creates or validates the
// main worktree, enables the package manager and installs dependencies.
func Bootstrap(ctx context.Context, env *Env) (*Result, error) {
	ws := env.Workspace
	cfg := ws.Config
	barePath := ws.BarePath()
	mainPath := ws.MainWorktreePath()

	result := &Result{Path: mainPath, Branch: cfg.Codebase.DefaultBranch, Source: SourceLocal}

	if pathExists(barePath) {
		env.Logger.Debug("bare repository present, skipping clone", "path", barePath)
		if origin := env.Git.GetRemoteURL(ctx, barePath); origin != "" && origin != cfg.Codebase.Remote {
			env.Logger.Warn("bare repository origin differs from codebase.remote", "origin", origin, "remote", cfg.Codebase.Remote)
		}
	} else {
		if err := cloneBare(ctx, env, cfg.Codebase.Remote, barePath); err != nil {
			return nil, err
		}
		result.Cloned = true
	}

	if !env.Git.HasFetchRefspec(ctx, barePath) {
		env.Logger.Debug("configuring fetch refspec", "refspec", git.FetchRefspec)
		if err := env.Git.ConfigureFetchRefspec(ctx, barePath); err != nil {
			return nil, fmt.Errorf("configuring %s: %w", barePath, err)
		}
	}

	if pathExists(mainPath) {
		if err := validateMainWorktree(ctx, env, mainPath, barePath); err != nil {
			return nil, err
		}
		env.Logger.Debug("main worktree present", "path", mainPath)
	} else {
		env.Logger.Info("Creating main worktree", "branch", cfg.Codebase.DefaultBranch, "path", mainPath)
		if err := env.Git.AddWorktree(ctx, barePath, mainPath, cfg.Codebase.DefaultBranch); err != nil {
			return nil, fmt.Errorf("creating main worktree: %w", err)
		}
	}

	if err := env.PkgMgr.Enable(ctx); err != nil {
		env.Logger.Warn("enabling package manager failed, continuing", "err", err)
	}

	if err := env.progress(installTitle(env), func() error {
		return env.PkgMgr.Install(ctx, mainPath, false)
	}); err != nil {
		return nil, err
	}

	return result, nil
}

func cloneBare(ctx context.Context, env *Env, remote, barePath string) error {
	var err error
	if env.UseGH && utils.IsGitShortFormat(remote) {
		env.Logger.Info("Cloning bare repository with gh", "repo", remote, "path", barePath)
		err = env.Git.CloneBareWithGH(ctx, remote, barePath)
	} else {
		env.Logger.Info("Cloning bare repository", "repo", utils.ExtractRepoName(remote), "path", barePath)
		err = env.Git.CloneBare(ctx, remote, barePath)
	}
	if err != nil {
		return &trerrors.CLIError{
			Err:        err,
			Message:    fmt.Sprintf("cloning %s failed: %v", remote, err),
			Suggestion: "Check codebase.remote in trellis.json and your access to the repository",
		}
	}
	return nil
}

// validateMainWorktree requires an existing main worktree directory to be a
// working tree linked to this workspace's bare repository.
func validateMainWorktree(ctx context.Context, env *Env, mainPath, barePath string) error {
	var reason string
	switch {
	case !env.Git.IsInsideWorkTree(ctx, mainPath):
		reason = "is not a git working tree"
	case !git.LinksToBare(mainPath, barePath):
		reason = "is not linked to " + barePath
	default:
		return nil
	}

	return trerrors.New(trerrors.ErrWorktreeInvalid,
		fmt.Sprintf("%s exists but %s", mainPath, reason),
		fmt.Sprintf("Remove or rename %s, then run trellis bootstrap again", mainPath))
}
