package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	trerrors "github.com/naoray/trellis/internal/errors"
	"github.com/naoray/trellis/internal/git"
	"github.com/naoray/trellis/internal/ui"
)

func newRemoveCmd(a *app) *cobra.Command {
	var (
		force bool
		yes   bool
	)

	cmd := &cobra.Command{
		Use:   "remove [BRANCH]",
		Short: "Remove a branch worktree",
		Long: `Removes the worktree of BRANCH with git worktree remove. The branch
itself is kept in the bare repository.

Arguments:
  BRANCH  Name of the branch whose worktree to remove. Without it, pick
          from the existing worktrees interactively.`,
		Args: cobra.RangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.workspace()
			if err != nil {
				return err
			}
			if err := requireBare(ws); err != nil {
				return err
			}
			client := git.New(a.runner())
			mainPath := filepath.Clean(ws.MainWorktreePath())

			var target, label string
			if len(args) > 0 {
				label = args[0]
				target = ws.WorktreePath(args[0])
			} else {
				if !a.interactive() {
					return trerrors.New(trerrors.ErrUsage, "branch name is required", "Usage: "+cmd.UseLine())
				}
				worktrees, err := client.ListWorktrees(cmd.Context(), ws.BarePath())
				if err != nil {
					return err
				}
				var removable []git.Worktree
				for _, wt := range worktrees {
					if !wt.IsBare && filepath.Clean(wt.Path) != mainPath {
						removable = append(removable, wt)
					}
				}
				selected, err := ui.SelectWorktreeToRemove(removable)
				if err != nil {
					return err
				}
				label, target = selected.Branch, selected.Path
			}

			if filepath.Clean(target) == mainPath {
				return trerrors.New(trerrors.ErrUsage,
					"refusing to remove the main worktree", "")
			}
			if _, err := os.Stat(target); err != nil {
				return trerrors.New(trerrors.ErrWorktreeNotFound,
					fmt.Sprintf("no worktree for %s at %s", label, target),
					"Run trellis list to see existing worktrees")
			}

			if !yes {
				if !a.interactive() {
					return trerrors.New(trerrors.ErrUsage,
						"confirmation required to remove "+target, "Pass --yes to remove without prompting")
				}
				confirmed, err := ui.Confirm(fmt.Sprintf("Remove worktree %s?", target))
				if err != nil {
					return err
				}
				if !confirmed {
					a.logger.Info("Removal cancelled")
					return nil
				}
			}

			if err := client.RemoveWorktree(cmd.Context(), ws.BarePath(), target, force); err != nil {
				return trerrors.New(err, fmt.Sprintf("removing %s: %v", target, err),
					"Use --force to remove a worktree with local changes")
			}

			a.logger.Info("Removed worktree", "branch", label, "path", target)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Remove even with uncommitted changes")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
