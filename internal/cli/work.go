package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	trerrors "github.com/naoray/trellis/internal/errors"
	"github.com/naoray/trellis/internal/provision"
	"github.com/naoray/trellis/internal/ui"
	"github.com/naoray/trellis/internal/workspace"
)

func newWorkCmd(a *app) *cobra.Command {
	var (
		base        string
		interactive bool
		frozen      bool
	)

	cmd := &cobra.Command{
		Use:     "new [BRANCH]",
		Aliases: []string{"work"},
		Short:   "Create a worktree for a branch",
		Long: `Creates a worktree for BRANCH under the worktree root, named after the
sanitised branch name ("/" becomes "__", other unsafe characters "_").

An existing local branch is checked out as is. A branch that only exists
on origin gets a local tracking branch first. Otherwise a new branch is
created from --base (default: the bare repository's HEAD).

With --interactive and no BRANCH, pick a branch or type a new name.`,
		Args: cobra.RangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.workspace()
			if err != nil {
				return err
			}
			env := a.env(cmd.Context(), ws)

			var branch string
			if len(args) > 0 {
				branch = args[0]
			} else if interactive {
				branch, err = pickBranch(cmd, env, ws)
				if err != nil {
					return err
				}
			} else {
				return trerrors.New(trerrors.ErrUsage, "branch name is required", "Usage: "+cmd.UseLine())
			}

			result, err := provision.CreateWorktree(cmd.Context(), env, provision.Options{
				Branch:         branch,
				Base:           base,
				FrozenLockfile: frozen,
			})
			if err != nil {
				return err
			}

			a.logger.Info("Worktree ready", "branch", result.Branch, "source", result.Source)
			_, _ = fmt.Fprintln(a.stdout, result.Path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&base, "base", "b", "", "Base branch for a new branch")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Interactive branch selection")
	cmd.Flags().BoolVar(&frozen, "frozen-lockfile", false, "Install with the package manager's frozen lockfile flag")

	return cmd
}

func pickBranch(cmd *cobra.Command, env *provision.Env, ws *workspace.Workspace) (string, error) {
	local, remote, err := env.Git.GetBranchRefs(cmd.Context(), ws.BarePath())
	if err != nil {
		return "", fmt.Errorf("listing branches: %w", err)
	}
	return ui.SelectBranchInteractive(local, remote)
}
