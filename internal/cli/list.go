package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	trerrors "github.com/naoray/trellis/internal/errors"
	"github.com/naoray/trellis/internal/git"
	"github.com/naoray/trellis/internal/ui"
	"github.com/naoray/trellis/internal/workspace"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List worktrees of the bare repository",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.workspace()
			if err != nil {
				return err
			}
			if err := requireBare(ws); err != nil {
				return err
			}

			worktrees, err := git.New(a.runner()).ListWorktrees(cmd.Context(), ws.BarePath())
			if err != nil {
				return err
			}

			printWorktrees(a.stdout, ws, worktrees)
			return nil
		},
	}
}

func printWorktrees(w io.Writer, ws *workspace.Workspace, worktrees []git.Worktree) {
	mainPath := filepath.Clean(ws.MainWorktreePath())

	count := 0
	for _, wt := range worktrees {
		if wt.IsBare {
			continue
		}
		count++

		branch := wt.Branch
		if branch == "" {
			branch = "(detached)"
		}
		line := fmt.Sprintf("%s  %s", ui.BranchStyle.Render(branch), ui.PathStyle.Render(wt.Path))
		if filepath.Clean(wt.Path) == mainPath {
			line += " " + ui.MainStyle.Render("[main]")
		}
		_, _ = fmt.Fprintln(w, line)
	}

	if count == 0 {
		_, _ = fmt.Fprintln(w, ui.MutedStyle.Render("No worktrees found"))
	}
}

func requireBare(ws *workspace.Workspace) error {
	if _, err := os.Stat(ws.BarePath()); err != nil {
		return trerrors.New(trerrors.ErrBareRepoMissing,
			fmt.Sprintf("bare repository not found at %s", ws.BarePath()),
			"Run trellis bootstrap first")
	}
	return nil
}
