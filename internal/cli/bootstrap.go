package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/naoray/trellis/internal/provision"
)

func newBootstrapCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bootstrap",
		Short: "Clone the bare repository and create the main worktree",
		Long: `Clones codebase.remote into .bare when it is missing, creates or validates
the main worktree for codebase.defaultBranch, enables the package manager
and installs dependencies.

Running bootstrap again is safe: an existing clone and a valid main
worktree are reused.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.workspace()
			if err != nil {
				return err
			}

			result, err := provision.Bootstrap(cmd.Context(), a.env(cmd.Context(), ws))
			if err != nil {
				return err
			}

			a.logger.Info("Main worktree ready", "branch", result.Branch)
			_, _ = fmt.Fprintln(a.stdout, result.Path)
			return nil
		},
	}
}
