// Package cli implements the cobra command tree for trellis. The root command
// builds the logger once; every subcommand resolves the workspace, builds a
// provision.Env and returns typed errors to Execute, which maps them to an
// exit code.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	trerrors "github.com/naoray/trellis/internal/errors"
	trexec "github.com/naoray/trellis/internal/exec"
	"github.com/naoray/trellis/internal/git"
	"github.com/naoray/trellis/internal/pkgmgr"
	"github.com/naoray/trellis/internal/provision"
	"github.com/naoray/trellis/internal/ui"
	"github.com/naoray/trellis/internal/workspace"
)

// app holds per-invocation state shared by subcommands.
type app struct {
	rootFlag string
	dryRun   bool
	verbose  bool

	stdout io.Writer
	stderr io.Writer

	// commander runs external commands; nil runs them for real.
	commander trexec.Commander
	// interactive reports whether prompts and spinners may be shown.
	interactive func() bool
	lookPath    func(string) bool

	logger *log.Logger
}

func newApp() *app {
	return &app{
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		interactive: ui.IsInteractive,
		lookPath:    trexec.LookPath,
	}
}

// NewRootCommand creates the trellis command tree.
func NewRootCommand() *cobra.Command {
	return newRootCmd(newApp())
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "trellis",
		Short: "Bare repository and worktree provisioning for the meta-repo",
		Long: `Trellis manages a meta-repository that holds tooling next to a bare
codebase repository (.bare). Every branch of the codebase is checked out
as its own worktree under the configured worktree root.

Configuration is read from trellis.json at the meta-repo root.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.logger = ui.NewLogger(a.stderr, a.verbose)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.rootFlag, "root", "", "Meta-repo root (default: $TRELLIS_ROOT or nearest trellis.json)")
	rootCmd.PersistentFlags().BoolVar(&a.dryRun, "dry-run", false, "Preview operations without executing")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)

	rootCmd.AddCommand(
		newBootstrapCmd(a),
		newWorkCmd(a),
		newListCmd(a),
		newRemoveCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
	)

	return rootCmd
}

// Execute runs the CLI and returns the process exit code. It is the only
// place errors are reported to the operator.
func Execute(ctx context.Context) int {
	a := newApp()
	return execute(ctx, a, newRootCmd(a), os.Args[1:])
}

func execute(ctx context.Context, a *app, cmd *cobra.Command, args []string) int {
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return trerrors.ExitSuccess
	}

	logger := a.logger
	if logger == nil {
		logger = ui.NewLogger(a.stderr, a.verbose)
	}

	if ui.IsAbort(ui.NormalizeAbort(err)) {
		logger.Warn("Aborted")
	} else {
		logger.Error(trerrors.Message(err))
		if suggestion := trerrors.Suggestion(err); suggestion != "" {
			logger.Info(suggestion)
		}
	}

	return trerrors.ExitCode(err)
}

// workspace resolves the root and loads trellis.json.
func (a *app) workspace() (*workspace.Workspace, error) {
	cwd, _ := os.Getwd()
	exe, _ := os.Executable()

	root, err := workspace.ResolveRoot(a.rootFlag, cwd, exe)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("resolved meta-repo root", "root", root)

	ws, err := workspace.Open(root)
	if err != nil {
		return nil, err
	}
	for _, key := range ws.Config.UnusedKeys {
		a.logger.Debug("ignoring unknown configuration key", "key", key)
	}
	return ws, nil
}

func (a *app) runner() trexec.Commander {
	commander := a.commander
	if commander == nil {
		commander = &trexec.RealCommander{}
	}
	if a.dryRun {
		return trexec.NewDryRunCommander(commander, a.logger)
	}
	return commander
}

func (a *app) env(ctx context.Context, ws *workspace.Workspace) *provision.Env {
	commander := a.runner()
	env := &provision.Env{
		Workspace: ws,
		Git:       git.New(commander),
		PkgMgr:    pkgmgr.New(ws.Config.PackageManager, commander),
		Logger:    a.logger,
		UseGH:     a.lookPath("gh"),
	}
	if a.interactive() && !a.dryRun {
		env.Progress = ui.Spinner(ctx)
	}
	return env
}
