// Package pkgmgr runs the configured JavaScript package manager inside a
// worktree: the best-effort enable command (corepack) and dependency install.
package pkgmgr

import (
	"context"
	"fmt"
	"strings"

	"github.com/naoray/trellis/internal/config"
	trerrors "github.com/naoray/trellis/internal/errors"
	trexec "github.com/naoray/trellis/internal/exec"
)

// Manager runs package manager commands through a CommandExecutor.
type Manager struct {
	cfg      config.PackageManagerConfig
	executor *trexec.CommandExecutor
}

// New returns a Manager for cfg. A nil commander runs real commands.
func New(cfg config.PackageManagerConfig, commander trexec.Commander) *Manager {
	return &Manager{cfg: cfg, executor: trexec.NewCommandExecutor(commander)}
}

// Name returns the package manager binary, e.g. "pnpm".
func (m *Manager) Name() string {
	return m.cfg.Command
}

// Enable runs the pinning command (corepack enable by default). It is a no-op
// when no enable command is configured. Callers treat failure as a warning.
func (m *Manager) Enable(ctx context.Context) error {
	if len(m.cfg.EnableCommand) == 0 {
		return nil
	}
	_, err := m.executor.RunBinary(ctx, "", m.cfg.EnableCommand[0], m.cfg.EnableCommand[1:])
	if err != nil {
		return fmt.Errorf("%s: %w", strings.Join(m.cfg.EnableCommand, " "), err)
	}
	return nil
}

// InstallArgs returns the install argument vector, with the frozen lockfile
// flag appended when frozen is set.
func (m *Manager) InstallArgs(frozen bool) []string {
	args := append([]string(nil), m.cfg.InstallArgs...)
	if frozen && m.cfg.FrozenLockfileFlag != "" {
		args = append(args, m.cfg.FrozenLockfileFlag)
	}
	return args
}

// Install installs dependencies in dir. Failure is returned as
// ErrInstallFailed carrying the command's stderr.
func (m *Manager) Install(ctx context.Context, dir string, frozen bool) error {
	args := m.InstallArgs(frozen)
	if _, err := m.executor.RunBinary(ctx, dir, m.cfg.Command, args); err != nil {
		return &trerrors.CLIError{
			Err:        fmt.Errorf("%w: %w", trerrors.ErrInstallFailed, err),
			Message:    fmt.Sprintf("%s %s failed in %s: %v", m.cfg.Command, strings.Join(args, " "), dir, err),
			Suggestion: fmt.Sprintf("Fix the error above, then run %s %s in %s", m.cfg.Command, strings.Join(args, " "), dir),
		}
	}
	return nil
}
