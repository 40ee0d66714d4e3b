package exec

import (
	"context"

	"github.com/charmbracelet/log"
)

// readOnlyGit lists git subcommands that only inspect state.
var readOnlyGit = map[string]bool{
	"rev-parse":     true,
	"show-ref":      true,
	"for-each-ref":  true,
	"worktree list": true,
	"config --get":  true,
}

// DryRunCommander executes read-only git queries through the wrapped
// Commander and logs every other command instead of running it.
type DryRunCommander struct {
	next   Commander
	logger *log.Logger
}

func NewDryRunCommander(next Commander, logger *log.Logger) *DryRunCommander {
	if next == nil {
		next = &RealCommander{}
	}
	return &DryRunCommander{next: next, logger: logger}
}

func (d *DryRunCommander) Run(ctx context.Context, dir string, command string, args ...string) ([]byte, error) {
	if command == "git" && isReadOnlyGit(args) {
		return d.next.Run(ctx, dir, command, args...)
	}
	d.logger.Info("[DRY-RUN] would run", "cmd", buildCommandKey(command, args), "dir", dir)
	return nil, nil
}

func isReadOnlyGit(args []string) bool {
	i := 0
	for i < len(args) && args[i] == "-C" {
		i += 2
	}
	if i >= len(args) {
		return false
	}
	if readOnlyGit[args[i]] {
		return true
	}
	if i+1 < len(args) {
		return readOnlyGit[args[i]+" "+args[i+1]]
	}
	return false
}
