package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// These are set at build time via -ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Display the current version of trellis.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(a.stdout, "trellis version %s (commit: %s, built: %s)\n", Version, Commit, BuildDate)
		},
	}
}
