package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idsr/indgen/internal/cmdtypes"
	"github.com/idsr/indgen/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(_ *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show indgen version information.

Displays the CLI version, commit, build date and Go version.`,
		RunE: func(c *cobra.Command, _ []string) error {
			info := version.Get()
			out := c.OutOrStdout()
			fmt.Fprintf(out, "indgen version %s\n", info.Version)
			fmt.Fprintf(out, "  Commit:    %s\n", info.GitCommit)
			fmt.Fprintf(out, "  Built:     %s\n", info.BuildDate)
			fmt.Fprintf(out, "  Go:        %s\n", info.GoVersion)
			return nil
		},
	}
}
