package cli

import (
	"fmt"

	"spedicija/internal/core/version"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			bi := version.Info()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s version %s\n", bi.Service, bi.Version)
			fmt.Fprintf(out, "  Git commit: %s\n", bi.Commit)
			fmt.Fprintf(out, "  Build date: %s\n", bi.Date)
		},
	}
}
