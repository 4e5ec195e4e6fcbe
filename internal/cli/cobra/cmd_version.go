package cobra

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NielsdaWheelz/ytgit/internal/version"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print ytgit version",
		Long:  "Print the ytgit version string.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "ytgit %s\n", version.FullVersion())
		},
	}

	return cmd
}
