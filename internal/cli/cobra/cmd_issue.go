package cobra

import (
	"github.com/spf13/cobra"

	"github.com/NielsdaWheelz/ytgit/internal/action"
	"github.com/NielsdaWheelz/ytgit/internal/commands"
	"github.com/NielsdaWheelz/ytgit/internal/exec"
	"github.com/NielsdaWheelz/ytgit/internal/fs"
)

// newIssueCmd builds one of the commands that act on an issue by id.
func newIssueCmd(use, short string, kind action.Kind) *cobra.Command {
	var printURL bool

	cmd := &cobra.Command{
		Use:   use + " <issue-id>",
		Short: short,
		Long: short + ` with the configured opener.
Requires the tracker host (config "host" or --host).

Arguments:
  issue-id    readable issue id, e.g. PROJ-1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := commands.IssueOpts{
				CommonOpts: commonOpts(),
				Kind:       kind,
				IssueID:    args[0],
				Print:      printURL,
			}
			return commands.Issue(cmd.Context(), exec.NewRealRunner(), fs.NewRealFS(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().BoolVar(&printURL, "print", false, "print the issue URL instead of opening it")

	return cmd
}
