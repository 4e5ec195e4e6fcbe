package cobra

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/NielsdaWheelz/ytgit/internal/commands"
	"github.com/NielsdaWheelz/ytgit/internal/errors"
	"github.com/NielsdaWheelz/ytgit/internal/exec"
	"github.com/NielsdaWheelz/ytgit/internal/fs"
)

func newBranchCmd() *cobra.Command {
	var repoPath string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "branch <ticket-file>",
		Short: "Create a git branch for a ticket",
		Long: `Create and check out a git branch named after a ticket:

  <app>/<type>/<id>_<summary>

app and type are the lowercased App and Type custom fields. In the summary,
spaces become hyphens, the characters , : ; . are dropped and German umlauts
are transliterated (ä -> ae, ß -> ss).

Arguments:
  ticket-file    JSON or YAML ticket (.yaml/.yml), or - for stdin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return errors.Wrap(errors.EInternal, "failed to get working directory", err)
			}

			opts := commands.BranchOpts{
				CommonOpts: commonOpts(),
				TicketPath: args[0],
				RepoPath:   repoPath,
				DryRun:     dryRun,
			}
			return commands.Branch(cmd.Context(), exec.NewRealRunner(), fs.NewRealFS(), cwd, cmd.InOrStdin(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&repoPath, "repo", "", "target a specific repo (default: current directory)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the branch name without creating it")

	return cmd
}
