package cobra

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/NielsdaWheelz/ytgit/internal/commands"
	"github.com/NielsdaWheelz/ytgit/internal/errors"
	"github.com/NielsdaWheelz/ytgit/internal/exec"
	"github.com/NielsdaWheelz/ytgit/internal/fs"
)

func newServeCmd() *cobra.Command {
	var repoPath string
	var printURLs bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Dispatch actions read from stdin",
		Long: `Read newline-delimited action messages from stdin and dispatch each in order
until EOF. Messages have the form:

  {"command": "<action>", "text": <payload>}

where action is edit, updateState, addComment or open with an issue id string
as payload, or createBranch with a ticket object as payload. Outcomes are
reported on stderr and appended to the action log.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return errors.Wrap(errors.EInternal, "failed to get working directory", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			opts := commands.ServeOpts{
				CommonOpts: commonOpts(),
				RepoPath:   repoPath,
				Print:      printURLs,
			}
			err = commands.Serve(ctx, exec.NewRealRunner(), fs.NewRealFS(), cwd, cmd.InOrStdin(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err == context.Canceled {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&repoPath, "repo", "", "repo for createBranch (default: current directory)")
	cmd.Flags().BoolVar(&printURLs, "print", false, "print issue URLs to stdout instead of opening them")

	return cmd
}
