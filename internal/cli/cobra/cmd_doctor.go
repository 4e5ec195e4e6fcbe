package cobra

import (
	"github.com/spf13/cobra"

	"github.com/NielsdaWheelz/ytgit/internal/commands"
	"github.com/NielsdaWheelz/ytgit/internal/exec"
	"github.com/NielsdaWheelz/ytgit/internal/fs"
)

func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check prerequisites and show resolved paths",
		Long: `Check prerequisites and show resolved paths.
Verifies git is installed and the user config is valid, then prints the
config and data directories, tracker host and opener.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := commands.DoctorOpts{CommonOpts: commonOpts()}
			return commands.Doctor(cmd.Context(), exec.NewRealRunner(), fs.NewRealFS(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	return cmd
}
