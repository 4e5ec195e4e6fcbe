package cobra

import (
	"github.com/spf13/cobra"

	"github.com/NielsdaWheelz/ytgit/internal/commands"
	"github.com/NielsdaWheelz/ytgit/internal/fs"
)

func newShowCmd() *cobra.Command {
	var jsonOutput bool
	var htmlOutput bool
	var width int

	cmd := &cobra.Command{
		Use:   "show <ticket-file>",
		Short: "Show the detail view of a ticket",
		Long: `Show the detail view of a ticket: title, custom fields, description and
comments (newest first). Attachment filenames in markdown are rewritten to
tracker URLs when a host is configured.

Arguments:
  ticket-file    JSON or YAML ticket (.yaml/.yml), or - for stdin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := commands.ShowOpts{
				CommonOpts: commonOpts(),
				TicketPath: args[0],
				JSON:       jsonOutput,
				HTML:       htmlOutput,
				Width:      width,
			}
			return commands.Show(cmd.Context(), fs.NewRealFS(), cmd.InOrStdin(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON (stable format)")
	cmd.Flags().BoolVar(&htmlOutput, "html", false, "output a standalone HTML page")
	cmd.Flags().IntVar(&width, "width", 0, "wrap width (default: $COLUMNS or 80)")

	return cmd
}
