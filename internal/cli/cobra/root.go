// Package cobra provides the Cobra-based CLI command tree for ytgit.
package cobra

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/NielsdaWheelz/ytgit/internal/action"
	"github.com/NielsdaWheelz/ytgit/internal/commands"
	"github.com/NielsdaWheelz/ytgit/internal/version"
)

// GlobalOpts holds global options parsed before subcommand dispatch.
type GlobalOpts struct {
	Verbose bool
	Host    string
	Color   string
}

// globalOpts stores the parsed global options for access by subcommands.
var globalOpts GlobalOpts

// GetGlobalOpts returns the parsed global options.
func GetGlobalOpts() GlobalOpts {
	return globalOpts
}

func commonOpts() commands.CommonOpts {
	return commands.CommonOpts{
		Verbose: globalOpts.Verbose,
		Host:    globalOpts.Host,
		Color:   globalOpts.Color,
	}
}

// NewRootCmd creates the root cobra command for ytgit.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ytgit",
		Short: "Issue tracker tickets in the terminal, branches from tickets",
		Long: `ytgit - issue tracker tickets in the terminal

ytgit renders tracker tickets (JSON or YAML, in the tracker's REST shape) as a
readable detail view, creates git branches named <app>/<type>/<id>_<summary>
from them, and opens issues in the browser.`,
		Version:       version.FullVersion(),
		SilenceErrors: true, // We handle error printing in main.go
		SilenceUsage:  true, // We handle usage printing manually
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVar(&globalOpts.Verbose, "verbose", false, "show detailed error context and debug logs")
	rootCmd.PersistentFlags().StringVar(&globalOpts.Host, "host", "", "tracker base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.Color, "color", "", "color output: auto, always or never (overrides config)")

	rootCmd.AddCommand(
		newShowCmd(),
		newBranchCmd(),
		newIssueCmd("open", "Open an issue in the browser", action.KindOpen),
		newIssueCmd("edit", "Open an issue for editing", action.KindEdit),
		newIssueCmd("state", "Open an issue to update its state", action.KindUpdateState),
		newIssueCmd("comment", "Open an issue to add a comment", action.KindAddComment),
		newServeCmd(),
		newDoctorCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

// Execute runs the root command with the given output writers.
// This is the main entry point from main.go.
func Execute(stdout, stderr io.Writer) error {
	rootCmd := NewRootCmd()
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd.Execute()
}
