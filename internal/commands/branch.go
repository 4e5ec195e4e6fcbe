package commands

import (
	"context"
	"io"

	"github.com/NielsdaWheelz/ytgit/internal/action"
	"github.com/NielsdaWheelz/ytgit/internal/exec"
	"github.com/NielsdaWheelz/ytgit/internal/fs"
	"github.com/NielsdaWheelz/ytgit/internal/ticket"
)

// BranchOpts holds options for the branch command.
type BranchOpts struct {
	CommonOpts

	// TicketPath is a JSON or YAML ticket file, or "-" for stdin.
	TicketPath string

	// RepoPath targets a repo other than the current directory.
	RepoPath string

	// DryRun prints the derived branch name without touching git.
	DryRun bool
}

// Branch implements the `ytgit branch` command: it derives the branch name
// for a ticket and checks it out as a new branch.
func Branch(ctx context.Context, cr exec.CommandRunner, fsys fs.FS, cwd string, stdin io.Reader, opts BranchOpts, stdout, stderr io.Writer) error {
	s, err := loadSettings(fsys, opts.CommonOpts)
	if err != nil {
		return err
	}

	t, err := ticket.Load(fsys, opts.TicketPath, stdin)
	if err != nil {
		return err
	}

	repoDir := cwd
	if opts.RepoPath != "" {
		repoDir = opts.RepoPath
	}

	d := s.newDispatcher(fsys, opts.CommonOpts, stderr, true)
	d.Register(action.KindCreateBranch, action.BranchHandler{
		Runner:  cr,
		RepoDir: repoDir,
		DryRun:  opts.DryRun,
		Out:     stdout,
	})

	_, err = d.Dispatch(ctx, action.NewBranchRequest(t))
	return err
}
