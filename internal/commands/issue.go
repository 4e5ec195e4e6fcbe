package commands

import (
	"context"
	"io"

	"github.com/NielsdaWheelz/ytgit/internal/action"
	"github.com/NielsdaWheelz/ytgit/internal/config"
	"github.com/NielsdaWheelz/ytgit/internal/exec"
	"github.com/NielsdaWheelz/ytgit/internal/fs"
)

// IssueOpts holds options for the open, edit, state and comment commands.
type IssueOpts struct {
	CommonOpts

	Kind    action.Kind
	IssueID string

	// Print writes the issue URL to stdout instead of opening it.
	Print bool
}

// Issue dispatches an id-carrying action for a single issue.
func Issue(ctx context.Context, cr exec.CommandRunner, fsys fs.FS, opts IssueOpts, stdout, stderr io.Writer) error {
	s, err := loadSettings(fsys, opts.CommonOpts)
	if err != nil {
		return err
	}

	h := action.URLHandler{
		Runner: cr,
		Host:   s.cfg.Host,
		Print:  opts.Print,
		Out:    stdout,
	}
	if !opts.Print && s.cfg.Host != "" {
		opener, err := config.ResolveOpener(cr, s.cfg)
		if err != nil {
			return err
		}
		h.Opener = opener
	}

	d := s.newDispatcher(fsys, opts.CommonOpts, stderr, true)
	d.RegisterURLHandler(h)

	_, err = d.Dispatch(ctx, action.NewIssueRequest(opts.Kind, opts.IssueID))
	return err
}
