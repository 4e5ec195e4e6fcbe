package commands

import (
	"context"
	"io"

	"github.com/NielsdaWheelz/ytgit/internal/action"
	"github.com/NielsdaWheelz/ytgit/internal/config"
	"github.com/NielsdaWheelz/ytgit/internal/exec"
	"github.com/NielsdaWheelz/ytgit/internal/fs"
)

// ServeOpts holds options for the serve command.
type ServeOpts struct {
	CommonOpts

	// RepoPath is where createBranch creates branches. Defaults to cwd.
	RepoPath string

	// Print writes issue URLs to stdout instead of opening them.
	Print bool
}

// Serve implements the `ytgit serve` command: it reads host messages from
// stdin and dispatches each until EOF.
func Serve(ctx context.Context, cr exec.CommandRunner, fsys fs.FS, cwd string, stdin io.Reader, opts ServeOpts, stdout, stderr io.Writer) error {
	s, err := loadSettings(fsys, opts.CommonOpts)
	if err != nil {
		return err
	}
	logger := NewLogger(stderr, opts.Verbose)

	repoDir := cwd
	if opts.RepoPath != "" {
		repoDir = opts.RepoPath
	}

	urls := action.URLHandler{Runner: cr, Host: s.cfg.Host, Print: opts.Print, Out: stdout}
	if !opts.Print {
		// A missing opener only fails the actions that need it.
		if opener, err := config.ResolveOpener(cr, s.cfg); err == nil {
			urls.Opener = opener
		} else {
			logger.Warn("opener unavailable", "opener", s.cfg.Opener, "error", err)
		}
	}

	d := s.newDispatcher(fsys, opts.CommonOpts, stderr, false)
	d.RegisterURLHandler(urls)
	d.Register(action.KindCreateBranch, action.BranchHandler{Runner: cr, RepoDir: repoDir, Out: stdout})

	logger.Debug("serving", "repo", repoDir, "host", s.cfg.Host)
	handled, err := action.Serve(ctx, stdin, d)
	logger.Debug("serve finished", "handled", handled)
	return err
}
