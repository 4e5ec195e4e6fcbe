package action

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/NielsdaWheelz/ytgit/internal/core"
	"github.com/NielsdaWheelz/ytgit/internal/errors"
	"github.com/NielsdaWheelz/ytgit/internal/exec"
	"github.com/NielsdaWheelz/ytgit/internal/git"
	"github.com/NielsdaWheelz/ytgit/internal/tracker"
)

// BranchHandler creates a git branch named after the ticket.
type BranchHandler struct {
	Runner exec.CommandRunner

	// RepoDir is any path inside the target repository.
	RepoDir string

	// DryRun prints the derived name to Out instead of creating the branch.
	DryRun bool
	Out    io.Writer
}

// Handle derives the branch name, validates it with git and checks it out.
func (h BranchHandler) Handle(ctx context.Context, req Request) (Result, error) {
	if req.Ticket == nil {
		return Result{}, errors.New(errors.EInvalidMessage, "createBranch requires a ticket")
	}
	name, err := core.DeriveBranchName(*req.Ticket)
	if err != nil {
		return Result{}, err
	}

	if h.DryRun {
		_, err := fmt.Fprintln(h.Out, name)
		return Result{}, err
	}

	root, err := git.GetRepoRoot(ctx, h.Runner, h.RepoDir)
	if err != nil {
		return Result{}, err
	}
	if err := git.CheckBranchName(ctx, h.Runner, name); err != nil {
		return Result{}, err
	}
	if err := git.CreateBranch(ctx, h.Runner, root, name); err != nil {
		return Result{}, err
	}
	return Result{Message: "Branch created: " + name}, nil
}

// URLHandler sends the user to the issue page in the tracker. It serves
// open, edit, updateState and addComment.
type URLHandler struct {
	Runner exec.CommandRunner
	Host   string

	// Opener is the resolved opener executable. Unused when Print is set.
	Opener string

	// Print writes the URL to Out instead of launching the opener.
	Print bool
	Out   io.Writer
}

// Handle opens or prints the issue URL.
func (h URLHandler) Handle(ctx context.Context, req Request) (Result, error) {
	if h.Host == "" {
		return Result{}, errors.NewWithDetails(errors.EHostNotConfigured, "tracker host is not configured", map[string]string{
			"issue": req.IssueID,
			"hint":  `set "host" in config.json`,
		})
	}
	url := tracker.IssueURL(h.Host, req.IssueID)

	if h.Print {
		_, err := fmt.Fprintln(h.Out, url)
		return Result{}, err
	}
	if h.Opener == "" {
		return Result{}, errors.New(errors.EOpenerNotConfigured, "no opener configured")
	}

	result, err := h.Runner.Run(ctx, h.Opener, []string{url}, exec.RunOpts{})
	if err != nil {
		return Result{}, errors.WrapWithDetails(errors.EOpenFailed, "failed to run opener", err, map[string]string{
			"command": h.Opener + " " + url,
		})
	}
	if result.ExitCode != 0 {
		return Result{}, errors.NewWithDetails(errors.EOpenFailed, "opener failed: "+strings.TrimSpace(result.Stderr), map[string]string{
			"command":   h.Opener + " " + url,
			"exit_code": fmt.Sprintf("%d", result.ExitCode),
		})
	}
	return Result{Message: verb(req.Kind) + " " + req.IssueID + " in browser: " + url}, nil
}

func verb(k Kind) string {
	switch k {
	case KindEdit:
		return "Editing"
	case KindUpdateState:
		return "Updating state of"
	case KindAddComment:
		return "Commenting on"
	default:
		return "Opened"
	}
}

// RegisterURLHandler registers h for every id-carrying kind.
func (d *Dispatcher) RegisterURLHandler(h URLHandler) {
	for _, k := range []Kind{KindOpen, KindEdit, KindUpdateState, KindAddComment} {
		d.Register(k, h)
	}
}
