package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/NielsdaWheelz/ytgit/internal/errors"
	"github.com/NielsdaWheelz/ytgit/internal/exec"
	"github.com/NielsdaWheelz/ytgit/internal/fs"
)

func runBranch(t *testing.T, cr exec.CommandRunner, cwd string, opts BranchOpts) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := Branch(context.Background(), cr, fs.NewRealFS(), cwd, strings.NewReader(""), opts, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestBranch_DryRun(t *testing.T) {
	env := setupEnv(t, "")
	path := env.writeTicket(t, "t.json", ticketJSON)
	cr := &fakeRunner{}

	stdout, _, err := runBranch(t, cr, env.workDir, BranchOpts{TicketPath: path, DryRun: true})
	if err != nil {
		t.Fatalf("Branch() error = %v", err)
	}
	if stdout != "web/bug/PROJ-1_Fix-the-bug-please\n" {
		t.Errorf("stdout = %q", stdout)
	}
	if len(cr.calls) != 0 {
		t.Errorf("dry run ran commands: %v", cr.calls)
	}
}

func TestBranch_Creates(t *testing.T) {
	env := setupEnv(t, "")
	path := env.writeTicket(t, "t.json", ticketJSON)
	cr := &fakeRunner{responses: map[string]exec.CmdResult{
		"git -C /repo rev-parse --show-toplevel": {Stdout: "/repo\n"},
	}}

	_, stderr, err := runBranch(t, cr, env.workDir, BranchOpts{TicketPath: path, RepoPath: "/repo"})
	if err != nil {
		t.Fatalf("Branch() error = %v", err)
	}

	want := []string{
		"git -C /repo rev-parse --show-toplevel",
		"git check-ref-format --branch web/bug/PROJ-1_Fix-the-bug-please",
		"git -C /repo checkout -b web/bug/PROJ-1_Fix-the-bug-please",
	}
	if diff := cmp.Diff(want, cr.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
	if stderr != "Branch created: web/bug/PROJ-1_Fix-the-bug-please\n" {
		t.Errorf("stderr = %q", stderr)
	}

	evs := env.events(t)
	if len(evs) != 1 || evs[0].Action != "createBranch" || evs[0].IssueID != "PROJ-1" || !evs[0].OK {
		t.Errorf("events = %+v", evs)
	}
}

func TestBranch_MissingField(t *testing.T) {
	env := setupEnv(t, "")
	path := env.writeTicket(t, "t.json", `{"idReadable": "PROJ-2", "summary": "x", "customFields": [{"name": "Type", "value": {"name": "Bug"}}]}`)
	cr := &fakeRunner{}

	stdout, stderr, err := runBranch(t, cr, env.workDir, BranchOpts{TicketPath: path})
	if errors.GetCode(err) != errors.EMissingField {
		t.Fatalf("expected E_MISSING_FIELD, got %v", err)
	}
	if stdout != "" || stderr != "" {
		t.Errorf("errors are printed by main only; stdout=%q stderr=%q", stdout, stderr)
	}
	if len(cr.calls) != 0 {
		t.Errorf("git must not run: %v", cr.calls)
	}

	evs := env.events(t)
	if len(evs) != 1 || evs[0].OK || evs[0].ErrorCode != "E_MISSING_FIELD" {
		t.Errorf("events = %+v", evs)
	}
}

func TestBranch_GitFailure(t *testing.T) {
	env := setupEnv(t, "")
	path := env.writeTicket(t, "t.json", ticketJSON)
	cr := &fakeRunner{responses: map[string]exec.CmdResult{
		"git -C " + env.workDir + " rev-parse --show-toplevel": {ExitCode: 128, Stderr: "fatal: not a git repository"},
	}}

	_, _, err := runBranch(t, cr, env.workDir, BranchOpts{TicketPath: path})
	if errors.GetCode(err) != errors.ENoRepo {
		t.Errorf("expected E_NO_REPO, got %v", err)
	}
}
