package action

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	ytgiterrors "github.com/NielsdaWheelz/ytgit/internal/errors"
	"github.com/NielsdaWheelz/ytgit/internal/exec"
	"github.com/NielsdaWheelz/ytgit/internal/ticket"
)

// fakeRunner is a test double for exec.CommandRunner keyed by command line.
type fakeRunner struct {
	calls     [][]string
	responses map[string]fakeResponse
}

type fakeResponse struct {
	Result exec.CmdResult
	Err    error
}

func (f *fakeRunner) Run(ctx context.Context, name string, args []string, opts exec.RunOpts) (exec.CmdResult, error) {
	call := append([]string{name}, args...)
	f.calls = append(f.calls, call)
	key := name
	for _, a := range args {
		key += " " + a
	}
	if resp, ok := f.responses[key]; ok {
		return resp.Result, resp.Err
	}
	return exec.CmdResult{}, nil
}

func (f *fakeRunner) LookPath(file string) (string, error) {
	return "/usr/bin/" + file, nil
}

func branchTicket() ticket.Ticket {
	app := &ticket.FieldValue{Name: "Web"}
	typ := &ticket.FieldValue{Name: "Bug"}
	return ticket.Ticket{
		ID:      "PROJ-1",
		Summary: "Fix the bug, please.",
		Fields:  []ticket.CustomField{{Name: "App", Value: app}, {Name: "Type", Value: typ}},
		App:     app,
		Type:    typ,
	}
}

func TestBranchHandler_Creates(t *testing.T) {
	cr := &fakeRunner{responses: map[string]fakeResponse{
		"git -C /work/sub rev-parse --show-toplevel": {Result: exec.CmdResult{Stdout: "/work\n"}},
	}}
	h := BranchHandler{Runner: cr, RepoDir: "/work/sub"}

	res, err := h.Handle(context.Background(), NewBranchRequest(branchTicket()))
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if res.Message != "Branch created: web/bug/PROJ-1_Fix-the-bug-please" {
		t.Errorf("message = %q", res.Message)
	}

	want := [][]string{
		{"git", "-C", "/work/sub", "rev-parse", "--show-toplevel"},
		{"git", "check-ref-format", "--branch", "web/bug/PROJ-1_Fix-the-bug-please"},
		{"git", "-C", "/work", "checkout", "-b", "web/bug/PROJ-1_Fix-the-bug-please"},
	}
	if diff := cmp.Diff(want, cr.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestBranchHandler_DryRun(t *testing.T) {
	cr := &fakeRunner{}
	var out bytes.Buffer
	h := BranchHandler{Runner: cr, DryRun: true, Out: &out}

	res, err := h.Handle(context.Background(), NewBranchRequest(branchTicket()))
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if out.String() != "web/bug/PROJ-1_Fix-the-bug-please\n" || res.Message != "" {
		t.Errorf("out = %q, res = %+v", out.String(), res)
	}
	if len(cr.calls) != 0 {
		t.Errorf("dry run must not call git: %v", cr.calls)
	}
}

func TestBranchHandler_MissingFieldStopsBeforeGit(t *testing.T) {
	cr := &fakeRunner{}
	tk := branchTicket()
	tk.Fields = tk.Fields[1:]
	tk.App = nil

	_, err := BranchHandler{Runner: cr, RepoDir: "/work"}.Handle(context.Background(), NewBranchRequest(tk))
	if ytgiterrors.GetCode(err) != ytgiterrors.EMissingField {
		t.Errorf("expected E_MISSING_FIELD, got %v", err)
	}
	if len(cr.calls) != 0 {
		t.Errorf("git must not run: %v", cr.calls)
	}
}

func TestBranchHandler_InvalidName(t *testing.T) {
	cr := &fakeRunner{responses: map[string]fakeResponse{
		"git -C /work rev-parse --show-toplevel":                            {Result: exec.CmdResult{Stdout: "/work\n"}},
		"git check-ref-format --branch web/bug/PROJ-1_Fix-the-bug-please": {Result: exec.CmdResult{ExitCode: 1}},
	}}
	_, err := BranchHandler{Runner: cr, RepoDir: "/work"}.Handle(context.Background(), NewBranchRequest(branchTicket()))
	if ytgiterrors.GetCode(err) != ytgiterrors.EInvalidBranchName {
		t.Errorf("expected E_INVALID_BRANCH_NAME, got %v", err)
	}
	if len(cr.calls) != 2 {
		t.Errorf("checkout must not run after a rejected name: %v", cr.calls)
	}
}

func TestURLHandler(t *testing.T) {
	const host = "https://yt.example.com"

	t.Run("opens", func(t *testing.T) {
		cr := &fakeRunner{}
		h := URLHandler{Runner: cr, Host: host, Opener: "/usr/bin/xdg-open"}
		res, err := h.Handle(context.Background(), NewIssueRequest(KindEdit, "PROJ-1"))
		if err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
		want := [][]string{{"/usr/bin/xdg-open", host + "/issue/PROJ-1"}}
		if diff := cmp.Diff(want, cr.calls); diff != "" {
			t.Errorf("calls mismatch (-want +got):\n%s", diff)
		}
		if res.Message != "Editing PROJ-1 in browser: "+host+"/issue/PROJ-1" {
			t.Errorf("message = %q", res.Message)
		}
	})

	t.Run("prints", func(t *testing.T) {
		cr := &fakeRunner{}
		var out bytes.Buffer
		h := URLHandler{Runner: cr, Host: host + "/", Print: true, Out: &out}
		if _, err := h.Handle(context.Background(), NewIssueRequest(KindOpen, "PROJ-1")); err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
		if out.String() != host+"/issue/PROJ-1\n" {
			t.Errorf("out = %q", out.String())
		}
		if len(cr.calls) != 0 {
			t.Errorf("print must not run the opener: %v", cr.calls)
		}
	})

	failures := []struct {
		name     string
		h        URLHandler
		wantCode ytgiterrors.Code
	}{
		{"no host", URLHandler{Opener: "open"}, ytgiterrors.EHostNotConfigured},
		{"no opener", URLHandler{Host: host}, ytgiterrors.EOpenerNotConfigured},
		{
			"opener exits non-zero",
			URLHandler{Host: host, Opener: "open", Runner: &fakeRunner{responses: map[string]fakeResponse{
				"open " + host + "/issue/PROJ-1": {Result: exec.CmdResult{ExitCode: 4, Stderr: "no browser"}},
			}}},
			ytgiterrors.EOpenFailed,
		},
		{
			"opener fails to start",
			URLHandler{Host: host, Opener: "open", Runner: &fakeRunner{responses: map[string]fakeResponse{
				"open " + host + "/issue/PROJ-1": {Err: errors.New("permission denied")},
			}}},
			ytgiterrors.EOpenFailed,
		},
	}
	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.h.Handle(context.Background(), NewIssueRequest(KindOpen, "PROJ-1"))
			if got := ytgiterrors.GetCode(err); got != tt.wantCode {
				t.Errorf("code = %q, want %q (err=%v)", got, tt.wantCode, err)
			}
		})
	}
}
