package cobra

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/NielsdaWheelz/ytgit/internal/errors"
)

// executeCmd runs the root command with the given args and returns stdout, stderr, and error.
func executeCmd(args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	globalOpts = GlobalOpts{}
	rootCmd := NewRootCmd()
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// isolate points config and data dirs at a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("YTGIT_CONFIG_DIR", filepath.Join(dir, "config"))
	t.Setenv("YTGIT_DATA_DIR", filepath.Join(dir, "data"))
	t.Setenv("NO_COLOR", "1")
	return dir
}

func TestRoot_Help(t *testing.T) {
	for _, arg := range []string{"--help", "-h"} {
		t.Run(arg, func(t *testing.T) {
			stdout, _, err := executeCmd(arg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(stdout, "ytgit") {
				t.Error("expected 'ytgit' in help output")
			}
			if !strings.Contains(stdout, "Available Commands") {
				t.Error("expected 'Available Commands' in help output")
			}
			for _, cmd := range []string{"show", "branch", "open", "edit", "state", "comment", "serve", "doctor", "version"} {
				if !strings.Contains(stdout, cmd) {
					t.Errorf("expected '%s' command in help output", cmd)
				}
			}
			for _, flag := range []string{"--verbose", "--host", "--color"} {
				if !strings.Contains(stdout, flag) {
					t.Errorf("expected '%s' flag in help output", flag)
				}
			}
		})
	}
}

func TestRoot_Version(t *testing.T) {
	for _, arg := range []string{"--version", "-v", "version"} {
		t.Run(arg, func(t *testing.T) {
			stdout, _, err := executeCmd(arg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(stdout, "ytgit") {
				t.Error("expected 'ytgit' in version output")
			}
		})
	}
}

func TestRoot_UnknownCommand(t *testing.T) {
	_, _, err := executeCmd("nonexistent")
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if !strings.Contains(err.Error(), "unknown command") {
		t.Errorf("expected 'unknown command' in error, got: %v", err)
	}
}

func TestCmd_Help(t *testing.T) {
	tests := []struct {
		cmd   string
		flags []string
	}{
		{"show", []string{"--json", "--html", "--width"}},
		{"branch", []string{"--repo", "--dry-run"}},
		{"open", []string{"--print"}},
		{"state", []string{"--print"}},
		{"serve", []string{"--repo", "--print"}},
	}
	for _, tt := range tests {
		t.Run(tt.cmd, func(t *testing.T) {
			stdout, _, err := executeCmd(tt.cmd, "--help")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, flag := range tt.flags {
				if !strings.Contains(stdout, flag) {
					t.Errorf("expected '%s' in %s help output", flag, tt.cmd)
				}
			}
		})
	}
}

func TestCmd_MissingArg(t *testing.T) {
	for _, cmd := range []string{"show", "branch", "open", "edit", "state", "comment"} {
		t.Run(cmd, func(t *testing.T) {
			_, _, err := executeCmd(cmd)
			if err == nil {
				t.Fatal("expected error when argument is missing")
			}
			if !strings.Contains(err.Error(), "accepts 1 arg") {
				t.Errorf("expected arg count error, got: %v", err)
			}
		})
	}
}

func TestBranchCmd_DryRun(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "t.json")
	ticket := `{"idReadable":"X-9","summary":"Ändere Größe","customFields":[{"name":"App","value":{"name":"API"}},{"name":"Type","value":{"name":"Task"}}]}`
	if err := os.WriteFile(path, []byte(ticket), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := executeCmd("branch", "--dry-run", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout != "api/task/X-9_Aendere-Groesse\n" {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestOpenCmd_PrintWithHostFlag(t *testing.T) {
	isolate(t)
	stdout, _, err := executeCmd("open", "--print", "--host", "https://yt.example.com", "PROJ-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout != "https://yt.example.com/issue/PROJ-1\n" {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestOpenCmd_NoHost(t *testing.T) {
	isolate(t)
	_, _, err := executeCmd("edit", "--print", "PROJ-1")
	if errors.GetCode(err) != errors.EHostNotConfigured {
		t.Errorf("code = %q, want %q", errors.GetCode(err), errors.EHostNotConfigured)
	}
}

func TestShowCmd_Stdin(t *testing.T) {
	isolate(t)
	var stdout bytes.Buffer
	globalOpts = GlobalOpts{}
	rootCmd := NewRootCmd()
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(`{"idReadable":"PROJ-1","summary":"From stdin"}`))
	rootCmd.SetArgs([]string{"show", "-"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(stdout.String(), "PROJ-1 From stdin\n") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestServeCmd_InvalidConfig(t *testing.T) {
	dir := isolate(t)
	if err := os.MkdirAll(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config", "config.json"), []byte(`{"version": 2}`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, err := executeCmd("serve")
	if errors.GetCode(err) != errors.EInvalidUserConfig {
		t.Errorf("code = %q, want %q", errors.GetCode(err), errors.EInvalidUserConfig)
	}
}
