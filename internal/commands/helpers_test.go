package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/NielsdaWheelz/ytgit/internal/events"
	"github.com/NielsdaWheelz/ytgit/internal/exec"
)

const ticketJSON = `{
  "idReadable": "PROJ-1",
  "summary": "Fix the bug, please.",
  "description": "See ![](screen.png) for details.",
  "created": 1767225600000,
  "reporter": {"login": "jdoe", "fullName": "Jane Doe"},
  "customFields": [
    {"name": "App", "value": {"name": "Web"}},
    {"name": "Type", "value": {"name": "Bug"}},
    {"name": "Assignee", "value": null}
  ],
  "comments": [{"id": "4-1", "text": "looks like screen.png", "created": 1767225700000, "author": {"login": "rroe"}}],
  "attachments": [{"name": "screen.png", "url": "/api/files/1-1"}]
}`

// testEnv isolates config and data dirs and returns them.
type testEnv struct {
	configDir string
	dataDir   string
	workDir   string
}

func setupEnv(t *testing.T, config string) testEnv {
	t.Helper()
	root := t.TempDir()
	env := testEnv{
		configDir: filepath.Join(root, "config"),
		dataDir:   filepath.Join(root, "data"),
		workDir:   filepath.Join(root, "work"),
	}
	for _, dir := range []string{env.configDir, env.workDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	t.Setenv("YTGIT_CONFIG_DIR", env.configDir)
	t.Setenv("YTGIT_DATA_DIR", env.dataDir)
	t.Setenv("NO_COLOR", "1")
	if config != "" {
		if err := os.WriteFile(filepath.Join(env.configDir, "config.json"), []byte(config), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return env
}

func (e testEnv) writeTicket(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(e.workDir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func (e testEnv) events(t *testing.T) []events.Event {
	t.Helper()
	f, err := os.Open(filepath.Join(e.dataDir, "events.jsonl"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatal(err)
	}
	defer f.Close()

	var out []events.Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var ev events.Event
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			t.Fatalf("bad event line %q: %v", scanner.Text(), err)
		}
		out = append(out, ev)
	}
	return out
}

// fakeRunner is a test double for exec.CommandRunner keyed by command line.
type fakeRunner struct {
	calls     []string
	responses map[string]exec.CmdResult
	missing   map[string]bool
}

func (f *fakeRunner) Run(ctx context.Context, name string, args []string, opts exec.RunOpts) (exec.CmdResult, error) {
	key := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, key)
	return f.responses[key], nil
}

func (f *fakeRunner) LookPath(file string) (string, error) {
	if f.missing[file] {
		return "", os.ErrNotExist
	}
	return "/usr/bin/" + file, nil
}
