package markdown

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func plain(md string, width int) string {
	return RenderTerminal(md, Options{Width: width})
}

func TestRenderTerminal_Empty(t *testing.T) {
	if got := plain("", 80); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}

func TestRenderTerminal_PlainHasNoEscapes(t *testing.T) {
	got := plain("# Title\n\nSome **bold** and `code`.\n\n```go\nfunc main() {}\n```", 80)
	if strings.Contains(got, "\x1b[") {
		t.Errorf("plain output contains ANSI escapes: %q", got)
	}
}

func TestRenderTerminal_ColorHasEscapes(t *testing.T) {
	got := RenderTerminal("Some **bold** text", Options{Width: 80, Color: true})
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("expected ANSI escapes in color output, got %q", got)
	}
	if ansi.Strip(got) != "Some bold text" {
		t.Errorf("stripped = %q", ansi.Strip(got))
	}
}

func TestRenderTerminal_ParagraphReflow(t *testing.T) {
	got := plain("This paragraph was\nhard wrapped\nin the source.", 120)
	if got != "This paragraph was hard wrapped in the source." {
		t.Errorf("got %q", got)
	}
}

func TestRenderTerminal_WrapsAtWidth(t *testing.T) {
	got := plain("This is a paragraph that should be wrapped at the requested width.", 24)
	for _, line := range strings.Split(got, "\n") {
		if ansi.StringWidth(line) > 24 {
			t.Errorf("line exceeds width 24: %q", line)
		}
	}
	if !strings.Contains(got, "\n") {
		t.Errorf("expected wrapped output, got %q", got)
	}
}

func TestRenderTerminal_Blocks(t *testing.T) {
	md := strings.Join([]string{
		"# Heading",
		"",
		"- one",
		"- two",
		"",
		"1. first",
		"2. second",
		"",
		"> quoted",
		"",
		"```",
		"raw code",
		"```",
		"",
		"See [docs](https://example.com/docs) and ![shot](https://yt/f/1).",
		"",
		"- [x] done",
		"- [ ] todo",
	}, "\n")

	got := plain(md, 80)

	for _, want := range []string{
		"Heading",
		"• one\n• two",
		"1. first\n2. second",
		"│ quoted",
		"    raw code",
		"docs (https://example.com/docs)",
		"[shot] (https://yt/f/1)",
		"[x] done",
		"[ ] todo",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRenderTerminal_Table(t *testing.T) {
	md := "| Name | Value |\n|------|------:|\n| a | 1 |\n| long name | 22 |\n"
	got := plain(md, 80)

	lines := strings.Split(got, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), got)
	}
	if !strings.HasPrefix(lines[0], "Name") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "─") {
		t.Errorf("rule = %q", lines[1])
	}
	// columns are 9 and 5 wide, joined by two spaces; Value is right-aligned
	if want := "a" + strings.Repeat(" ", 8) + "  " + "    1"; lines[2] != want {
		t.Errorf("row = %q, want %q", lines[2], want)
	}
	if want := "long name" + "  " + "   22"; lines[3] != want {
		t.Errorf("row = %q, want %q", lines[3], want)
	}
}

func TestRenderTerminal_FencedCodeHighlighted(t *testing.T) {
	got := RenderTerminal("```go\npackage main\n```", Options{Width: 80, Color: true})
	if !strings.Contains(ansi.Strip(got), "package main") {
		t.Errorf("code content missing: %q", ansi.Strip(got))
	}
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("expected highlighted code, got %q", got)
	}
}
