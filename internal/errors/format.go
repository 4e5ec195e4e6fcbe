// Package errors provides error formatting for ytgit CLI output.
package errors

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// PrintOptions controls error output formatting.
type PrintOptions struct {
	// Verbose enables detailed error output with more context keys.
	Verbose bool
}

// Context key whitelist (default mode, in order).
var defaultContextKeys = []string{
	"op",
	"issue",
	"ticket",
	"field",
	"branch",
	"repo",
	"command",
	"exit_code",
	"path",
}

// Additional context keys for verbose mode.
var verboseContextKeys = []string{
	"op",
	"issue",
	"ticket",
	"field",
	"branch",
	"repo",
	"command",
	"exit_code",
	"path",
	"host",
	"url",
	"opener",
	"action",
	"config",
}

const (
	maxValueLen      = 256
	maxExtraValueLen = 128
)

// Format formats an error for display without I/O.
func Format(err error, opts PrintOptions) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder

	e, ok := AsError(err)
	if !ok {
		sb.WriteString(err.Error())
		sb.WriteString("\n")
		return sb.String()
	}

	sb.WriteString("error_code: ")
	sb.WriteString(string(e.Code))
	sb.WriteString("\n")
	sb.WriteString(e.Msg)
	sb.WriteString("\n")

	contextKeys := defaultContextKeys
	if opts.Verbose {
		contextKeys = verboseContextKeys
	}

	printedKeys := make(map[string]bool)
	var contextLines []string
	for _, key := range contextKeys {
		val, ok := e.Details[key]
		if !ok || val == "" {
			continue
		}
		printedKeys[key] = true
		contextLines = append(contextLines, key+": "+sanitizeValue(val, maxValueLen))
	}
	if len(contextLines) > 0 {
		sb.WriteString("\n")
		sb.WriteString(strings.Join(contextLines, "\n"))
		sb.WriteString("\n")
	}

	if opts.Verbose {
		var extraKeys []string
		for key, val := range e.Details {
			if !printedKeys[key] && key != "hint" && val != "" {
				extraKeys = append(extraKeys, key)
			}
		}
		if len(extraKeys) > 0 {
			sort.Strings(extraKeys)
			sb.WriteString("\nextra:\n")
			for _, key := range extraKeys {
				sb.WriteString("  ")
				sb.WriteString(key)
				sb.WriteString(": ")
				sb.WriteString(sanitizeValue(e.Details[key], maxExtraValueLen))
				sb.WriteString("\n")
			}
		}
		if e.Cause != nil {
			sb.WriteString("\ncause: ")
			sb.WriteString(sanitizeValue(e.Cause.Error(), maxValueLen))
			sb.WriteString("\n")
		}
	}

	if hint := e.Details["hint"]; hint != "" {
		sb.WriteString("\nhint: ")
		sb.WriteString(hint)
		sb.WriteString("\n")
	}

	for _, try := range deriveTryLines(e) {
		sb.WriteString("try: ")
		sb.WriteString(try)
		sb.WriteString("\n")
	}

	return sb.String()
}

// PrintWithOptions writes a formatted error to w with the given options.
func PrintWithOptions(w io.Writer, err error, opts PrintOptions) {
	if err == nil {
		return
	}
	_, _ = io.WriteString(w, Format(err, opts))
}

// sanitizeValue flattens a value onto a single line and truncates it.
func sanitizeValue(val string, maxLen int) string {
	val = strings.TrimRight(val, " \t\r\n")
	val = strings.ReplaceAll(val, "\r\n", "\n")
	val = strings.ReplaceAll(val, "\n", "\\n")
	if len(val) > maxLen {
		return val[:maxLen] + "…"
	}
	return val
}

// deriveTryLines returns actionable suggestions based on error code.
func deriveTryLines(e *Error) []string {
	var lines []string
	switch e.Code {
	case EHostNotConfigured:
		lines = append(lines, "ytgit --host https://youtrack.example.com ...")
	case EMissingField:
		if field := e.Details["field"]; field != "" {
			lines = append(lines, fmt.Sprintf("set the %q field on the issue, then retry", field))
		}
	case EGitNotInstalled:
		lines = append(lines, "ytgit doctor")
	}
	return lines
}
