// Package exec runs external commands (git, the URL opener) behind an
// interface so command logic can be tested with fakes.
package exec

import (
	"bytes"
	"context"
	stderrors "errors"
	osexec "os/exec"
)

// CmdResult is the captured outcome of a command that ran to completion.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// RunOpts configures a single command invocation.
type RunOpts struct {
	// Dir is the working directory. Empty means the current directory.
	Dir string

	// Env is appended to the inherited environment.
	Env []string
}

// CommandRunner executes external commands.
//
// Run returns an error only when the command could not be started or waited
// on (binary missing, context cancelled). A non-zero exit is reported through
// CmdResult.ExitCode with a nil error.
type CommandRunner interface {
	Run(ctx context.Context, name string, args []string, opts RunOpts) (CmdResult, error)
	LookPath(file string) (string, error)
}

// RealRunner runs commands with os/exec.
type RealRunner struct{}

// NewRealRunner returns a CommandRunner backed by os/exec.
func NewRealRunner() *RealRunner {
	return &RealRunner{}
}

// Run executes name with args and captures stdout and stderr.
func (r *RealRunner) Run(ctx context.Context, name string, args []string, opts RunOpts) (CmdResult, error) {
	cmd := osexec.CommandContext(ctx, name, args...)
	cmd.Dir = opts.Dir
	if len(opts.Env) > 0 {
		cmd.Env = append(cmd.Environ(), opts.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := CmdResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err != nil {
		var exitErr *osexec.ExitError
		if stderrors.As(err, &exitErr) && ctx.Err() == nil {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, err
	}
	return result, nil
}

// LookPath resolves an executable on PATH.
func (r *RealRunner) LookPath(file string) (string, error) {
	return osexec.LookPath(file)
}
