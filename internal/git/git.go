// Package git wraps the git invocations ytgit performs: locating the repo,
// validating branch names and creating branches.
package git

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/NielsdaWheelz/ytgit/internal/errors"
	"github.com/NielsdaWheelz/ytgit/internal/exec"
)

// maxOutput caps captured git output stored in error details.
const maxOutput = 32 * 1024

// Version returns the output of `git --version`, e.g. "git version 2.43.0".
func Version(ctx context.Context, cr exec.CommandRunner) (string, error) {
	if _, err := cr.LookPath("git"); err != nil {
		return "", errors.Wrap(errors.EGitNotInstalled, "git is not installed or not on PATH", err)
	}
	result, err := cr.Run(ctx, "git", []string{"--version"}, exec.RunOpts{})
	if err != nil {
		return "", errors.Wrap(errors.EGitNotInstalled, "failed to run git", err)
	}
	if result.ExitCode != 0 {
		return "", errors.NewWithDetails(errors.EGitNotInstalled, "git --version failed", outputDetails("git --version", result))
	}
	return strings.TrimSpace(result.Stdout), nil
}

// GetRepoRoot returns the top-level directory of the repository containing
// path.
func GetRepoRoot(ctx context.Context, cr exec.CommandRunner, path string) (string, error) {
	args := []string{"-C", path, "rev-parse", "--show-toplevel"}
	result, err := cr.Run(ctx, "git", args, exec.RunOpts{})
	if err != nil {
		return "", gitStartError(err, args)
	}
	if result.ExitCode != 0 {
		return "", errors.NewWithDetails(errors.ENoRepo, "not inside a git repository", map[string]string{
			"path":      path,
			"exit_code": fmt.Sprintf("%d", result.ExitCode),
			"stderr":    truncate(result.Stderr),
		})
	}
	root := strings.TrimSpace(result.Stdout)
	if root == "" {
		return "", errors.NewWithDetails(errors.ENoRepo, "git returned an empty repository root", map[string]string{"path": path})
	}
	return filepath.Clean(root), nil
}

// CheckBranchName validates name with `git check-ref-format --branch`.
// Branch names derived from ticket summaries can contain characters git
// rejects; this is where they are caught.
func CheckBranchName(ctx context.Context, cr exec.CommandRunner, name string) error {
	args := []string{"check-ref-format", "--branch", name}
	result, err := cr.Run(ctx, "git", args, exec.RunOpts{})
	if err != nil {
		return gitStartError(err, args)
	}
	if result.ExitCode != 0 {
		return errors.NewWithDetails(
			errors.EInvalidBranchName,
			fmt.Sprintf("%q is not a valid git branch name", name),
			map[string]string{
				"branch": name,
				"hint":   "edit the issue summary to remove characters git does not allow in ref names",
			},
		)
	}
	return nil
}

// CreateBranch creates and checks out name in repoRoot:
// git -C <repoRoot> checkout -b <name>
func CreateBranch(ctx context.Context, cr exec.CommandRunner, repoRoot, name string) error {
	args := []string{"-C", repoRoot, "checkout", "-b", name}
	result, err := cr.Run(ctx, "git", args, exec.RunOpts{})
	if err != nil {
		return gitStartError(err, args)
	}
	if result.ExitCode != 0 {
		details := outputDetails("git "+strings.Join(args, " "), result)
		details["branch"] = name
		details["repo"] = repoRoot
		return errors.NewWithDetails(
			errors.EBranchCreateFailed,
			"git checkout -b failed: "+strings.TrimSpace(result.Stderr),
			details,
		)
	}
	return nil
}

func gitStartError(err error, args []string) error {
	return errors.WrapWithDetails(
		errors.EGitNotInstalled,
		"failed to execute git",
		err,
		map[string]string{"command": "git " + strings.Join(args, " ")},
	)
}

func outputDetails(command string, result exec.CmdResult) map[string]string {
	details := map[string]string{
		"command":   command,
		"exit_code": fmt.Sprintf("%d", result.ExitCode),
	}
	if result.Stderr != "" {
		details["stderr"] = truncate(result.Stderr)
		if len(result.Stderr) > maxOutput {
			details["stderr_truncated"] = "true"
		}
	}
	if result.Stdout != "" {
		details["stdout"] = truncate(result.Stdout)
		if len(result.Stdout) > maxOutput {
			details["stdout_truncated"] = "true"
		}
	}
	return details
}

func truncate(s string) string {
	if len(s) > maxOutput {
		return s[:maxOutput]
	}
	return s
}
