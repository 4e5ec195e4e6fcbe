package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/NielsdaWheelz/ytgit/internal/config"
	"github.com/NielsdaWheelz/ytgit/internal/exec"
	"github.com/NielsdaWheelz/ytgit/internal/fs"
	"github.com/NielsdaWheelz/ytgit/internal/git"
	"github.com/NielsdaWheelz/ytgit/internal/paths"
)

// DoctorReport holds all the data for doctor output.
type DoctorReport struct {
	GitVersion string

	ConfigDir      string
	UserConfigPath string
	ConfigFound    bool
	DataDir        string
	EventsPath     string

	Host       string
	Opener     string
	OpenerPath string
	ColorMode  string
}

// DoctorOpts holds options for the doctor command.
type DoctorOpts struct {
	CommonOpts
}

// Doctor implements the `ytgit doctor` command.
// Fails when git is missing or the config is invalid. A missing host or
// opener is reported but not fatal, since show and branch work without them.
func Doctor(ctx context.Context, cr exec.CommandRunner, fsys fs.FS, opts DoctorOpts, stdout, stderr io.Writer) error {
	gitVersion, err := git.Version(ctx, cr)
	if err != nil {
		return err
	}

	s, err := loadSettings(fsys, opts.CommonOpts)
	if err != nil {
		return err
	}

	report := DoctorReport{
		GitVersion:     gitVersion,
		ConfigDir:      s.dirs.ConfigDir,
		UserConfigPath: config.UserConfigPath(s.dirs.ConfigDir),
		ConfigFound:    s.configFound,
		DataDir:        s.dirs.DataDir,
		EventsPath:     paths.EventsPath(s.dirs.DataDir),
		Host:           s.cfg.Host,
		Opener:         s.cfg.Opener,
		ColorMode:      string(s.cfg.Color),
	}
	if path, err := config.ResolveOpener(cr, s.cfg); err == nil {
		report.OpenerPath = path
	} else {
		NewLogger(stderr, opts.Verbose).Warn("opener not found", "opener", s.cfg.Opener)
	}

	writeDoctorOutput(stdout, report)
	return nil
}

func writeDoctorOutput(w io.Writer, r DoctorReport) {
	_, _ = fmt.Fprintf(w, "git_version: %s\n", r.GitVersion)

	_, _ = fmt.Fprintf(w, "config_dir: %s\n", r.ConfigDir)
	_, _ = fmt.Fprintf(w, "user_config_path: %s\n", r.UserConfigPath)
	_, _ = fmt.Fprintf(w, "user_config_found: %s\n", boolStr(r.ConfigFound))
	_, _ = fmt.Fprintf(w, "data_dir: %s\n", r.DataDir)
	_, _ = fmt.Fprintf(w, "events_path: %s\n", r.EventsPath)

	_, _ = fmt.Fprintf(w, "host: %s\n", orNotSet(r.Host))
	_, _ = fmt.Fprintf(w, "opener: %s\n", r.Opener)
	_, _ = fmt.Fprintf(w, "opener_path: %s\n", orNotSet(r.OpenerPath))
	_, _ = fmt.Fprintf(w, "color: %s\n", r.ColorMode)
}

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
