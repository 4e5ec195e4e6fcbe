// Package commands implements ytgit CLI commands.
package commands

import (
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/NielsdaWheelz/ytgit/internal/action"
	"github.com/NielsdaWheelz/ytgit/internal/config"
	"github.com/NielsdaWheelz/ytgit/internal/errors"
	"github.com/NielsdaWheelz/ytgit/internal/events"
	"github.com/NielsdaWheelz/ytgit/internal/fs"
	"github.com/NielsdaWheelz/ytgit/internal/markdown"
	"github.com/NielsdaWheelz/ytgit/internal/paths"
	"github.com/NielsdaWheelz/ytgit/internal/tracker"
	"github.com/NielsdaWheelz/ytgit/internal/tty"
)

// CommonOpts holds the global flags every command honors.
type CommonOpts struct {
	Verbose bool

	// Host overrides the configured tracker host.
	Host string

	// Color overrides the configured color mode ("auto", "always", "never").
	Color string
}

// osEnv implements paths.Env using os.Getenv.
type osEnv struct{}

func (osEnv) Get(key string) string {
	return os.Getenv(key)
}

// settings is the resolved environment of a command invocation.
type settings struct {
	dirs        paths.Dirs
	cfg         config.UserConfig
	configFound bool
}

// loadSettings resolves directories, loads the user config and applies flag
// overrides.
func loadSettings(fsys fs.FS, opts CommonOpts) (settings, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return settings{}, errors.Wrap(errors.EInternal, "failed to get home directory", err)
	}
	dirs := paths.ResolveDirs(osEnv{}, homeDir)

	cfg, found, err := config.LoadUserConfig(fsys, dirs.ConfigDir)
	if err != nil {
		return settings{}, err
	}

	if opts.Host != "" {
		if !tracker.ValidateHost(opts.Host) {
			return settings{}, errors.NewWithDetails(errors.EUsage, "--host must be an absolute http(s) URL", map[string]string{"command": "--host " + opts.Host})
		}
		cfg.Host = tracker.NormalizeHost(opts.Host)
	}
	if opts.Color != "" {
		mode := config.ColorMode(opts.Color)
		switch mode {
		case config.ColorAuto, config.ColorAlways, config.ColorNever:
			cfg.Color = mode
		default:
			return settings{}, errors.New(errors.EUsage, `--color must be one of "auto", "always", "never"`)
		}
	}

	return settings{dirs: dirs, cfg: cfg, configFound: found}, nil
}

// NewLogger returns the diagnostic logger on w. Terminals get text output,
// pipes get JSON. Level is Debug when verbose, Warn otherwise.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	options := &slog.HandlerOptions{Level: level}
	if tty.IsTTY(w) {
		return slog.New(slog.NewTextHandler(w, options))
	}
	return slog.New(slog.NewJSONHandler(w, options))
}

func (s settings) color(w io.Writer) bool {
	return tty.ColorEnabled(s.cfg.Color, w, os.Getenv)
}

// newDispatcher wires a dispatcher that logs to the action log and notifies
// on stderr. Errors are left to the caller when cliErrors is set, since main
// prints the returned error.
func (s settings) newDispatcher(fsys fs.FS, opts CommonOpts, stderr io.Writer, cliErrors bool) *action.Dispatcher {
	var notifier action.Notifier = action.NewStyledNotifier(stderr, s.color(stderr), opts.Verbose, markdown.DefaultTheme)
	if cliErrors {
		notifier = infoOnly{notifier}
	}
	return action.NewDispatcher(action.DispatcherOpts{
		Notifier: notifier,
		Log:      events.Log{FS: fsys, Path: paths.EventsPath(s.dirs.DataDir)},
		Logger:   NewLogger(stderr, opts.Verbose),
	})
}

type infoOnly struct {
	action.Notifier
}

func (infoOnly) Error(error) {}

// terminalWidth returns $COLUMNS when set to a positive integer, then the
// width of w when it is a terminal, else 80.
func terminalWidth(w io.Writer) int {
	if n, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && n > 0 {
		return n
	}
	if n := tty.Width(w); n > 0 {
		return n
	}
	return 80
}
