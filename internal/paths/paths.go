// Package paths resolves the directories ytgit reads config from and writes
// its action log to.
package paths

import "path/filepath"

// Env reads environment variables. Implemented by the command layer with
// os.Getenv and by tests with a map.
type Env interface {
	Get(key string) string
}

// Dirs holds the resolved ytgit directories.
type Dirs struct {
	ConfigDir string
	DataDir   string
}

// ResolveDirs resolves the config and data directories.
//
// Precedence for each directory:
//  1. YTGIT_CONFIG_DIR / YTGIT_DATA_DIR
//  2. $XDG_CONFIG_HOME/ytgit / $XDG_DATA_HOME/ytgit
//  3. ~/.config/ytgit / ~/.local/share/ytgit
func ResolveDirs(env Env, homeDir string) Dirs {
	return Dirs{
		ConfigDir: resolve(env, "YTGIT_CONFIG_DIR", "XDG_CONFIG_HOME", filepath.Join(homeDir, ".config")),
		DataDir:   resolve(env, "YTGIT_DATA_DIR", "XDG_DATA_HOME", filepath.Join(homeDir, ".local", "share")),
	}
}

func resolve(env Env, override, xdg, fallbackBase string) string {
	if v := env.Get(override); v != "" {
		return filepath.Clean(v)
	}
	if v := env.Get(xdg); v != "" && filepath.IsAbs(v) {
		return filepath.Join(v, "ytgit")
	}
	return filepath.Join(fallbackBase, "ytgit")
}

// EventsPath returns the action log path inside the data dir.
func EventsPath(dataDir string) string {
	return filepath.Join(dataDir, "events.jsonl")
}
