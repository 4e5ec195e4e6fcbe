package config

import (
	"github.com/NielsdaWheelz/ytgit/internal/errors"
	"github.com/NielsdaWheelz/ytgit/internal/exec"
)

// ResolveOpener resolves the configured opener to an absolute path.
// Returns E_OPENER_NOT_CONFIGURED when the executable cannot be found.
func ResolveOpener(cr exec.CommandRunner, cfg UserConfig) (string, error) {
	opener := cfg.Opener
	if opener == "" {
		opener = DefaultOpener()
	}
	path, err := cr.LookPath(opener)
	if err != nil {
		return "", errors.WrapWithDetails(
			errors.EOpenerNotConfigured,
			"opener \""+opener+"\" not found on PATH",
			err,
			map[string]string{"hint": `set "opener" in config.json or use --print`},
		)
	}
	return path, nil
}

// RequireHost returns the configured host or E_HOST_NOT_CONFIGURED.
func RequireHost(cfg UserConfig) (string, error) {
	if cfg.Host == "" {
		return "", errors.New(errors.EHostNotConfigured, "tracker host is not configured")
	}
	return cfg.Host, nil
}
