package config

import (
	"unicode"

	"github.com/NielsdaWheelz/ytgit/internal/errors"
	"github.com/NielsdaWheelz/ytgit/internal/tracker"
)

// ValidateUserConfig validates the user config and returns E_INVALID_USER_CONFIG on failure.
func ValidateUserConfig(cfg UserConfig) (UserConfig, error) {
	if cfg.Version != 1 {
		return cfg, errors.New(errors.EInvalidUserConfig, "version must be 1")
	}
	if cfg.Host != "" && !tracker.ValidateHost(cfg.Host) {
		return cfg, errors.NewWithDetails(errors.EInvalidUserConfig, "host must be an absolute http(s) URL", map[string]string{
			"hint": `e.g. "host": "https://youtrack.example.com"`,
		})
	}
	if cfg.Opener == "" {
		return cfg, errors.New(errors.EInvalidUserConfig, "opener must be a non-empty string")
	}
	if containsWhitespace(cfg.Opener) {
		return cfg, errors.New(errors.EInvalidUserConfig, "opener must be a single executable (no args); use a wrapper script")
	}
	switch cfg.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return cfg, errors.New(errors.EInvalidUserConfig, `color must be one of "auto", "always", "never"`)
	}
	return cfg, nil
}

// containsWhitespace returns true if s contains any whitespace character.
func containsWhitespace(s string) bool {
	for _, r := range s {
		if unicode.IsSpace(r) {
			return true
		}
	}
	return false
}

// FirstValidationError extracts a stable, human-readable error message from an error.
// For coded errors it returns the message portion only.
func FirstValidationError(err error) string {
	if err == nil {
		return ""
	}
	if e, ok := errors.AsError(err); ok {
		return e.Msg
	}
	return err.Error()
}
