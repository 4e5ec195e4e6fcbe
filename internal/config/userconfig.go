// Package config handles loading and validation of the ytgit user config.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"

	"github.com/tidwall/jsonc"

	"github.com/NielsdaWheelz/ytgit/internal/errors"
	"github.com/NielsdaWheelz/ytgit/internal/fs"
	"github.com/NielsdaWheelz/ytgit/internal/tracker"
)

// ColorMode controls ANSI styling of terminal output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// UserConfig represents the parsed and validated user configuration.
type UserConfig struct {
	Version int `json:"version"`

	// Host is the tracker base URL, e.g. "https://yt.example.com".
	// Empty means no host: attachment links and issue URLs are unavailable.
	Host string `json:"host,omitempty"`

	// Opener is the executable used to open issue URLs.
	Opener string `json:"opener"`

	Color ColorMode `json:"color"`
}

// DefaultOpener returns the platform URL opener.
func DefaultOpener() string {
	if runtime.GOOS == "darwin" {
		return "open"
	}
	return "xdg-open"
}

// DefaultUserConfig returns built-in defaults used when config.json is missing.
func DefaultUserConfig() UserConfig {
	return UserConfig{
		Version: 1,
		Opener:  DefaultOpener(),
		Color:   ColorAuto,
	}
}

// UserConfigPath returns the full path to the user config file.
func UserConfigPath(configDir string) string {
	return filepath.Join(configDir, "config.json")
}

// LoadUserConfig loads and validates the user config.
// Comments and trailing commas are accepted.
// If the file is missing, returns defaults with found=false.
// If the file exists but is invalid, returns E_INVALID_USER_CONFIG.
func LoadUserConfig(filesystem fs.FS, configDir string) (UserConfig, bool, error) {
	path := UserConfigPath(configDir)

	data, err := filesystem.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultUserConfig(), false, nil
		}
		return UserConfig{}, false, errors.WrapWithDetails(errors.EInvalidUserConfig, "failed to read user config", err, map[string]string{"path": path})
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
		return UserConfig{}, false, errors.NewWithDetails(errors.EInvalidUserConfig, "invalid json: "+err.Error(), map[string]string{"path": path})
	}

	cfg, err := parseUserConfigStrict(raw)
	if err != nil {
		return UserConfig{}, false, err
	}

	cfg, err = ValidateUserConfig(cfg)
	if err != nil {
		return UserConfig{}, false, err
	}

	return cfg, true, nil
}

// parseUserConfigStrict rejects unknown keys and wrongly typed values.
// Absent keys keep their defaults, except version which must be present.
func parseUserConfigStrict(raw map[string]json.RawMessage) (UserConfig, error) {
	cfg := DefaultUserConfig()
	cfg.Version = 0

	allowedKeys := map[string]bool{
		"version": true,
		"host":    true,
		"opener":  true,
		"color":   true,
	}
	for key := range raw {
		if !allowedKeys[key] {
			return UserConfig{}, errors.New(errors.EInvalidUserConfig, "unknown field: "+key)
		}
	}

	if rawVersion, ok := raw["version"]; ok {
		var version int
		if err := json.Unmarshal(rawVersion, &version); err != nil {
			var floatVal float64
			if json.Unmarshal(rawVersion, &floatVal) != nil || floatVal != float64(int(floatVal)) {
				return UserConfig{}, errors.New(errors.EInvalidUserConfig, "version must be an integer")
			}
			version = int(floatVal)
		}
		cfg.Version = version
	}

	stringFields := []struct {
		key string
		dst *string
	}{
		{"host", &cfg.Host},
		{"opener", &cfg.Opener},
	}
	for _, f := range stringFields {
		rawVal, ok := raw[f.key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(rawVal, f.dst); err != nil {
			return UserConfig{}, errors.New(errors.EInvalidUserConfig, f.key+" must be a string")
		}
	}

	if rawColor, ok := raw["color"]; ok {
		var color string
		if err := json.Unmarshal(rawColor, &color); err != nil {
			return UserConfig{}, errors.New(errors.EInvalidUserConfig, "color must be a string")
		}
		cfg.Color = ColorMode(color)
	}

	cfg.Host = tracker.NormalizeHost(cfg.Host)
	return cfg, nil
}
