// Package paths provides a single source of truth for evq file paths.
// All path helpers honor the EVQ_DIR override for isolated testing.
//
// Path resolution precedence:
//  1. EVQ_DIR env var sets the base directory (derives config/log/scenarios)
//  2. Default behavior (~/.evq, ~/.config/evq) when no env var is set
package paths

import (
	"os"
	"path/filepath"
)

// EnvEvqDir is the base directory override (e.g., /tmp/evq-test).
const EnvEvqDir = "EVQ_DIR"

// Scenario file extensions, in lookup order.
var ScenarioExts = []string{".toml", ".yaml", ".yml"}

// BaseDir returns the evq base directory (~/.evq by default).
// Honors EVQ_DIR environment variable.
func BaseDir() (string, error) {
	if dir := os.Getenv(EnvEvqDir); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".evq"), nil
}

// ConfigDir returns the evq config directory (~/.config/evq by default).
// When EVQ_DIR is set, returns EVQ_DIR/config instead.
func ConfigDir() (string, error) {
	if dir := os.Getenv(EnvEvqDir); dir != "" {
		return filepath.Join(dir, "config"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "evq"), nil
}

// ConfigPath returns the path to the global evq config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LogPath returns the default log file path (~/.evq/evq.log).
func LogPath() string {
	base, err := BaseDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "evq.log")
	}
	return filepath.Join(base, "evq.log")
}

// ScenariosDir returns the directory searched for named scenarios
// (~/.evq/scenarios by default).
func ScenariosDir() (string, error) {
	base, err := BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "scenarios"), nil
}

// ResolveScenario maps a scenario argument to a file. Existing paths are
// returned as is; otherwise name is looked up in ScenariosDir with each of
// ScenarioExts. Returns an os.ErrNotExist error when nothing matches.
func ResolveScenario(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}
	dir, err := ScenariosDir()
	if err != nil {
		return "", err
	}
	for _, ext := range ScenarioExts {
		candidate := filepath.Join(dir, name+ext)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", &os.PathError{Op: "resolve", Path: name, Err: os.ErrNotExist}
}
