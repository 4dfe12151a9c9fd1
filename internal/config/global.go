// Package config provides configuration loading and validation for evq.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/tessro/evq/internal/paths"
)

// GlobalConfig represents the global evq configuration.
type GlobalConfig struct {
	Log    LogConfig    `toml:"log"`
	Output OutputConfig `toml:"output"`
	Replay ReplayConfig `toml:"replay"`
}

// LogConfig controls the slog setup.
type LogConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string `toml:"level"`
	// File is the log file path. Empty means paths.LogPath().
	File string `toml:"file"`
}

// OutputConfig controls trace rendering.
type OutputConfig struct {
	// Color enables styled output. Nil means enabled.
	Color *bool `toml:"color"`
	// Width wraps trace lines. Zero means DefaultWidth.
	Width int `toml:"width"`
}

// ReplayConfig controls scenario execution.
type ReplayConfig struct {
	// ContinueOnError records failed dispatches and keeps going.
	ContinueOnError bool `toml:"continue_on_error"`
}

// Defaults.
const (
	DefaultLogLevel = "info"
	DefaultWidth    = 100
)

// LoadGlobalConfig loads the global evq configuration.
// Returns nil config and nil error if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	path, err := paths.ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadGlobalConfigFromPath(path)
}

// LoadGlobalConfigFromPath loads the global config from a specific path.
// Returns nil config and nil error if the file doesn't exist.
func LoadGlobalConfigFromPath(path string) (*GlobalConfig, error) {
	var cfg GlobalConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// GetLogLevel returns the configured log level or the default.
func (c *GlobalConfig) GetLogLevel() string {
	if c != nil && c.Log.Level != "" {
		return c.Log.Level
	}
	return DefaultLogLevel
}

// GetLogFile returns the configured log file or the default path.
func (c *GlobalConfig) GetLogFile() string {
	if c != nil && c.Log.File != "" {
		return c.Log.File
	}
	return paths.LogPath()
}

// ColorEnabled reports whether trace output should be styled.
func (c *GlobalConfig) ColorEnabled() bool {
	if c != nil && c.Output.Color != nil {
		return *c.Output.Color
	}
	return true
}

// GetWidth returns the configured wrap width or the default.
func (c *GlobalConfig) GetWidth() int {
	if c != nil && c.Output.Width > 0 {
		return c.Output.Width
	}
	return DefaultWidth
}

// ContinueOnError reports whether replay should keep going after a failure.
func (c *GlobalConfig) ContinueOnError() bool {
	return c != nil && c.Replay.ContinueOnError
}

// Validate checks the config values.
func (c *GlobalConfig) Validate() error {
	if c.Log.Level != "" {
		if err := ValidateLogLevel(c.Log.Level); err != nil {
			return err
		}
	}
	if c.Output.Width != 0 {
		if err := ValidateWidth(c.Output.Width); err != nil {
			return err
		}
	}
	return nil
}
