// Package config provides configuration management for projdeck.
package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ThemeMode represents the theme selection mode.
type ThemeMode string

const (
	ThemeModeAuto  ThemeMode = "auto"
	ThemeModeLight ThemeMode = "light"
	ThemeModeDark  ThemeMode = "dark"
)

// StorageBackend selects where the project list is persisted.
type StorageBackend string

const (
	// BackendState stores projects in the application state file.
	BackendState StorageBackend = "state"
	// BackendSettings stores projects in the user settings file.
	BackendSettings StorageBackend = "settings"
)

// OpenModeName is the configured default window behavior for opens.
type OpenModeName string

const (
	OpenModeReuse     OpenModeName = "reuse"
	OpenModeNewWindow OpenModeName = "new-window"
)

// UIConfig contains UI-related settings.
type UIConfig struct {
	Theme     ThemeMode `toml:"theme"`
	ShowPaths bool      `toml:"show_paths"`
}

// OpenConfig contains editor open behavior settings.
type OpenConfig struct {
	DefaultMode   OpenModeName `toml:"default_mode"`
	WorkspaceRoot string       `toml:"workspace_root"`
}

// StorageConfig contains persistence settings.
type StorageConfig struct {
	Backend StorageBackend `toml:"backend"`
}

// ConfirmConfig contains confirmation prompt settings.
type ConfirmConfig struct {
	Remove bool `toml:"remove"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Enabled bool `toml:"enabled"`
}

// Config represents the application configuration.
type Config struct {
	UI           UIConfig      `toml:"ui"`
	Open         OpenConfig    `toml:"open"`
	Storage      StorageConfig `toml:"storage"`
	Confirmation ConfirmConfig `toml:"confirmation"`
	Log          LogConfig     `toml:"log"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			Theme:     ThemeModeAuto,
			ShowPaths: true,
		},
		Open: OpenConfig{
			DefaultMode: OpenModeReuse,
		},
		Storage: StorageConfig{
			Backend: BackendState,
		},
		Confirmation: ConfirmConfig{
			Remove: true,
		},
		Log: LogConfig{
			Enabled: false,
		},
	}
}

// configPathFunc is the function used to determine the config file path.
// It can be overridden in tests to control the config location.
var configPathFunc = defaultConfigPath

// Load loads the configuration from the standard config file location.
// Returns the default config if no config file exists.
func Load() (*Config, error) {
	path := configPathFunc()
	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Dir returns the projdeck configuration directory.
func Dir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, "projdeck")
}

// defaultConfigPath returns the standard config file path for the current platform.
func defaultConfigPath() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.toml")
}
