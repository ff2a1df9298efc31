package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/go-homedir"
)

// Load reads configuration from standard locations with environment overrides.
// Search order: ~/.printqrc, $XDG_CONFIG_HOME/printq/config.toml, ~/.config/printq/config.toml
func Load() (*Config, error) {
	cfg := &Config{}

	path := findConfigFile()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadFrom reads configuration from a specific file path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// DefaultPath returns the path `config init` writes to.
func DefaultPath() string {
	home, err := homedir.Dir()
	if err != nil {
		return ".printqrc"
	}
	return filepath.Join(home, ".printqrc")
}

// findConfigFile returns the first existing config file path.
func findConfigFile() string {
	home, err := homedir.Dir()
	if err != nil {
		return ""
	}

	paths := []string{
		filepath.Join(home, ".printqrc"),
	}

	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	paths = append(paths, filepath.Join(xdgConfig, "printq", "config.toml"))

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	// Store
	if v := os.Getenv("PRINTQ_STORE_PATH"); v != "" {
		cfg.Store.Path = v
	}

	// Queue
	if v := os.Getenv("PRINTQ_DEFAULT_GAP"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Queue.DefaultGapMinutes = i
		}
	}

	// TUI
	if v := os.Getenv("PRINTQ_TUI_THEME"); v != "" {
		cfg.TUI.Theme = v
	}
	if v := os.Getenv("PRINTQ_TUI_REFRESH_INTERVAL"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.TUI.RefreshInterval = i
		}
	}

	// Log
	if v := os.Getenv("PRINTQ_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("PRINTQ_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}
