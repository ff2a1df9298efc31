package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFromAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[queue]
default_gap_minutes = 20
wait_presets = ["07:30"]

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Queue.DefaultGapMinutes != 20 {
		t.Errorf("DefaultGapMinutes = %d, want 20", cfg.Queue.DefaultGapMinutes)
	}
	if len(cfg.Queue.WaitPresets) != 1 || cfg.Queue.WaitPresets[0] != "07:30" {
		t.Errorf("WaitPresets = %v", cfg.Queue.WaitPresets)
	}
	if len(cfg.Queue.GapPresets) != 4 {
		t.Errorf("GapPresets = %v, want defaults", cfg.Queue.GapPresets)
	}
	if cfg.TUI.RefreshInterval != 1000 {
		t.Errorf("RefreshInterval = %d, want 1000", cfg.TUI.RefreshInterval)
	}
	if cfg.Store.Path == "" {
		t.Error("Store.Path not defaulted")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PRINTQ_STORE_PATH", "/tmp/printq-test")
	t.Setenv("PRINTQ_DEFAULT_GAP", "45")
	t.Setenv("PRINTQ_TUI_THEME", "light")
	t.Setenv("PRINTQ_LOG_LEVEL", "warn")

	cfg := Default()
	applyEnvOverrides(cfg)

	if cfg.Store.Path != "/tmp/printq-test" {
		t.Errorf("Store.Path = %q", cfg.Store.Path)
	}
	if cfg.Queue.DefaultGapMinutes != 45 {
		t.Errorf("DefaultGapMinutes = %d", cfg.Queue.DefaultGapMinutes)
	}
	if cfg.TUI.Theme != "light" {
		t.Errorf("Theme = %q", cfg.TUI.Theme)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Level = %q", cfg.Log.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"bad theme", func(c *Config) { c.TUI.Theme = "neon" }, "invalid theme"},
		{"bad level", func(c *Config) { c.Log.Level = "trace" }, "invalid log level"},
		{"bad wait preset", func(c *Config) { c.Queue.WaitPresets = []string{"25:00"} }, "wait preset"},
		{"bad gap preset", func(c *Config) { c.Queue.GapPresets = []int{0} }, "gap preset"},
		{"negative gap", func(c *Config) { c.Queue.DefaultGapMinutes = -1 }, "default_gap_minutes"},
		{"huge gap", func(c *Config) { c.Queue.DefaultGapMinutes = 200_000_000 }, "default_gap_minutes"},
		{"huge gap preset", func(c *Config) { c.Queue.GapPresets = []int{200_000_000} }, "gap preset"},
		{"empty store", func(c *Config) { c.Store.Path = "" }, "store: path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}
