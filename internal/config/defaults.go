package config

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Path: "~/.config/printq/state",
		},
		Queue: QueueConfig{
			DefaultGapMinutes: 15,
			GapPresets:        []int{15, 30, 60, 120},
			WaitPresets:       []string{"08:00", "09:00", "12:00", "18:00"},
		},
		TUI: TUIConfig{
			Theme:           "auto",
			RefreshInterval: 1000,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	// Store
	if c.Store.Path == "" {
		c.Store.Path = d.Store.Path
	}

	// Queue
	if c.Queue.DefaultGapMinutes == 0 {
		c.Queue.DefaultGapMinutes = d.Queue.DefaultGapMinutes
	}
	if len(c.Queue.GapPresets) == 0 {
		c.Queue.GapPresets = d.Queue.GapPresets
	}
	if len(c.Queue.WaitPresets) == 0 {
		c.Queue.WaitPresets = d.Queue.WaitPresets
	}

	// TUI
	if c.TUI.Theme == "" {
		c.TUI.Theme = d.TUI.Theme
	}
	if c.TUI.RefreshInterval == 0 {
		c.TUI.RefreshInterval = d.TUI.RefreshInterval
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}
