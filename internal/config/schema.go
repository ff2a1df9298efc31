package config

// Config is the root configuration structure.
type Config struct {
	Store StoreConfig `toml:"store"`
	Queue QueueConfig `toml:"queue"`
	TUI   TUIConfig   `toml:"tui"`
	Log   LogConfig   `toml:"log"`
}

// StoreConfig holds where the scheduler state is kept.
type StoreConfig struct {
	Path string `toml:"path"`
}

// QueueConfig holds queue defaults and quick-add presets.
type QueueConfig struct {
	DefaultGapMinutes int      `toml:"default_gap_minutes"`
	GapPresets        []int    `toml:"gap_presets"`
	WaitPresets       []string `toml:"wait_presets"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme           string `toml:"theme"`
	RefreshInterval int    `toml:"refresh_interval"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}
