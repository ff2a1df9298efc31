package config

import (
	"errors"
	"fmt"

	"github.com/tessro/printq/internal/timeutil"
)

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Store.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("store: %w", err))
	}
	if err := c.Queue.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("queue: %w", err))
	}
	if err := c.TUI.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("tui: %w", err))
	}
	if err := c.Log.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}

	return errors.Join(errs...)
}

// Validate checks StoreConfig for errors.
func (c *StoreConfig) Validate() error {
	if c.Path == "" {
		return errors.New("path must not be empty")
	}
	return nil
}

// Validate checks QueueConfig for errors.
func (c *QueueConfig) Validate() error {
	var errs []error
	if c.DefaultGapMinutes < 0 {
		errs = append(errs, errors.New("default_gap_minutes must be non-negative"))
	}
	if c.DefaultGapMinutes > timeutil.MaxMinutes {
		errs = append(errs, fmt.Errorf("default_gap_minutes must be at most %d", timeutil.MaxMinutes))
	}
	for _, m := range c.GapPresets {
		if m <= 0 || m > timeutil.MaxMinutes {
			errs = append(errs, fmt.Errorf("gap preset %d must be between 1 and %d", m, timeutil.MaxMinutes))
		}
	}
	for _, w := range c.WaitPresets {
		if _, err := timeutil.ParseClock(w); err != nil {
			errs = append(errs, fmt.Errorf("wait preset: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Validate checks TUIConfig for errors.
func (c *TUIConfig) Validate() error {
	switch c.Theme {
	case "", "auto", "dark", "light":
		// valid
	default:
		return fmt.Errorf("invalid theme: %s (must be auto, dark, or light)", c.Theme)
	}
	if c.RefreshInterval < 0 {
		return errors.New("refresh_interval must be non-negative")
	}
	return nil
}

// Validate checks LogConfig for errors.
func (c *LogConfig) Validate() error {
	switch c.Level {
	case "", "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Level)
	}
	return nil
}
