// Package logging builds the zap logger shared by the CLI and TUI.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tessro/printq/internal/config"
)

// Field keys shared across packages.
const (
	FieldItemID   = "item_id"
	FieldItemKind = "item_kind"
	FieldStore    = "store"
	FieldOp       = "op"
)

// Options describes logger construction parameters.
type Options struct {
	Level string
	// File receives JSON log lines. Empty means no file output.
	File string
	// Verbose adds a console core on stderr at debug level.
	Verbose bool
}

// New constructs a zap logger. With neither a file nor Verbose the logger
// discards everything so command output stays clean.
func New(opts Options) (*zap.Logger, error) {
	level := parseLevel(opts.Level)
	var cores []zapcore.Core

	if opts.File != "" {
		path, err := homedir.Expand(opts.File)
		if err != nil {
			return nil, fmt.Errorf("expand log file: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("ensure log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(f), level))
	}

	if opts.Verbose {
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc := zapcore.NewConsoleEncoder(encCfg)
		cores = append(cores, zapcore.NewCore(enc, zapcore.Lock(os.Stderr), zapcore.DebugLevel))
	}

	if len(cores) == 0 {
		return zap.NewNop(), nil
	}

	logger := zap.New(zapcore.NewTee(cores...))
	if level <= zapcore.DebugLevel || opts.Verbose {
		logger = logger.WithOptions(zap.AddCaller())
	}
	return logger, nil
}

// NewFromConfig creates a logger from the [log] section.
func NewFromConfig(cfg *config.Config, verbose bool) (*zap.Logger, error) {
	if cfg == nil {
		return New(Options{Level: "info", Verbose: verbose})
	}
	return New(Options{Level: cfg.Log.Level, File: cfg.Log.File, Verbose: verbose})
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
