package cli

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/tessro/printq/internal/config"
	"github.com/tessro/printq/internal/errors"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Commands for viewing and editing printq configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the loaded configuration, including defaults and environment overrides.`,
	RunE:  runConfigShow,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration file",
	Long:  `Open the configuration file in your default editor.`,
	RunE:  runConfigEdit,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long:  `Create a new configuration file with default values.`,
	RunE:  runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value.

Supported keys:
  store.path                 Directory holding the saved queue
  queue.default_gap_minutes  Default gap length (minutes)
  queue.gap_presets          Comma-separated quick gap lengths (minutes)
  queue.wait_presets         Comma-separated quick wait times (HH:MM)
  tui.theme                  auto, dark or light
  tui.refresh_interval       Dashboard refresh in milliseconds
  log.level                  debug, info, warn or error
  log.file                   Log file path

Examples:
  printq config set tui.theme dark
  printq config set queue.wait_presets 07:30,12:00,17:30`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

// configKeyKind says how a settable value is parsed.
type configKeyKind int

const (
	keyString configKeyKind = iota
	keyInt
	keyIntList
	keyStringList
)

var configKeys = map[string]configKeyKind{
	"store.path":                keyString,
	"queue.default_gap_minutes": keyInt,
	"queue.gap_presets":         keyIntList,
	"queue.wait_presets":        keyStringList,
	"tui.theme":                 keyString,
	"tui.refresh_interval":      keyInt,
	"log.level":                 keyString,
	"log.file":                  keyString,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	if JSONOutput() {
		return printJSON(cfg)
	}

	// Pretty print as TOML
	encoder := toml.NewEncoder(os.Stdout)
	encoder.Indent = "  "
	return encoder.Encode(cfg)
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("%w at %s", errors.ErrConfigNotFound, configPath)
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		for _, e := range []string{"nano", "vim", "vi", "notepad"} {
			if _, err := exec.LookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found. Set EDITOR environment variable")
	}

	editorCmd := exec.Command(editor, configPath)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	return editorCmd.Run()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists at %s", configPath)
	}

	if err := writeConfigFile(configPath, config.Default()); err != nil {
		return err
	}

	if JSONOutput() {
		return printJSON(map[string]string{
			"status": "created",
			"path":   configPath,
		})
	}
	fmt.Printf("Created config file: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Adjust gap and wait presets under [queue]")
	fmt.Println("  2. Run 'printq add <name> <duration>' to queue your first print")
	return nil
}

func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultPath()
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	kind, ok := configKeys[key]
	if !ok {
		return errors.WithSuggestion(
			fmt.Errorf("%w: unknown key %q", errors.ErrInvalidConfig, key),
			"Run 'printq config set --help' for supported keys")
	}

	configPath := getConfigPath()
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("%w at %s", errors.ErrConfigNotFound, configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	rawConfig := map[string]any{}
	if _, err := toml.Decode(string(data), &rawConfig); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	section, field, _ := strings.Cut(key, ".")
	sectionMap, ok := rawConfig[section].(map[string]any)
	if !ok {
		sectionMap = make(map[string]any)
		rawConfig[section] = sectionMap
	}

	typed, err := parseConfigValue(kind, value)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", errors.ErrInvalidConfig, key, err)
	}
	sectionMap[field] = typed

	// Round-trip through the typed config so bad values never hit disk.
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(rawConfig); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	updated := &config.Config{}
	if _, err := toml.Decode(buf.String(), updated); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidConfig, err)
	}
	updated.ApplyDefaults()
	if err := updated.Validate(); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err)
	}

	if err := writeConfigFile(configPath, rawConfig); err != nil {
		return err
	}

	if JSONOutput() {
		return printJSON(map[string]string{
			"status": "updated",
			"key":    key,
			"value":  value,
		})
	}
	fmt.Printf("Set %s = %s\n", key, value)
	return nil
}

func parseConfigValue(kind configKeyKind, value string) (any, error) {
	switch kind {
	case keyInt:
		return strconv.Atoi(strings.TrimSpace(value))
	case keyIntList:
		var out []int
		for _, part := range splitList(value) {
			i, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("%q is not a number", part)
			}
			out = append(out, i)
		}
		return out, nil
	case keyStringList:
		return splitList(value), nil
	default:
		return value, nil
	}
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func writeConfigFile(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	defer func() { _ = f.Close() }()

	_, _ = fmt.Fprintln(f, "# Printq Configuration")
	_, _ = fmt.Fprintln(f, "# https://github.com/tessro/printq")
	_, _ = fmt.Fprintln(f, "")

	encoder := toml.NewEncoder(f)
	encoder.Indent = "  "
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
