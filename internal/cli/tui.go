package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/tessro/printq/internal/tui"
)

var tuiRefresh int

var tuiCmd = &cobra.Command{
	Use:     "ui",
	Aliases: []string{"tui"},
	Short:   "Launch interactive dashboard",
	Long: `Launch the interactive terminal dashboard.

The dashboard shows the running print with a live countdown and the queue
with projected start and finish times. Changes made by other printq
commands appear automatically.

Keyboard shortcuts:
  j/k, ↑/↓     Select item
  J/K          Move item down/up
  m            Start selected print now
  g            Add default gap below
  w            Add wait below
  d            Duplicate
  x            Remove
  c            Clear current print
  ?            Help
  q, Ctrl+C    Quit`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().IntVar(&tuiRefresh, "refresh", 0, "Refresh interval in milliseconds (default tui.refresh_interval)")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}

	refresh := cfg.TUI.RefreshInterval
	if tuiRefresh > 0 {
		refresh = tuiRefresh
	}

	return tui.Run(tui.Options{
		Store:   st,
		Logger:  logger,
		Refresh: time.Duration(refresh) * time.Millisecond,
		Theme:   cfg.TUI.Theme,
		Presets: cfg.Queue.WaitPresets,
		Gap:     cfg.Queue.DefaultGapMinutes,
	})
}
