package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/tessro/printq/internal/core"
	"github.com/tessro/printq/internal/countdown"
	"github.com/tessro/printq/internal/errors"
	"github.com/tessro/printq/internal/session"
	"github.com/tessro/printq/internal/timeutil"
	"github.com/tessro/printq/internal/wizard"
)

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show or manage the running print",
	RunE:  runCurrentShow,
}

var currentShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the running print",
	RunE:  runCurrentShow,
}

var currentSetCmd = &cobra.Command{
	Use:   "set [name] [duration]",
	Short: "Start a print that runs for a duration",
	Long: `Start a print now, replacing any running print.

Examples:
  printq current set "Benchy" 45m
  printq current set "Helmet" 6h20m`,
	Args: cobra.RangeArgs(0, 2),
	RunE: runCurrentSet,
}

var currentUntilCmd = &cobra.Command{
	Use:   "until <name> <timestamp>",
	Short: "Start a print that finishes at a time",
	Long: `Start a print that finishes at the given local time. Accepts
YYYY-MM-DDTHH:MM, "YYYY-MM-DD HH:MM", RFC 3339, or HH:MM for the next
occurrence of that clock time.`,
	Args: cobra.ExactArgs(2),
	RunE: runCurrentUntil,
}

var currentExtendCmd = &cobra.Command{
	Use:   "extend <duration>",
	Short: "Push the running print's finish time back",
	Args:  cobra.ExactArgs(1),
	RunE:  runCurrentExtend,
}

var currentEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Change the running print's finish time",
	Long: `Change when the running print finishes, either as time remaining from
now or as a completion timestamp.

Examples:
  printq current edit --remaining 1h10m
  printq current edit --at 2024-06-01T14:30`,
	Args: cobra.NoArgs,
	RunE: runCurrentEdit,
}

var currentClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Stop tracking the running print",
	RunE:  runCurrentClear,
}

var currentWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow the running print's countdown",
	Long: `Print a line whenever the remaining time changes, the print finishes,
or another printq command changes the running print. Exits when the print is
cleared.

Template fields: {{.Type}} {{.Emoji}} {{.Time}} {{.Name}} {{.Remaining}}
{{.Finish}} {{.Progress}}`,
	RunE: runCurrentWatch,
}

var (
	editRemaining string
	editAt        string

	watchInterval   time.Duration
	watchTemplate   string
	watchTimestamps bool
	watchNoEmoji    bool
)

func init() {
	currentEditCmd.Flags().StringVarP(&editRemaining, "remaining", "r", "", "Time left from now (e.g. 1h10m)")
	currentEditCmd.Flags().StringVarP(&editAt, "at", "a", "", "Completion timestamp")
	currentEditCmd.MarkFlagsMutuallyExclusive("remaining", "at")
	currentEditCmd.MarkFlagsOneRequired("remaining", "at")

	currentWatchCmd.Flags().DurationVarP(&watchInterval, "interval", "i", 0, "Poll interval (default tui.refresh_interval)")
	currentWatchCmd.Flags().StringVarP(&watchTemplate, "format", "f", "", "Go template for each line")
	currentWatchCmd.Flags().BoolVarP(&watchTimestamps, "timestamps", "t", false, "Prefix lines with the time")
	currentWatchCmd.Flags().BoolVar(&watchNoEmoji, "no-emoji", false, "Omit emoji")

	currentCmd.AddCommand(currentShowCmd)
	currentCmd.AddCommand(currentSetCmd)
	currentCmd.AddCommand(currentUntilCmd)
	currentCmd.AddCommand(currentExtendCmd)
	currentCmd.AddCommand(currentEditCmd)
	currentCmd.AddCommand(currentClearCmd)
	currentCmd.AddCommand(currentWatchCmd)
	rootCmd.AddCommand(currentCmd)
}

func runCurrentShow(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	return reportCurrent(s, s.Current())
}

func runCurrentSet(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}

	var name string
	var minutes int
	switch {
	case len(args) == 0 && wizard.IsTerminal() && !JSONOutput():
		res, err := wizard.RunPrintForm("Start a print now")
		if err != nil {
			return err
		}
		if res == nil {
			return nil
		}
		name, minutes = res.Name, res.Minutes
	case len(args) == 2:
		name = args[0]
		if minutes, err = parseDuration(args[1]); err != nil {
			return err
		}
	default:
		return errors.Invalid("current set needs a name and a duration")
	}

	current, err := s.SetCurrent(name, minutes)
	if err != nil {
		return err
	}
	return reportCurrent(s, current)
}

func runCurrentUntil(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}

	end, err := timeutil.ParseTimestamp(args[1], s.Now())
	if err != nil {
		return errors.Invalid("%v", err)
	}
	current, err := s.SetCurrentUntil(args[0], end)
	if err != nil {
		return err
	}
	return reportCurrent(s, current)
}

func runCurrentExtend(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	minutes, err := parseDuration(args[0])
	if err != nil {
		return err
	}
	current, err := s.ExtendCurrent(minutes)
	if err != nil {
		return err
	}
	return reportCurrent(s, current)
}

func runCurrentEdit(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}

	var current *core.CurrentTask
	if editRemaining != "" {
		minutes, err := parseDuration(editRemaining)
		if err != nil {
			return err
		}
		current, err = s.SetRemaining(minutes)
		if err != nil {
			return err
		}
	} else {
		end, err := timeutil.ParseTimestamp(editAt, s.Now())
		if err != nil {
			return errors.Invalid("%v", err)
		}
		current, err = s.UpdateEndTime(end)
		if err != nil {
			return err
		}
	}
	return reportCurrent(s, current)
}

func runCurrentClear(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	s.ClearCurrent()

	if JSONOutput() {
		return printJSON(map[string]any{"status": "cleared"})
	}
	fmt.Println("Cleared current print")
	return nil
}

func runCurrentWatch(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}

	interval := watchInterval
	if interval <= 0 {
		interval = time.Duration(cfg.TUI.RefreshInterval) * time.Millisecond
	}

	// Re-read each poll so changes made by other printq commands show up.
	source := func() *core.CurrentTask {
		_ = s.Reload()
		return s.Current()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ticker := countdown.NewTicker(source, interval)
	formatter := countdown.NewFormatter(
		countdown.WithEmoji(!watchNoEmoji),
		countdown.WithTimestamp(watchTimestamps),
		countdown.WithTemplate(watchTemplate),
	)

	errCh := make(chan error, 1)
	go func() { errCh <- ticker.Start(ctx) }()

	for e := range ticker.Events() {
		if JSONOutput() {
			if err := printJSON(map[string]any{
				"type":      e.Type.String(),
				"time":      e.Timestamp.Format(time.RFC3339),
				"remaining": e.Remaining,
				"current":   currentJSON(e.Current, e.Timestamp),
			}); err != nil {
				ticker.Stop()
			}
			continue
		}
		fmt.Println(formatter.Format(e))
	}

	if err := <-errCh; err != nil && err != context.Canceled {
		return err
	}
	return nil
}

func reportCurrent(s *session.Session, current *core.CurrentTask) error {
	now := s.Now()

	if JSONOutput() {
		return printJSON(map[string]any{"current": currentJSON(current, now)})
	}

	if current == nil {
		fmt.Println("Nothing printing")
		return nil
	}

	fmt.Printf("%s %s\n", KindBadge(core.KindPrint), current.Task.Name)
	fmt.Printf("  Finishes:  %s\n", HumanTime(current.EndTime, now))
	fmt.Printf("  Remaining: %s\n", current.Remaining(now))
	fmt.Printf("  %s %3.0f%%\n", FormatProgress(current.ProgressPercent(now), 30), current.ProgressPercent(now))
	if Verbose() {
		fmt.Printf("  ID:        %s\n", current.Task.ID)
		fmt.Printf("  Duration:  %s\n", timeutil.FormatDuration(current.Task.DurationMinutes))
	}
	return nil
}
