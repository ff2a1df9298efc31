package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tessro/printq/internal/core"
	"github.com/tessro/printq/internal/errors"
	"github.com/tessro/printq/internal/session"
	"github.com/tessro/printq/internal/timeutil"
	"github.com/tessro/printq/internal/wizard"
)

var queueLimit int

var queueCmd = &cobra.Command{
	Use:     "queue",
	Aliases: []string{"ls"},
	Short:   "Show the queue with projected times",
	Long: `Show every queued item with its projected start and finish.

The queue starts when the current print finishes, or now when nothing is
printing. Wait items hold the queue until their clock time, rolling over to
tomorrow when that time has already passed.`,
	RunE: runQueueList,
}

var addCmd = &cobra.Command{
	Use:   "add [name] [duration]",
	Short: "Add a print job to the queue",
	Long: `Add a print job to the end of the queue.

Durations accept minutes or hour/minute forms: 90, 45m, 2h, 1h30m.
With no arguments on a terminal a form is shown.

Examples:
  printq add "Benchy" 45m
  printq add "Helmet" 6h20m`,
	Args: cobra.RangeArgs(0, 2),
	RunE: runAdd,
}

var gapCmd = &cobra.Command{
	Use:   "gap [duration]",
	Short: "Add a prep gap to the queue",
	Long: `Add a gap to the end of the queue. Without a duration the default gap
length is used (see 'printq default-gap').`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGap,
}

var waitCmd = &cobra.Command{
	Use:   "wait [HH:MM]",
	Short: "Hold the queue until a clock time",
	Long: `Add a wait-until item. The queue holds until the next occurrence of the
24-hour clock time after the item before it finishes.

Examples:
  printq wait 08:00
  printq wait 18:30 --name "After work"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWait,
}

var insertCmd = &cobra.Command{
	Use:   "insert",
	Short: "Insert a gap or wait after an item",
}

var insertGapCmd = &cobra.Command{
	Use:   "gap <after> [duration]",
	Short: "Insert a gap after an item",
	Long: `Insert a gap right after the referenced item. Items are referenced by
id, id prefix, or queue position. A reference that matches nothing appends
the gap to the end of the queue. Without a duration the default gap is used.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runInsertGap,
}

var insertWaitCmd = &cobra.Command{
	Use:   "wait <after> <HH:MM>",
	Short: "Insert a wait after an item",
	Long: `Insert a wait right after the referenced item. A reference that
matches nothing appends the wait to the end of the queue.`,
	Args: cobra.ExactArgs(2),
	RunE:  runInsertWait,
}

var removeCmd = &cobra.Command{
	Use:     "remove <item>",
	Aliases: []string{"rm"},
	Short:   "Remove an item from the queue",
	Args:    cobra.ExactArgs(1),
	RunE:    runRemove,
}

var moveCmd = &cobra.Command{
	Use:   "move <item> <up|down|top|bottom|+N|-N|N>",
	Short: "Move an item within the queue",
	Long: `Move an item. up/down shift by one, top/bottom go to the ends, +N/-N
shift by N, and a bare N moves to position N.`,
	Args: cobra.ExactArgs(2),
	RunE: runMove,
}

var reorderCmd = &cobra.Command{
	Use:   "reorder <item>...",
	Short: "Reorder the queue",
	Long: `Put the listed items first, in the given order. Items not listed keep
their relative order after them.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReorder,
}

var duplicateCmd = &cobra.Command{
	Use:     "duplicate <item>",
	Aliases: []string{"dup"},
	Short:   "Copy an item to the end of the queue",
	Args:    cobra.ExactArgs(1),
	RunE:    runDuplicate,
}

var promoteCmd = &cobra.Command{
	Use:   "promote [item]",
	Short: "Start a queued print now",
	Long: `Move a queued print job to current. It finishes after its duration from
now. Gaps and waits cannot be promoted. With no item on a terminal a picker
is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPromote,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every queued item",
	Long:  `Remove every queued item. Use --all to also clear the current print and default gap.`,
	RunE:  runClear,
}

var quickCmd = &cobra.Command{
	Use:   "quick",
	Short: "Add a preset gap or wait",
}

var quickGapCmd = &cobra.Command{
	Use:   "gap <preset>",
	Short: "Add a preset gap (see queue.gap_presets)",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuickGap,
}

var quickWaitCmd = &cobra.Command{
	Use:   "wait <preset>",
	Short: "Add a preset wait (see queue.wait_presets)",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuickWait,
}

var defaultGapCmd = &cobra.Command{
	Use:   "default-gap [duration]",
	Short: "Show or set the default gap length",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDefaultGap,
}

var (
	waitName string
	gapName  string
	clearAll bool
)

func init() {
	queueCmd.Flags().IntVarP(&queueLimit, "limit", "l", 0, "Maximum number of items to show")
	waitCmd.Flags().StringVarP(&waitName, "name", "n", "", "Item name (default \"Wait Until\")")
	gapCmd.Flags().StringVarP(&gapName, "name", "n", "", "Item name (default \"Prep Time\")")
	clearCmd.Flags().BoolVar(&clearAll, "all", false, "Also clear the current print and reset settings")

	insertCmd.AddCommand(insertGapCmd)
	insertCmd.AddCommand(insertWaitCmd)
	quickCmd.AddCommand(quickGapCmd)
	quickCmd.AddCommand(quickWaitCmd)

	rootCmd.AddCommand(queueCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(gapCmd)
	rootCmd.AddCommand(waitCmd)
	rootCmd.AddCommand(insertCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(reorderCmd)
	rootCmd.AddCommand(duplicateCmd)
	rootCmd.AddCommand(promoteCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(quickCmd)
	rootCmd.AddCommand(defaultGapCmd)
}

func runQueueList(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}

	now := s.Now()
	proj := s.Projection()
	current := s.Current()
	entries := proj.Entries
	if queueLimit > 0 && len(entries) > queueLimit {
		entries = entries[:queueLimit]
	}

	if JSONOutput() {
		items := make([]map[string]any, len(entries))
		for i, e := range entries {
			items[i] = entryJSON(i, e)
		}
		out := map[string]any{
			"current": currentJSON(current, now),
			"anchor":  proj.Anchor.Format(time.RFC3339),
			"queue":   items,
			"total":   len(proj.Entries),
		}
		if end, ok := s.Banner(); ok {
			out["completes"] = end.Format(time.RFC3339)
		}
		return printJSON(out)
	}

	if current != nil {
		fmt.Printf("Printing: %s, %s left, finishes %s\n",
			current.Task.Name, current.Remaining(now), timeutil.FormatRelative(current.EndTime, now))
	}

	if len(proj.Entries) == 0 {
		fmt.Println("Queue is empty")
		return nil
	}

	t := NewTable("#", "Type", "Name", "Length", "Starts", "Finishes", "ID")
	t.AlignRight(1)
	for i, e := range entries {
		t.Row(
			strconv.Itoa(i+1),
			KindBadge(e.Item.Kind()),
			TruncateString(e.Item.ItemName(), 32),
			ItemDetail(e.Item),
			timeutil.FormatRelative(e.Start, now),
			timeutil.FormatRelative(e.End, now),
			dimText(shortID(e.Item.ItemID())),
		)
	}
	t.Flush()

	if len(proj.Entries) > len(entries) {
		fmt.Printf("... and %d more items\n", len(proj.Entries)-len(entries))
	}
	if end, ok := s.Banner(); ok {
		fmt.Printf("Queue completes %s\n", okText(HumanTime(end, now)))
	}
	return nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}

	var name string
	var minutes int

	switch {
	case len(args) == 0 && wizard.IsTerminal() && !JSONOutput():
		res, err := wizard.RunPrintForm("Add print to queue")
		if err != nil {
			return err
		}
		if res == nil {
			return nil
		}
		name, minutes = res.Name, res.Minutes
	case len(args) == 2:
		name = args[0]
		minutes, err = parseDuration(args[1])
		if err != nil {
			return err
		}
	default:
		return errors.Invalid("add needs a name and a duration")
	}

	task, err := s.AddPrint(name, minutes)
	if err != nil {
		return err
	}
	return reportAdded(s, task)
}

func runGap(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}

	minutes := s.DefaultGap()
	if len(args) == 1 {
		if minutes, err = parseDuration(args[0]); err != nil {
			return err
		}
	}

	gap, err := s.AddGap(gapName, minutes)
	if err != nil {
		return err
	}
	return reportAdded(s, gap)
}

func runWait(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}

	var hhmm string
	switch {
	case len(args) == 1:
		hhmm = args[0]
	case wizard.IsTerminal() && !JSONOutput():
		clock, err := wizard.RunClockPrompt("Wait until", landingHint(s))
		if err != nil {
			return err
		}
		if clock == "" {
			return nil
		}
		hhmm = clock
	default:
		return errors.Invalid("wait needs a clock time")
	}

	wait, err := s.AddWait(waitName, hhmm)
	if err != nil {
		return err
	}
	return reportAdded(s, wait)
}

// resolveAfter resolves an insert anchor. A reference that matches nothing
// is passed through unchanged so the insert lands at the tail; ambiguous
// references are still an error.
func resolveAfter(s *session.Session, ref string) (string, error) {
	id, err := s.Resolve(ref)
	if errors.Is(err, errors.ErrNotFound) {
		return ref, nil
	}
	return id, err
}

func runInsertGap(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	after, err := resolveAfter(s, args[0])
	if err != nil {
		return err
	}

	minutes := s.DefaultGap()
	if len(args) == 2 {
		if minutes, err = parseDuration(args[1]); err != nil {
			return err
		}
	}

	gap, err := s.InsertGapAfter(after, minutes)
	if err != nil {
		return err
	}
	return reportAdded(s, gap)
}

func runInsertWait(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	after, err := resolveAfter(s, args[0])
	if err != nil {
		return err
	}

	wait, err := s.InsertWaitAfter(after, args[1])
	if err != nil {
		return err
	}
	return reportAdded(s, wait)
}

func runRemove(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	id, err := s.Resolve(args[0])
	if err != nil {
		return err
	}
	item, _ := s.Queue().Find(id)
	if err := s.Remove(id); err != nil {
		return err
	}

	if JSONOutput() {
		return printJSON(map[string]any{"status": "removed", "item": itemJSON(item)})
	}
	fmt.Printf("Removed %s\n", item.ItemName())
	return nil
}

func runMove(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	id, err := s.Resolve(args[0])
	if err != nil {
		return err
	}

	q := s.Queue()
	delta, err := parseMove(args[1], q.Index(id), q.Len())
	if err != nil {
		return err
	}
	if err := s.Move(id, delta); err != nil {
		return err
	}

	pos := s.Queue().Index(id)
	if JSONOutput() {
		return printJSON(map[string]any{"status": "moved", "id": id, "position": pos + 1})
	}
	fmt.Printf("Moved to %s place\n", Position(pos))
	return nil
}

func runReorder(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(args))
	for _, ref := range args {
		id, err := s.Resolve(ref)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}
	s.Reorder(ids)

	if JSONOutput() {
		return printJSON(map[string]any{"status": "reordered", "queue": s.Queue().IDs()})
	}
	return runQueueList(cmd, nil)
}

func runDuplicate(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	id, err := s.Resolve(args[0])
	if err != nil {
		return err
	}
	dup, err := s.Duplicate(id)
	if err != nil {
		return err
	}
	return reportAdded(s, dup)
}

func runPromote(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}

	var id string
	if len(args) == 1 {
		if id, err = s.Resolve(args[0]); err != nil {
			return err
		}
	} else {
		if !wizard.IsTerminal() || JSONOutput() {
			return errors.Invalid("promote needs an item")
		}
		item, err := wizard.RunItemPicker("Start which print?", s.Projection().Entries, isPrint)
		if err != nil {
			return err
		}
		if item == nil {
			return nil
		}
		id = item.ItemID()
	}

	current, err := s.Promote(id)
	if err != nil {
		return err
	}

	now := s.Now()
	if JSONOutput() {
		return printJSON(map[string]any{"status": "promoted", "current": currentJSON(current, now)})
	}
	fmt.Printf("Now printing %s, finishes %s\n", current.Task.Name, HumanTime(current.EndTime, now))
	return nil
}

func runClear(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	if clearAll {
		s.Reset()
	} else {
		s.ClearQueue()
	}

	if JSONOutput() {
		return printJSON(map[string]any{"status": "cleared", "all": clearAll})
	}
	fmt.Println("Queue cleared")
	return nil
}

func runQuickGap(cmd *cobra.Command, args []string) error {
	minutes, err := parseDuration(args[0])
	if err != nil {
		return err
	}
	if !containsInt(cfg.Queue.GapPresets, minutes) {
		return errors.WithSuggestion(
			errors.Invalid("%s is not a gap preset", timeutil.FormatDuration(minutes)),
			fmt.Sprintf("Presets: %s", formatGapPresets(cfg.Queue.GapPresets)))
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	gap, err := s.AddGap("", minutes)
	if err != nil {
		return err
	}
	return reportAdded(s, gap)
}

func runQuickWait(cmd *cobra.Command, args []string) error {
	clock, err := timeutil.ParseClock(args[0])
	if err != nil {
		return errors.Invalid("%v", err)
	}
	found := false
	for _, p := range cfg.Queue.WaitPresets {
		if c, err := timeutil.ParseClock(p); err == nil && c == clock {
			found = true
			break
		}
	}
	if !found {
		return errors.WithSuggestion(
			errors.Invalid("%s is not a wait preset", clock),
			fmt.Sprintf("Presets: %s", strings.Join(cfg.Queue.WaitPresets, ", ")))
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	wait, err := s.AddWait("", clock.String())
	if err != nil {
		return err
	}
	return reportAdded(s, wait)
}

func runDefaultGap(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		minutes, err := parseDuration(args[0])
		if err != nil {
			return err
		}
		if err := s.SetDefaultGap(minutes); err != nil {
			return err
		}
	}

	if JSONOutput() {
		return printJSON(map[string]any{"default_gap_minutes": s.DefaultGap()})
	}
	fmt.Printf("Default gap: %s\n", timeutil.FormatDuration(s.DefaultGap()))
	return nil
}

// reportAdded prints a newly queued item with its projected finish.
func reportAdded(s *session.Session, item core.Item) error {
	now := s.Now()
	entry, ok := s.Projection().Lookup(item.ItemID())

	if JSONOutput() {
		out := map[string]any{"status": "added", "item": itemJSON(item)}
		if ok {
			out["start"] = entry.Start.Format(time.RFC3339)
			out["end"] = entry.End.Format(time.RFC3339)
		}
		return printJSON(out)
	}

	fmt.Printf("Added %s %s (%s)", KindBadge(item.Kind()), item.ItemName(), ItemDetail(item))
	if ok {
		fmt.Printf(", finishes %s", timeutil.FormatRelative(entry.End, now))
	}
	fmt.Printf(" %s\n", dimText(shortID(item.ItemID())))
	return nil
}

// landingHint previews where a wait appended to the queue would end.
func landingHint(s *session.Session) func(string) string {
	proj := s.Projection()
	cursor := proj.Anchor
	if end, ok := proj.Completion(); ok {
		cursor = end
	}
	now := s.Now()
	return func(input string) string {
		clock, err := timeutil.ParseClock(input)
		if err != nil {
			return ""
		}
		return "holds until " + timeutil.FormatRelative(clock.Next(cursor), now)
	}
}

func isPrint(item core.Item) bool {
	return item.Kind() == core.KindPrint
}

func parseDuration(s string) (int, error) {
	minutes, err := timeutil.ParseMinutes(s)
	if err != nil {
		return 0, errors.Invalid("%v", err)
	}
	return minutes, nil
}

// parseMove turns a move argument into a position delta for the item at
// index from in a queue of length n.
func parseMove(arg string, from, n int) (int, error) {
	switch strings.ToLower(arg) {
	case "up":
		return -1, nil
	case "down":
		return 1, nil
	case "top", "first":
		return -from, nil
	case "bottom", "last":
		return n - 1 - from, nil
	}

	if strings.HasPrefix(arg, "+") || strings.HasPrefix(arg, "-") {
		delta, err := strconv.Atoi(arg)
		if err != nil {
			return 0, errors.Invalid("bad move offset %q", arg)
		}
		return delta, nil
	}

	pos, err := strconv.Atoi(arg)
	if err != nil || pos < 1 {
		return 0, errors.Invalid("bad move target %q", arg)
	}
	return pos - 1 - from, nil
}

// shortID trims the uuid part of an id to something typeable.
func shortID(id string) string {
	kind, rest, ok := strings.Cut(id, "-")
	if !ok || len(rest) <= 8 {
		return id
	}
	return kind + "-" + rest[:8]
}

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func formatGapPresets(presets []int) string {
	labels := make([]string, len(presets))
	for i, p := range presets {
		labels[i] = timeutil.FormatDuration(p)
	}
	return strings.Join(labels, ", ")
}
