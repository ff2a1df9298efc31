// Package timeutil holds the time arithmetic and formatting used to project
// and display the print queue.
package timeutil

import (
	"fmt"
	"math"
	"time"
)

// Completed is returned by Remaining once the end time has been reached.
const Completed = "Completed"

// MaxMinutes caps any single duration. Offsets beyond it overflow
// time.Duration arithmetic well before they mean anything for a printer.
const MaxMinutes = 365 * 24 * 60

// AddMinutes returns t offset by the given number of minutes. Zero and
// negative values are plain offsets.
func AddMinutes(t time.Time, minutes int) time.Time {
	return t.Add(time.Duration(minutes) * time.Minute)
}

// FormatDuration renders minutes as "45m", "2h" or "1h 30m".
// minutes must be non-negative.
func FormatDuration(minutes int) string {
	hours := minutes / 60
	mins := minutes % 60

	if hours == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}

// FormatClock renders the time of day on a 12-hour clock, e.g. "3:04 PM".
func FormatClock(t time.Time) string {
	return t.Format("3:04 PM")
}

// FormatRelative renders t relative to now: clock time only for the same
// local calendar day, "Tomorrow <clock>" for the next one, and month/day plus
// clock time otherwise.
func FormatRelative(t, now time.Time) string {
	t = t.In(now.Location())

	if sameDay(t, now) {
		return FormatClock(t)
	}
	if sameDay(t, now.AddDate(0, 0, 1)) {
		return "Tomorrow " + FormatClock(t)
	}
	return t.Format("Jan 2, 3:04 PM")
}

// RemainingMinutes returns the whole minutes left until end, rounded up.
// A task with one second left still reports one minute. Zero means done.
func RemainingMinutes(end, now time.Time) int {
	diff := end.Sub(now)
	if diff <= 0 {
		return 0
	}
	return int(math.Ceil(diff.Minutes()))
}

// Remaining renders the time left until end, or Completed.
func Remaining(end, now time.Time) string {
	if !end.After(now) {
		return Completed
	}
	return FormatDuration(RemainingMinutes(end, now))
}

// StartOfDay returns midnight of t's local calendar day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
