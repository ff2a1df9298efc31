package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Clock is a wall-clock time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses a 24-hour "HH:MM" value. A single-digit hour is accepted.
func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	h, m, ok := strings.Cut(s, ":")
	if !ok || len(m) != 2 || len(h) == 0 || len(h) > 2 {
		return Clock{}, fmt.Errorf("invalid clock time %q: want HH:MM", s)
	}

	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return Clock{}, fmt.Errorf("invalid clock time %q: hour out of range", s)
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return Clock{}, fmt.Errorf("invalid clock time %q: minute out of range", s)
	}

	return Clock{Hour: hour, Minute: minute}, nil
}

// MustParseClock is ParseClock for constants; it panics on bad input.
func MustParseClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// String returns the zero-padded "HH:MM" form.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// On returns the timestamp at this clock time on day's local calendar date,
// with seconds and sub-seconds zeroed.
func (c Clock) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, c.Hour, c.Minute, 0, 0, day.Location())
}

// Next returns the first occurrence of this clock time strictly after t.
// When the time of day has already passed, or equals t exactly, it rolls to
// the next calendar day.
func (c Clock) Next(t time.Time) time.Time {
	candidate := c.On(t)
	if !candidate.After(t) {
		y, m, d := t.Date()
		candidate = time.Date(y, m, d+1, c.Hour, c.Minute, 0, 0, t.Location())
	}
	return candidate
}

// MarshalText implements encoding.TextMarshaler.
func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Clock) UnmarshalText(text []byte) error {
	parsed, err := ParseClock(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
