package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var segmentPattern = regexp.MustCompile(`^\s*(\d+)\s*(hours|hour|hrs|hr|h|minutes|minute|mins|min|m)?`)

// ParseMinutes parses a human duration such as "90", "45m", "2h" or
// "1h30m" into whole minutes. A bare number is minutes.
func ParseMinutes(input string) (int, error) {
	remaining := strings.ToLower(strings.TrimSpace(input))
	if remaining == "" {
		return 0, fmt.Errorf("empty duration")
	}

	total := 0
	for len(remaining) > 0 {
		matches := segmentPattern.FindStringSubmatch(remaining)
		if matches == nil {
			return 0, fmt.Errorf("invalid duration segment %q", strings.TrimSpace(remaining))
		}
		n, err := strconv.Atoi(matches[1])
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", input, err)
		}
		switch matches[2] {
		case "h", "hr", "hrs", "hour", "hours":
			total += n * 60
		default:
			total += n
		}
		remaining = strings.TrimSpace(remaining[len(matches[0]):])
	}
	return total, nil
}

// ParseTimestamp parses a local completion timestamp. It accepts
// "2006-01-02T15:04", "2006-01-02 15:04", RFC 3339, or a bare "HH:MM",
// which resolves to the next occurrence after now.
func ParseTimestamp(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	if t, err := time.Parse(time.RFC3339, input); err == nil {
		return t, nil
	}
	for _, layout := range []string{"2006-01-02T15:04", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, input, now.Location()); err == nil {
			return t, nil
		}
	}
	if c, err := ParseClock(input); err == nil {
		return c.Next(now), nil
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", input)
}
