package timeutil

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0m"},
		{1, "1m"},
		{45, "45m"},
		{60, "1h"},
		{90, "1h 30m"},
		{120, "2h"},
		{1441, "24h 1m"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.minutes); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestAddMinutes(t *testing.T) {
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)

	if got := AddMinutes(base, 0); !got.Equal(base) {
		t.Errorf("AddMinutes(0) = %v, want %v", got, base)
	}
	if got, want := AddMinutes(base, 90), base.Add(90*time.Minute); !got.Equal(want) {
		t.Errorf("AddMinutes(90) = %v, want %v", got, want)
	}
	if got, want := AddMinutes(base, -30), base.Add(-30*time.Minute); !got.Equal(want) {
		t.Errorf("AddMinutes(-30) = %v, want %v", got, want)
	}
}

func TestFormatRelative(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 15, 0, 0, time.Local)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{
			name: "same day",
			t:    time.Date(2024, 3, 10, 14, 5, 0, 0, time.Local),
			want: "2:05 PM",
		},
		{
			name: "late same day is not tomorrow",
			t:    time.Date(2024, 3, 10, 23, 59, 0, 0, time.Local),
			want: "11:59 PM",
		},
		{
			name: "next calendar day under 24h away",
			t:    time.Date(2024, 3, 11, 0, 30, 0, 0, time.Local),
			want: "Tomorrow 12:30 AM",
		},
		{
			name: "two days out",
			t:    time.Date(2024, 3, 12, 8, 0, 0, 0, time.Local),
			want: "Mar 12, 8:00 AM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatRelative(tt.t, now); got != tt.want {
				t.Errorf("FormatRelative() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRemaining(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)

	tests := []struct {
		name string
		end  time.Time
		want string
	}{
		{"past", now.Add(-time.Minute), Completed},
		{"exactly now", now, Completed},
		{"one second left", now.Add(time.Second), "1m"},
		{"just over an hour", now.Add(60*time.Minute + time.Second), "1h 1m"},
		{"exact hours", now.Add(2 * time.Hour), "2h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Remaining(tt.end, now); got != tt.want {
				t.Errorf("Remaining() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseMinutes(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"90", 90, false},
		{"45m", 45, false},
		{"2h", 120, false},
		{"1h30m", 90, false},
		{"1h 30m", 90, false},
		{"3 hours", 180, false},
		{"", 0, true},
		{"abc", 0, true},
		{"1x", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseMinutes(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMinutes(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMinutes(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)

	got, err := ParseTimestamp("2024-01-01T18:30", now)
	if err != nil {
		t.Fatalf("ParseTimestamp() error = %v", err)
	}
	if want := time.Date(2024, 1, 1, 18, 30, 0, 0, time.Local); !got.Equal(want) {
		t.Errorf("ParseTimestamp() = %v, want %v", got, want)
	}

	got, err = ParseTimestamp("07:00", now)
	if err != nil {
		t.Fatalf("ParseTimestamp(clock) error = %v", err)
	}
	if want := time.Date(2024, 1, 2, 7, 0, 0, 0, time.Local); !got.Equal(want) {
		t.Errorf("ParseTimestamp(clock) = %v, want %v", got, want)
	}

	if _, err := ParseTimestamp("tomorrowish", now); err == nil {
		t.Error("ParseTimestamp() expected error for garbage input")
	}
}
