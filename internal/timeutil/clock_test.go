package timeutil

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    Clock
		wantErr bool
	}{
		{"09:00", Clock{9, 0}, false},
		{"9:05", Clock{9, 5}, false},
		{"23:59", Clock{23, 59}, false},
		{"00:00", Clock{0, 0}, false},
		{"24:00", Clock{}, true},
		{"12:60", Clock{}, true},
		{"12", Clock{}, true},
		{"12:5", Clock{}, true},
		{"ab:cd", Clock{}, true},
	}

	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseClock(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClock(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestClockNext(t *testing.T) {
	cursor := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)

	tests := []struct {
		name  string
		clock string
		want  time.Time
	}{
		{"later today", "14:00", time.Date(2024, 1, 1, 14, 0, 0, 0, time.Local)},
		{"already passed", "09:00", time.Date(2024, 1, 2, 9, 0, 0, 0, time.Local)},
		{"equal rolls a day", "10:00", time.Date(2024, 1, 2, 10, 0, 0, 0, time.Local)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MustParseClock(tt.clock).Next(cursor)
			if !got.Equal(tt.want) {
				t.Errorf("Next() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClockOnZeroesSeconds(t *testing.T) {
	day := time.Date(2024, 1, 31, 10, 17, 42, 999, time.Local)
	got := MustParseClock("08:30").On(day)
	want := time.Date(2024, 1, 31, 8, 30, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("On() = %v, want %v", got, want)
	}
}

func TestClockNextMonthRollover(t *testing.T) {
	cursor := time.Date(2024, 1, 31, 22, 0, 0, 0, time.Local)
	got := MustParseClock("06:00").Next(cursor)
	want := time.Date(2024, 2, 1, 6, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("Next() = %v, want %v", got, want)
	}
}

func TestClockJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		At Clock `json:"at"`
	}{At: Clock{8, 5}})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"at":"08:05"}` {
		t.Errorf("Marshal() = %s", data)
	}

	var decoded struct {
		At Clock `json:"at"`
	}
	if err := json.Unmarshal([]byte(`{"at":"18:00"}`), &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded.At != (Clock{18, 0}) {
		t.Errorf("Unmarshal() = %+v", decoded.At)
	}
}
