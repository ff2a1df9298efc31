package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestGetSuggestion(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"explicit", WithSuggestion(errors.New("boom"), "try again"), "try again"},
		{"not promotable", fmt.Errorf("promote gap-1: %w", ErrNotPromotable), "pick a print job"},
		{"not found", fmt.Errorf("remove x: %w", ErrNotFound), "printq queue"},
		{"clock", Invalid("clock time %q", "25:00"), "HH:MM"},
		{"duration", Invalid("duration must be positive"), "1h30m"},
		{"plain invalid", Invalid("name is empty"), ""},
		{"unknown", errors.New("something else"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetSuggestion(tt.err)
			if tt.want == "" {
				if got != "" {
					t.Errorf("GetSuggestion() = %q, want empty", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("GetSuggestion() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestInvalidWrapsSentinel(t *testing.T) {
	err := Invalid("duration %d must be positive", 0)
	if !Is(err, ErrInvalidInput) {
		t.Error("Invalid() does not wrap ErrInvalidInput")
	}
	if !strings.Contains(err.Error(), "duration 0 must be positive") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestFormat(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q", got)
	}
	got := Format(ErrNoCurrentTask)
	if !strings.HasPrefix(got, "Error: no print is running") || !strings.Contains(got, "Suggestion:") {
		t.Errorf("Format() = %q", got)
	}
}

func TestPartialResult(t *testing.T) {
	var r PartialResult[int]
	r.AddError(nil)
	if r.HasErrors() {
		t.Error("HasErrors() = true after nil error")
	}
	r.AddError(errors.New("a"))
	if r.ErrorSummary() != "a" {
		t.Errorf("ErrorSummary() = %q", r.ErrorSummary())
	}
	r.AddError(errors.New("b"))
	if !strings.HasPrefix(r.ErrorSummary(), "2 errors occurred") {
		t.Errorf("ErrorSummary() = %q", r.ErrorSummary())
	}
}
