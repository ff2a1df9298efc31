package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for the failure classes of the scheduler. None of them is
// fatal: the worst outcome is that the requested change did not apply.
var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("item not found")
	ErrNotPromotable  = errors.New("only print jobs can become the current print")
	ErrNoCurrentTask  = errors.New("no print is running")
	ErrCorruptState   = errors.New("corrupt saved state")
	ErrConfigNotFound = errors.New("config file not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Errorf wraps kind with a formatted description.
func Errorf(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}

// Invalid wraps ErrInvalidInput with a description of the rejected value.
func Invalid(format string, args ...any) error {
	return Errorf(ErrInvalidInput, format, args...)
}

// PrintqError wraps an error with a user-friendly suggestion.
type PrintqError struct {
	Err        error
	Suggestion string
}

func (e *PrintqError) Error() string {
	return e.Err.Error()
}

func (e *PrintqError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &PrintqError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	var pqErr *PrintqError
	if errors.As(err, &pqErr) && pqErr.Suggestion != "" {
		return pqErr.Suggestion
	}

	errStr := strings.ToLower(err.Error())

	switch {
	case errors.Is(err, ErrNotPromotable):
		return "Gaps and waits stay in the queue; pick a print job instead"
	case errors.Is(err, ErrNotFound):
		return "Run 'printq queue' to see item ids"
	case errors.Is(err, ErrNoCurrentTask):
		return "Start one with 'printq current set <name> <duration>' or 'printq promote <id>'"
	case errors.Is(err, ErrCorruptState):
		return "The saved queue could not be read and was reset; check the store path in your config"
	case errors.Is(err, ErrConfigNotFound):
		return "Run 'printq config init' to create one"
	case errors.Is(err, ErrInvalidConfig), strings.Contains(errStr, "config"):
		return "Run 'printq config show' to inspect the loaded configuration"
	case errors.Is(err, ErrInvalidInput):
		switch {
		case strings.Contains(errStr, "clock"):
			return "Clock times are 24-hour HH:MM, e.g. 08:00 or 18:30"
		case strings.Contains(errStr, "duration"):
			return "Durations look like 90, 45m, 2h or 1h30m and must be positive"
		case strings.Contains(errStr, "timestamp"):
			return "Use YYYY-MM-DDTHH:MM or HH:MM for the next occurrence"
		}
	}

	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}

// PartialResult represents a result that may have partial failures.
type PartialResult[T any] struct {
	Data   T
	Errors []error
}

// HasErrors returns true if there were any errors.
func (p *PartialResult[T]) HasErrors() bool {
	return len(p.Errors) > 0
}

// AddError adds an error to the partial result.
func (p *PartialResult[T]) AddError(err error) {
	if err != nil {
		p.Errors = append(p.Errors, err)
	}
}

// ErrorSummary returns a summary of all errors.
func (p *PartialResult[T]) ErrorSummary() string {
	if len(p.Errors) == 0 {
		return ""
	}
	if len(p.Errors) == 1 {
		return p.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d errors occurred:\n", len(p.Errors)))
	for i, err := range p.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}
