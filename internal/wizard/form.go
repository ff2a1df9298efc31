package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/tessro/printq/internal/timeutil"
)

// PrintResult is the outcome of the print form.
type PrintResult struct {
	Name    string
	Minutes int
}

// RunPrintForm asks for a print name and duration. A nil result means the
// user backed out.
func RunPrintForm(title string) (*PrintResult, error) {
	var name, duration string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description("Name of the print job").
				Value(&name).
				Validate(validateName),
			huh.NewInput().
				Title("Duration").
				Description("e.g. 90, 45m, 1h30m").
				Value(&duration).
				Validate(validateDuration),
		),
	).WithTheme(huh.ThemeCatppuccin())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, nil
		}
		return nil, fmt.Errorf("form cancelled: %w", err)
	}

	minutes, err := timeutil.ParseMinutes(duration)
	if err != nil {
		return nil, err
	}
	return &PrintResult{Name: strings.TrimSpace(name), Minutes: minutes}, nil
}

func validateName(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("name is required")
	}
	return nil
}

func validateDuration(s string) error {
	_, err := timeutil.ParseMinutes(s)
	return err
}
