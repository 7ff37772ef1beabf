package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// NewHabitForm builds the add-habit form.
func NewHabitForm(fm *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fm.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Cadence").
				Options(
					huh.NewOption("Daily", "daily"),
					huh.NewOption("Weekly", "weekly"),
					huh.NewOption("Monthly", "monthly"),
				).
				Value(&fm.Cadence),
			huh.NewInput().
				Title("Description").
				Value(&fm.Description),
		),
	)
}
