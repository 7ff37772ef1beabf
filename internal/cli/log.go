package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/period"
)

type LogCmd struct {
	Days  int    `help:"Number of days to show." default:"14"`
	Habit string `help:"Show log for a specific habit only."`
}

func (c *LogCmd) Run(ctx *Context) error {
	if c.Days < 1 {
		return fmt.Errorf("days must be at least 1")
	}

	habits, err := ctx.Store.GetAllHabits(ctx.UserID, false)
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	var selected []models.Habit
	if c.Habit != "" {
		for _, h := range habits {
			if h.Title == c.Habit {
				selected = []models.Habit{h}
				break
			}
		}
		if len(selected) == 0 {
			return fmt.Errorf("habit %q not found", c.Habit)
		}
	} else {
		selected = habits
	}

	now := time.Now()
	startDay := now.AddDate(0, 0, -(c.Days - 1))
	from := time.Date(startDay.Year(), startDay.Month(), startDay.Day(), 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 0, c.Days)

	const titleWidth = 20
	fmt.Printf("Habit log (last %d days):\n\n", c.Days)

	fmt.Print(strings.Repeat(" ", titleWidth))
	for i := 0; i < c.Days; i++ {
		fmt.Printf(" %5s", from.AddDate(0, 0, i).Format("01/02"))
	}
	fmt.Println()
	fmt.Println(strings.Repeat("-", titleWidth+6*c.Days))

	for _, habit := range selected {
		completions, err := ctx.Store.ListCompletionsBetween(ctx.UserID, habit.ID, from, to)
		if err != nil {
			return err
		}

		done := make(map[string]bool, len(completions))
		for _, completion := range completions {
			done[completion.CompletedAt.In(now.Location()).Format("2006-01-02")] = true
		}

		fmt.Print(TruncateTitle(habit.Title, titleWidth))
		for i := 0; i < c.Days; i++ {
			day := from.AddDate(0, 0, i).Format("2006-01-02")
			if done[day] {
				fmt.Print("   x  ")
			} else {
				fmt.Print("   .  ")
			}
		}
		cadence := period.ParseCadence(habit.Cadence)
		if cadence != period.Daily {
			fmt.Printf(" (%s)", cadence)
		}
		fmt.Println()
	}

	return nil
}
