package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/period"
	"github.com/julianstephens/habitual/internal/tracker"
)

type DoneCmd struct {
	Habit string `arg:"" help:"Habit title."`
	Date  string `help:"Completion date in YYYY-MM-DD format (default: today)."`
	Undo  bool   `help:"Remove the completion recorded for that period instead."`
}

func (c *DoneCmd) Run(ctx *Context) error {
	habit, err := ctx.FindHabit(c.Habit)
	if err != nil {
		return err
	}

	at, err := ParseDay(c.Date, time.Now())
	if err != nil {
		return err
	}

	if c.Undo {
		removed, err := tracker.Uncomplete(ctx.Store, ctx.UserID, habit.ID, at)
		if err != nil {
			return err
		}
		cadence := period.ParseCadence(habit.Cadence)
		if !removed {
			fmt.Printf("No completion recorded for %q %s.\n", habit.Title, PeriodNoun(cadence))
			return nil
		}
		fmt.Printf("Unmarked %q for %s\n", habit.Title, PeriodNoun(cadence))
		return nil
	}

	result, err := tracker.Complete(ctx.Store, ctx.UserID, habit.ID, at)
	if err != nil {
		return err
	}
	if result.AlreadyDone {
		fmt.Printf("You've already completed %q %s!\n", habit.Title, PeriodNoun(result.Cadence))
		return nil
	}
	fmt.Printf("Completed %q %s. Current streak: %d\n", habit.Title, PeriodNoun(result.Cadence), result.Current)
	return nil
}
