package cli

import (
	"context"
	"fmt"

	"github.com/julianstephens/habitual/internal/streak"
	"github.com/julianstephens/habitual/internal/tracker"
)

type StreaksCmd struct {
	Top int `help:"Show only the top N habits." default:"0"`
}

func (c *StreaksCmd) Run(ctx *Context) error {
	tr := tracker.New(ctx.Store, ctx.UserID)
	stats, err := tr.ComputeOnce(context.Background())
	if err != nil {
		return err
	}

	if len(stats) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	if c.Top > 0 {
		stats = streak.Top(stats, c.Top)
	}

	const titleWidth = 24
	fmt.Printf("%s  %-8s  %7s  %5s  %5s\n", TruncateTitle("Habit", titleWidth), "Cadence", "Current", "Best", "Total")
	for _, s := range stats {
		fmt.Printf("%s  %-8s  %7d  %5d  %5d\n",
			TruncateTitle(s.Habit.Title, titleWidth), FormatCadence(s.Habit.Cadence), s.Current, s.Best, s.Total)
	}
	return nil
}
