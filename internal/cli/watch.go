package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/julianstephens/habitual/internal/tracker"
)

// WatchCmd follows the change feed and reprints streaks on every write.
type WatchCmd struct {
	Top int `help:"Show only the top N habits." default:"0"`
}

func (c *WatchCmd) Run(ctx *Context) error {
	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tr := tracker.New(ctx.Store, ctx.UserID)
	tr.Start(sigCtx)

	fmt.Println("Watching for changes (Ctrl-C to stop)...")
	for {
		select {
		case <-sigCtx.Done():
			fmt.Println()
			return nil
		case <-tr.Updates():
			stats, ready := tr.Snapshot()
			if !ready {
				continue
			}
			if c.Top > 0 {
				stats = tr.Top(c.Top)
			}
			fmt.Println()
			if len(stats) == 0 {
				fmt.Println("No habits found.")
				continue
			}
			for _, s := range stats {
				fmt.Printf("%s  %-8s  current %d  best %d  total %d\n",
					TruncateTitle(s.Habit.Title, 24), FormatCadence(s.Habit.Cadence), s.Current, s.Best, s.Total)
			}
		}
	}
}
