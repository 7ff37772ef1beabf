package tracker

import (
	"context"
	"sync"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/period"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/streak"
)

// Tracker keeps streak statistics continuously correct against a live
// store. Every change notification triggers a full re-fetch and recompute;
// nothing is patched incrementally, so the read model can never drift from
// committed state. Refreshes run on a single goroutine and pending
// notifications coalesce, which bounds concurrent fetch load.
type Tracker struct {
	store  storage.Provider
	userID string
	now    func() time.Time

	mu    sync.RWMutex
	stats []streak.HabitStats
	ready bool

	degradedWarn sync.Once

	refreshCh chan struct{}
	updates   chan struct{}
}

func New(store storage.Provider, userID string) *Tracker {
	return &Tracker{
		store:     store,
		userID:    userID,
		now:       time.Now,
		refreshCh: make(chan struct{}, 1),
		updates:   make(chan struct{}, 1),
	}
}

// Start subscribes to the store's change feed and runs the refresh loop
// until ctx is cancelled. An initial refresh runs immediately.
func (t *Tracker) Start(ctx context.Context) {
	sub := t.store.Changes().Subscribe()

	go func() {
		defer sub.Close()

		t.runRefresh(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-sub.C:
				if !ok {
					return
				}
				t.runRefresh(ctx)
			case <-t.refreshCh:
				t.runRefresh(ctx)
			}
		}
	}()
}

// RefreshNow requests a refresh without waiting for a change notification.
// Non-blocking; if a refresh is already pending this is a no-op.
func (t *Tracker) RefreshNow() {
	select {
	case t.refreshCh <- struct{}{}:
	default:
	}
}

// Snapshot returns the current per-habit statistics and whether the first
// refresh has completed.
func (t *Tracker) Snapshot() ([]streak.HabitStats, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]streak.HabitStats, len(t.stats))
	copy(out, t.stats)
	return out, t.ready
}

// Top returns the n best habits by (current, best, total) descending.
func (t *Tracker) Top(n int) []streak.HabitStats {
	stats, _ := t.Snapshot()
	return streak.Top(stats, n)
}

// Updates signals after each applied refresh. The channel holds at most
// one pending signal; consumers re-read Snapshot on receive.
func (t *Tracker) Updates() <-chan struct{} {
	return t.updates
}

// ComputeOnce runs a single synchronous recompute and returns the resulting
// statistics. Used by one-shot commands that have no refresh loop running.
func (t *Tracker) ComputeOnce(ctx context.Context) ([]streak.HabitStats, error) {
	if err := t.refresh(ctx); err != nil {
		return nil, err
	}
	stats, _ := t.Snapshot()
	return stats, nil
}

func (t *Tracker) runRefresh(ctx context.Context) {
	if err := t.refresh(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		// Keep the previous snapshot on display; the next notification or
		// manual refresh retries.
		logger.Warn("Streak refresh failed", "error", err)
		return
	}

	select {
	case t.updates <- struct{}{}:
	default:
	}
}

func (t *Tracker) refresh(ctx context.Context) error {
	now := t.now()

	habits, err := t.store.GetAllHabits(t.userID, false)
	if err != nil {
		return err
	}

	completions, err := t.fetchCompletions(ctx, StatsWindowStart(now))
	if err != nil {
		t.mu.RLock()
		hadSnapshot := t.ready
		t.mu.RUnlock()
		if hadSnapshot || ctx.Err() != nil {
			return err
		}
		// The habit list is readable but the completion history is not.
		// Rather than showing nothing, degrade to habits with zero streaks
		// until a later refresh succeeds.
		t.degradedWarn.Do(func() {
			logger.Warn("Completion history unavailable; showing habits without streak statistics", "error", err)
		})
		completions = nil
	}

	byHabit := make(map[string][]models.Completion, len(habits))
	for _, c := range completions {
		byHabit[c.HabitID] = append(byHabit[c.HabitID], c)
	}

	stats := make([]streak.HabitStats, 0, len(habits))
	for _, habit := range habits {
		cadence := period.ParseCadence(habit.Cadence)
		idx := streak.BuildIndex(byHabit[habit.ID], cadence)
		stats = append(stats, streak.HabitStats{
			Habit: habit,
			Stats: streak.Compute(cadence, idx, now),
		})
	}

	t.mu.Lock()
	t.stats = streak.Rank(stats)
	t.ready = true
	t.mu.Unlock()

	return nil
}

// fetchCompletions pages through the user's completions since the window
// start. Paging stops at the first short page, or at the page cap so a
// runaway history cannot stall a refresh.
func (t *Tracker) fetchCompletions(ctx context.Context, since time.Time) ([]models.Completion, error) {
	var all []models.Completion
	offset := 0
	for pages := 0; pages < constants.CompletionPageCap; pages++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, err := t.store.ListCompletions(t.userID, "", since, constants.CompletionPageSize, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < constants.CompletionPageSize {
			return all, nil
		}
		offset += constants.CompletionPageSize
	}

	logger.Warn("Completion fetch hit page cap; statistics may be truncated",
		"pages", constants.CompletionPageCap, "fetched", len(all))
	return all, nil
}

// StatsWindowStart is the first instant completions are fetched from:
// midnight on the first of the month, CompletionWindowMonths back. Long
// enough to rebuild current and best streaks for every cadence in use.
func StatsWindowStart(now time.Time) time.Time {
	start := now.AddDate(0, -constants.CompletionWindowMonths, 0)
	return time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, now.Location())
}
