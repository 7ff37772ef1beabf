package tracker

import (
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/period"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/streak"
)

// CompleteResult reports what a Complete call did.
type CompleteResult struct {
	AlreadyDone bool
	Cadence     period.Cadence
	Current     int
}

// Complete records a completion for the habit's period containing at. A habit
// completes at most once per period; a second call in the same period is a
// no-op reported through AlreadyDone.
func Complete(store storage.Provider, userID, habitID string, at time.Time) (CompleteResult, error) {
	habit, err := store.GetHabit(habitID)
	if err != nil {
		return CompleteResult{}, err
	}
	cadence := period.ParseCadence(habit.Cadence)

	from, to := period.Window(at, cadence)
	existing, err := store.ListCompletionsBetween(userID, habitID, from, to)
	if err != nil {
		return CompleteResult{}, err
	}
	if len(existing) > 0 {
		return CompleteResult{AlreadyDone: true, Cadence: cadence, Current: habit.StreakCount}, nil
	}

	completion := models.Completion{
		ID:          uuid.New().String(),
		HabitID:     habitID,
		UserID:      userID,
		CompletedAt: at,
		CreatedAt:   time.Now(),
	}
	if err := completion.Validate(); err != nil {
		return CompleteResult{}, err
	}
	if err := store.AddCompletion(completion); err != nil {
		return CompleteResult{}, err
	}

	current, err := syncStreak(store, userID, habitID, cadence, at)
	if err != nil {
		return CompleteResult{}, err
	}
	return CompleteResult{Cadence: cadence, Current: current}, nil
}

// Uncomplete removes the completions recorded in the habit's period
// containing at. Removing from an empty period is a no-op.
func Uncomplete(store storage.Provider, userID, habitID string, at time.Time) (bool, error) {
	habit, err := store.GetHabit(habitID)
	if err != nil {
		return false, err
	}
	cadence := period.ParseCadence(habit.Cadence)

	from, to := period.Window(at, cadence)
	existing, err := store.ListCompletionsBetween(userID, habitID, from, to)
	if err != nil {
		return false, err
	}
	if len(existing) == 0 {
		return false, nil
	}

	for _, completion := range existing {
		if err := store.DeleteCompletion(completion.ID); err != nil {
			return false, err
		}
	}

	if _, err := syncStreak(store, userID, habitID, cadence, at); err != nil {
		return false, err
	}
	return true, nil
}

// syncStreak recomputes the habit's current streak from its completion
// history and writes the denormalized counter back.
func syncStreak(store storage.Provider, userID, habitID string, cadence period.Cadence, now time.Time) (int, error) {
	completions, err := store.ListCompletionsBetween(
		userID, habitID, StatsWindowStart(now), now.AddDate(0, 0, 1))
	if err != nil {
		return 0, err
	}

	idx := streak.BuildIndex(completions, cadence)
	stats := streak.Compute(cadence, idx, now)

	var lastCompleted time.Time
	for _, completion := range completions {
		if completion.CompletedAt.After(lastCompleted) {
			lastCompleted = completion.CompletedAt
		}
	}

	if err := store.UpdateHabitStreak(habitID, stats.Current, lastCompleted); err != nil {
		return 0, err
	}
	return stats.Current, nil
}
