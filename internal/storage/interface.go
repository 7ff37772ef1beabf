package storage

import (
	"errors"
	"time"

	"github.com/julianstephens/habitual/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetHabitByTitle(userID, title string) (models.Habit, error)
	GetAllHabits(userID string, includeDeleted bool) ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	// UpdateHabitStreak writes the denormalized streak cache on a habit.
	// The streak engine never reads these fields; they exist for consumers
	// that want a cheap display value without the completion history.
	UpdateHabitStreak(id string, streakCount int, lastCompleted time.Time) error
	DeleteHabit(id string) error
	RestoreHabit(id string) error

	// Completions. ListCompletions pages with limit/offset; habitID may be
	// empty to list across all of the user's habits. ListCompletionsBetween
	// covers the half-open interval [from, to) and backs the
	// duplicate-period guard on the write path.
	AddCompletion(models.Completion) error
	GetCompletion(id string) (models.Completion, error)
	ListCompletions(userID, habitID string, since time.Time, limit, offset int) ([]models.Completion, error)
	ListCompletionsBetween(userID, habitID string, from, to time.Time) ([]models.Completion, error)
	DeleteCompletion(id string) error

	// Changes exposes the store's change-notification feed. Every
	// successful write publishes a change; consumers react by re-fetching,
	// never by patching cached state.
	Changes() *Feed

	// Utils
	GetConfigPath() string
}
