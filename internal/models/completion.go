package models

import (
	"fmt"
	"time"
)

// Completion records that a habit was performed once at a point in time.
// Completions are immutable after creation and deleted only by explicit
// user action. Several completions may land in the same period; statistics
// collapse them to one counted period.
type Completion struct {
	ID          string    `json:"id"`
	HabitID     string    `json:"habit_id"`
	UserID      string    `json:"user_id"`
	CompletedAt time.Time `json:"completed_at"`
	CreatedAt   time.Time `json:"created_at"`
}

func (c *Completion) Validate() error {
	if c.HabitID == "" {
		return fmt.Errorf("completion must reference a habit")
	}
	if c.CompletedAt.IsZero() {
		return fmt.Errorf("completion instant cannot be zero")
	}
	return nil
}
