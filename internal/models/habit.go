package models

import (
	"fmt"
	"strings"
	"time"
)

type Habit struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	// Cadence is the repetition unit: "daily", "weekly" or "monthly".
	// Stored as entered (lowercased); unknown values are treated as daily
	// everywhere statistics are computed.
	Cadence string `json:"cadence"`
	// StreakCount and LastCompleted are a denormalized cache written by the
	// completion path. The streak engine never reads them; it recomputes
	// from the completion history.
	StreakCount   int        `json:"streak_count"`
	LastCompleted *time.Time `json:"last_completed,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
}

func (h *Habit) Validate() error {
	if strings.TrimSpace(h.Title) == "" {
		return fmt.Errorf("habit title cannot be empty")
	}

	switch strings.ToLower(strings.TrimSpace(h.Cadence)) {
	case "", "daily", "weekly", "monthly":
		// empty falls back to daily at computation time
	default:
		return fmt.Errorf("invalid cadence %q (expected daily, weekly, or monthly)", h.Cadence)
	}

	return nil
}

// NormalizeCadence lowercases and trims the cadence in place so stored
// values are canonical. Unknown spellings are rejected by Validate; this
// only canonicalizes accepted ones.
func (h *Habit) NormalizeCadence() {
	h.Cadence = strings.ToLower(strings.TrimSpace(h.Cadence))
	if h.Cadence == "" {
		h.Cadence = "daily"
	}
}
