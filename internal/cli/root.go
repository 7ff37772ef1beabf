package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habitual/internal/backup"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/period"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/storage/sqlite"
)

type Context struct {
	Store  storage.Provider
	UserID string
}

// PerformAutomaticBackup snapshots a sqlite database and silently handles
// errors. Postgres stores are backed up server-side, not here.
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// FindHabit resolves an active habit by title.
func (c *Context) FindHabit(title string) (models.Habit, error) {
	habit, err := c.Store.GetHabitByTitle(c.UserID, title)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Habit{}, fmt.Errorf("habit %q not found", title)
		}
		return models.Habit{}, err
	}
	return habit, nil
}

// FindDeletedHabit resolves a soft-deleted habit by title.
func (c *Context) FindDeletedHabit(title string) (models.Habit, error) {
	habits, err := c.Store.GetAllHabits(c.UserID, true)
	if err != nil {
		return models.Habit{}, err
	}
	for _, h := range habits {
		if h.Title == title && h.DeletedAt != nil {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("deleted habit %q not found", title)
}

// ParseDay parses an optional YYYY-MM-DD argument, defaulting to now.
func ParseDay(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return now, nil
	}
	day, err := time.ParseInLocation("2006-01-02", s, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", s)
	}
	// Noon keeps the instant inside the intended day across DST shifts.
	return day.Add(12 * time.Hour), nil
}

// PeriodNoun names the period a cadence spans, for user-facing messages
// ("Already completed this week").
func PeriodNoun(c period.Cadence) string {
	switch c {
	case period.Weekly:
		return "this week"
	case period.Monthly:
		return "this month"
	default:
		return "today"
	}
}

// FormatCadence renders a cadence for listings.
func FormatCadence(cadence string) string {
	c := period.ParseCadence(cadence)
	return string(c)
}

// TruncateTitle pads or shortens a title to a fixed column width.
func TruncateTitle(title string, width int) string {
	if len(title) > width {
		if width >= 5 {
			return title[:width-3] + "..."
		}
		return title[:width]
	}
	return title + strings.Repeat(" ", width-len(title))
}
