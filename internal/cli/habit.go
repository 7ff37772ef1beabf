package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage"
)

type HabitCmd struct {
	Add     HabitAddCmd     `cmd:"" help:"Add a new habit."`
	List    HabitListCmd    `cmd:"" help:"List habits."`
	Edit    HabitEditCmd    `cmd:"" help:"Edit an existing habit."`
	Delete  HabitDeleteCmd  `cmd:"" help:"Delete a habit (soft delete)."`
	Restore HabitRestoreCmd `cmd:"" help:"Restore a deleted habit."`
}

type HabitAddCmd struct {
	Title       string `arg:"" help:"Habit title."`
	Cadence     string `help:"Cadence: daily, weekly, or monthly." default:"daily"`
	Description string `help:"Optional description."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	// Reject duplicate titles among active habits
	_, err := ctx.Store.GetHabitByTitle(ctx.UserID, c.Title)
	if err == nil {
		return fmt.Errorf("habit with title %q already exists", c.Title)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	now := time.Now()
	habit := models.Habit{
		ID:          uuid.New().String(),
		UserID:      ctx.UserID,
		Title:       c.Title,
		Description: c.Description,
		Cadence:     c.Cadence,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	habit.NormalizeCadence()
	if err := habit.Validate(); err != nil {
		return err
	}

	if err := ctx.Store.AddHabit(habit); err != nil {
		return err
	}

	fmt.Printf("Added habit: %s (%s)\n", habit.Title, habit.Cadence)
	return nil
}

type HabitListCmd struct {
	Deleted bool `help:"Include deleted habits."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	habits, err := ctx.Store.GetAllHabits(ctx.UserID, c.Deleted)
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	for _, habit := range habits {
		status := ""
		if habit.DeletedAt != nil {
			status = " [DELETED]"
		}
		fmt.Printf("%s  (%s, streak %d)%s\n", habit.Title, FormatCadence(habit.Cadence), habit.StreakCount, status)
		if habit.Description != "" {
			fmt.Printf("  %s\n", habit.Description)
		}
	}
	return nil
}

type HabitEditCmd struct {
	Title       string `arg:"" help:"Habit title to edit."`
	Rename      string `help:"New title."`
	Cadence     string `help:"New cadence: daily, weekly, or monthly."`
	Description string `help:"New description."`
	ClearDesc   bool   `help:"Clear the description."`
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	habit, err := ctx.FindHabit(c.Title)
	if err != nil {
		return err
	}

	if c.Rename != "" && c.Rename != habit.Title {
		if _, err := ctx.Store.GetHabitByTitle(ctx.UserID, c.Rename); err == nil {
			return fmt.Errorf("habit with title %q already exists", c.Rename)
		} else if !errors.Is(err, storage.ErrNotFound) {
			return err
		}
		habit.Title = c.Rename
	}
	if c.Cadence != "" {
		habit.Cadence = c.Cadence
		habit.NormalizeCadence()
	}
	if c.ClearDesc {
		habit.Description = ""
	} else if c.Description != "" {
		habit.Description = c.Description
	}
	habit.UpdatedAt = time.Now()

	if err := habit.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.UpdateHabit(habit); err != nil {
		return err
	}

	fmt.Printf("Updated habit: %s\n", habit.Title)
	return nil
}

type HabitDeleteCmd struct {
	Title string `arg:"" help:"Habit title to delete."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	habit, err := ctx.FindHabit(c.Title)
	if err != nil {
		return err
	}

	if err := ctx.Store.DeleteHabit(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted habit: %s\n", habit.Title)
	fmt.Println("(This is a soft delete. Use 'habitual habit restore' to undo)")
	return nil
}

type HabitRestoreCmd struct {
	Title string `arg:"" help:"Habit title to restore."`
}

func (c *HabitRestoreCmd) Run(ctx *Context) error {
	habit, err := ctx.FindDeletedHabit(c.Title)
	if err != nil {
		return err
	}

	if err := ctx.Store.RestoreHabit(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Restored habit: %s\n", habit.Title)
	return nil
}
