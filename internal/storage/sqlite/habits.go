package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage"
)

const habitColumns = "id, user_id, title, description, cadence, streak_count, last_completed, created_at, updated_at, deleted_at"

func scanHabit(row interface{ Scan(...any) error }) (models.Habit, error) {
	var h models.Habit
	var createdAt, updatedAt string
	var lastCompleted, deletedAt sql.NullString

	err := row.Scan(&h.ID, &h.UserID, &h.Title, &h.Description, &h.Cadence,
		&h.StreakCount, &lastCompleted, &createdAt, &updatedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Habit{}, storage.ErrNotFound
	}
	if err != nil {
		return models.Habit{}, err
	}

	if h.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at for habit %s: %w", h.ID, err)
	}
	if h.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse updated_at for habit %s: %w", h.ID, err)
	}
	if lastCompleted.Valid {
		t, err := time.Parse(time.RFC3339, lastCompleted.String)
		if err != nil {
			return models.Habit{}, fmt.Errorf("failed to parse last_completed for habit %s: %w", h.ID, err)
		}
		h.LastCompleted = &t
	}
	if deletedAt.Valid {
		t, err := time.Parse(time.RFC3339, deletedAt.String)
		if err != nil {
			return models.Habit{}, fmt.Errorf("failed to parse deleted_at for habit %s: %w", h.ID, err)
		}
		h.DeletedAt = &t
	}

	return h, nil
}

func (s *Store) AddHabit(habit models.Habit) error {
	if err := s.writeHabit(habit); err != nil {
		return err
	}
	s.feed.Publish(storage.Change{Resource: storage.ResourceHabits, Kind: storage.Created, ID: habit.ID})
	return nil
}

func (s *Store) UpdateHabit(habit models.Habit) error {
	if err := s.writeHabit(habit); err != nil {
		return err
	}
	s.feed.Publish(storage.Change{Resource: storage.ResourceHabits, Kind: storage.Updated, ID: habit.ID})
	return nil
}

func (s *Store) writeHabit(habit models.Habit) error {
	var lastCompleted, deletedAt sql.NullString
	if habit.LastCompleted != nil {
		lastCompleted = sql.NullString{String: habit.LastCompleted.UTC().Format(time.RFC3339), Valid: true}
	}
	if habit.DeletedAt != nil {
		deletedAt = sql.NullString{String: habit.DeletedAt.UTC().Format(time.RFC3339), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO habits (`+habitColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			cadence = excluded.cadence,
			streak_count = excluded.streak_count,
			last_completed = excluded.last_completed,
			updated_at = excluded.updated_at,
			deleted_at = excluded.deleted_at`,
		habit.ID, habit.UserID, habit.Title, habit.Description, habit.Cadence,
		habit.StreakCount, lastCompleted,
		habit.CreatedAt.UTC().Format(time.RFC3339), habit.UpdatedAt.UTC().Format(time.RFC3339), deletedAt)

	return err
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT `+habitColumns+` FROM habits WHERE id = ? AND deleted_at IS NULL`, id)
	return scanHabit(row)
}

func (s *Store) GetHabitByTitle(userID, title string) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT `+habitColumns+` FROM habits
		WHERE user_id = ? AND title = ? AND deleted_at IS NULL`, userID, title)
	return scanHabit(row)
}

func (s *Store) GetAllHabits(userID string, includeDeleted bool) ([]models.Habit, error) {
	query := "SELECT " + habitColumns + " FROM habits WHERE user_id = ?"
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	}
	query += " ORDER BY created_at"

	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}

	return habits, rows.Err()
}

func (s *Store) UpdateHabitStreak(id string, streakCount int, lastCompleted time.Time) error {
	result, err := s.db.Exec(`
		UPDATE habits SET streak_count = ?, last_completed = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`,
		streakCount, lastCompleted.UTC().Format(time.RFC3339), time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return storage.ErrNotFound
	}

	s.feed.Publish(storage.Change{Resource: storage.ResourceHabits, Kind: storage.Updated, ID: id})
	return nil
}

func (s *Store) DeleteHabit(id string) error {
	result, err := s.db.Exec(`
		UPDATE habits SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("habit not found or already deleted")
	}

	s.feed.Publish(storage.Change{Resource: storage.ResourceHabits, Kind: storage.Deleted, ID: id})
	return nil
}

func (s *Store) RestoreHabit(id string) error {
	result, err := s.db.Exec(`
		UPDATE habits SET deleted_at = NULL WHERE id = ? AND deleted_at IS NOT NULL`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("habit not found or not deleted")
	}

	s.feed.Publish(storage.Change{Resource: storage.ResourceHabits, Kind: storage.Updated, ID: id})
	return nil
}
