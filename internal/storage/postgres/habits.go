package postgres

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
	var lastCompleted, deletedAt sql.NullTime

	err := row.Scan(&h.ID, &h.UserID, &h.Title, &h.Description, &h.Cadence,
		&h.StreakCount, &lastCompleted, &h.CreatedAt, &h.UpdatedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Habit{}, storage.ErrNotFound
	}
	if err != nil {
		return models.Habit{}, err
	}

	if lastCompleted.Valid {
		t := lastCompleted.Time
		h.LastCompleted = &t
	}
	if deletedAt.Valid {
		t := deletedAt.Time
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
	var lastCompleted, deletedAt sql.NullTime
	if habit.LastCompleted != nil {
		lastCompleted = sql.NullTime{Time: *habit.LastCompleted, Valid: true}
	}
	if habit.DeletedAt != nil {
		deletedAt = sql.NullTime{Time: *habit.DeletedAt, Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO habits (`+habitColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			cadence = excluded.cadence,
			streak_count = excluded.streak_count,
			last_completed = excluded.last_completed,
			updated_at = excluded.updated_at,
			deleted_at = excluded.deleted_at`,
		habit.ID, habit.UserID, habit.Title, habit.Description, habit.Cadence,
		habit.StreakCount, lastCompleted, habit.CreatedAt, habit.UpdatedAt, deletedAt)

	return err
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT `+habitColumns+` FROM habits WHERE id = $1 AND deleted_at IS NULL`, id)
	return scanHabit(row)
}

func (s *Store) GetHabitByTitle(userID, title string) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT `+habitColumns+` FROM habits
		WHERE user_id = $1 AND title = $2 AND deleted_at IS NULL`, userID, title)
	return scanHabit(row)
}

func (s *Store) GetAllHabits(userID string, includeDeleted bool) ([]models.Habit, error) {
	query := "SELECT " + habitColumns + " FROM habits WHERE user_id = $1"
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
		UPDATE habits SET streak_count = $1, last_completed = $2, updated_at = $3
		WHERE id = $4 AND deleted_at IS NULL`,
		streakCount, lastCompleted, time.Now(), id)
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
		UPDATE habits SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`,
		time.Now(), id)
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
		UPDATE habits SET deleted_at = NULL WHERE id = $1 AND deleted_at IS NOT NULL`, id)
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
