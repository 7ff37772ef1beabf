package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage"
)

const completionColumns = "id, habit_id, user_id, completed_at, created_at"

func scanCompletion(row interface{ Scan(...any) error }) (models.Completion, error) {
	var c models.Completion
	var completedAt, createdAt string

	err := row.Scan(&c.ID, &c.HabitID, &c.UserID, &completedAt, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Completion{}, storage.ErrNotFound
	}
	if err != nil {
		return models.Completion{}, err
	}

	if c.CompletedAt, err = time.Parse(time.RFC3339, completedAt); err != nil {
		return models.Completion{}, fmt.Errorf("failed to parse completed_at for completion %s: %w", c.ID, err)
	}
	if c.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return models.Completion{}, fmt.Errorf("failed to parse created_at for completion %s: %w", c.ID, err)
	}

	return c, nil
}

func (s *Store) AddCompletion(completion models.Completion) error {
	_, err := s.db.Exec(`
		INSERT INTO completions (`+completionColumns+`) VALUES (?, ?, ?, ?, ?)`,
		completion.ID, completion.HabitID, completion.UserID,
		completion.CompletedAt.UTC().Format(time.RFC3339),
		completion.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}

	s.feed.Publish(storage.Change{Resource: storage.ResourceCompletions, Kind: storage.Created, ID: completion.ID})
	return nil
}

func (s *Store) GetCompletion(id string) (models.Completion, error) {
	row := s.db.QueryRow(`SELECT `+completionColumns+` FROM completions WHERE id = ?`, id)
	return scanCompletion(row)
}

// Timestamps are stored as UTC RFC3339 text, so lexicographic range
// comparisons line up with chronological order.

func (s *Store) ListCompletions(userID, habitID string, since time.Time, limit, offset int) ([]models.Completion, error) {
	query := `SELECT ` + completionColumns + ` FROM completions WHERE user_id = ? AND completed_at >= ?`
	args := []any{userID, since.UTC().Format(time.RFC3339)}
	if habitID != "" {
		query += " AND habit_id = ?"
		args = append(args, habitID)
	}
	query += " ORDER BY completed_at LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCompletions(rows)
}

func (s *Store) ListCompletionsBetween(userID, habitID string, from, to time.Time) ([]models.Completion, error) {
	rows, err := s.db.Query(`
		SELECT `+completionColumns+` FROM completions
		WHERE user_id = ? AND habit_id = ? AND completed_at >= ? AND completed_at < ?
		ORDER BY completed_at`,
		userID, habitID, from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCompletions(rows)
}

func collectCompletions(rows *sql.Rows) ([]models.Completion, error) {
	var completions []models.Completion
	for rows.Next() {
		c, err := scanCompletion(rows)
		if err != nil {
			return nil, err
		}
		completions = append(completions, c)
	}
	return completions, rows.Err()
}

func (s *Store) DeleteCompletion(id string) error {
	result, err := s.db.Exec(`DELETE FROM completions WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("completion not found")
	}

	s.feed.Publish(storage.Change{Resource: storage.ResourceCompletions, Kind: storage.Deleted, ID: id})
	return nil
}
