package postgres

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

	err := row.Scan(&c.ID, &c.HabitID, &c.UserID, &c.CompletedAt, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Completion{}, storage.ErrNotFound
	}
	if err != nil {
		return models.Completion{}, err
	}

	return c, nil
}

func (s *Store) AddCompletion(completion models.Completion) error {
	_, err := s.db.Exec(`
		INSERT INTO completions (`+completionColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		completion.ID, completion.HabitID, completion.UserID,
		completion.CompletedAt, completion.CreatedAt)
	if err != nil {
		return err
	}

	s.feed.Publish(storage.Change{Resource: storage.ResourceCompletions, Kind: storage.Created, ID: completion.ID})
	return nil
}

func (s *Store) GetCompletion(id string) (models.Completion, error) {
	row := s.db.QueryRow(`SELECT `+completionColumns+` FROM completions WHERE id = $1`, id)
	return scanCompletion(row)
}

func (s *Store) ListCompletions(userID, habitID string, since time.Time, limit, offset int) ([]models.Completion, error) {
	query := `SELECT ` + completionColumns + ` FROM completions WHERE user_id = $1 AND completed_at >= $2`
	args := []any{userID, since}
	if habitID != "" {
		query += " AND habit_id = $3 ORDER BY completed_at LIMIT $4 OFFSET $5"
		args = append(args, habitID, limit, offset)
	} else {
		query += " ORDER BY completed_at LIMIT $3 OFFSET $4"
		args = append(args, limit, offset)
	}

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
		WHERE user_id = $1 AND habit_id = $2 AND completed_at >= $3 AND completed_at < $4
		ORDER BY completed_at`,
		userID, habitID, from, to)
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
	result, err := s.db.Exec(`DELETE FROM completions WHERE id = $1`, id)
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
