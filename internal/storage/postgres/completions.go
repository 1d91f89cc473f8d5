package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"cadence/internal/models"
)

const completionColumns = "habit_id, day, completed, value, timestamp"

func scanCompletion(scan func(dest ...any) error) (models.Completion, error) {
	var c models.Completion
	var timestamp string

	if err := scan(&c.HabitID, &c.Day, &c.Completed, &c.Value, &timestamp); err != nil {
		return models.Completion{}, err
	}

	var err error
	c.Timestamp, err = time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return models.Completion{}, fmt.Errorf("failed to parse timestamp: %w", err)
	}
	return c, nil
}

// UpsertCompletion writes the record for (habit_id, day), replacing any
// previous record for that key.
func (s *Store) UpsertCompletion(c models.Completion) error {
	_, err := s.db.Exec(`
		INSERT INTO completions (`+completionColumns+`)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (habit_id, day) DO UPDATE SET
			completed = EXCLUDED.completed,
			value = EXCLUDED.value,
			timestamp = EXCLUDED.timestamp`,
		c.HabitID, c.Day, c.Completed, c.Value, c.Timestamp.Format(time.RFC3339))
	return err
}

func (s *Store) GetCompletion(habitID, day string) (models.Completion, error) {
	row := s.db.QueryRow(`
		SELECT `+completionColumns+`
		FROM completions WHERE habit_id = $1 AND day = $2`, habitID, day)
	return scanCompletion(row.Scan)
}

func (s *Store) GetCompletionsForHabit(habitID, startDay, endDay string) ([]models.Completion, error) {
	rows, err := s.db.Query(`
		SELECT `+completionColumns+`
		FROM completions
		WHERE habit_id = $1 AND day >= $2 AND day <= $3
		ORDER BY day`, habitID, startDay, endDay)
	if err != nil {
		return nil, err
	}
	return collectCompletions(rows)
}

func (s *Store) GetCompletionsForRange(startDay, endDay string) ([]models.Completion, error) {
	rows, err := s.db.Query(`
		SELECT `+completionColumns+`
		FROM completions
		WHERE day >= $1 AND day <= $2
		ORDER BY day, habit_id`, startDay, endDay)
	if err != nil {
		return nil, err
	}
	return collectCompletions(rows)
}

func (s *Store) GetAllCompletions() ([]models.Completion, error) {
	rows, err := s.db.Query(`SELECT ` + completionColumns + ` FROM completions ORDER BY day, habit_id`)
	if err != nil {
		return nil, err
	}
	return collectCompletions(rows)
}

func (s *Store) DeleteCompletion(habitID, day string) error {
	_, err := s.db.Exec(`DELETE FROM completions WHERE habit_id = $1 AND day = $2`, habitID, day)
	return err
}

func collectCompletions(rows *sql.Rows) ([]models.Completion, error) {
	defer rows.Close()

	var completions []models.Completion
	for rows.Next() {
		c, err := scanCompletion(rows.Scan)
		if err != nil {
			return nil, err
		}
		completions = append(completions, c)
	}
	return completions, rows.Err()
}
