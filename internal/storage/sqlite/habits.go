package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"cadence/internal/models"
)

func encodeScheduleDays(days []time.Weekday) string {
	if len(days) == 0 {
		return ""
	}
	ints := make([]int, 0, len(days))
	for _, d := range days {
		ints = append(ints, int(d))
	}
	b, _ := json.Marshal(ints)
	return string(b)
}

func decodeScheduleDays(encoded string) []time.Weekday {
	if encoded == "" {
		return nil
	}
	var ints []int
	if err := json.Unmarshal([]byte(encoded), &ints); err != nil {
		return nil
	}
	days := make([]time.Weekday, 0, len(ints))
	for _, i := range ints {
		days = append(days, time.Weekday(i))
	}
	return days
}

const habitColumns = "id, name, color, icon, category, is_active, schedule_days, reminder, created_at, deleted_at"

func scanHabit(scan func(dest ...any) error) (models.Habit, error) {
	var h models.Habit
	var active int
	var scheduleDays, createdAt string
	var deletedAt sql.NullString

	err := scan(&h.ID, &h.Name, &h.Color, &h.Icon, &h.Category, &active,
		&scheduleDays, &h.Schedule.Reminder, &createdAt, &deletedAt)
	if err != nil {
		return models.Habit{}, err
	}

	h.IsActive = active != 0
	h.Schedule.Days = decodeScheduleDays(scheduleDays)
	h.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if deletedAt.Valid {
		t, err := time.Parse(time.RFC3339, deletedAt.String)
		if err != nil {
			return models.Habit{}, fmt.Errorf("failed to parse deleted_at: %w", err)
		}
		h.DeletedAt = &t
	}
	return h, nil
}

func (s *Store) AddHabit(habit models.Habit) error {
	return s.UpdateHabit(habit)
}

func (s *Store) UpdateHabit(habit models.Habit) error {
	var deletedAt sql.NullString
	if habit.DeletedAt != nil {
		deletedAt = sql.NullString{String: habit.DeletedAt.Format(time.RFC3339), Valid: true}
	}
	active := 0
	if habit.IsActive {
		active = 1
	}

	_, err := s.db.Exec(`
		INSERT INTO habits (`+habitColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			color = excluded.color,
			icon = excluded.icon,
			category = excluded.category,
			is_active = excluded.is_active,
			schedule_days = excluded.schedule_days,
			reminder = excluded.reminder,
			created_at = excluded.created_at,
			deleted_at = excluded.deleted_at`,
		habit.ID, habit.Name, habit.Color, habit.Icon, habit.Category, active,
		encodeScheduleDays(habit.Schedule.Days), habit.Schedule.Reminder,
		habit.CreatedAt.Format(time.RFC3339), deletedAt)
	return err
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT `+habitColumns+`
		FROM habits WHERE id = ? AND deleted_at IS NULL`, id)
	return scanHabit(row.Scan)
}

func (s *Store) GetHabitByName(name string) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT `+habitColumns+`
		FROM habits WHERE name = ? COLLATE NOCASE AND deleted_at IS NULL`, name)
	return scanHabit(row.Scan)
}

func (s *Store) GetAllHabits(includeInactive, includeDeleted bool) ([]models.Habit, error) {
	query := "SELECT " + habitColumns + " FROM habits WHERE 1=1"
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	}
	if !includeInactive {
		query += " AND is_active = 1"
	}
	query += " ORDER BY created_at"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows.Scan)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *Store) DeleteHabit(id string) error {
	res, err := s.db.Exec(`UPDATE habits SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		time.Now().Format(time.RFC3339), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("habit %s not found", id)
	}
	return nil
}

func (s *Store) RestoreHabit(id string) error {
	res, err := s.db.Exec(`UPDATE habits SET deleted_at = NULL WHERE id = ? AND deleted_at IS NOT NULL`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("no deleted habit %s to restore", id)
	}
	return nil
}
