package postgres

import (
	"fmt"

	"cadence/internal/models"
)

func (s *Store) GetSettings() (models.Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	settings := models.Settings{}
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		switch key {
		case "week_start_day":
			if _, err := fmt.Sscanf(value, "%d", &settings.WeekStartDay); err != nil {
				return models.Settings{}, fmt.Errorf("parsing week_start_day: %w", err)
			}
		case "timezone":
			settings.Timezone = value
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}

	if count == 0 {
		return models.Settings{}, fmt.Errorf("settings not found")
	}
	return settings, nil
}

func (s *Store) SaveSettings(settings models.Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	if _, err := stmt.Exec("week_start_day", fmt.Sprintf("%d", settings.WeekStartDay)); err != nil {
		return err
	}
	if _, err := stmt.Exec("timezone", settings.Timezone); err != nil {
		return err
	}

	return tx.Commit()
}
