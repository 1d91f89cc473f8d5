package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cadence/internal/backup"
	"cadence/internal/calendar"
	"cadence/internal/constants"
	"cadence/internal/logger"
	"cadence/internal/models"
	"cadence/internal/storage"
	"cadence/internal/tracker"
	"cadence/internal/utils"
)

type Context struct {
	Store storage.Provider
	Debug bool
}

// PerformAutomaticBackup creates an automatic backup and silently handles
// errors. Only local SQLite databases are backed up.
func (c *Context) PerformAutomaticBackup() {
	if storage.IsPostgresConnString(c.Store.GetConfigPath()) {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Settings returns the stored settings, falling back to defaults when the
// store has none yet.
func (c *Context) Settings() models.Settings {
	settings, err := c.Store.GetSettings()
	if err != nil {
		logger.Warn("Failed to load settings, using defaults", "error", err)
		return models.Settings{
			WeekStartDay: constants.DefaultWeekStartDay,
			Timezone:     constants.DefaultTimezone,
		}
	}
	return settings
}

// Now returns the current time in the configured timezone.
func (c *Context) Now() time.Time {
	settings := c.Settings()
	now, err := utils.NowFromSettings(settings)
	if err != nil {
		logger.Warn("Invalid timezone in settings", "timezone", settings.Timezone, "error", err)
		return time.Now()
	}
	return now
}

// ResolveDay turns a --date flag into a day key, defaulting to today in
// the configured timezone.
func (c *Context) ResolveDay(date string) (string, error) {
	if date == "" {
		return calendar.DayKey(c.Now()), nil
	}
	key, err := calendar.NormalizeKey(date)
	if err != nil {
		return "", fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", date)
	}
	return key, nil
}

// LoadTracker hydrates an in-memory completion store from the database.
func (c *Context) LoadTracker(habits []models.Habit) (*tracker.Store, error) {
	store := tracker.New(habits)
	records, err := c.Store.GetAllCompletions()
	if err != nil {
		return nil, fmt.Errorf("failed to load completions: %w", err)
	}
	// Records may reference inactive or deleted habits that are not in the
	// working set; register them so history is not silently dropped.
	for _, rec := range records {
		store.Register(rec.HabitID)
	}
	if err := store.Seed(records); err != nil {
		return nil, err
	}
	return store, nil
}

// ActiveHabits returns the habits the engine schedules, in creation order.
func (c *Context) ActiveHabits() ([]models.Habit, error) {
	return c.Store.GetAllHabits(false, false)
}

// ParseWeekdays parses a comma-separated list of weekdays, accepting both
// names and numbers (0=Sunday, 6=Saturday).
func ParseWeekdays(s string) ([]time.Weekday, error) {
	dayMap := map[string]time.Weekday{
		"sun": time.Sunday, "sunday": time.Sunday,
		"mon": time.Monday, "monday": time.Monday,
		"tue": time.Tuesday, "tuesday": time.Tuesday,
		"wed": time.Wednesday, "wednesday": time.Wednesday,
		"thu": time.Thursday, "thursday": time.Thursday,
		"fri": time.Friday, "friday": time.Friday,
		"sat": time.Saturday, "saturday": time.Saturday,
	}

	var weekdays []time.Weekday
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if wd, ok := dayMap[part]; ok {
			weekdays = append(weekdays, wd)
			continue
		}
		num, err := strconv.Atoi(part)
		if err != nil || num < 0 || num > 6 {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
		weekdays = append(weekdays, time.Weekday(num))
	}
	return weekdays, nil
}

// FormatSchedule formats a habit schedule into a human-readable string.
func FormatSchedule(schedule models.Schedule) string {
	if len(schedule.Days) == 0 {
		return "daily"
	}
	var days []string
	for _, wd := range schedule.Days {
		days = append(days, wd.String()[:3])
	}
	return strings.Join(days, ",")
}

// FormatRate renders a nullable percentage for display.
func FormatRate(rate *int) string {
	if rate == nil {
		return "-"
	}
	return fmt.Sprintf("%d%%", *rate)
}
