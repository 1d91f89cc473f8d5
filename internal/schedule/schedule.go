package schedule

import (
	"cadence/internal/calendar"
	"cadence/internal/models"
)

// IsDue reports whether the habit is due on the given day. A habit whose
// schedule lists no days is due every day. Active/inactive filtering is the
// caller's concern; this only answers the scheduling question.
func IsDue(habit models.Habit, day calendar.Descriptor) bool {
	if len(habit.Schedule.Days) == 0 {
		return true
	}
	for _, wd := range habit.Schedule.Days {
		if wd == day.Weekday {
			return true
		}
	}
	return false
}

// DueOn filters habits to those due on the given day, preserving input order.
func DueOn(habits []models.Habit, day calendar.Descriptor) []models.Habit {
	due := make([]models.Habit, 0, len(habits))
	for _, h := range habits {
		if IsDue(h, day) {
			due = append(due, h)
		}
	}
	return due
}
