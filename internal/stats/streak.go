package stats

import (
	"time"

	"cadence/internal/calendar"
	"cadence/internal/models"
	"cadence/internal/schedule"
)

// Streak holds a habit's completion run lengths, counted over scheduled
// days only.
type Streak struct {
	Current int
	Longest int
}

// HabitStreak scans the habit's scheduled days forward from its earliest
// record through asOf. A scheduled day with a completed record extends the
// run, a scheduled day without one breaks it, and days the habit is not due
// are skipped without doing either. The trailing run at asOf is the current
// streak. A habit with no records has no streak.
func HabitStreak(habit models.Habit, src Source, asOf time.Time) (Streak, error) {
	entries := src.EntriesForHabit(habit.ID)
	if len(entries) == 0 {
		return Streak{}, nil
	}

	first := ""
	for day := range entries {
		if first == "" || day < first {
			first = day
		}
	}
	asOfKey := calendar.DayKey(asOf)
	if asOfKey < first {
		return Streak{}, nil
	}

	days, err := calendar.Range(first, asOfKey, asOf)
	if err != nil {
		return Streak{}, err
	}

	var st Streak
	run := 0
	for _, d := range days {
		if !schedule.IsDue(habit, d) {
			continue
		}
		if rec, ok := entries[d.Key]; ok && rec.Completed {
			run++
			if run > st.Longest {
				st.Longest = run
			}
		} else {
			run = 0
		}
	}
	st.Current = run
	return st, nil
}
