package schedule

import (
	"testing"
	"time"

	"cadence/internal/calendar"
	"cadence/internal/models"
)

func descriptorFor(t *testing.T, key string) calendar.Descriptor {
	t.Helper()
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	days, err := calendar.Range(key, key, now)
	if err != nil {
		t.Fatalf("building descriptor for %s: %v", key, err)
	}
	return days[0]
}

func TestIsDue(t *testing.T) {
	tests := []struct {
		name  string
		days  []time.Weekday
		day   string // a known date; 2026-08-24 is a Monday
		want  bool
	}{
		{
			name: "empty schedule is due every day",
			days: nil,
			day:  "2026-08-29", // Saturday
			want: true,
		},
		{
			name: "weekday in mask",
			days: []time.Weekday{time.Monday, time.Wednesday, time.Friday},
			day:  "2026-08-26", // Wednesday
			want: true,
		},
		{
			name: "weekday not in mask",
			days: []time.Weekday{time.Monday, time.Wednesday, time.Friday},
			day:  "2026-08-27", // Thursday
			want: false,
		},
		{
			name: "single day schedule",
			days: []time.Weekday{time.Sunday},
			day:  "2026-08-30", // Sunday
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			habit := models.Habit{ID: "h1", Name: "test", Schedule: models.Schedule{Days: tt.days}}
			if got := IsDue(habit, descriptorFor(t, tt.day)); got != tt.want {
				t.Errorf("IsDue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsDueIgnoresActiveFlag(t *testing.T) {
	// Scheduling and the active flag are separate questions; callers filter
	// inactive habits themselves.
	habit := models.Habit{ID: "h1", IsActive: false}
	if !IsDue(habit, descriptorFor(t, "2026-08-24")) {
		t.Error("IsDue() = false for an inactive full-week habit")
	}
}

func TestDueOn(t *testing.T) {
	habits := []models.Habit{
		{ID: "a", Name: "daily"},
		{ID: "b", Name: "weekdays", Schedule: models.Schedule{Days: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
		}}},
		{ID: "c", Name: "weekend", Schedule: models.Schedule{Days: []time.Weekday{
			time.Saturday, time.Sunday,
		}}},
	}

	t.Run("filters by schedule", func(t *testing.T) {
		due := DueOn(habits, descriptorFor(t, "2026-08-29")) // Saturday
		if len(due) != 2 {
			t.Fatalf("DueOn() returned %d habits, want 2", len(due))
		}
		if due[0].ID != "a" || due[1].ID != "c" {
			t.Errorf("DueOn() = [%s %s], want [a c]", due[0].ID, due[1].ID)
		}
	})

	t.Run("preserves input order", func(t *testing.T) {
		due := DueOn(habits, descriptorFor(t, "2026-08-26")) // Wednesday
		if len(due) != 2 {
			t.Fatalf("DueOn() returned %d habits, want 2", len(due))
		}
		if due[0].ID != "a" || due[1].ID != "b" {
			t.Errorf("DueOn() = [%s %s], want [a b]", due[0].ID, due[1].ID)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if due := DueOn(nil, descriptorFor(t, "2026-08-26")); len(due) != 0 {
			t.Errorf("DueOn(nil) returned %d habits", len(due))
		}
	})
}
