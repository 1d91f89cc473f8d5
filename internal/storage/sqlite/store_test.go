package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"cadence/internal/models"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testHabit(id, name string, days ...time.Weekday) models.Habit {
	return models.Habit{
		ID:        id,
		Name:      name,
		IsActive:  true,
		Schedule:  models.Schedule{Days: days},
		CreatedAt: time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestLoadUninitialized(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); err == nil {
		t.Error("expected Load to fail for an uninitialized database")
	}
}

func TestInitSeedsDefaultSettings(t *testing.T) {
	store := setupTestStore(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings.WeekStartDay != 1 {
		t.Errorf("expected default week start day 1, got %d", settings.WeekStartDay)
	}
	if settings.Timezone != "Local" {
		t.Errorf("expected default timezone Local, got %q", settings.Timezone)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	store := setupTestStore(t)

	want := models.Settings{WeekStartDay: 0, Timezone: "America/New_York"}
	if err := store.SaveSettings(want); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	got, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if got != want {
		t.Errorf("settings round trip: got %+v, want %+v", got, want)
	}
}

func TestHabitRoundTrip(t *testing.T) {
	store := setupTestStore(t)

	want := testHabit("h1", "Morning stretch", time.Monday, time.Wednesday, time.Friday)
	want.Color = "blue"
	want.Category = "health"
	want.Schedule.Reminder = "07:30"

	if err := store.AddHabit(want); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}

	got, err := store.GetHabit("h1")
	if err != nil {
		t.Fatalf("GetHabit failed: %v", err)
	}
	if got.Name != want.Name || got.Color != want.Color || got.Category != want.Category {
		t.Errorf("habit fields lost in round trip: got %+v", got)
	}
	if len(got.Schedule.Days) != 3 || got.Schedule.Days[0] != time.Monday {
		t.Errorf("schedule days lost in round trip: got %v", got.Schedule.Days)
	}
	if got.Schedule.Reminder != "07:30" {
		t.Errorf("reminder lost in round trip: got %q", got.Schedule.Reminder)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("created_at changed: got %v, want %v", got.CreatedAt, want.CreatedAt)
	}
}

func TestHabitDailySchedule(t *testing.T) {
	store := setupTestStore(t)

	if err := store.AddHabit(testHabit("h1", "Journal")); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}
	got, err := store.GetHabit("h1")
	if err != nil {
		t.Fatalf("GetHabit failed: %v", err)
	}
	if len(got.Schedule.Days) != 0 {
		t.Errorf("expected empty schedule days for a daily habit, got %v", got.Schedule.Days)
	}
}

func TestGetHabitByNameCaseInsensitive(t *testing.T) {
	store := setupTestStore(t)

	if err := store.AddHabit(testHabit("h1", "Read")); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}
	got, err := store.GetHabitByName("READ")
	if err != nil {
		t.Fatalf("GetHabitByName failed: %v", err)
	}
	if got.ID != "h1" {
		t.Errorf("expected habit h1, got %s", got.ID)
	}
}

func TestGetAllHabitsFilters(t *testing.T) {
	store := setupTestStore(t)

	active := testHabit("h1", "Active")
	inactive := testHabit("h2", "Paused")
	inactive.IsActive = false
	deleted := testHabit("h3", "Gone")

	for _, h := range []models.Habit{active, inactive, deleted} {
		if err := store.AddHabit(h); err != nil {
			t.Fatalf("AddHabit failed: %v", err)
		}
	}
	if err := store.DeleteHabit("h3"); err != nil {
		t.Fatalf("DeleteHabit failed: %v", err)
	}

	habits, err := store.GetAllHabits(false, false)
	if err != nil {
		t.Fatalf("GetAllHabits failed: %v", err)
	}
	if len(habits) != 1 || habits[0].ID != "h1" {
		t.Errorf("expected only active habit, got %v", habits)
	}

	habits, err = store.GetAllHabits(true, false)
	if err != nil {
		t.Fatalf("GetAllHabits failed: %v", err)
	}
	if len(habits) != 2 {
		t.Errorf("expected 2 habits with inactive included, got %d", len(habits))
	}

	habits, err = store.GetAllHabits(true, true)
	if err != nil {
		t.Fatalf("GetAllHabits failed: %v", err)
	}
	if len(habits) != 3 {
		t.Errorf("expected 3 habits with deleted included, got %d", len(habits))
	}
}

func TestSoftDeleteAndRestore(t *testing.T) {
	store := setupTestStore(t)

	if err := store.AddHabit(testHabit("h1", "Read")); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}
	if err := store.DeleteHabit("h1"); err != nil {
		t.Fatalf("DeleteHabit failed: %v", err)
	}

	if _, err := store.GetHabit("h1"); err == nil {
		t.Error("expected GetHabit to miss a deleted habit")
	}
	if err := store.DeleteHabit("h1"); err == nil {
		t.Error("expected second delete to fail")
	}

	if err := store.RestoreHabit("h1"); err != nil {
		t.Fatalf("RestoreHabit failed: %v", err)
	}
	got, err := store.GetHabit("h1")
	if err != nil {
		t.Fatalf("GetHabit after restore failed: %v", err)
	}
	if got.DeletedAt != nil {
		t.Error("expected DeletedAt cleared after restore")
	}
	if err := store.RestoreHabit("h1"); err == nil {
		t.Error("expected restore of a live habit to fail")
	}
}

func TestUpsertCompletionReplaces(t *testing.T) {
	store := setupTestStore(t)

	if err := store.AddHabit(testHabit("h1", "Read")); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}

	first := models.Completion{
		HabitID:   "h1",
		Day:       "2026-08-24",
		Completed: true,
		Value:     1,
		Timestamp: time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC),
	}
	if err := store.UpsertCompletion(first); err != nil {
		t.Fatalf("UpsertCompletion failed: %v", err)
	}

	second := first
	second.Completed = false
	second.Value = 2
	if err := store.UpsertCompletion(second); err != nil {
		t.Fatalf("second UpsertCompletion failed: %v", err)
	}

	all, err := store.GetAllCompletions()
	if err != nil {
		t.Fatalf("GetAllCompletions failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected exactly one record per habit per day, got %d", len(all))
	}
	if all[0].Completed || all[0].Value != 2 {
		t.Errorf("upsert did not replace record: got %+v", all[0])
	}
}

func TestCompletionRangeQueries(t *testing.T) {
	store := setupTestStore(t)

	for _, id := range []string{"h1", "h2"} {
		if err := store.AddHabit(testHabit(id, "Habit "+id)); err != nil {
			t.Fatalf("AddHabit failed: %v", err)
		}
	}

	days := []string{"2026-08-22", "2026-08-24", "2026-08-26"}
	for _, day := range days {
		for _, id := range []string{"h1", "h2"} {
			rec := models.Completion{
				HabitID:   id,
				Day:       day,
				Completed: true,
				Value:     1,
				Timestamp: time.Date(2026, 8, 26, 20, 0, 0, 0, time.UTC),
			}
			if err := store.UpsertCompletion(rec); err != nil {
				t.Fatalf("UpsertCompletion failed: %v", err)
			}
		}
	}

	forHabit, err := store.GetCompletionsForHabit("h1", "2026-08-23", "2026-08-26")
	if err != nil {
		t.Fatalf("GetCompletionsForHabit failed: %v", err)
	}
	if len(forHabit) != 2 {
		t.Errorf("expected 2 records in range for h1, got %d", len(forHabit))
	}
	for i := 1; i < len(forHabit); i++ {
		if forHabit[i].Day < forHabit[i-1].Day {
			t.Error("records not ordered by day")
		}
	}

	forRange, err := store.GetCompletionsForRange("2026-08-24", "2026-08-24")
	if err != nil {
		t.Fatalf("GetCompletionsForRange failed: %v", err)
	}
	if len(forRange) != 2 {
		t.Errorf("expected 2 records across habits for one day, got %d", len(forRange))
	}

	if err := store.DeleteCompletion("h1", "2026-08-24"); err != nil {
		t.Fatalf("DeleteCompletion failed: %v", err)
	}
	if _, err := store.GetCompletion("h1", "2026-08-24"); err == nil {
		t.Error("expected deleted completion to be gone")
	}
}
