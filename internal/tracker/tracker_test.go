package tracker

import (
	"errors"
	"testing"
	"time"

	"cadence/internal/calendar"
	"cadence/internal/models"
)

var testNow = time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

func newTestStore() *Store {
	return New([]models.Habit{
		{ID: "h1", Name: "read"},
		{ID: "h2", Name: "run"},
	})
}

func TestSet(t *testing.T) {
	t.Run("creates a record", func(t *testing.T) {
		s := newTestStore()
		rec, err := s.Set("h1", "2026-08-30", true, 0, testNow)
		if err != nil {
			t.Fatalf("Set() returned error: %v", err)
		}
		if !rec.Completed {
			t.Error("record not completed")
		}
		if rec.Value != 1 {
			t.Errorf("value = %v, want default 1", rec.Value)
		}
		if got, ok := s.Get("h1", "2026-08-30"); !ok || got != rec {
			t.Errorf("Get() = %+v, %v; want stored record", got, ok)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		s := newTestStore()
		first, err := s.Set("h1", "2026-08-30", true, 2, testNow)
		if err != nil {
			t.Fatalf("Set() returned error: %v", err)
		}
		second, err := s.Set("h1", "2026-08-30", true, 2, testNow)
		if err != nil {
			t.Fatalf("second Set() returned error: %v", err)
		}
		if first != second {
			t.Errorf("repeated Set() produced %+v then %+v", first, second)
		}
		if entries := s.EntriesForHabit("h1"); len(entries) != 1 {
			t.Errorf("repeated Set() left %d records, want 1", len(entries))
		}
	})

	t.Run("explicit value is kept", func(t *testing.T) {
		s := newTestStore()
		rec, err := s.Set("h1", "2026-08-30", true, 3.5, testNow)
		if err != nil {
			t.Fatalf("Set() returned error: %v", err)
		}
		if rec.Value != 3.5 {
			t.Errorf("value = %v, want 3.5", rec.Value)
		}
	})

	t.Run("unknown habit", func(t *testing.T) {
		s := newTestStore()
		if _, err := s.Set("ghost", "2026-08-30", true, 0, testNow); !errors.Is(err, ErrUnknownHabit) {
			t.Errorf("Set() error = %v, want ErrUnknownHabit", err)
		}
	})

	t.Run("malformed day is rejected", func(t *testing.T) {
		s := newTestStore()
		if _, err := s.Set("h1", "08/30/2026", true, 0, testNow); err == nil {
			t.Error("Set() accepted a malformed day")
		}
	})
}

func TestToggle(t *testing.T) {
	t.Run("creates completed record when absent", func(t *testing.T) {
		s := newTestStore()
		rec, err := s.Toggle("h1", "2026-08-30", testNow)
		if err != nil {
			t.Fatalf("Toggle() returned error: %v", err)
		}
		if !rec.Completed || rec.Value != 1 {
			t.Errorf("Toggle() = %+v, want completed with value 1", rec)
		}
	})

	t.Run("flips off without deleting", func(t *testing.T) {
		s := newTestStore()
		if _, err := s.Toggle("h1", "2026-08-30", testNow); err != nil {
			t.Fatal(err)
		}
		rec, err := s.Toggle("h1", "2026-08-30", testNow)
		if err != nil {
			t.Fatalf("Toggle() returned error: %v", err)
		}
		if rec.Completed {
			t.Error("second Toggle() left record completed")
		}
		if _, ok := s.Get("h1", "2026-08-30"); !ok {
			t.Error("toggled-off record was deleted")
		}
	})

	t.Run("keeps value across toggles", func(t *testing.T) {
		s := newTestStore()
		if _, err := s.Set("h1", "2026-08-30", true, 5, testNow); err != nil {
			t.Fatal(err)
		}
		if _, err := s.Toggle("h1", "2026-08-30", testNow); err != nil {
			t.Fatal(err)
		}
		rec, err := s.Toggle("h1", "2026-08-30", testNow)
		if err != nil {
			t.Fatal(err)
		}
		if !rec.Completed || rec.Value != 5 {
			t.Errorf("record after toggle cycle = %+v, want completed with value 5", rec)
		}
	})

	t.Run("unknown habit", func(t *testing.T) {
		s := newTestStore()
		if _, err := s.Toggle("ghost", "2026-08-30", testNow); !errors.Is(err, ErrUnknownHabit) {
			t.Errorf("Toggle() error = %v, want ErrUnknownHabit", err)
		}
	})
}

func TestRemove(t *testing.T) {
	s := newTestStore()
	if _, err := s.Set("h1", "2026-08-30", true, 0, testNow); err != nil {
		t.Fatal(err)
	}
	if err := s.Remove("h1", "2026-08-30"); err != nil {
		t.Fatalf("Remove() returned error: %v", err)
	}
	if _, ok := s.Get("h1", "2026-08-30"); ok {
		t.Error("record still present after Remove()")
	}
	// Removing again is a no-op.
	if err := s.Remove("h1", "2026-08-30"); err != nil {
		t.Errorf("Remove() of absent record returned error: %v", err)
	}
	if err := s.Remove("ghost", "2026-08-30"); !errors.Is(err, ErrUnknownHabit) {
		t.Errorf("Remove() error = %v, want ErrUnknownHabit", err)
	}
}

func TestSeed(t *testing.T) {
	s := newTestStore()
	seeded := time.Date(2026, 8, 1, 7, 0, 0, 0, time.UTC)
	err := s.Seed([]models.Completion{
		{HabitID: "h1", Day: "2026-08-01", Completed: true, Value: 1, Timestamp: seeded},
		{HabitID: "h2", Day: "2026-08-01", Completed: false, Value: 0, Timestamp: seeded},
	})
	if err != nil {
		t.Fatalf("Seed() returned error: %v", err)
	}
	rec, ok := s.Get("h1", "2026-08-01")
	if !ok || !rec.Timestamp.Equal(seeded) {
		t.Errorf("seeded record = %+v, %v; want original timestamp preserved", rec, ok)
	}
	if err := s.Seed([]models.Completion{{HabitID: "ghost", Day: "2026-08-01"}}); !errors.Is(err, ErrUnknownHabit) {
		t.Errorf("Seed() error = %v, want ErrUnknownHabit", err)
	}
}

func TestEntriesForRange(t *testing.T) {
	s := newTestStore()
	for _, day := range []string{"2026-08-01", "2026-08-05", "2026-08-10"} {
		if _, err := s.Set("h1", day, true, 0, testNow); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := s.Set("h2", "2026-08-05", false, 0, testNow); err != nil {
		t.Fatal(err)
	}

	t.Run("bounds are inclusive", func(t *testing.T) {
		recs, err := s.EntriesForRange([]string{"h1", "h2"}, "2026-08-01", "2026-08-05")
		if err != nil {
			t.Fatalf("EntriesForRange() returned error: %v", err)
		}
		if len(recs) != 3 {
			t.Errorf("EntriesForRange() returned %d records, want 3", len(recs))
		}
	})

	t.Run("filters by habit", func(t *testing.T) {
		recs, err := s.EntriesForRange([]string{"h2"}, "2026-08-01", "2026-08-31")
		if err != nil {
			t.Fatalf("EntriesForRange() returned error: %v", err)
		}
		if len(recs) != 1 || recs[0].HabitID != "h2" {
			t.Errorf("EntriesForRange() = %+v, want single h2 record", recs)
		}
	})

	t.Run("invalid range", func(t *testing.T) {
		if _, err := s.EntriesForRange([]string{"h1"}, "2026-08-10", "2026-08-01"); !errors.Is(err, calendar.ErrInvalidRange) {
			t.Errorf("EntriesForRange() error = %v, want ErrInvalidRange", err)
		}
	})
}

func TestEntriesForHabitReturnsCopy(t *testing.T) {
	s := newTestStore()
	if _, err := s.Set("h1", "2026-08-30", true, 0, testNow); err != nil {
		t.Fatal(err)
	}
	entries := s.EntriesForHabit("h1")
	delete(entries, "2026-08-30")
	if _, ok := s.Get("h1", "2026-08-30"); !ok {
		t.Error("mutating the returned map changed the store")
	}
}
