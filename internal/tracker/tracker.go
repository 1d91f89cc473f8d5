package tracker

import (
	"errors"
	"fmt"
	"time"

	"cadence/internal/calendar"
	"cadence/internal/models"
)

// ErrUnknownHabit is returned when a mutation targets a habit that was never
// registered with the store.
var ErrUnknownHabit = errors.New("unknown habit")

// Store is the in-memory completion working set, keyed by (habit id, day).
// Callers hydrate it from the persistence provider, mutate it, and persist
// the records Set and Toggle return. It is not safe for concurrent use;
// serializing writes across callers is the persistence layer's job.
type Store struct {
	habits  map[string]struct{}
	entries map[string]map[string]models.Completion
}

// New creates a store accepting mutations for the given habits.
func New(habits []models.Habit) *Store {
	s := &Store{
		habits:  make(map[string]struct{}, len(habits)),
		entries: make(map[string]map[string]models.Completion),
	}
	for _, h := range habits {
		s.habits[h.ID] = struct{}{}
	}
	return s
}

// Register adds a habit id to the set of habits the store accepts
// mutations for.
func (s *Store) Register(habitID string) {
	s.habits[habitID] = struct{}{}
}

// Seed loads existing records without touching their timestamps. Records
// for unregistered habits are rejected.
func (s *Store) Seed(records []models.Completion) error {
	for _, rec := range records {
		day, err := calendar.NormalizeKey(rec.Day)
		if err != nil {
			return err
		}
		if _, ok := s.habits[rec.HabitID]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownHabit, rec.HabitID)
		}
		rec.Day = day
		s.put(rec)
	}
	return nil
}

// Get returns the record for (habitID, day) if one exists.
func (s *Store) Get(habitID, day string) (models.Completion, bool) {
	day, err := calendar.NormalizeKey(day)
	if err != nil {
		return models.Completion{}, false
	}
	rec, ok := s.entries[habitID][day]
	return rec, ok
}

// Set upserts the record for (habitID, day). A zero value defaults to 1 when
// the record is completed. Calling Set twice with identical arguments leaves
// the same observable state; nothing is double-counted downstream.
func (s *Store) Set(habitID, day string, completed bool, value float64, now time.Time) (models.Completion, error) {
	day, err := calendar.NormalizeKey(day)
	if err != nil {
		return models.Completion{}, err
	}
	if _, ok := s.habits[habitID]; !ok {
		return models.Completion{}, fmt.Errorf("%w: %s", ErrUnknownHabit, habitID)
	}

	if value == 0 && completed {
		value = 1
	}
	rec := models.Completion{
		HabitID:   habitID,
		Day:       day,
		Completed: completed,
		Value:     value,
		Timestamp: now,
	}
	s.put(rec)
	return rec, nil
}

// Toggle flips the completed flag for (habitID, day), creating the record if
// absent. Toggling off keeps the record in place with Completed=false; use
// Remove to delete it.
func (s *Store) Toggle(habitID, day string, now time.Time) (models.Completion, error) {
	cur, ok := s.Get(habitID, day)
	completed := !(ok && cur.Completed)
	return s.Set(habitID, day, completed, cur.Value, now)
}

// Remove deletes the record for (habitID, day). Removing an absent record is
// a no-op.
func (s *Store) Remove(habitID, day string) error {
	day, err := calendar.NormalizeKey(day)
	if err != nil {
		return err
	}
	if _, ok := s.habits[habitID]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownHabit, habitID)
	}
	delete(s.entries[habitID], day)
	return nil
}

// EntriesForHabit returns a copy of the habit's records keyed by day.
func (s *Store) EntriesForHabit(habitID string) map[string]models.Completion {
	entries := make(map[string]models.Completion, len(s.entries[habitID]))
	for day, rec := range s.entries[habitID] {
		entries[day] = rec
	}
	return entries
}

// EntriesForRange returns the records for the given habits between startKey
// and endKey inclusive.
func (s *Store) EntriesForRange(habitIDs []string, startKey, endKey string) ([]models.Completion, error) {
	startKey, err := calendar.NormalizeKey(startKey)
	if err != nil {
		return nil, err
	}
	endKey, err = calendar.NormalizeKey(endKey)
	if err != nil {
		return nil, err
	}
	// Canonical keys are fixed-width, so lexicographic order is date order.
	if endKey < startKey {
		return nil, fmt.Errorf("%w: %s..%s", calendar.ErrInvalidRange, startKey, endKey)
	}

	var records []models.Completion
	for _, id := range habitIDs {
		for day, rec := range s.entries[id] {
			if day >= startKey && day <= endKey {
				records = append(records, rec)
			}
		}
	}
	return records, nil
}

func (s *Store) put(rec models.Completion) {
	if s.entries[rec.HabitID] == nil {
		s.entries[rec.HabitID] = make(map[string]models.Completion)
	}
	s.entries[rec.HabitID][rec.Day] = rec
}
