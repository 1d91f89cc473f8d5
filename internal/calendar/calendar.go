package calendar

import (
	"errors"
	"fmt"
	"time"

	"cadence/internal/constants"
)

var (
	// ErrInvalidRange is returned when a range's end day precedes its start day.
	ErrInvalidRange = errors.New("invalid date range: end before start")
	// ErrInvalidWeekStartDay is returned when a week start day falls outside 0-6.
	ErrInvalidWeekStartDay = errors.New("week start day must be between 0 and 6")
)

// Descriptor describes a single calendar day within a computed range or grid.
type Descriptor struct {
	Key     string
	Date    time.Time
	Weekday time.Weekday
	IsToday bool
	InMonth bool
}

// DayKey returns the canonical YYYY-MM-DD key for t's calendar day. The key
// is derived from t's own calendar fields and never goes through a UTC
// conversion, so the same local day always yields the same key no matter
// when the computation runs.
func DayKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseKey parses a YYYY-MM-DD key as midnight in loc.
func ParseKey(key string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day key %q: %w", key, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// NormalizeKey validates a day key and returns its canonical form. Keys that
// parse but are not canonical (e.g. "2026-2-03") are rejected along with
// malformed input.
func NormalizeKey(key string) (string, error) {
	t, err := time.Parse(constants.DateFormat, key)
	if err != nil {
		return "", fmt.Errorf("invalid day key %q: %w", key, err)
	}
	return DayKey(t), nil
}

func checkWeekStartDay(weekStartDay int) error {
	if weekStartDay < 0 || weekStartDay > 6 {
		return fmt.Errorf("%w: got %d", ErrInvalidWeekStartDay, weekStartDay)
	}
	return nil
}

// WeekStart returns midnight of the first day of the week containing t,
// where weekStartDay selects which weekday opens a week (0=Sunday).
func WeekStart(t time.Time, weekStartDay int) (time.Time, error) {
	if err := checkWeekStartDay(weekStartDay); err != nil {
		return time.Time{}, err
	}
	back := (int(t.Weekday()) - weekStartDay + 7) % 7
	return time.Date(t.Year(), t.Month(), t.Day()-back, 0, 0, 0, 0, t.Location()), nil
}

// WeekDates returns descriptors for the seven days of the week starting at
// start. now is observed once and used only to flag today.
func WeekDates(start time.Time, now time.Time) []Descriptor {
	today := DayKey(now)
	days := make([]Descriptor, 0, 7)
	for i := 0; i < 7; i++ {
		days = append(days, describe(dayOffset(start, i), today))
	}
	return days
}

// Range returns one descriptor per calendar day from startKey through endKey
// inclusive. It fails with ErrInvalidRange when endKey precedes startKey.
func Range(startKey, endKey string, now time.Time) ([]Descriptor, error) {
	start, err := ParseKey(startKey, now.Location())
	if err != nil {
		return nil, err
	}
	end, err := ParseKey(endKey, now.Location())
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: %s..%s", ErrInvalidRange, startKey, endKey)
	}

	today := DayKey(now)
	var days []Descriptor
	for i := 0; ; i++ {
		d := dayOffset(start, i)
		if d.After(end) {
			break
		}
		days = append(days, describe(d, today))
	}
	return days, nil
}

// MonthGrid returns descriptors covering full calendar weeks that contain
// anchor's month, so the first row starts on weekStartDay and the last row
// ends a week later. Days inside the anchor month carry InMonth=true.
func MonthGrid(anchor time.Time, weekStartDay int, now time.Time) ([]Descriptor, error) {
	if err := checkWeekStartDay(weekStartDay); err != nil {
		return nil, err
	}

	loc := anchor.Location()
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, loc)
	last := time.Date(anchor.Year(), anchor.Month()+1, 0, 0, 0, 0, 0, loc)

	start, err := WeekStart(first, weekStartDay)
	if err != nil {
		return nil, err
	}
	lastWeek, err := WeekStart(last, weekStartDay)
	if err != nil {
		return nil, err
	}
	end := dayOffset(lastWeek, 6)

	today := DayKey(now)
	var grid []Descriptor
	for i := 0; ; i++ {
		d := dayOffset(start, i)
		if d.After(end) {
			break
		}
		desc := describe(d, today)
		desc.InMonth = d.Month() == anchor.Month()
		grid = append(grid, desc)
	}
	return grid, nil
}

// Month summarizes one calendar month of a year.
type Month struct {
	Year  int
	Month time.Month
	Days  int
}

// YearMonths returns the twelve months of year with their day counts.
func YearMonths(year int) []Month {
	months := make([]Month, 0, 12)
	for m := time.January; m <= time.December; m++ {
		// Day zero of the next month is the last day of this one.
		days := time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
		months = append(months, Month{Year: year, Month: m, Days: days})
	}
	return months
}

// dayOffset steps n calendar days from t. Building the result from explicit
// fields keeps day arithmetic stable across DST transitions.
func dayOffset(t time.Time, n int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+n, 0, 0, 0, 0, t.Location())
}

func describe(d time.Time, todayKey string) Descriptor {
	key := DayKey(d)
	return Descriptor{
		Key:     key,
		Date:    d,
		Weekday: d.Weekday(),
		IsToday: key == todayKey,
	}
}
