package stats

import (
	"fmt"
	"time"

	"cadence/internal/calendar"
	"cadence/internal/models"
)

// RangeRollup returns a DayScore per day from startKey through endKey
// inclusive.
func RangeRollup(habits []models.Habit, src Source, startKey, endKey string, now time.Time) ([]DayScore, error) {
	days, err := calendar.Range(startKey, endKey, now)
	if err != nil {
		return nil, err
	}
	return scoreDays(habits, src, days), nil
}

// WeekReport aggregates one week of day scores.
type WeekReport struct {
	Start   string
	Days    []DayScore
	Average *int
}

// WeeklyRollup scores the week containing anchor, bounded by weekStartDay.
func WeeklyRollup(habits []models.Habit, src Source, anchor time.Time, weekStartDay int, now time.Time) (WeekReport, error) {
	start, err := calendar.WeekStart(anchor, weekStartDay)
	if err != nil {
		return WeekReport{}, err
	}
	scores := scoreDays(habits, src, calendar.WeekDates(start, now))
	return WeekReport{
		Start:   calendar.DayKey(start),
		Days:    scores,
		Average: AverageRate(scores),
	}, nil
}

// Indicator augments a day's score with month-grid placement and record
// presence. HasRecord is true when any record exists for the day, completed
// or not; it is a presence flag, never a rate.
type Indicator struct {
	DayScore
	InMonth   bool
	HasRecord bool
}

// MonthlyIndicators scores every day of the month grid containing anchor.
func MonthlyIndicators(habits []models.Habit, src Source, anchor time.Time, weekStartDay int, now time.Time) ([]Indicator, error) {
	grid, err := calendar.MonthGrid(anchor, weekStartDay, now)
	if err != nil {
		return nil, err
	}

	indicators := make([]Indicator, 0, len(grid))
	for _, d := range grid {
		ind := Indicator{
			DayScore: DayCompletion(habits, src, d),
			InMonth:  d.InMonth,
		}
		for _, h := range habits {
			if _, ok := src.Get(h.ID, d.Key); ok {
				ind.HasRecord = true
				break
			}
		}
		indicators = append(indicators, ind)
	}
	return indicators, nil
}

// MonthScore aggregates one month of a yearly rollup.
type MonthScore struct {
	Month     time.Month
	Scheduled int
	Completed int
	Average   *int
}

// YearReport aggregates a full year. Average spans every day of the year,
// not the month averages.
type YearReport struct {
	Year    int
	Months  []MonthScore
	Average *int
}

// YearlyRollup buckets day scores for the whole year by month.
func YearlyRollup(habits []models.Habit, src Source, year int, now time.Time) (YearReport, error) {
	report := YearReport{Year: year, Months: make([]MonthScore, 0, 12)}

	var yearScores []DayScore
	for _, m := range calendar.YearMonths(year) {
		startKey := fmt.Sprintf("%04d-%02d-01", m.Year, int(m.Month))
		endKey := fmt.Sprintf("%04d-%02d-%02d", m.Year, int(m.Month), m.Days)
		scores, err := RangeRollup(habits, src, startKey, endKey, now)
		if err != nil {
			return YearReport{}, err
		}

		ms := MonthScore{Month: m.Month, Average: AverageRate(scores)}
		for _, s := range scores {
			ms.Scheduled += s.Scheduled
			ms.Completed += s.Completed
		}
		report.Months = append(report.Months, ms)
		yearScores = append(yearScores, scores...)
	}

	report.Average = AverageRate(yearScores)
	return report, nil
}

func scoreDays(habits []models.Habit, src Source, days []calendar.Descriptor) []DayScore {
	scores := make([]DayScore, 0, len(days))
	for _, d := range days {
		scores = append(scores, DayCompletion(habits, src, d))
	}
	return scores
}
