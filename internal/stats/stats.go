package stats

import (
	"math"

	"cadence/internal/calendar"
	"cadence/internal/models"
	"cadence/internal/schedule"
)

// Source answers completion-record queries for the aggregation engine.
// *tracker.Store satisfies it; tests can substitute a fixture.
type Source interface {
	Get(habitID, day string) (models.Completion, bool)
	EntriesForHabit(habitID string) map[string]models.Completion
}

// DayScore is one day's completion summary. Rate is nil when no habits were
// due that day: nothing scheduled means no data, which is distinct from
// everything missed (0) and everything done (100).
type DayScore struct {
	Day       calendar.Descriptor
	Scheduled int
	Completed int
	Rate      *int
}

// DayCompletion folds the habits due on day against their records. The
// denominator is always the count of habits due that day, never the full
// habit list.
func DayCompletion(habits []models.Habit, src Source, day calendar.Descriptor) DayScore {
	due := schedule.DueOn(habits, day)
	completed := 0
	for _, h := range due {
		if rec, ok := src.Get(h.ID, day.Key); ok && rec.Completed {
			completed++
		}
	}

	score := DayScore{Day: day, Scheduled: len(due), Completed: completed}
	if len(due) > 0 {
		r := RoundRate(completed, len(due))
		score.Rate = &r
	}
	return score
}

// RoundRate converts completed/scheduled into a whole percentage, rounding
// half up.
func RoundRate(completed, scheduled int) int {
	return int(math.Round(float64(completed) / float64(scheduled) * 100))
}

// AverageRate is the arithmetic mean of the per-day integer rates, rounded
// half up. Days with a nil rate are excluded; the result is nil when every
// day had nothing scheduled. The mean is taken over the per-day percentages,
// not over pooled completed/scheduled totals.
func AverageRate(scores []DayScore) *int {
	sum, n := 0, 0
	for _, s := range scores {
		if s.Rate != nil {
			sum += *s.Rate
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := int(math.Round(float64(sum) / float64(n)))
	return &avg
}
