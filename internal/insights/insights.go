package insights

import (
	"sort"
	"time"

	"cadence/internal/calendar"
	"cadence/internal/constants"
	"cadence/internal/models"
	"cadence/internal/schedule"
	"cadence/internal/stats"
)

// Aggregate is one habit's totals over a date range. Rate is the pooled
// completed/due percentage and nil when the habit was never due in the
// range. For a single habit the per-day rate is 0 or 100, so the pooled
// ratio equals the mean of its per-day rates.
type Aggregate struct {
	Habit       models.Habit
	Due         int
	Completions int
	Rate        *int
}

// AggregateRange computes per-habit totals over startKey..endKey, in input
// order.
func AggregateRange(habits []models.Habit, src stats.Source, startKey, endKey string, now time.Time) ([]Aggregate, error) {
	days, err := calendar.Range(startKey, endKey, now)
	if err != nil {
		return nil, err
	}

	aggs := make([]Aggregate, 0, len(habits))
	for _, h := range habits {
		agg := Aggregate{Habit: h}
		for _, d := range days {
			if !schedule.IsDue(h, d) {
				continue
			}
			agg.Due++
			if rec, ok := src.Get(h.ID, d.Key); ok && rec.Completed {
				agg.Completions++
			}
		}
		if agg.Due > 0 {
			r := stats.RoundRate(agg.Completions, agg.Due)
			agg.Rate = &r
		}
		aggs = append(aggs, agg)
	}
	return aggs, nil
}

// TopByCompletions returns the n habits with the most completed records in
// the range. Ties keep input order.
func TopByCompletions(habits []models.Habit, src stats.Source, startKey, endKey string, now time.Time, n int) ([]Aggregate, error) {
	aggs, err := AggregateRange(habits, src, startKey, endKey, now)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(aggs, func(i, j int) bool {
		return aggs[i].Completions > aggs[j].Completions
	})
	return head(aggs, n), nil
}

// TopByRate ranks habits by pooled completion rate. Habits with fewer than
// minCompletions completed records are excluded so near-zero samples cannot
// claim top spots; a non-positive minCompletions falls back to the default
// of 3.
func TopByRate(habits []models.Habit, src stats.Source, startKey, endKey string, now time.Time, n, minCompletions int) ([]Aggregate, error) {
	if minCompletions <= 0 {
		minCompletions = constants.DefaultMinCompletions
	}

	aggs, err := AggregateRange(habits, src, startKey, endKey, now)
	if err != nil {
		return nil, err
	}

	ranked := make([]Aggregate, 0, len(aggs))
	for _, agg := range aggs {
		if agg.Rate == nil || agg.Completions < minCompletions {
			continue
		}
		ranked = append(ranked, agg)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return *ranked[i].Rate > *ranked[j].Rate
	})
	return head(ranked, n), nil
}

// StreakRank pairs a habit with its streak standing as of a day.
type StreakRank struct {
	Habit  models.Habit
	Streak stats.Streak
}

// TopByStreak ranks habits by current streak as of asOf, breaking ties by
// longest streak and then input order.
func TopByStreak(habits []models.Habit, src stats.Source, asOf time.Time, n int) ([]StreakRank, error) {
	ranks := make([]StreakRank, 0, len(habits))
	for _, h := range habits {
		st, err := stats.HabitStreak(h, src, asOf)
		if err != nil {
			return nil, err
		}
		ranks = append(ranks, StreakRank{Habit: h, Streak: st})
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Streak.Current != ranks[j].Streak.Current {
			return ranks[i].Streak.Current > ranks[j].Streak.Current
		}
		return ranks[i].Streak.Longest > ranks[j].Streak.Longest
	})
	return head(ranks, n), nil
}

// TrendDelta returns the change between the last two buckets of a series,
// or 0 when fewer than two buckets exist.
func TrendDelta(series []int) int {
	if len(series) < 2 {
		return 0
	}
	return series[len(series)-1] - series[len(series)-2]
}

// RateSeries extracts the non-nil averages from a sequence of rollup
// buckets, in order, for trend computation.
func RateSeries(averages []*int) []int {
	series := make([]int, 0, len(averages))
	for _, avg := range averages {
		if avg != nil {
			series = append(series, *avg)
		}
	}
	return series
}

func head[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}
