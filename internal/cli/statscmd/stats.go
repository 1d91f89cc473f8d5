// Package statscmd exposes the aggregation and ranking reports on the
// command line.
package statscmd

import (
	"fmt"
	"strings"
	"time"

	"cadence/internal/calendar"
	"cadence/internal/cli"
	"cadence/internal/insights"
	"cadence/internal/stats"
)

type StatsCmd struct {
	Days int `help:"Length of the reporting window in days." default:"30"`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	if c.Days < 1 {
		return fmt.Errorf("window must be at least one day")
	}

	habits, err := ctx.ActiveHabits()
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	track, err := ctx.LoadTracker(habits)
	if err != nil {
		return err
	}

	now := ctx.Now()
	endKey := calendar.DayKey(now)
	startKey := calendar.DayKey(now.AddDate(0, 0, -(c.Days - 1)))

	aggregates, err := insights.AggregateRange(habits, track, startKey, endKey, now)
	if err != nil {
		return err
	}

	fmt.Printf("Last %d days (%s to %s):\n\n", c.Days, startKey, endKey)
	fmt.Printf("%-24s %6s %6s %6s %9s %9s\n", "Habit", "Due", "Done", "Rate", "Streak", "Longest")
	fmt.Println(strings.Repeat("-", 64))
	for _, agg := range aggregates {
		streak, err := stats.HabitStreak(agg.Habit, track, now)
		if err != nil {
			return err
		}
		fmt.Printf("%-24s %6d %6d %6s %9d %9d\n",
			agg.Habit.Name, agg.Due, agg.Completions, cli.FormatRate(agg.Rate),
			streak.Current, streak.Longest)
	}
	return nil
}

type WeekCmd struct {
	Date string `help:"Any day inside the week to report (default: today)."`
}

func (c *WeekCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.ActiveHabits()
	if err != nil {
		return err
	}
	track, err := ctx.LoadTracker(habits)
	if err != nil {
		return err
	}

	settings := ctx.Settings()
	now := ctx.Now()

	anchor := now
	if c.Date != "" {
		key, err := calendar.NormalizeKey(c.Date)
		if err != nil {
			return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", c.Date)
		}
		anchor, err = calendar.ParseKey(key, now.Location())
		if err != nil {
			return err
		}
	}

	report, err := stats.WeeklyRollup(habits, track, anchor, settings.WeekStartDay, now)
	if err != nil {
		return err
	}

	fmt.Printf("Week of %s:\n\n", report.Start)
	for _, score := range report.Days {
		marker := " "
		if score.Day.IsToday {
			marker = "*"
		}
		fmt.Printf("%s %s %s  %d/%d %s\n",
			marker, score.Day.Weekday.String()[:3], score.Day.Key,
			score.Completed, score.Scheduled, cli.FormatRate(score.Rate))
	}
	fmt.Printf("\nWeek average: %s\n", cli.FormatRate(report.Average))
	return nil
}

type MonthCmd struct {
	Month string `help:"Month to report in YYYY-MM format (default: current month)."`
}

func (c *MonthCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.ActiveHabits()
	if err != nil {
		return err
	}
	track, err := ctx.LoadTracker(habits)
	if err != nil {
		return err
	}

	settings := ctx.Settings()
	now := ctx.Now()

	anchor := now
	if c.Month != "" {
		parsed, err := time.ParseInLocation("2006-01", c.Month, now.Location())
		if err != nil {
			return fmt.Errorf("invalid month format: %s (expected YYYY-MM)", c.Month)
		}
		anchor = parsed
	}

	indicators, err := stats.MonthlyIndicators(habits, track, anchor, settings.WeekStartDay, now)
	if err != nil {
		return err
	}

	var scores []stats.DayScore
	recorded := 0
	for _, ind := range indicators {
		if !ind.InMonth {
			continue
		}
		scores = append(scores, ind.DayScore)
		if ind.HasRecord {
			recorded++
		}
	}

	fmt.Printf("%s:\n", anchor.Format("January 2006"))
	fmt.Printf("  Days with records: %d/%d\n", recorded, len(scores))
	fmt.Printf("  Average rate:      %s\n", cli.FormatRate(stats.AverageRate(scores)))
	return nil
}

type YearCmd struct {
	Year int `help:"Year to report (default: current year)."`
}

func (c *YearCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.ActiveHabits()
	if err != nil {
		return err
	}
	track, err := ctx.LoadTracker(habits)
	if err != nil {
		return err
	}

	now := ctx.Now()
	year := c.Year
	if year == 0 {
		year = now.Year()
	}

	report, err := stats.YearlyRollup(habits, track, year, now)
	if err != nil {
		return err
	}

	fmt.Printf("%d:\n\n", year)
	for _, month := range report.Months {
		fmt.Printf("  %-9s %4d/%-4d completed  %s\n",
			month.Month.String(), month.Completed, month.Scheduled,
			cli.FormatRate(month.Average))
	}
	fmt.Printf("\nYear average: %s\n", cli.FormatRate(report.Average))
	return nil
}

type TopCmd struct {
	By             string `help:"Ranking dimension: completions, rate, or streak." enum:"completions,rate,streak" default:"completions"`
	Days           int    `help:"Length of the reporting window in days." default:"30"`
	Limit          int    `help:"Number of habits to show." default:"5"`
	MinCompletions int    `help:"Minimum completions for rate rankings." default:"${min_completions}"`
}

func (c *TopCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.ActiveHabits()
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}
	track, err := ctx.LoadTracker(habits)
	if err != nil {
		return err
	}

	now := ctx.Now()
	endKey := calendar.DayKey(now)
	startKey := calendar.DayKey(now.AddDate(0, 0, -(c.Days - 1)))

	switch c.By {
	case "completions":
		top, err := insights.TopByCompletions(habits, track, startKey, endKey, now, c.Limit)
		if err != nil {
			return err
		}
		fmt.Printf("Top habits by completions (last %d days):\n\n", c.Days)
		for i, agg := range top {
			fmt.Printf("%d. %-24s %d completions\n", i+1, agg.Habit.Name, agg.Completions)
		}
	case "rate":
		top, err := insights.TopByRate(habits, track, startKey, endKey, now, c.Limit, c.MinCompletions)
		if err != nil {
			return err
		}
		fmt.Printf("Top habits by completion rate (last %d days, min %d completions):\n\n",
			c.Days, c.MinCompletions)
		for i, agg := range top {
			fmt.Printf("%d. %-24s %s (%d/%d)\n",
				i+1, agg.Habit.Name, cli.FormatRate(agg.Rate), agg.Completions, agg.Due)
		}
	case "streak":
		top, err := insights.TopByStreak(habits, track, now, c.Limit)
		if err != nil {
			return err
		}
		fmt.Println("Top habits by current streak:")
		fmt.Println()
		for i, rank := range top {
			fmt.Printf("%d. %-24s current %d, longest %d\n",
				i+1, rank.Habit.Name, rank.Streak.Current, rank.Streak.Longest)
		}
	}
	return nil
}

type TrendCmd struct {
	Weeks int `help:"Number of weekly buckets to compare." default:"4"`
}

func (c *TrendCmd) Run(ctx *cli.Context) error {
	if c.Weeks < 2 {
		return fmt.Errorf("trend needs at least two weeks")
	}

	habits, err := ctx.ActiveHabits()
	if err != nil {
		return err
	}
	track, err := ctx.LoadTracker(habits)
	if err != nil {
		return err
	}

	settings := ctx.Settings()
	now := ctx.Now()

	var averages []*int
	for i := c.Weeks - 1; i >= 0; i-- {
		anchor := now.AddDate(0, 0, -7*i)
		report, err := stats.WeeklyRollup(habits, track, anchor, settings.WeekStartDay, now)
		if err != nil {
			return err
		}
		averages = append(averages, report.Average)
		fmt.Printf("Week of %s: %s\n", report.Start, cli.FormatRate(report.Average))
	}

	series := insights.RateSeries(averages)
	if len(series) < 2 {
		fmt.Println("\nNot enough data for a trend.")
		return nil
	}

	delta := insights.TrendDelta(series)
	switch {
	case delta > 0:
		fmt.Printf("\nTrending up: +%d points week over week\n", delta)
	case delta < 0:
		fmt.Printf("\nTrending down: %d points week over week\n", delta)
	default:
		fmt.Println("\nHolding steady week over week")
	}
	return nil
}
