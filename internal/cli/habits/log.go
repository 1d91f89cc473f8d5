package habits

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"cadence/internal/cli"
	"cadence/internal/models"
	"cadence/internal/stats"
)

var (
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	partialStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	missedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	idleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	outsideStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
)

type HabitLogCmd struct {
	Month string `help:"Month to show in YYYY-MM format (default: current month)."`
	Habit string `help:"Show the log for one habit only."`
}

func (c *HabitLogCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.ActiveHabits()
	if err != nil {
		return err
	}
	if c.Habit != "" {
		habit, err := ctx.Store.GetHabitByName(c.Habit)
		if err != nil {
			return fmt.Errorf("habit %q not found", c.Habit)
		}
		habits = []models.Habit{habit}
	}
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
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

	track, err := ctx.LoadTracker(habits)
	if err != nil {
		return err
	}

	indicators, err := stats.MonthlyIndicators(habits, track, anchor, settings.WeekStartDay, now)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n\n", anchor.Format("January 2006"))
	fmt.Println(weekdayHeader(settings.WeekStartDay))
	for i := 0; i < len(indicators); i += 7 {
		var row strings.Builder
		for _, ind := range indicators[i : i+7] {
			row.WriteString(cellFor(ind))
			row.WriteString(" ")
		}
		fmt.Println(row.String())
	}

	scores := make([]stats.DayScore, 0, len(indicators))
	for _, ind := range indicators {
		if ind.InMonth {
			scores = append(scores, ind.DayScore)
		}
	}
	fmt.Printf("\nMonth average: %s\n", cli.FormatRate(stats.AverageRate(scores)))
	return nil
}

func weekdayHeader(weekStartDay int) string {
	var parts []string
	for i := 0; i < 7; i++ {
		wd := time.Weekday((weekStartDay + i) % 7)
		parts = append(parts, fmt.Sprintf("%-3s", wd.String()[:2]))
	}
	return strings.Join(parts, "")
}

func cellFor(ind stats.Indicator) string {
	cell := fmt.Sprintf("%2d", ind.Day.Date.Day())
	if !ind.InMonth {
		return outsideStyle.Render(cell)
	}
	switch {
	case ind.Rate == nil:
		return idleStyle.Render(cell)
	case *ind.Rate >= 100:
		return doneStyle.Render(cell)
	case *ind.Rate > 0:
		return partialStyle.Render(cell)
	default:
		return missedStyle.Render(cell)
	}
}
