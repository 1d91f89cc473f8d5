package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"cadence/internal/calendar"
	"cadence/internal/insights"
	"cadence/internal/stats"
)

var tabNames = []string{"Today", "Month", "Stats"}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}

	switch m.tab {
	case tabToday:
		b.WriteString(m.renderToday())
	case tabMonth:
		b.WriteString(m.renderMonth())
	case tabStats:
		b.WriteString(m.renderStats())
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return docStyle.Render(b.String())
}

func (m Model) renderTabs() string {
	var rendered []string
	for i, name := range tabNames {
		if tab(i) == m.tab {
			rendered = append(rendered, activeTabStyle.Render(name))
		} else {
			rendered = append(rendered, inactiveTabStyle.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderToday() string {
	due := m.dueToday()
	if len(due) == 0 {
		return mutedStyle.Render("Nothing scheduled for today.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Habits for %s", calendar.DayKey(m.now))))
	b.WriteString("\n\n")

	completed := 0
	for i, habit := range due {
		check := "[ ]"
		line := habit.Name
		if rec, ok := m.track.Get(habit.ID, calendar.DayKey(m.now)); ok && rec.Completed {
			check = "[x]"
			completed++
		}
		row := fmt.Sprintf("%s %s", check, line)
		if i == m.cursor {
			row = selectedStyle.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	rate := stats.RoundRate(completed, len(due))
	b.WriteString(fmt.Sprintf("\nCompleted: %d/%d (%d%%)\n", completed, len(due), rate))
	return b.String()
}

func (m Model) renderMonth() string {
	indicators, err := stats.MonthlyIndicators(m.habits, m.track, m.monthAnchor, m.settings.WeekStartDay, m.now)
	if err != nil {
		return errorStyle.Render(err.Error())
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.monthAnchor.Format("January 2006")))
	b.WriteString("\n\n")

	for i := 0; i < 7; i++ {
		wd := time.Weekday((m.settings.WeekStartDay + i) % 7)
		b.WriteString(fmt.Sprintf("%-3s", wd.String()[:2]))
	}
	b.WriteString("\n")

	for i := 0; i < len(indicators); i += 7 {
		for _, ind := range indicators[i : i+7] {
			b.WriteString(m.renderCell(ind))
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}

	var scores []stats.DayScore
	for _, ind := range indicators {
		if ind.InMonth {
			scores = append(scores, ind.DayScore)
		}
	}
	b.WriteString(fmt.Sprintf("\nMonth average: %s\n", renderRate(stats.AverageRate(scores))))
	return b.String()
}

func (m Model) renderCell(ind stats.Indicator) string {
	cell := fmt.Sprintf("%2d", ind.Day.Date.Day())
	switch {
	case !ind.InMonth:
		return mutedStyle.Render(cell)
	case ind.Day.IsToday:
		return todayStyle.Render(cell)
	case ind.Rate == nil:
		return mutedStyle.Render(cell)
	case *ind.Rate >= 100:
		return doneStyle.Render(cell)
	case *ind.Rate > 0:
		return partialStyle.Render(cell)
	default:
		return missedStyle.Render(cell)
	}
}

func (m Model) renderStats() string {
	if len(m.habits) == 0 {
		return mutedStyle.Render("No habits found.")
	}

	endKey := calendar.DayKey(m.now)
	startKey := calendar.DayKey(m.now.AddDate(0, 0, -29))

	var b strings.Builder
	b.WriteString(titleStyle.Render("Last 30 days"))
	b.WriteString("\n\n")

	aggregates, err := insights.AggregateRange(m.habits, m.track, startKey, endKey, m.now)
	if err != nil {
		return errorStyle.Render(err.Error())
	}
	for _, agg := range aggregates {
		b.WriteString(fmt.Sprintf("%-24s %3d/%-3d %s %s\n",
			agg.Habit.Name, agg.Completions, agg.Due,
			renderRate(agg.Rate), sparkBar(agg.Rate)))
	}

	ranks, err := insights.TopByStreak(m.habits, m.track, m.now, 3)
	if err != nil {
		return errorStyle.Render(err.Error())
	}
	if len(ranks) > 0 {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("Longest current streaks"))
		b.WriteString("\n\n")
		for i, rank := range ranks {
			b.WriteString(fmt.Sprintf("%d. %-24s %d days (best %d)\n",
				i+1, rank.Habit.Name, rank.Streak.Current, rank.Streak.Longest))
		}
	}
	return b.String()
}

func renderRate(rate *int) string {
	if rate == nil {
		return mutedStyle.Render("  -")
	}
	return fmt.Sprintf("%3d%%", *rate)
}

// sparkBar renders a ten-segment bar for a percentage.
func sparkBar(rate *int) string {
	if rate == nil {
		return ""
	}
	filled := *rate / 10
	if filled > 10 {
		filled = 10
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
	switch {
	case *rate >= 100:
		return doneStyle.Render(bar)
	case *rate > 0:
		return partialStyle.Render(bar)
	default:
		return missedStyle.Render(bar)
	}
}
