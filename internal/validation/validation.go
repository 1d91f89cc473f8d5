package validation

import (
	"fmt"
	"strings"
	"time"

	"cadence/internal/calendar"
	"cadence/internal/models"
	"cadence/internal/utils"
)

// IssueType classifies a validation finding.
type IssueType string

const (
	IssueMissingName       IssueType = "missing_name"
	IssueDuplicateName     IssueType = "duplicate_name"
	IssueInvalidScheduleDay IssueType = "invalid_schedule_day"
	IssueDuplicateScheduleDay IssueType = "duplicate_schedule_day"
	IssueInvalidWeekStart  IssueType = "invalid_week_start"
	IssueInvalidTimezone   IssueType = "invalid_timezone"
	IssueInvalidDay        IssueType = "invalid_day"
)

// Issue is a single validation finding.
type Issue struct {
	Type        IssueType
	Description string
	HabitID     string
}

// Result collects validation findings.
type Result struct {
	Issues []Issue
}

// HasIssues returns true if any findings were recorded.
func (r *Result) HasIssues() bool {
	return len(r.Issues) > 0
}

// FormatReport returns a human-readable report of all findings.
func (r *Result) FormatReport() string {
	if !r.HasIssues() {
		return "No problems detected."
	}
	var b strings.Builder
	b.WriteString("Problems detected:\n")
	for _, issue := range r.Issues {
		fmt.Fprintf(&b, "- %s\n", issue.Description)
	}
	return b.String()
}

// CheckHabit validates a single habit definition.
func CheckHabit(habit models.Habit) Result {
	var res Result
	if strings.TrimSpace(habit.Name) == "" {
		res.Issues = append(res.Issues, Issue{
			Type:        IssueMissingName,
			Description: fmt.Sprintf("habit %s has no name", habit.ID),
			HabitID:     habit.ID,
		})
	}

	seen := make(map[time.Weekday]bool)
	for _, wd := range habit.Schedule.Days {
		if wd < time.Sunday || wd > time.Saturday {
			res.Issues = append(res.Issues, Issue{
				Type:        IssueInvalidScheduleDay,
				Description: fmt.Sprintf("habit %q schedules an invalid weekday %d", habit.Name, wd),
				HabitID:     habit.ID,
			})
			continue
		}
		if seen[wd] {
			res.Issues = append(res.Issues, Issue{
				Type:        IssueDuplicateScheduleDay,
				Description: fmt.Sprintf("habit %q schedules %v more than once", habit.Name, wd),
				HabitID:     habit.ID,
			})
		}
		seen[wd] = true
	}
	return res
}

// CheckHabits validates every habit and flags duplicate names among
// non-deleted habits.
func CheckHabits(habits []models.Habit) Result {
	var res Result
	names := make(map[string]bool)
	for _, h := range habits {
		hr := CheckHabit(h)
		res.Issues = append(res.Issues, hr.Issues...)

		if h.DeletedAt != nil {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(h.Name))
		if name == "" {
			continue
		}
		if names[name] {
			res.Issues = append(res.Issues, Issue{
				Type:        IssueDuplicateName,
				Description: fmt.Sprintf("more than one habit is named %q", h.Name),
				HabitID:     h.ID,
			})
		}
		names[name] = true
	}
	return res
}

// CheckSettings validates persisted user settings.
func CheckSettings(settings models.Settings) Result {
	var res Result
	if settings.WeekStartDay < 0 || settings.WeekStartDay > 6 {
		res.Issues = append(res.Issues, Issue{
			Type:        IssueInvalidWeekStart,
			Description: fmt.Sprintf("week start day %d is outside 0-6", settings.WeekStartDay),
		})
	}
	if !utils.ValidateTimezone(settings.Timezone) {
		res.Issues = append(res.Issues, Issue{
			Type:        IssueInvalidTimezone,
			Description: fmt.Sprintf("timezone %q is not a valid IANA name", settings.Timezone),
		})
	}
	return res
}

// CheckDayKey validates a user-supplied day string.
func CheckDayKey(day string) error {
	if _, err := calendar.NormalizeKey(day); err != nil {
		return fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", day)
	}
	return nil
}
