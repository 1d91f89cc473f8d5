package habits

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"cadence/internal/cli"
	"cadence/internal/constants"
	"cadence/internal/models"
	"cadence/internal/validation"
)

type HabitCmd struct {
	Add        HabitAddCmd        `cmd:"" help:"Add a new habit."`
	List       HabitListCmd       `cmd:"" help:"List habits."`
	Edit       HabitEditCmd       `cmd:"" help:"Edit an existing habit."`
	Mark       HabitMarkCmd       `cmd:"" help:"Mark a habit as done for a day."`
	Unmark     HabitUnmarkCmd     `cmd:"" help:"Remove a habit record for a day."`
	Toggle     HabitToggleCmd     `cmd:"" help:"Toggle a habit's completion for a day."`
	Today      HabitTodayCmd      `cmd:"" help:"Show today's habit status."`
	Log        HabitLogCmd        `cmd:"" help:"Show a month of habit history."`
	Activate   HabitActivateCmd   `cmd:"" help:"Reactivate a paused habit."`
	Deactivate HabitDeactivateCmd `cmd:"" help:"Pause a habit without losing history."`
	Delete     HabitDeleteCmd     `cmd:"" help:"Delete a habit (soft delete)."`
	Restore    HabitRestoreCmd    `cmd:"" help:"Restore a deleted habit."`
}

type HabitAddCmd struct {
	Name        string `arg:"" optional:"" help:"Habit name."`
	Days        string `help:"Comma-separated scheduled weekdays (e.g. mon,wed,fri). Empty means every day."`
	Color       string `help:"Display color."`
	Icon        string `help:"Display icon."`
	Category    string `help:"Category label."`
	Reminder    string `help:"Reminder time (HH:MM)."`
	Interactive bool   `short:"i" help:"Prompt for habit details interactively."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	name := c.Name
	days := c.Days

	if c.Interactive || name == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Habit Name").
					Value(&name).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return fmt.Errorf("habit name cannot be empty")
						}
						return nil
					}),
				huh.NewInput().
					Title("Scheduled days").
					Description("Comma-separated (e.g. mon,wed,fri). Leave empty for every day.").
					Value(&days).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return nil
						}
						_, err := cli.ParseWeekdays(s)
						return err
					}),
			),
		).WithTheme(huh.ThemeDracula())
		if err := form.Run(); err != nil {
			return err
		}
	}

	if _, err := ctx.Store.GetHabitByName(name); err == nil {
		return fmt.Errorf("habit with name %q already exists", name)
	}

	var scheduleDays []time.Weekday
	if strings.TrimSpace(days) != "" {
		parsed, err := cli.ParseWeekdays(days)
		if err != nil {
			return err
		}
		scheduleDays = parsed
	}

	habit := models.Habit{
		ID:       uuid.New().String(),
		Name:     name,
		Color:    c.Color,
		Icon:     c.Icon,
		Category: c.Category,
		IsActive: true,
		Schedule: models.Schedule{
			Days:     scheduleDays,
			Reminder: c.Reminder,
		},
		CreatedAt: time.Now(),
	}

	if result := validation.CheckHabit(habit); result.HasIssues() {
		return fmt.Errorf("invalid habit:\n%s", result.FormatReport())
	}

	if err := ctx.Store.AddHabit(habit); err != nil {
		return err
	}

	fmt.Printf("Added habit: %s (%s)\n", habit.Name, cli.FormatSchedule(habit.Schedule))
	return nil
}

type HabitListCmd struct {
	All     bool `help:"Include inactive habits."`
	Deleted bool `help:"Include deleted habits."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Store.GetAllHabits(c.All, c.Deleted)
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	for _, habit := range habits {
		status := ""
		if habit.DeletedAt != nil {
			status = " [DELETED]"
		} else if !habit.IsActive {
			status = " [INACTIVE]"
		}
		fmt.Printf("%-24s %s%s\n", habit.Name, cli.FormatSchedule(habit.Schedule), status)
	}
	return nil
}

type HabitEditCmd struct {
	Name string `arg:"" help:"Habit name."`

	NewName  *string `help:"Rename the habit."`
	Days     *string `help:"New scheduled weekdays (empty string means every day)."`
	Color    *string `help:"New display color."`
	Icon     *string `help:"New display icon."`
	Category *string `help:"New category label."`
	Reminder *string `help:"New reminder time (HH:MM)."`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Store.GetHabitByName(c.Name)
	if err != nil {
		return fmt.Errorf("habit %q not found", c.Name)
	}

	updated := false
	if c.NewName != nil {
		habit.Name = *c.NewName
		updated = true
	}
	if c.Days != nil {
		if strings.TrimSpace(*c.Days) == "" {
			habit.Schedule.Days = nil
		} else {
			parsed, err := cli.ParseWeekdays(*c.Days)
			if err != nil {
				return err
			}
			habit.Schedule.Days = parsed
		}
		updated = true
	}
	if c.Color != nil {
		habit.Color = *c.Color
		updated = true
	}
	if c.Icon != nil {
		habit.Icon = *c.Icon
		updated = true
	}
	if c.Category != nil {
		habit.Category = *c.Category
		updated = true
	}
	if c.Reminder != nil {
		habit.Schedule.Reminder = *c.Reminder
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified.")
		return nil
	}

	if result := validation.CheckHabit(habit); result.HasIssues() {
		return fmt.Errorf("invalid habit:\n%s", result.FormatReport())
	}
	if err := ctx.Store.UpdateHabit(habit); err != nil {
		return err
	}
	fmt.Printf("Updated habit: %s\n", habit.Name)
	return nil
}

type HabitActivateCmd struct {
	Name string `arg:"" help:"Habit name."`
}

func (c *HabitActivateCmd) Run(ctx *cli.Context) error {
	return setActive(ctx, c.Name, true)
}

type HabitDeactivateCmd struct {
	Name string `arg:"" help:"Habit name."`
}

func (c *HabitDeactivateCmd) Run(ctx *cli.Context) error {
	return setActive(ctx, c.Name, false)
}

func setActive(ctx *cli.Context, name string, active bool) error {
	habit, err := ctx.Store.GetHabitByName(name)
	if err != nil {
		return fmt.Errorf("habit %q not found", name)
	}
	if habit.IsActive == active {
		fmt.Printf("Habit %q is already %s.\n", name, activeWord(active))
		return nil
	}
	habit.IsActive = active
	if err := ctx.Store.UpdateHabit(habit); err != nil {
		return err
	}
	fmt.Printf("Habit %q is now %s.\n", name, activeWord(active))
	return nil
}

func activeWord(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Habit name."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Store.GetHabitByName(c.Name)
	if err != nil {
		return fmt.Errorf("habit %q not found", c.Name)
	}
	ctx.PerformAutomaticBackup()
	if err := ctx.Store.DeleteHabit(habit.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted habit: %s (restore with '%s habit restore')\n", c.Name, constants.AppName)
	return nil
}

type HabitRestoreCmd struct {
	Name string `arg:"" help:"Habit name."`
}

func (c *HabitRestoreCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Store.GetAllHabits(true, true)
	if err != nil {
		return err
	}
	for _, habit := range habits {
		if habit.DeletedAt != nil && strings.EqualFold(habit.Name, c.Name) {
			if err := ctx.Store.RestoreHabit(habit.ID); err != nil {
				return err
			}
			fmt.Printf("Restored habit: %s\n", habit.Name)
			return nil
		}
	}
	return fmt.Errorf("no deleted habit named %q", c.Name)
}
