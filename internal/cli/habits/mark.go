package habits

import (
	"fmt"

	"cadence/internal/calendar"
	"cadence/internal/cli"
	"cadence/internal/schedule"
	"cadence/internal/stats"
)

type HabitMarkCmd struct {
	Name  string  `arg:"" help:"Habit name."`
	Date  string  `help:"Date in YYYY-MM-DD format (default: today)."`
	Value float64 `help:"Quantity recorded with the completion." default:"0"`
	Undo  bool    `help:"Record the day as not completed instead."`
}

func (c *HabitMarkCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Store.GetHabitByName(c.Name)
	if err != nil {
		return fmt.Errorf("habit %q not found", c.Name)
	}
	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}

	habits, err := ctx.ActiveHabits()
	if err != nil {
		return err
	}
	track, err := ctx.LoadTracker(habits)
	if err != nil {
		return err
	}

	rec, err := track.Set(habit.ID, day, !c.Undo, c.Value, ctx.Now())
	if err != nil {
		return err
	}
	if err := ctx.Store.UpsertCompletion(rec); err != nil {
		return err
	}

	if c.Undo {
		fmt.Printf("Marked habit %q as not done for %s\n", c.Name, day)
	} else {
		fmt.Printf("Marked habit %q as done for %s\n", c.Name, day)
	}
	return nil
}

type HabitUnmarkCmd struct {
	Name string `arg:"" help:"Habit name."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *HabitUnmarkCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Store.GetHabitByName(c.Name)
	if err != nil {
		return fmt.Errorf("habit %q not found", c.Name)
	}
	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}

	if _, err := ctx.Store.GetCompletion(habit.ID, day); err != nil {
		return fmt.Errorf("no record for habit %q on %s", c.Name, day)
	}
	if err := ctx.Store.DeleteCompletion(habit.ID, day); err != nil {
		return err
	}
	fmt.Printf("Removed record for habit %q on %s\n", c.Name, day)
	return nil
}

type HabitToggleCmd struct {
	Name string `arg:"" help:"Habit name."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *HabitToggleCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Store.GetHabitByName(c.Name)
	if err != nil {
		return fmt.Errorf("habit %q not found", c.Name)
	}
	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}

	habits, err := ctx.ActiveHabits()
	if err != nil {
		return err
	}
	track, err := ctx.LoadTracker(habits)
	if err != nil {
		return err
	}

	rec, err := track.Toggle(habit.ID, day, ctx.Now())
	if err != nil {
		return err
	}
	if err := ctx.Store.UpsertCompletion(rec); err != nil {
		return err
	}

	state := "not done"
	if rec.Completed {
		state = "done"
	}
	fmt.Printf("Habit %q is now %s for %s\n", c.Name, state, day)
	return nil
}

type HabitTodayCmd struct {
	Date string `help:"Show status for a specific day instead of today."`
}

func (c *HabitTodayCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.ActiveHabits()
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	dayKey, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}
	now := ctx.Now()
	days, err := calendar.Range(dayKey, dayKey, now)
	if err != nil {
		return err
	}
	day := days[0]

	track, err := ctx.LoadTracker(habits)
	if err != nil {
		return err
	}

	due := schedule.DueOn(habits, day)
	if len(due) == 0 {
		fmt.Printf("Nothing scheduled for %s.\n", day.Key)
		return nil
	}

	fmt.Printf("Habits for %s:\n\n", day.Key)
	for _, habit := range due {
		status := "[ ]"
		if rec, ok := track.Get(habit.ID, day.Key); ok && rec.Completed {
			status = "[x]"
		}
		fmt.Printf("%s %s\n", status, habit.Name)
	}

	score := stats.DayCompletion(habits, track, day)
	fmt.Printf("\nCompleted: %d/%d (%s)\n", score.Completed, score.Scheduled, cli.FormatRate(score.Rate))
	return nil
}
