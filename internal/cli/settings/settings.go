package settings

import (
	"fmt"
	"time"

	"cadence/internal/cli"
	"cadence/internal/utils"
	"cadence/internal/validation"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	WeekStartDay *int    `help:"First day of the week (0=Sunday, 1=Monday, ... 6=Saturday)."`
	Timezone     *string `help:"IANA timezone name (e.g. America/New_York) or 'Local'."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Week Start Day: %s (%d)\n",
			time.Weekday(settings.WeekStartDay).String(), settings.WeekStartDay)
		fmt.Printf("  Timezone:       %s\n", settings.Timezone)
		return nil
	}

	updated := false
	if c.WeekStartDay != nil {
		settings.WeekStartDay = *c.WeekStartDay
		updated = true
	}
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("unknown timezone: %s", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	if result := validation.CheckSettings(settings); result.HasIssues() {
		return fmt.Errorf("invalid settings:\n%s", result.FormatReport())
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println("Settings updated successfully.")
	return nil
}
