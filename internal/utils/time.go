package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cadence/internal/calendar"
	"cadence/internal/models"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// "Local" or an empty string resolves to the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// TodayInTimezone returns today's day key (YYYY-MM-DD) in the specified
// timezone. "Today" is always determined by the user's configured timezone,
// never the server clock's zone.
func TodayInTimezone(timezone string) (string, error) {
	now, err := NowInTimezone(timezone)
	if err != nil {
		return "", err
	}
	return calendar.DayKey(now), nil
}

// NowFromSettings returns the current time using the timezone from settings.
func NowFromSettings(settings models.Settings) (time.Time, error) {
	return NowInTimezone(settings.Timezone)
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
