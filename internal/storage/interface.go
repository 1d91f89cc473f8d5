package storage

import "cadence/internal/models"

// Provider is the persistence collaborator behind the engine. It guarantees
// at most one completion record per (habit id, day).
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	Migrate(logFn func(string)) (int, error)

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetHabitByName(name string) (models.Habit, error)
	GetAllHabits(includeInactive, includeDeleted bool) ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	DeleteHabit(id string) error
	RestoreHabit(id string) error

	// Completions
	UpsertCompletion(models.Completion) error
	GetCompletion(habitID, day string) (models.Completion, error)
	GetCompletionsForHabit(habitID, startDay, endDay string) ([]models.Completion, error)
	GetCompletionsForRange(startDay, endDay string) ([]models.Completion, error)
	GetAllCompletions() ([]models.Completion, error)
	DeleteCompletion(habitID, day string) error

	// Utils
	GetConfigPath() string
}
