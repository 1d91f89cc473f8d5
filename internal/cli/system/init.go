package system

import (
	"fmt"
	"os"
	"path/filepath"

	"cadence/internal/cli"
	"cadence/internal/constants"
	"cadence/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting the existing database before initialization."`
	Source string `help:"Source database path or connection string to migrate data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if storage.IsPostgresConnString(ctx.Store.GetConfigPath()) {
			return fmt.Errorf("--force is only supported for local SQLite databases")
		}
		dbPath := ctx.Store.GetConfigPath()
		if c.Source != "" {
			absDbPath, err := filepath.Abs(dbPath)
			if err == nil {
				dbPath = absDbPath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized %s storage at: %s\n", constants.AppName, ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Migrating data from: %s\n", c.Source)
		if err := c.migrateData(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}
	return nil
}

func (c *InitCmd) migrateData(ctx *cli.Context, source string) error {
	var sourceStore storage.Provider
	if storage.IsPostgresConnString(source) {
		if storage.HasEmbeddedCredentials(source) {
			return fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
		}
		sourceStore = storage.NewPostgresStore(source)
	} else {
		sourceStore = storage.NewSQLiteStore(source)
	}

	if err := sourceStore.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer sourceStore.Close()

	fmt.Println("  Migrating settings...")
	settings, err := sourceStore.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	fmt.Println("  Migrating habits...")
	habits, err := sourceStore.GetAllHabits(true, true)
	if err != nil {
		return fmt.Errorf("failed to get habits from source: %w", err)
	}
	for _, habit := range habits {
		if err := ctx.Store.AddHabit(habit); err != nil {
			return fmt.Errorf("failed to add habit %s: %w", habit.ID, err)
		}
	}
	fmt.Printf("    Migrated %d habits\n", len(habits))

	fmt.Println("  Migrating completions...")
	completions, err := sourceStore.GetAllCompletions()
	if err != nil {
		return fmt.Errorf("failed to get completions from source: %w", err)
	}
	for _, rec := range completions {
		if err := ctx.Store.UpsertCompletion(rec); err != nil {
			return fmt.Errorf("failed to add completion %s/%s: %w", rec.HabitID, rec.Day, err)
		}
	}
	fmt.Printf("    Migrated %d completions\n", len(completions))

	return nil
}
