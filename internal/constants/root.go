package constants

const (
	AppName            = "cadence"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/cadence/cadence.db"
	Version            = "v0.3.0"

	// DateFormat is the standard day-key format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// EnvDBConnection names the environment variable that may carry the
	// PostgreSQL connection string.
	EnvDBConnection = "CADENCE_DB_CONNECTION"

	// Settings fallbacks applied by the CLI layer when no value is stored.
	// The engine itself never defaults a week start day.
	DefaultWeekStartDay = 1 // Monday
	DefaultTimezone     = "Local"

	// DefaultMinCompletions is the sample floor for rate rankings.
	DefaultMinCompletions = 3

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "cadence-"
	BackupFileSuffix = ".db"
)
