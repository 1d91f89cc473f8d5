package postgres

import (
	"database/sql"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"

	_ "github.com/lib/pq"

	"cadence/internal/constants"
	"cadence/internal/keyring"
	"cadence/internal/logger"
	"cadence/internal/migration"
	"cadence/internal/models"
	"cadence/migrations"
)

// Store is the PostgreSQL storage provider, used for shared or remote
// databases. The connection string must not embed a password; credentials
// come from the environment, .pgpass, or the OS keyring.
type Store struct {
	connStr string
	db      *sql.DB
}

func New(connStr string) *Store {
	s := &Store{connStr: connStr}
	s.ensureSearchPath()
	return s
}

// ensureSearchPath pins queries to the cadence schema unless the caller
// already set one.
func (s *Store) ensureSearchPath() {
	if strings.HasPrefix(s.connStr, "postgres://") || strings.HasPrefix(s.connStr, "postgresql://") {
		u, err := url.Parse(s.connStr)
		if err != nil {
			logger.Warn("Failed to parse Postgres connection string", "error", err)
			return
		}
		q := u.Query()
		if q.Get("search_path") == "" {
			q.Set("search_path", constants.AppName+",public")
			u.RawQuery = q.Encode()
			s.connStr = u.String()
		}
		return
	}
	if !hasDSNParam(s.connStr, "search_path") {
		s.connStr = strings.TrimSpace(s.connStr) + " search_path=" + constants.AppName + ",public"
	}
}

func hasDSNParam(connStr, key string) bool {
	for _, part := range strings.Fields(connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 && strings.EqualFold(kv[0], key) {
			return true
		}
	}
	return false
}

// resolveConnStr fills in credentials from the environment or the OS
// keyring when the stored string carries none.
func (s *Store) resolveConnStr() string {
	if env := os.Getenv(constants.EnvDBConnection); env != "" {
		return env
	}
	if stored, err := keyring.GetConnectionString(); err == nil && stored != "" {
		return stored
	}
	return s.connStr
}

func (s *Store) open() error {
	if s.db != nil {
		return nil
	}
	db, err := sql.Open("postgres", s.resolveConnStr())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.db = db
	return nil
}

func (s *Store) Init() error {
	if err := s.open(); err != nil {
		return err
	}
	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if _, err := s.GetSettings(); err != nil {
		defaults := models.Settings{
			WeekStartDay: constants.DefaultWeekStartDay,
			Timezone:     constants.DefaultTimezone,
		}
		if err := s.SaveSettings(defaults); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}
	return nil
}

func (s *Store) Load() error {
	if err := s.open(); err != nil {
		return err
	}
	return s.runner().ValidateVersion()
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.connStr
}

func (s *Store) runner() *migration.Runner {
	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		panic(fmt.Sprintf("embedded postgres migrations missing: %v", err))
	}
	return migration.NewRunner(s.db, subFS)
}

func (s *Store) runMigrations() error {
	_, err := s.runner().Apply(func(msg string) {
		fmt.Println(msg)
	})
	return err
}

// Migrate applies any pending migrations, reporting progress through logFn.
func (s *Store) Migrate(logFn func(string)) (int, error) {
	return s.runner().Apply(logFn)
}
