package storage

import (
	"net/url"
	"strings"

	"cadence/internal/storage/postgres"
	"cadence/internal/storage/sqlite"
)

// NewSQLiteStore creates the default local store at path.
func NewSQLiteStore(path string) Provider {
	return sqlite.NewStore(path)
}

// NewPostgresStore creates a store over a PostgreSQL connection string.
func NewPostgresStore(connStr string) Provider {
	return postgres.New(connStr)
}

// IsPostgresConnString reports whether the config string selects the
// PostgreSQL backend.
func IsPostgresConnString(config string) bool {
	return strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://")
}

// HasEmbeddedCredentials reports whether a PostgreSQL connection string
// carries a password. Credentials belong in the environment, .pgpass, or
// the OS keyring, never on the command line.
func HasEmbeddedCredentials(connStr string) bool {
	if IsPostgresConnString(connStr) {
		u, err := url.Parse(connStr)
		if err != nil {
			return false
		}
		if u.User != nil {
			if _, set := u.User.Password(); set {
				return true
			}
		}
		return false
	}
	// DSN format: space-separated key=value pairs.
	for _, part := range strings.Fields(connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 && strings.EqualFold(kv[0], "password") {
			return true
		}
	}
	return false
}
