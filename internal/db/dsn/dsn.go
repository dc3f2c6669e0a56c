// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"net/url"

	"github.com/umsproject/ums/internal/config"
)

const sqliteMemory = ":memory:"

// Create builds the Data Source Name for the configured engine.
func Create(db config.DB) string {
	switch db.GormEngine {
	case config.EnginePostgres:
		return Postgres(db)
	case config.EngineSQLite:
		return SQLite(db)
	default:
		return MySQL(db)
	}
}

// MySQL builds a go-sql-driver style DSN.
func MySQL(db config.DB) string {
	out := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s",
		db.User,
		db.Password,
		db.Host,
		db.Port,
		db.Name,
	)

	if db.Extras != "" {
		out += "?" + db.Extras
	}

	return out
}

// Postgres builds a postgres:// connection URL.
func Postgres(db config.DB) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(db.User, db.Password),
		Host:     fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:     "/" + db.Name,
		RawQuery: db.Extras,
	}

	return u.String()
}

// SQLite returns the database file, or an in-memory database when no path is set.
func SQLite(db config.DB) string {
	if db.Path == "" {
		return sqliteMemory
	}

	return db.Path
}
