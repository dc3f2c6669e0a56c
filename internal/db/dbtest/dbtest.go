// Package dbtest opens throwaway migrated databases for tests.
package dbtest

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/umsproject/ums/internal/config"
	"github.com/umsproject/ums/internal/db"
)

// New returns a migrated in-memory sqlite database private to the test.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	conn, err := db.Open(config.DB{
		GormEngine: config.EngineSQLite,
		// a named shared cache keeps every pooled connection on the same database
		Path:         "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		MaxOpenConns: 1,
	})
	require.NoError(t, err, "failed to create test database")
	require.NoError(t, db.Migrate(conn), "failed to migrate test database")

	t.Cleanup(func() {
		if sqlDB, errDB := conn.DB(); errDB == nil {
			_ = sqlDB.Close()
		}
	})

	return conn
}
