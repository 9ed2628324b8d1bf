// Package integration exercises the store against a real database. Tests run
// on in-memory SQLite so the suite needs no external services; the repository
// layer goes through the same GORM code paths as the PostgreSQL deployment.
package integration

import (
	"testing"

	"github.com/lewisgroup/storefront/internal/infrastructure/persistence"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database with the full schema applied.
// The connection pool is capped at one: every :memory: connection is its own
// database, so a second connection would see empty tables.
func newTestDB(t *testing.T) *persistence.Database {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db := &persistence.Database{DB: gormDB}
	require.NoError(t, db.Migrate())
	return db
}
