package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDatabase wires a Database onto a sqlmock connection so pool and
// transaction behavior can be asserted without a live server.
func newMockDatabase(t *testing.T) (*Database, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return &Database{DB: gormDB}, mock, mockDB
}

func TestDatabase_Ping(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	mock.ExpectPing()

	require.NoError(t, db.Ping())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabase_Close(t *testing.T) {
	db, mock, _ := newMockDatabase(t)

	mock.ExpectClose()

	require.NoError(t, db.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabase_Stats(t *testing.T) {
	db, _, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	stats, err := db.Stats()
	require.NoError(t, err)

	// sqlmock reports a quiet pool: no waiters, nothing evicted.
	assert.GreaterOrEqual(t, stats.OpenConnections, 0)
	assert.Equal(t, stats.OpenConnections, stats.InUse+stats.Idle)
	assert.Equal(t, int64(0), stats.WaitCount)
	assert.Equal(t, time.Duration(0), stats.WaitDuration)
	assert.Equal(t, int64(0), stats.MaxLifetimeClosed)
}

func TestDatabase_RunInTx(t *testing.T) {
	type receipt struct {
		ID     uint
		Number string
	}

	t.Run("commits when fn succeeds", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		mock.ExpectBegin()
		// gorm's postgres dialect inserts via Query with RETURNING.
		mock.ExpectQuery(`INSERT INTO "receipts"`).
			WithArgs("R-1001").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectCommit()

		err := db.RunInTx(context.Background(), func(ctx context.Context) error {
			return dbFrom(ctx, db.DB).Create(&receipt{Number: "R-1001"}).Error
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when fn fails", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		err := db.RunInTx(context.Background(), func(ctx context.Context) error {
			return assert.AnError
		})

		assert.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("fn sees the transactional handle through the context", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectCommit()

		err := db.RunInTx(context.Background(), func(ctx context.Context) error {
			tx := dbFrom(ctx, db.DB)
			assert.NotSame(t, db.DB, tx)
			return nil
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestWithTx(t *testing.T) {
	db, _, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	t.Run("dbFrom resolves the carried transaction", func(t *testing.T) {
		tx := db.DB.Session(&gorm.Session{})
		ctx := WithTx(context.Background(), tx)

		assert.Same(t, tx, dbFrom(ctx, db.DB))
	})

	t.Run("dbFrom falls back to the base connection", func(t *testing.T) {
		assert.Same(t, db.DB, dbFrom(context.Background(), db.DB))
	})
}
