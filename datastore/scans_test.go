package datastore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanRepository_InsertScanLog(t *testing.T) {
	t.Run("inserts a row with a generated id", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		scanDate := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
		mock.ExpectExec(`INSERT INTO scan_log`).
			WithArgs(sqlmock.AnyArg(), scanDate).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = NewScanRepository(db).InsertScanLog(context.Background(), scanDate)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wraps store errors", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`INSERT INTO scan_log`).
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnError(errors.New("disk full"))

		err = NewScanRepository(db).InsertScanLog(context.Background(), time.Now())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to insert scan log")
	})
}

func TestScanRepository_HasScanSince(t *testing.T) {
	cutoff := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)

	t.Run("true when at least one row is at or after the cutoff", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT COUNT\(\*\)`).
			WithArgs(cutoff).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		done, err := NewScanRepository(db).HasScanSince(context.Background(), cutoff)

		require.NoError(t, err)
		assert.True(t, done)
	})

	t.Run("false when no rows match", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT COUNT\(\*\)`).
			WithArgs(cutoff).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		done, err := NewScanRepository(db).HasScanSince(context.Background(), cutoff)

		require.NoError(t, err)
		assert.False(t, done)
	})

	t.Run("wraps store errors", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT COUNT\(\*\)`).
			WithArgs(cutoff).
			WillReturnError(errors.New("timeout"))

		_, err = NewScanRepository(db).HasScanSince(context.Background(), cutoff)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to count scan log rows")
	})
}
