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

func TestUserRepository_DeleteUser(t *testing.T) {
	t.Run("returns the deleted rows for confirmation", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		createdAt := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
		mock.ExpectQuery(`DELETE FROM users`).
			WithArgs("user-123").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "email"}).
				AddRow("user-123", createdAt, "user@example.com"))

		deleted, err := NewUserRepository(db).DeleteUser(context.Background(), "user-123")

		require.NoError(t, err)
		require.Len(t, deleted, 1)
		assert.Equal(t, "user-123", deleted[0].ID)
		assert.Equal(t, createdAt, deleted[0].CreatedAt)
		assert.Equal(t, "user@example.com", deleted[0].Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns no rows when nothing matched", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`DELETE FROM users`).
			WithArgs("absent-user").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "email"}))

		deleted, err := NewUserRepository(db).DeleteUser(context.Background(), "absent-user")

		require.NoError(t, err)
		assert.Empty(t, deleted)
	})

	t.Run("wraps store errors", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`DELETE FROM users`).
			WithArgs("user-123").
			WillReturnError(errors.New("connection reset"))

		_, err = NewUserRepository(db).DeleteUser(context.Background(), "user-123")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to delete user")
	})
}
