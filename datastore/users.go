package datastore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/coreybb/daybrief/models"
)

type UserRepository struct {
	db *sql.DB // The actual database connection pool
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// DeleteUser removes the user's row(s) and returns them. The RETURNING
// clause hands back the rows that actually went away instead of trusting the
// driver's affected-rows count; an empty result means there was nothing to
// delete.
func (r *UserRepository) DeleteUser(ctx context.Context, userID string) ([]models.User, error) {
	query := `
		DELETE FROM users
		WHERE id = $1
		RETURNING id, created_at, email
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}
	defer rows.Close()

	var deleted []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.CreatedAt, &user.Email); err != nil {
			return deleted, fmt.Errorf("failed to scan deleted user row: %w", err)
		}
		deleted = append(deleted, user)
	}

	if err = rows.Err(); err != nil {
		return deleted, fmt.Errorf("error iterating deleted user rows: %w", err)
	}

	return deleted, nil
}
