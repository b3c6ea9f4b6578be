package repo

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// UserRepo provides data access for the users table using sqlx.
type UserRepo struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a new user row and returns the store-assigned ID.
func (r *UserRepo) Create(ctx context.Context, username, passwordHash string) (int64, error) {
	const q = `INSERT INTO users (username, password_hash) VALUES ($1, $2) RETURNING id`
	var id int64
	if err := r.db.GetContext(ctx, &id, q, username, passwordHash); err != nil {
		return 0, err
	}
	return id, nil
}

// Delete removes a user row. It is the compensating action for a lost key
// claim and must not fail on an already-absent row.
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM users WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
