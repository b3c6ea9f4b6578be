package repo

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// AdminRepo provides the narrow statements the admin surface needs: key
// issuance and the user headcount.
type AdminRepo struct {
	db *sqlx.DB
}

func NewAdminRepo(db *sqlx.DB) *AdminRepo { return &AdminRepo{db: db} }

// InsertKey persists a fresh unused access key. The primary key on
// key_string makes a colliding insert fail instead of silently producing two
// keys sharing a string.
func (r *AdminRepo) InsertKey(ctx context.Context, key string) error {
	const q = `INSERT INTO access_keys (key_string) VALUES ($1)`
	_, err := r.db.ExecContext(ctx, q, key)
	return err
}

// IsUniqueViolation reports whether err is a Postgres duplicate-key error.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// CountUsers returns the current number of user rows.
func (r *AdminRepo) CountUsers(ctx context.Context) (int64, error) {
	const q = `SELECT COUNT(*) FROM users`
	var n int64
	if err := r.db.GetContext(ctx, &n, q); err != nil {
		return 0, err
	}
	return n, nil
}
