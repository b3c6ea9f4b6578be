package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/linechat/backend/internal/registration/entity"
)

// KeyRepo provides data access for the access_keys table.
type KeyRepo struct {
	db *sqlx.DB
}

func NewKeyRepo(db *sqlx.DB) *KeyRepo { return &KeyRepo{db: db} }

// Get returns the access key row or sql.ErrNoRows.
func (r *KeyRepo) Get(ctx context.Context, key string) (*entity.AccessKey, error) {
	const q = `SELECT key_string, is_used, claimed_by_user_id, created_at
	  FROM access_keys WHERE key_string = $1`
	var row entity.AccessKey
	if err := r.db.GetContext(ctx, &row, q, key); err != nil {
		return nil, err
	}
	return &row, nil
}

// Claim marks the key as used by userID, but only if it is still unused at
// the moment the statement runs. The WHERE clause is the sole arbiter of key
// exclusivity; concurrent claims on the same key never both succeed. Returns
// false with a nil error when the claim lost to a concurrent redemption.
func (r *KeyRepo) Claim(ctx context.Context, key string, userID int64) (bool, error) {
	const q = `UPDATE access_keys SET is_used = TRUE, claimed_by_user_id = $2
	  WHERE key_string = $1 AND is_used = FALSE RETURNING 1`
	var one int
	if err := r.db.GetContext(ctx, &one, q, key, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
