package entity

import "time"

// User represents an account row in the `users` table. Rows are created only
// by a successful key redemption and deleted only by the compensating rollback.
type User struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// AccessKey is a single-use invitation token. is_used latches from false to
// true exactly once, ever.
type AccessKey struct {
	KeyString       string    `db:"key_string"`
	IsUsed          bool      `db:"is_used"`
	ClaimedByUserID *int64    `db:"claimed_by_user_id"`
	CreatedAt       time.Time `db:"created_at"`
}
