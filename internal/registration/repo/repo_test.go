package repo

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func TestUserRepo_Create(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewUserRepo(db)

	mock.ExpectQuery(`INSERT INTO users \(username, password_hash\) VALUES \(\$1, \$2\) RETURNING id`).
		WithArgs("alice", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	id, err := r.Create(context.Background(), "alice", "hash")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewUserRepo(db)

	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, r.Delete(context.Background(), 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKeyRepo_Get_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewKeyRepo(db)

	mock.ExpectQuery(`SELECT key_string, is_used, claimed_by_user_id, created_at`).
		WithArgs("KEY-NOPE").
		WillReturnError(sql.ErrNoRows)

	_, err := r.Get(context.Background(), "KEY-NOPE")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestKeyRepo_Claim_Wins(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewKeyRepo(db)

	mock.ExpectQuery(`UPDATE access_keys SET is_used = TRUE, claimed_by_user_id = \$2\s+WHERE key_string = \$1 AND is_used = FALSE RETURNING 1`).
		WithArgs("KEY-AAAA", int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	claimed, err := r.Claim(context.Background(), "KEY-AAAA", 7)
	require.NoError(t, err)
	assert.True(t, claimed)
}

func TestKeyRepo_Claim_LosesRace(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewKeyRepo(db)

	// zero rows updated: the key was consumed by a concurrent redemption
	mock.ExpectQuery(`UPDATE access_keys SET is_used = TRUE`).
		WithArgs("KEY-AAAA", int64(8)).
		WillReturnError(sql.ErrNoRows)

	claimed, err := r.Claim(context.Background(), "KEY-AAAA", 8)
	require.NoError(t, err)
	assert.False(t, claimed)
}

func TestKeyRepo_Claim_DBError(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewKeyRepo(db)

	mock.ExpectQuery(`UPDATE access_keys SET is_used = TRUE`).
		WithArgs("KEY-AAAA", int64(9)).
		WillReturnError(errors.New("conn reset"))

	_, err := r.Claim(context.Background(), "KEY-AAAA", 9)
	assert.Error(t, err)
}
