package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/linechat/backend/internal/media/entity"
)

// MediaRepo provides data access for the media_payloads table.
type MediaRepo struct {
	db *sqlx.DB
}

func NewMediaRepo(db *sqlx.DB) *MediaRepo { return &MediaRepo{db: db} }

// Create stores a payload and returns the store-assigned ID.
func (r *MediaRepo) Create(ctx context.Context, data []byte, mimeType string, createdAt int64) (int64, error) {
	const q = `INSERT INTO media_payloads (file_data, mime_type, created_at)
	  VALUES ($1, $2, $3) RETURNING id`
	var id int64
	if err := r.db.GetContext(ctx, &id, q, data, mimeType, createdAt); err != nil {
		return 0, err
	}
	return id, nil
}

// Get returns the stored payload or sql.ErrNoRows.
func (r *MediaRepo) Get(ctx context.Context, id int64) (*entity.Payload, error) {
	const q = `SELECT id, file_data, mime_type, created_at FROM media_payloads WHERE id = $1`
	var row entity.Payload
	if err := r.db.GetContext(ctx, &row, q, id); err != nil {
		return nil, err
	}
	return &row, nil
}

// DeleteOlderThan removes every payload created before cutoff (unix millis)
// and reports how many rows went away. Idempotent by construction.
func (r *MediaRepo) DeleteOlderThan(ctx context.Context, cutoff int64) (int64, error) {
	const q = `DELETE FROM media_payloads WHERE created_at < $1`
	res, err := r.db.ExecContext(ctx, q, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
