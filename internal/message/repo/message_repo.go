package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/linechat/backend/internal/message/entity"
)

// MessageRepo provides data access for the messages table.
type MessageRepo struct {
	db *sqlx.DB
}

func NewMessageRepo(db *sqlx.DB) *MessageRepo { return &MessageRepo{db: db} }

// Create appends a message row.
func (r *MessageRepo) Create(ctx context.Context, m *entity.Message) (int64, error) {
	const q = `INSERT INTO messages (sender_id, receiver_id, text_content, media_id_ref, timestamp)
	  VALUES ($1, $2, $3, $4, $5) RETURNING id`
	var id int64
	err := r.db.GetContext(ctx, &id, q,
		m.SenderID, m.ReceiverID, m.TextContent, m.MediaIDRef, m.Timestamp)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ListAfter returns every message involving userID with timestamp strictly
// greater than after, ascending by timestamp. This is the whole sync cursor
// contract: strict inequality means a cursor taken from the last received
// message never replays it.
func (r *MessageRepo) ListAfter(ctx context.Context, userID, after int64) ([]*entity.Message, error) {
	const q = `SELECT id, sender_id, receiver_id, text_content, media_id_ref, timestamp
	  FROM messages
	  WHERE (sender_id = $1 OR receiver_id = $1) AND timestamp > $2
	  ORDER BY timestamp ASC`
	msgs := []*entity.Message{}
	if err := r.db.SelectContext(ctx, &msgs, q, userID, after); err != nil {
		return nil, err
	}
	return msgs, nil
}
