package message

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/linechat/backend/internal/message/entity"
	"github.com/linechat/backend/internal/message/repo"
)

// Repository is the slice of the message repo the service needs.
type Repository interface {
	Create(ctx context.Context, m *entity.Message) (int64, error)
	ListAfter(ctx context.Context, userID, after int64) ([]*entity.Message, error)
}

// Service appends messages and serves the timestamp-cursor sync query.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(db *sqlx.DB) *Service {
	return &Service{repo: repo.NewMessageRepo(db), now: time.Now}
}

// Send appends a message with a server-assigned timestamp. Receiver existence
// and text/media presence are not checked; senders are not authenticated.
// Known gaps, kept on purpose until the protocol grows an auth story.
func (s *Service) Send(ctx context.Context, senderID, receiverID int64, text *string, mediaID *int64) error {
	m := &entity.Message{
		SenderID:    senderID,
		ReceiverID:  receiverID,
		TextContent: text,
		MediaIDRef:  mediaID,
		Timestamp:   s.now().UnixMilli(),
	}
	if _, err := s.repo.Create(ctx, m); err != nil {
		return fmt.Errorf("append message: %w", err)
	}
	return nil
}

// Sync returns messages where userID is sender or receiver and timestamp is
// strictly after the supplied cursor, oldest first. Read-only and safe to
// poll at any interval.
func (s *Service) Sync(ctx context.Context, userID, after int64) ([]*entity.Message, error) {
	msgs, err := s.repo.ListAfter(ctx, userID, after)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return msgs, nil
}
