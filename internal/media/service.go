package media

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/linechat/backend/internal/media/entity"
	"github.com/linechat/backend/internal/media/repo"
	"github.com/linechat/backend/pkg/apperrors"
)

// MaxPayloadBytes is the upload size ceiling. Payloads of exactly this size
// are accepted; one byte more is rejected.
const MaxPayloadBytes = 5 << 20

// DefaultRetention is how long payloads live before the sweep removes them.
const DefaultRetention = 24 * time.Hour

// Repository is the slice of the media repo the service needs.
type Repository interface {
	Create(ctx context.Context, data []byte, mimeType string, createdAt int64) (int64, error)
	Get(ctx context.Context, id int64) (*entity.Payload, error)
	DeleteOlderThan(ctx context.Context, cutoff int64) (int64, error)
}

// Service stores and retrieves binary payloads. Bytes and mime type pass
// through untouched in both directions.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(db *sqlx.DB) *Service {
	return &Service{repo: repo.NewMediaRepo(db), now: time.Now}
}

// Upload persists the payload with a server-assigned creation timestamp.
func (s *Service) Upload(ctx context.Context, data []byte, mimeType string) (int64, error) {
	if len(data) > MaxPayloadBytes {
		return 0, apperrors.ErrPayloadTooLarge
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	id, err := s.repo.Create(ctx, data, mimeType, s.now().UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("store payload: %w", err)
	}
	return id, nil
}

// Download returns the exact stored bytes and mime type.
func (s *Service) Download(ctx context.Context, id int64) ([]byte, string, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", apperrors.ErrMediaNotFound
		}
		return nil, "", fmt.Errorf("load payload: %w", err)
	}
	return p.FileData, p.MimeType, nil
}

// SweepExpired deletes every payload older than retention. A payload uploaded
// during the same pass is never eligible: its created_at is at or after the
// cutoff computed here.
func (s *Service) SweepExpired(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := s.now().Add(-retention).UnixMilli()
	return s.repo.DeleteOlderThan(ctx, cutoff)
}
