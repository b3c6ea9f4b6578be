package admin

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/linechat/backend/internal/admin/repo"
	"github.com/linechat/backend/pkg/utilities"
)

// Repository is the slice of the admin repo the service needs.
type Repository interface {
	InsertKey(ctx context.Context, key string) error
	CountUsers(ctx context.Context) (int64, error)
}

// Service issues invitation keys and reports aggregate user count. Neither
// operation authenticates the caller; a known gap carried from the original
// protocol, not an endorsement.
type Service struct {
	repo   Repository
	newKey func() string
}

func NewService(db *sqlx.DB) *Service {
	return &Service{repo: repo.NewAdminRepo(db), newKey: utilities.NewAccessKey}
}

// GenerateKey creates and persists a fresh unused access key. A duplicate
// token is retried once; with a KSUID payload the second collision in a row
// is not a realistic outcome, so after that the error surfaces.
func (s *Service) GenerateKey(ctx context.Context) (string, error) {
	key := s.newKey()
	err := s.repo.InsertKey(ctx, key)
	if err != nil && repo.IsUniqueViolation(err) {
		key = s.newKey()
		err = s.repo.InsertKey(ctx, key)
	}
	if err != nil {
		return "", fmt.Errorf("persist key: %w", err)
	}
	return key, nil
}

// GetStats returns the current count of user rows.
func (s *Service) GetStats(ctx context.Context) (int64, error) {
	n, err := s.repo.CountUsers(ctx)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
