package registration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/linechat/backend/internal/registration/entity"
	"github.com/linechat/backend/internal/registration/repo"
	"github.com/linechat/backend/pkg/apperrors"
)

// PasswordHasher defines minimal hashing interface (abstract so we can swap to argon2 later).
type PasswordHasher interface {
	Hash(pw string) (string, error)
	Verify(hash, pw string) bool
}

// BcryptHasher implementation.
type BcryptHasher struct{ Cost int }

func (b BcryptHasher) Hash(pw string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (b BcryptHasher) Verify(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// UserCreator is the slice of the user repo the service needs.
type UserCreator interface {
	Create(ctx context.Context, username, passwordHash string) (int64, error)
	Delete(ctx context.Context, id int64) error
}

// KeyClaimer is the slice of the key repo the service needs.
type KeyClaimer interface {
	Get(ctx context.Context, key string) (*entity.AccessKey, error)
	Claim(ctx context.Context, key string, userID int64) (bool, error)
}

// Service redeems invitation keys. The store provides no multi-statement
// transaction spanning the user insert and the key claim, so exclusivity is
// enforced saga-style: insert, conditional claim, compensate on failure.
type Service struct {
	users  UserCreator
	keys   KeyClaimer
	hasher PasswordHasher
	logger *zap.SugaredLogger
}

func NewService(db *sqlx.DB, logger *zap.SugaredLogger) *Service {
	return &Service{
		users:  repo.NewUserRepo(db),
		keys:   repo.NewKeyRepo(db),
		hasher: BcryptHasher{Cost: 12},
		logger: logger,
	}
}

// Register redeems key and creates a user. At most one registration ever
// succeeds per key; a lost race leaves no user row behind.
func (s *Service) Register(ctx context.Context, key, username, password string) (int64, error) {
	if key == "" || username == "" || password == "" {
		return 0, apperrors.ErrMissingFields
	}

	// Advisory check: fail fast on the clearly-used case. The Claim below is
	// what actually enforces exclusivity.
	k, err := s.keys.Get(ctx, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, apperrors.ErrInvalidKey
		}
		return 0, fmt.Errorf("lookup key: %w", err)
	}
	if k.IsUsed {
		return 0, apperrors.ErrKeyAlreadyUsed
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	userID, err := s.users.Create(ctx, username, hash)
	if err != nil {
		return 0, fmt.Errorf("create user: %w", err)
	}

	claimed, err := s.keys.Claim(ctx, key, userID)
	if err != nil {
		// outcome of the claim is unknown; leave the user row for operator
		// inspection rather than risk deleting a legitimate winner
		return 0, fmt.Errorf("claim key: %w", err)
	}
	if !claimed {
		// Lost the race: the key was consumed between the advisory check and
		// the claim. Compensate by undoing the insert.
		if delErr := s.users.Delete(ctx, userID); delErr != nil {
			s.logger.Errorw("compensating user delete failed",
				"user_id", userID, "err", delErr)
		}
		return 0, apperrors.ErrKeyRace
	}

	return userID, nil
}
