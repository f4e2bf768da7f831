package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"confsite/internal/dbx"
	"confsite/internal/domain"
)

type authService struct {
	userRepo    domain.UserRepository
	tx          dbx.TxRunner
	txUsers     func(dbx.DBTX) domain.UserRepository
	hasher      domain.PasswordHasher
	tokenIssuer domain.TokenIssuer
	sessionTTL  time.Duration
}

// NewAuthService creates an AuthService. txUsers binds a user repository to a transaction
// and is used for admin seeding.
func NewAuthService(userRepo domain.UserRepository, tx dbx.TxRunner, txUsers func(dbx.DBTX) domain.UserRepository, hasher domain.PasswordHasher, tokenIssuer domain.TokenIssuer, sessionTTL time.Duration) domain.AuthService {
	return &authService{
		userRepo:    userRepo,
		tx:          tx,
		txUsers:     txUsers,
		hasher:      hasher,
		tokenIssuer: tokenIssuer,
		sessionTTL:  sessionTTL,
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to get user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, user.Salt, password); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	token, err := s.tokenIssuer.Issue(user.ID, user.Username, s.sessionTTL)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue session: %w", err)
	}
	return token, user, nil
}

func (s *authService) CurrentUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *authService) EnsureDefaultAdmin(ctx context.Context, username, password string) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return false, fmt.Errorf("admin username and password are required")
	}
	created := false
	err := s.tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.txUsers(tx)
		_, err := repo.GetByUsername(ctx, username)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrUserNotFound) {
			return fmt.Errorf("failed to look up admin: %w", err)
		}
		salt, err := s.hasher.GenerateSalt()
		if err != nil {
			return err
		}
		hash, err := s.hasher.Hash(salt, password)
		if err != nil {
			return err
		}
		if err := repo.Create(ctx, domain.NewUser(username, hash, salt)); err != nil {
			return fmt.Errorf("failed to create admin: %w", err)
		}
		created = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return created, nil
}
