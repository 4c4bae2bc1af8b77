package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"shopfront/services/storefront/internal/repo"
	"shopfront/shared/pkg/models"
)

type UserStore interface {
	Find(ctx context.Context, email string) (models.User, bool, error)
	Create(ctx context.Context, u models.User) error
}

type SignupInput struct {
	FullName string
	Email    string
	Password string
	Confirm  string
}

type AccountsService struct {
	Repo   UserStore
	Hasher PasswordHasher
	Log    zerolog.Logger
}

func (s *AccountsService) Signup(ctx context.Context, in SignupInput) error {
	if in.Email == "" {
		return ErrEmailRequired
	}
	if in.Password != in.Confirm {
		return ErrPasswordMismatch
	}
	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	err = s.Repo.Create(ctx, models.User{Email: in.Email, FullName: in.FullName, PasswordHash: hash})
	if errors.Is(err, repo.ErrDuplicate) {
		return ErrConflict
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	s.Log.Info().Str("email", in.Email).Msg("user signed up")
	return nil
}

// Login never returns a nil error with an unauthenticated Identity.
func (s *AccountsService) Login(ctx context.Context, email, password string) (Identity, error) {
	if email == "" {
		return Identity{}, ErrInvalidCredentials
	}
	u, ok, err := s.Repo.Find(ctx, email)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	if !ok || !s.Hasher.Verify(u.PasswordHash, password) {
		return Identity{}, ErrInvalidCredentials
	}
	return Identity{Email: u.Email}, nil
}
