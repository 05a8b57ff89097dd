// Package users implements the credential store adapter: bcrypt-hashed
// passwords in a single Postgres relation, read on every login attempt
// and written only on registration.
package users

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/kri-sh27/s3transcribe/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register stores a new credential row for email. Password strength and
// confirmation checks belong to the session controller, not here.
func (s *Service) Register(ctx context.Context, email, password string) (*User, error) {

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &User{
		Email:        email,
		PasswordHash: string(hash),
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, shared.ErrDuplicateEmail) {
			return nil, shared.ErrDuplicateEmail
		}
		return nil, errors.Join(shared.ErrStoreUnavailable, err)
	}

	return user, nil
}

// Authenticate verifies email/password against the stored hash. An
// unknown email and a wrong password are indistinguishable to the
// caller; both return false with no error.
func (s *Service) Authenticate(ctx context.Context, email, password string) (bool, error) {

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return false, nil
		}
		return false, errors.Join(shared.ErrStoreUnavailable, err)
	}

	// bcrypt comparison is constant-time for equal-cost hashes
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return false, nil
	}

	return true, nil
}
