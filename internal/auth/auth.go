// Package auth registers accounts and manages the persisted session.
//
// Passwords are stored and compared as given; this package is not a
// security boundary.
package auth

import (
	"context"
	"errors"
	"fmt"

	"jobmate/jobboard-service/internal/apperr"
	"jobmate/jobboard-service/internal/model"
	"jobmate/jobboard-service/internal/store"
)

// Service handles registration, login and logout.
type Service struct {
	store *store.Store
}

func NewService(s *store.Store) *Service {
	return &Service{store: s}
}

// Register creates a user and returns it without its password. The email is
// normalized before the uniqueness check.
func (s *Service) Register(ctx context.Context, u model.User) (model.User, error) {
	u.Email = model.NormalizeEmail(u.Email)
	if err := model.Validate("user", u); err != nil {
		return model.User{}, err
	}

	created, err := s.store.Users.AddUnique(ctx, u, func(existing *model.User) bool {
		return model.NormalizeEmail(existing.Email) == u.Email
	})
	if errors.Is(err, store.ErrConflict) {
		return model.User{}, apperr.ErrDuplicateEmail
	}
	if err != nil {
		return model.User{}, fmt.Errorf("register: %w", err)
	}
	return created.Public(), nil
}

// Login checks the credentials and persists the resulting session as the
// current user.
func (s *Service) Login(ctx context.Context, email, password string) (*model.Session, error) {
	email = model.NormalizeEmail(email)
	u, err := s.store.Users.First(ctx, func(u *model.User) bool {
		return model.NormalizeEmail(u.Email) == email && u.Password == password
	})
	if errors.Is(err, store.ErrRecordNotFound) {
		return nil, apperr.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	sess := model.NewSession(u)
	if err := s.store.SetCurrentUser(ctx, sess); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return sess, nil
}

// Logout clears the persisted session.
func (s *Service) Logout(ctx context.Context) error {
	return s.store.ClearCurrentUser(ctx)
}

// Current restores the persisted session, or nil when logged out.
func (s *Service) Current(ctx context.Context) (*model.Session, error) {
	return s.store.CurrentUser(ctx)
}
