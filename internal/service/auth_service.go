package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"tasktracker/internal/domain"
)

type AuthService struct {
	users UserStore
	audit *AuditService
}

func NewAuthService(users UserStore, audit *AuditService) *AuthService {
	return &AuthService{users: users, audit: audit}
}

// Register validates the credentials and creates a regular account.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, domain.ErrUsernameRequired
	}
	if password == "" {
		return nil, domain.ErrPasswordRequired
	}
	if utf8.RuneCountInString(username) > domain.MaxUsernameLen {
		return nil, domain.ErrUsernameTooLong
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &domain.User{Username: username, PasswordHash: hash}
	// the unique constraint still catches a concurrent registration
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	s.audit.LogAuth(ctx, u.ID, domain.AuditActionRegister, map[string]any{"username": u.Username})
	return u, nil
}

// Login returns the account matching the credentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)

	u, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		s.audit.LogAuth(ctx, 0, domain.AuditActionLoginFailed, map[string]any{"username": username, "reason": "unknown user"})
		return nil, domain.ErrBadUsername
	}
	if err != nil {
		return nil, err
	}

	if !CheckPasswordHash(password, u.PasswordHash) {
		s.audit.LogAuth(ctx, u.ID, domain.AuditActionLoginFailed, map[string]any{"reason": "bad password"})
		return nil, domain.ErrBadPassword
	}

	s.audit.LogAuth(ctx, u.ID, domain.AuditActionLogin, nil)
	return u, nil
}

// Logout only records the event; session state lives in the cookie.
func (s *AuthService) Logout(ctx context.Context, userID int64) {
	if userID == 0 {
		return
	}
	s.audit.LogAuth(ctx, userID, domain.AuditActionLogout, nil)
}

// ResolveUser loads the account behind a session. A vanished account is
// reported as (nil, nil) so the request simply continues anonymously.
func (s *AuthService) ResolveUser(ctx context.Context, id int64) (*domain.User, error) {
	if id == 0 {
		return nil, nil
	}
	u, err := s.users.GetByID(ctx, id)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
