package service

import (
	"context"
	"errors"
	"fmt"

	"tasktracker/internal/domain"
)

// AdminService provides account management for admins
type AdminService struct {
	users UserStore
	audit *AuditService
}

// NewAdminService creates a new admin service
func NewAdminService(users UserStore, audit *AuditService) *AdminService {
	return &AdminService{users: users, audit: audit}
}

// ListUsers returns all accounts ordered by id
func (s *AdminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// DeleteUser removes the account and its tasks, returning what was deleted.
func (s *AdminService) DeleteUser(ctx context.Context, actor *domain.User, id int64) (*domain.User, error) {
	if actor == nil || !actor.IsAdmin {
		return nil, domain.ErrForbidden
	}
	if id == actor.ID {
		return nil, domain.ErrSelfDelete
	}

	target, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete user %d: %w", id, err)
	}

	s.audit.LogAdminAction(ctx, actor.ID, domain.AuditActionAdminDeleteUser, id,
		map[string]any{"username": target.Username})
	return target, nil
}

// EnsureAdmin creates username as an admin, or promotes it if it exists.
// The password is only used when the account is created.
func (s *AdminService) EnsureAdmin(ctx context.Context, username, password string) (*domain.User, bool, error) {
	existing, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		if !existing.IsAdmin {
			if err := s.users.SetAdmin(ctx, existing.ID, true); err != nil {
				return nil, false, err
			}
			existing.IsAdmin = true
			s.audit.LogAdminAction(ctx, 0, domain.AuditActionAdminPromote, existing.ID, nil)
		}
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, false, err
	}

	if username == "" {
		return nil, false, domain.ErrUsernameRequired
	}
	if password == "" {
		return nil, false, domain.ErrPasswordRequired
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, false, err
	}

	u := &domain.User{Username: username, PasswordHash: hash, IsAdmin: true}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, false, err
	}
	s.audit.LogAdminAction(ctx, 0, domain.AuditActionAdminPromote, u.ID, map[string]any{"created": true})
	return u, true, nil
}
