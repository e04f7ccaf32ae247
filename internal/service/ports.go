package service

import (
	"context"

	"tasktracker/internal/domain"
)

// UserStore is the persistence the auth and admin services need.
type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	SetAdmin(ctx context.Context, id int64, isAdmin bool) error
	Delete(ctx context.Context, id int64) error
}

// TaskStore is the persistence the task service needs.
type TaskStore interface {
	ListByUser(ctx context.Context, userID int64) ([]domain.Task, error)
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	Create(ctx context.Context, t *domain.Task) error
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id int64) error
}

// TaskEvents receives change notifications for a task owner.
type TaskEvents interface {
	Publish(userID int64, evt domain.TaskEvent)
}
