package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tasktracker/internal/db"
	"tasktracker/internal/domain"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

var userColumns = []string{"id", "username", "password", "is_admin"}

type UserRepository struct {
	db *db.DB
}

func NewUserRepository(d *db.DB) *UserRepository {
	return &UserRepository{db: d}
}

// Create inserts u and fills in its id. A taken username yields domain.ErrUserExists.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	query, args, err := r.db.Builder().
		Insert("users").
		Columns("username", "password", "is_admin").
		Values(u.Username, u.PasswordHash, u.IsAdmin).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return err
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&u.ID); err != nil {
		if db.IsUniqueViolation(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Eq{"username": username})
}

func (r *UserRepository) getOne(ctx context.Context, where squirrel.Eq) (*domain.User, error) {
	query, args, err := r.db.Builder().
		Select(userColumns...).
		From("users").
		Where(where).
		ToSql()
	if err != nil {
		return nil, err
	}

	var u domain.User
	if err := r.db.GetContext(ctx, &u, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &u, nil
}

// List returns every account ordered by id.
func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	query, args, err := r.db.Builder().
		Select(userColumns...).
		From("users").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}

	users := []domain.User{}
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	return users, nil
}

// SetAdmin grants or revokes the admin flag.
func (r *UserRepository) SetAdmin(ctx context.Context, id int64, isAdmin bool) error {
	query, args, err := r.db.Builder().
		Update("users").
		Set("is_admin", isAdmin).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return requireAffected(res, domain.ErrUserNotFound)
}

// Delete removes the user and every task they own in one transaction.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	b := r.db.Builder()

	deleteTasks, taskArgs, err := b.Delete("tasks").Where(squirrel.Eq{"user_id": id}).ToSql()
	if err != nil {
		return err
	}
	deleteUser, userArgs, err := b.Delete("users").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}

	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, deleteTasks, taskArgs...); err != nil {
			return fmt.Errorf("delete user tasks: %w", err)
		}
		res, err := tx.ExecContext(ctx, deleteUser, userArgs...)
		if err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return requireAffected(res, domain.ErrUserNotFound)
	})
}

func requireAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
