package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tasktracker/internal/db"
	"tasktracker/internal/domain"

	"github.com/Masterminds/squirrel"
)

var taskColumns = []string{
	"id", "user_id", "title", "description", "is_done", "status",
	"priority", "due_date", "tags", "created_at", "updated_at",
}

type TaskRepository struct {
	db *db.DB
}

func NewTaskRepository(d *db.DB) *TaskRepository {
	return &TaskRepository{db: d}
}

// ListByUser returns the user's tasks, newest first.
func (r *TaskRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Task, error) {
	query, args, err := r.db.Builder().
		Select(taskColumns...).
		From("tasks").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	tasks := []domain.Task{}
	if err := r.db.SelectContext(ctx, &tasks, query, args...); err != nil {
		return nil, fmt.Errorf("select tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	query, args, err := r.db.Builder().
		Select(taskColumns...).
		From("tasks").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var t domain.Task
	if err := r.db.GetContext(ctx, &t, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("select task: %w", err)
	}
	return &t, nil
}

// Create inserts t and fills in its id. Timestamps are taken from t.
func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	query, args, err := r.db.Builder().
		Insert("tasks").
		Columns("user_id", "title", "description", "is_done", "status",
			"priority", "due_date", "tags", "created_at", "updated_at").
		Values(t.UserID, t.Title, t.Description, t.IsDone, string(t.Status),
			t.Priority, t.DueDate, t.Tags, t.CreatedAt, t.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return err
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&t.ID); err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// Update writes every mutable column of t.
func (r *TaskRepository) Update(ctx context.Context, t *domain.Task) error {
	query, args, err := r.db.Builder().
		Update("tasks").
		SetMap(map[string]any{
			"title":       t.Title,
			"description": t.Description,
			"is_done":     t.IsDone,
			"status":      string(t.Status),
			"priority":    t.Priority,
			"due_date":    t.DueDate,
			"tags":        t.Tags,
			"updated_at":  t.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": t.ID}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return requireAffected(res, domain.ErrTaskNotFound)
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.db.Builder().
		Delete("tasks").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return requireAffected(res, domain.ErrTaskNotFound)
}
