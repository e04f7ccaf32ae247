package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"tasktracker/internal/domain"
)

// TaskInput carries the fields of a create or partial update. A nil field
// was not supplied by the client.
type TaskInput struct {
	Title       *string
	Description *string
	IsDone      *bool
	Status      *string
	Priority    *string
	DueDate     *string
	Tags        *string
}

type TaskService struct {
	tasks  TaskStore
	events TaskEvents
	audit  *AuditService
	now    func() time.Time
}

func NewTaskService(tasks TaskStore, events TaskEvents, audit *AuditService) *TaskService {
	return &TaskService{
		tasks:  tasks,
		events: events,
		audit:  audit,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// List returns the actor's own tasks, newest first.
func (s *TaskService) List(ctx context.Context, actor *domain.User) ([]domain.Task, error) {
	if actor == nil {
		return nil, domain.ErrForbidden
	}
	return s.tasks.ListByUser(ctx, actor.ID)
}

// Create adds a task owned by actor.
func (s *TaskService) Create(ctx context.Context, actor *domain.User, in TaskInput) (*domain.Task, error) {
	if actor == nil {
		return nil, domain.ErrForbidden
	}

	title := ""
	if in.Title != nil {
		title = strings.TrimSpace(*in.Title)
	}
	if title == "" {
		return nil, domain.ErrTitleRequired
	}

	now := s.now()
	t := &domain.Task{
		UserID:    actor.ID,
		Title:     title,
		Status:    domain.TaskStatusTodo,
		Priority:  domain.PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := applyInput(t, in); err != nil {
		return nil, err
	}

	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, err
	}

	s.publish(t.UserID, domain.TaskEvent{Type: domain.TaskCreated, TaskID: t.ID, Task: t})
	return t, nil
}

// Get returns a task the actor may access.
func (s *TaskService) Get(ctx context.Context, actor *domain.User, id int64) (*domain.Task, error) {
	return s.load(ctx, actor, id, "get")
}

// Update applies the supplied fields only. A blank title is ignored.
func (s *TaskService) Update(ctx context.Context, actor *domain.User, id int64, in TaskInput) (*domain.Task, error) {
	t, err := s.load(ctx, actor, id, "update")
	if err != nil {
		return nil, err
	}

	if err := applyInput(t, in); err != nil {
		return nil, err
	}
	t.UpdatedAt = s.now()

	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, err
	}

	s.publish(t.UserID, domain.TaskEvent{Type: domain.TaskUpdated, TaskID: t.ID, Task: t})
	return t, nil
}

// Toggle flips the done flag; status follows it.
func (s *TaskService) Toggle(ctx context.Context, actor *domain.User, id int64) (*domain.Task, error) {
	t, err := s.load(ctx, actor, id, "toggle")
	if err != nil {
		return nil, err
	}

	t.SetDone(!t.IsDone)
	t.UpdatedAt = s.now()

	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, err
	}

	s.publish(t.UserID, domain.TaskEvent{Type: domain.TaskUpdated, TaskID: t.ID, Task: t})
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	t, err := s.load(ctx, actor, id, "delete")
	if err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, t.ID); err != nil {
		return err
	}

	s.publish(t.UserID, domain.TaskEvent{Type: domain.TaskDeleted, TaskID: t.ID})
	return nil
}

func (s *TaskService) load(ctx context.Context, actor *domain.User, id int64, op string) (*domain.Task, error) {
	if actor == nil {
		return nil, domain.ErrForbidden
	}

	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.CanAccess(t) {
		s.audit.LogTaskDenied(ctx, actor.ID, id, op)
		return nil, domain.ErrForbidden
	}
	return t, nil
}

func (s *TaskService) publish(owner int64, evt domain.TaskEvent) {
	if s.events == nil {
		return
	}
	s.events.Publish(owner, evt)
}

// applyInput copies the supplied fields of in onto t after validation.
// Nothing is written to t unless every field is valid.
func applyInput(t *domain.Task, in TaskInput) error {
	var title string
	if in.Title != nil {
		title = strings.TrimSpace(*in.Title)
		if utf8.RuneCountInString(title) > domain.MaxTitleLen {
			return domain.ErrFieldTooLong
		}
	}

	var priority string
	if in.Priority != nil {
		priority = strings.ToLower(strings.TrimSpace(*in.Priority))
		if priority != "" && !domain.ValidPriority(priority) {
			return domain.ErrInvalidPriority
		}
	}

	var status domain.TaskStatus
	if in.Status != nil {
		status = domain.TaskStatus(strings.ToLower(strings.TrimSpace(*in.Status)))
		if status != "" && !status.Valid() {
			return domain.ErrInvalidStatus
		}
	}

	dueDate := optionalText(in.DueDate)
	tags := optionalText(in.Tags)
	if dueDate != nil && utf8.RuneCountInString(*dueDate) > domain.MaxDueDateLen {
		return domain.ErrFieldTooLong
	}
	if tags != nil && utf8.RuneCountInString(*tags) > domain.MaxTagsLen {
		return domain.ErrFieldTooLong
	}

	if title != "" {
		t.Title = title
	}
	if in.Description != nil {
		t.Description = optionalText(in.Description)
	}
	if priority != "" {
		t.Priority = priority
	}
	if in.DueDate != nil {
		t.DueDate = dueDate
	}
	if in.Tags != nil {
		t.Tags = tags
	}

	switch {
	case status != "":
		t.SetStatus(status)
	case in.IsDone != nil:
		t.SetDone(*in.IsDone)
	}
	return nil
}

// optionalText maps blank input to NULL.
func optionalText(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
