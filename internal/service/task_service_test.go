package service

import (
	"context"
	"testing"
	"time"

	"tasktracker/internal/domain"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type taskFixture struct {
	svc   *TaskService
	tasks *memTasks
	alice *domain.User
	bob   *domain.User
	admin *domain.User
}

func newTaskFixture(events TaskEvents) *taskFixture {
	tasks := newMemTasks()
	svc := NewTaskService(tasks, events, nil)
	clock := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return &taskFixture{
		svc:   svc,
		tasks: tasks,
		alice: &domain.User{ID: 1, Username: "alice"},
		bob:   &domain.User{ID: 2, Username: "bob"},
		admin: &domain.User{ID: 3, Username: "root", IsAdmin: true},
	}
}

func TestTaskService_CreateDefaults(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture(nil)

	task, err := f.svc.Create(ctx, f.alice, TaskInput{Title: ptr("  Buy milk "), Description: ptr("   ")})
	require.NoError(t, err)
	require.Equal(t, "Buy milk", task.Title)
	require.Nil(t, task.Description)
	require.False(t, task.IsDone)
	require.Equal(t, domain.TaskStatusTodo, task.Status)
	require.Equal(t, domain.PriorityMedium, task.Priority)
	require.Equal(t, f.alice.ID, task.UserID)
	require.False(t, task.CreatedAt.IsZero())
}

func TestTaskService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture(nil)

	_, err := f.svc.Create(ctx, f.alice, TaskInput{})
	require.ErrorIs(t, err, domain.ErrTitleRequired)

	_, err = f.svc.Create(ctx, f.alice, TaskInput{Title: ptr("   ")})
	require.ErrorIs(t, err, domain.ErrTitleRequired)

	_, err = f.svc.Create(ctx, f.alice, TaskInput{Title: ptr("x"), Priority: ptr("urgent")})
	require.ErrorIs(t, err, domain.ErrInvalidPriority)

	_, err = f.svc.Create(ctx, f.alice, TaskInput{Title: ptr("x"), Status: ptr("blocked")})
	require.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = f.svc.Create(ctx, nil, TaskInput{Title: ptr("x")})
	require.ErrorIs(t, err, domain.ErrForbidden)

	list, err := f.svc.List(ctx, f.alice)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestTaskService_CreateStatusWinsOverDone(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture(nil)

	task, err := f.svc.Create(ctx, f.alice, TaskInput{Title: ptr("x"), IsDone: ptr(true), Status: ptr("In_Progress")})
	require.NoError(t, err)
	require.Equal(t, domain.TaskStatusInProgress, task.Status)
	require.False(t, task.IsDone)

	task, err = f.svc.Create(ctx, f.alice, TaskInput{Title: ptr("y"), IsDone: ptr(true), Priority: ptr("HIGH")})
	require.NoError(t, err)
	require.Equal(t, domain.TaskStatusDone, task.Status)
	require.True(t, task.IsDone)
	require.Equal(t, domain.PriorityHigh, task.Priority)
}

func TestTaskService_ListIsolation(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture(nil)

	_, err := f.svc.Create(ctx, f.alice, TaskInput{Title: ptr("a1")})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, f.alice, TaskInput{Title: ptr("a2")})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, f.bob, TaskInput{Title: ptr("b1")})
	require.NoError(t, err)

	list, err := f.svc.List(ctx, f.alice)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "a2", list[0].Title)

	list, err = f.svc.List(ctx, f.bob)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestTaskService_PartialUpdate(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture(nil)

	task, err := f.svc.Create(ctx, f.alice, TaskInput{Title: ptr("keep"), Priority: ptr("low"), Tags: ptr("home")})
	require.NoError(t, err)
	createdAt := task.CreatedAt

	updated, err := f.svc.Update(ctx, f.alice, task.ID, TaskInput{Description: ptr("new notes")})
	require.NoError(t, err)
	require.Equal(t, "keep", updated.Title)
	require.Equal(t, "new notes", *updated.Description)
	require.Equal(t, domain.PriorityLow, updated.Priority)
	require.Equal(t, "home", *updated.Tags)
	require.False(t, updated.IsDone)
	require.Equal(t, createdAt, updated.CreatedAt)
	require.True(t, updated.UpdatedAt.After(createdAt))

	// blank title leaves the old one
	updated, err = f.svc.Update(ctx, f.alice, task.ID, TaskInput{Title: ptr(""), Tags: ptr("")})
	require.NoError(t, err)
	require.Equal(t, "keep", updated.Title)
	require.Nil(t, updated.Tags)
}

func TestTaskService_UpdateInvalidLeavesTaskUntouched(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture(nil)

	task, err := f.svc.Create(ctx, f.alice, TaskInput{Title: ptr("keep")})
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, f.alice, task.ID, TaskInput{Title: ptr("changed"), Priority: ptr("nope")})
	require.ErrorIs(t, err, domain.ErrInvalidPriority)

	stored, err := f.tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	require.Equal(t, "keep", stored.Title)
}

func TestTaskService_UpdateStatusSync(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture(nil)

	task, err := f.svc.Create(ctx, f.alice, TaskInput{Title: ptr("x")})
	require.NoError(t, err)

	updated, err := f.svc.Update(ctx, f.alice, task.ID, TaskInput{Status: ptr("done")})
	require.NoError(t, err)
	require.True(t, updated.IsDone)

	updated, err = f.svc.Update(ctx, f.alice, task.ID, TaskInput{IsDone: ptr(false)})
	require.NoError(t, err)
	require.False(t, updated.IsDone)
	require.Equal(t, domain.TaskStatusTodo, updated.Status)
}

func TestTaskService_ToggleTwice(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture(nil)

	task, err := f.svc.Create(ctx, f.alice, TaskInput{Title: ptr("x")})
	require.NoError(t, err)

	once, err := f.svc.Toggle(ctx, f.alice, task.ID)
	require.NoError(t, err)
	require.True(t, once.IsDone)
	require.Equal(t, domain.TaskStatusDone, once.Status)

	twice, err := f.svc.Toggle(ctx, f.alice, task.ID)
	require.NoError(t, err)
	require.False(t, twice.IsDone)
	require.Equal(t, domain.TaskStatusTodo, twice.Status)
}

func TestTaskService_Ownership(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture(nil)

	task, err := f.svc.Create(ctx, f.alice, TaskInput{Title: ptr("private")})
	require.NoError(t, err)

	_, err = f.svc.Get(ctx, f.bob, task.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.svc.Update(ctx, f.bob, task.ID, TaskInput{Title: ptr("mine now")})
	require.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.svc.Toggle(ctx, f.bob, task.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)
	require.ErrorIs(t, f.svc.Delete(ctx, f.bob, task.ID), domain.ErrForbidden)

	stored, err := f.tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	require.Equal(t, "private", stored.Title)
	require.False(t, stored.IsDone)

	// admins may act on any task
	got, err := f.svc.Get(ctx, f.admin, task.ID)
	require.NoError(t, err)
	require.Equal(t, f.alice.ID, got.UserID)
	require.NoError(t, f.svc.Delete(ctx, f.admin, task.ID))

	_, err = f.svc.Get(ctx, f.alice, task.ID)
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestTaskService_PublishesEvents(t *testing.T) {
	ctx := context.Background()
	events := new(eventsMock)
	f := newTaskFixture(events)

	isType := func(typ domain.TaskEventType) any {
		return mock.MatchedBy(func(e domain.TaskEvent) bool { return e.Type == typ })
	}
	events.On("Publish", f.alice.ID, isType(domain.TaskCreated)).Once()
	events.On("Publish", f.alice.ID, isType(domain.TaskUpdated)).Twice()
	events.On("Publish", f.alice.ID, isType(domain.TaskDeleted)).Once()

	task, err := f.svc.Create(ctx, f.alice, TaskInput{Title: ptr("x")})
	require.NoError(t, err)
	_, err = f.svc.Update(ctx, f.alice, task.ID, TaskInput{Priority: ptr("high")})
	require.NoError(t, err)
	// admin edits notify the owner, not the admin
	_, err = f.svc.Toggle(ctx, f.admin, task.ID)
	require.NoError(t, err)
	require.NoError(t, f.svc.Delete(ctx, f.alice, task.ID))

	events.AssertExpectations(t)
}
