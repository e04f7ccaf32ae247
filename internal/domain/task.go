package domain

import "time"

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// StatusForDone is the status implied by a bare done flag.
func StatusForDone(done bool) TaskStatus {
	if done {
		return TaskStatusDone
	}
	return TaskStatusTodo
}

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Column limits from the schema.
const (
	MaxTitleLen    = 120
	MaxDueDateLen  = 20
	MaxTagsLen     = 200
	MaxUsernameLen = 80
)

type Task struct {
	ID          int64      `db:"id" json:"id"`
	UserID      int64      `db:"user_id" json:"user_id"`
	Title       string     `db:"title" json:"title"`
	Description *string    `db:"description" json:"description"`
	IsDone      bool       `db:"is_done" json:"is_done"`
	Status      TaskStatus `db:"status" json:"status"`
	Priority    string     `db:"priority" json:"priority"`
	DueDate     *string    `db:"due_date" json:"due_date"`
	Tags        *string    `db:"tags" json:"tags"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// SetDone sets the flag and moves status along with it.
func (t *Task) SetDone(done bool) {
	t.IsDone = done
	t.Status = StatusForDone(done)
}

// SetStatus sets status and derives the done flag from it.
func (t *Task) SetStatus(s TaskStatus) {
	t.Status = s
	t.IsDone = s == TaskStatusDone
}
