package domain

type TaskEventType string

const (
	TaskCreated TaskEventType = "task.created"
	TaskUpdated TaskEventType = "task.updated"
	TaskDeleted TaskEventType = "task.deleted"
)

// TaskEvent is pushed to the owner's open event streams after a change.
// Task is nil for deletions.
type TaskEvent struct {
	Type   TaskEventType `json:"type"`
	TaskID int64         `json:"task_id"`
	Task   *Task         `json:"task,omitempty"`
}
