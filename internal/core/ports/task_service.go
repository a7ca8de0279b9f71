package ports

import (
	"context"
	"time"

	"github.com/taskdesk/taskdesk/internal/core/domain"
)

// CreateTaskInput carries all data needed to create a task.
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    domain.Priority
	DueDate     *time.Time
	Category    string
}

// UpdateTaskInput is a partial update: nil fields are left untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Priority    *domain.Priority
	DueDate     *time.Time
	ClearDue    bool
	Category    *string
}

// ListTasksInput carries the list-endpoint parameters. Category and Search
// narrow the view after the completion-state filter is applied.
type ListTasksInput struct {
	UserID   string
	Filter   domain.Filter
	Category string
	Search   string
}

// ListTasksResult is returned by List.
type ListTasksResult struct {
	Items []domain.Task
	Stats domain.Stats
}

// TaskService defines use-case operations over the current user's tasks.
// Update, Delete, and ToggleComplete treat a missing task id as a silent
// no-op: Update and ToggleComplete return a nil task, Delete returns nil.
type TaskService interface {
	Create(ctx context.Context, userID string, input CreateTaskInput) (*domain.Task, error)
	Get(ctx context.Context, userID, taskID string) (*domain.Task, error)
	Update(ctx context.Context, userID, taskID string, input UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, userID, taskID string) (deleted bool, err error)
	ToggleComplete(ctx context.Context, userID, taskID string) (*domain.Task, error)
	List(ctx context.Context, input ListTasksInput) (*ListTasksResult, error)
	Stats(ctx context.Context, userID string) (domain.Stats, error)
}

// ActivityService records and serves the activity feed.
type ActivityService interface {
	Record(ctx context.Context, event domain.ActivityEvent) error
	Recent(ctx context.Context, userID string, limit int) ([]domain.ActivityEvent, error)
}
