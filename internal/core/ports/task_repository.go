package ports

import (
	"context"

	"github.com/taskdesk/taskdesk/internal/core/domain"
)

// TaskRepository persists per-user task records. Load of a corrupt record
// surfaces a *domain.StorageParseError; the service layer decides recovery.
type TaskRepository interface {
	Load(ctx context.Context, userID string) (*domain.TaskRecord, error)
	// Save writes the full record synchronously (write-through, no batching).
	Save(ctx context.Context, record domain.TaskRecord) error
}

// ActivityRepository persists the activity feed.
type ActivityRepository interface {
	Insert(ctx context.Context, event domain.ActivityEvent) error
	// Recent returns up to limit events for the user, most recent first.
	Recent(ctx context.Context, userID string, limit int) ([]domain.ActivityEvent, error)
}
