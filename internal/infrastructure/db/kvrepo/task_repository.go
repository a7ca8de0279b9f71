package kvrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/taskdesk/taskdesk/internal/core/domain"
	"github.com/taskdesk/taskdesk/internal/core/ports"
)

// TaskRepository stores one record per user: the full task list plus a
// lastUpdated stamp.
type TaskRepository struct {
	store ports.KVStore
}

func NewTaskRepository(store ports.KVStore) *TaskRepository {
	return &TaskRepository{store: store}
}

func (r *TaskRepository) Load(ctx context.Context, userID string) (*domain.TaskRecord, error) {
	key := ports.TasksKey(userID)
	raw, found, err := r.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	if !found {
		return nil, nil
	}

	var record domain.TaskRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, &domain.StorageParseError{Key: key, Err: err}
	}
	return &record, nil
}

func (r *TaskRepository) Save(ctx context.Context, record domain.TaskRecord) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := r.store.Set(ctx, ports.TasksKey(record.UserID), string(raw)); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}
