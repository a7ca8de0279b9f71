package kvrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/taskdesk/taskdesk/internal/core/domain"
	"github.com/taskdesk/taskdesk/internal/core/ports"
)

// activityCap bounds the per-user feed so the record cannot grow unbounded.
const activityCap = 100

// ActivityRepository keeps a capped per-user activity list, newest first.
// Used when the store backend has no dedicated collection (memory, redis).
type ActivityRepository struct {
	store ports.KVStore
}

func NewActivityRepository(store ports.KVStore) *ActivityRepository {
	return &ActivityRepository{store: store}
}

func (r *ActivityRepository) Insert(ctx context.Context, event domain.ActivityEvent) error {
	events, err := r.load(ctx, event.UserID)
	if err != nil {
		return err
	}

	events = append([]domain.ActivityEvent{event}, events...)
	if len(events) > activityCap {
		events = events[:activityCap]
	}

	raw, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("encode activity: %w", err)
	}
	if err := r.store.Set(ctx, ports.ActivityKey(event.UserID), string(raw)); err != nil {
		return fmt.Errorf("save activity: %w", err)
	}
	return nil
}

func (r *ActivityRepository) Recent(ctx context.Context, userID string, limit int) ([]domain.ActivityEvent, error) {
	events, err := r.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

func (r *ActivityRepository) load(ctx context.Context, userID string) ([]domain.ActivityEvent, error) {
	key := ports.ActivityKey(userID)
	raw, found, err := r.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load activity: %w", err)
	}
	if !found {
		return nil, nil
	}

	var events []domain.ActivityEvent
	if err := json.Unmarshal([]byte(raw), &events); err != nil {
		return nil, &domain.StorageParseError{Key: key, Err: err}
	}
	return events, nil
}
