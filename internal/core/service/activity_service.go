package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/taskdesk/taskdesk/internal/api/metrics"
	"github.com/taskdesk/taskdesk/internal/core/domain"
	"github.com/taskdesk/taskdesk/internal/core/ports"
)

const defaultActivityLimit = 20

type activityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

// NewActivityService returns an ActivityService over the given repository.
func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, log: log}
}

// Record persists a single activity event. Called from dispatcher workers,
// off the request path.
func (s *activityService) Record(ctx context.Context, event domain.ActivityEvent) error {
	if err := s.repo.Insert(ctx, event); err != nil {
		return fmt.Errorf("record activity: %w", err)
	}
	metrics.ActivityProcessedTotal.WithLabelValues(string(event.Action)).Inc()
	s.log.Debug().
		Str("user_id", event.UserID).
		Str("task_id", event.TaskID).
		Str("action", string(event.Action)).
		Msg("activity recorded")
	return nil
}

// Recent returns up to limit events for the user, most recent first.
func (s *activityService) Recent(ctx context.Context, userID string, limit int) ([]domain.ActivityEvent, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	return s.repo.Recent(ctx, userID, limit)
}
