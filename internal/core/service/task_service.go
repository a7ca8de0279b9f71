package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/taskdesk/taskdesk/internal/api/metrics"
	"github.com/taskdesk/taskdesk/internal/core/domain"
	"github.com/taskdesk/taskdesk/internal/core/ports"
)

// ActivitySink receives activity events emitted by task mutations. The
// queue dispatcher satisfies it; a nil sink disables the feed.
type ActivitySink interface {
	Submit(event domain.ActivityEvent)
}

// TaskService implements task CRUD over the per-user persisted record.
// Every mutation re-reads the record, applies the change, and writes the
// full record back before returning, so the persisted list never lags a
// completed call.
type TaskService struct {
	repo     ports.TaskRepository
	activity ActivitySink
	log      zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, activity ActivitySink, log zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, activity: activity, log: log}
}

// Create assigns a fresh id, appends, and persists.
func (s *TaskService) Create(ctx context.Context, userID string, input ports.CreateTaskInput) (*domain.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	priority := input.Priority
	if !priority.Valid() {
		priority = domain.PriorityMedium
	}

	record, err := s.loadRecord(ctx, userID)
	if err != nil {
		return nil, err
	}

	task := domain.Task{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Priority:    priority,
		DueDate:     input.DueDate,
		Category:    input.Category,
		Completed:   false,
		CreatedAt:   time.Now().UTC(),
	}
	record.Tasks = append(record.Tasks, task)

	if err := s.saveRecord(ctx, record); err != nil {
		return nil, err
	}

	metrics.TasksCreatedTotal.WithLabelValues(string(task.Priority)).Inc()
	s.log.Info().Str("task_id", task.ID).Str("user_id", userID).Msg("task created")
	s.emit(task, domain.ActivityCreated)
	return &task, nil
}

// Get returns a single task by id.
func (s *TaskService) Get(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	record, err := s.loadRecord(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range record.Tasks {
		if record.Tasks[i].ID == taskID {
			task := record.Tasks[i]
			return &task, nil
		}
	}
	return nil, domain.ErrTaskNotFound
}

// Update merges the non-nil fields into the task and persists. A missing
// task id is a silent no-op: the list is left untouched and (nil, nil) is
// returned so the caller can report it as informational.
func (s *TaskService) Update(ctx context.Context, userID, taskID string, input ports.UpdateTaskInput) (*domain.Task, error) {
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return nil, fmt.Errorf("%w: title cannot be blank", domain.ErrValidation)
	}
	if input.Priority != nil && !input.Priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", domain.ErrValidation, *input.Priority)
	}

	record, err := s.loadRecord(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := findTask(record.Tasks, taskID)
	if idx < 0 {
		s.log.Debug().Str("task_id", taskID).Msg("update on missing task, skipping")
		return nil, nil
	}

	task := &record.Tasks[idx]
	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	} else if input.ClearDue {
		task.DueDate = nil
	}
	if input.Category != nil {
		task.Category = *input.Category
	}

	if err := s.saveRecord(ctx, record); err != nil {
		return nil, err
	}

	updated := *task
	s.log.Info().Str("task_id", taskID).Str("user_id", userID).Msg("task updated")
	s.emit(updated, domain.ActivityUpdated)
	return &updated, nil
}

// Delete removes the task and persists. A missing id is a no-op; the
// returned flag distinguishes the two outcomes for notification purposes.
func (s *TaskService) Delete(ctx context.Context, userID, taskID string) (bool, error) {
	record, err := s.loadRecord(ctx, userID)
	if err != nil {
		return false, err
	}

	idx := findTask(record.Tasks, taskID)
	if idx < 0 {
		return false, nil
	}

	removed := record.Tasks[idx]
	record.Tasks = append(record.Tasks[:idx], record.Tasks[idx+1:]...)

	if err := s.saveRecord(ctx, record); err != nil {
		return false, err
	}

	metrics.TasksDeletedTotal.Inc()
	s.log.Info().Str("task_id", taskID).Str("user_id", userID).Msg("task deleted")
	s.emit(removed, domain.ActivityDeleted)
	return true, nil
}

// ToggleComplete flips the completion state, stamping or clearing
// CompletedAt with the transition. A missing id is a silent no-op.
func (s *TaskService) ToggleComplete(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	record, err := s.loadRecord(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := findTask(record.Tasks, taskID)
	if idx < 0 {
		s.log.Debug().Str("task_id", taskID).Msg("toggle on missing task, skipping")
		return nil, nil
	}

	task := &record.Tasks[idx]
	task.Completed = !task.Completed
	action := domain.ActivityReopened
	if task.Completed {
		now := time.Now().UTC()
		task.CompletedAt = &now
		action = domain.ActivityCompleted
		metrics.TasksCompletedTotal.Inc()
	} else {
		task.CompletedAt = nil
	}

	if err := s.saveRecord(ctx, record); err != nil {
		return nil, err
	}

	toggled := *task
	s.log.Info().Str("task_id", taskID).Bool("completed", toggled.Completed).Msg("task toggled")
	s.emit(toggled, action)
	return &toggled, nil
}

// List returns the filtered, ordered view with stats over the full list.
func (s *TaskService) List(ctx context.Context, input ports.ListTasksInput) (*ports.ListTasksResult, error) {
	record, err := s.loadRecord(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	filter := input.Filter
	if !filter.Valid() {
		filter = domain.FilterAll
	}
	items := domain.View(record.Tasks, filter)

	if input.Category != "" || input.Search != "" {
		needle := strings.ToLower(input.Search)
		kept := items[:0]
		for _, t := range items {
			if input.Category != "" && t.Category != input.Category {
				continue
			}
			if needle != "" &&
				!strings.Contains(strings.ToLower(t.Title), needle) &&
				!strings.Contains(strings.ToLower(t.Description), needle) {
				continue
			}
			kept = append(kept, t)
		}
		items = kept
	}

	return &ports.ListTasksResult{
		Items: items,
		Stats: domain.TallyStats(record.Tasks),
	}, nil
}

// Stats counts the full list by completion state.
func (s *TaskService) Stats(ctx context.Context, userID string) (domain.Stats, error) {
	record, err := s.loadRecord(ctx, userID)
	if err != nil {
		return domain.Stats{}, err
	}
	return domain.TallyStats(record.Tasks), nil
}

// loadRecord reads the user's record, recovering from a corrupt one by
// resetting to an empty list (logged and counted, never propagated).
func (s *TaskService) loadRecord(ctx context.Context, userID string) (domain.TaskRecord, error) {
	record, err := s.repo.Load(ctx, userID)
	if err != nil {
		var parseErr *domain.StorageParseError
		if errors.As(err, &parseErr) {
			metrics.StoreParseErrorsTotal.WithLabelValues("tasks").Inc()
			s.log.Warn().Err(parseErr).Str("user_id", userID).Msg("corrupt task record, resetting to empty list")
			return domain.TaskRecord{UserID: userID}, nil
		}
		return domain.TaskRecord{}, err
	}
	if record == nil {
		return domain.TaskRecord{UserID: userID}, nil
	}
	return *record, nil
}

func (s *TaskService) saveRecord(ctx context.Context, record domain.TaskRecord) error {
	record.LastUpdated = time.Now().UTC()
	return s.repo.Save(ctx, record)
}

func (s *TaskService) emit(task domain.Task, action domain.ActivityAction) {
	if s.activity == nil {
		return
	}
	s.activity.Submit(domain.ActivityEvent{
		UserID:    task.UserID,
		TaskID:    task.ID,
		Action:    action,
		Title:     task.Title,
		Timestamp: time.Now().UTC(),
	})
}

func findTask(tasks []domain.Task, taskID string) int {
	for i := range tasks {
		if tasks[i].ID == taskID {
			return i
		}
	}
	return -1
}
