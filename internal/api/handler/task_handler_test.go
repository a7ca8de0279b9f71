package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/taskdesk/taskdesk/internal/core/domain"
	"github.com/taskdesk/taskdesk/internal/core/ports"
)

type stubTaskService struct {
	createFn func(ctx context.Context, userID string, input ports.CreateTaskInput) (*domain.Task, error)
	updateFn func(ctx context.Context, userID, taskID string, input ports.UpdateTaskInput) (*domain.Task, error)
	deleteFn func(ctx context.Context, userID, taskID string) (bool, error)
	toggleFn func(ctx context.Context, userID, taskID string) (*domain.Task, error)
	listFn   func(ctx context.Context, input ports.ListTasksInput) (*ports.ListTasksResult, error)
}

func (s *stubTaskService) Create(ctx context.Context, userID string, input ports.CreateTaskInput) (*domain.Task, error) {
	return s.createFn(ctx, userID, input)
}

func (s *stubTaskService) Get(_ context.Context, _, _ string) (*domain.Task, error) {
	return nil, domain.ErrTaskNotFound
}

func (s *stubTaskService) Update(ctx context.Context, userID, taskID string, input ports.UpdateTaskInput) (*domain.Task, error) {
	return s.updateFn(ctx, userID, taskID, input)
}

func (s *stubTaskService) Delete(ctx context.Context, userID, taskID string) (bool, error) {
	return s.deleteFn(ctx, userID, taskID)
}

func (s *stubTaskService) ToggleComplete(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	return s.toggleFn(ctx, userID, taskID)
}

func (s *stubTaskService) List(ctx context.Context, input ports.ListTasksInput) (*ports.ListTasksResult, error) {
	return s.listFn(ctx, input)
}

func (s *stubTaskService) Stats(_ context.Context, _ string) (domain.Stats, error) {
	return domain.Stats{}, nil
}

func TestTaskHandler_Create(t *testing.T) {
	stub := &stubTaskService{
		createFn: func(_ context.Context, userID string, input ports.CreateTaskInput) (*domain.Task, error) {
			if userID != "u1" {
				t.Fatalf("unexpected user id: %s", userID)
			}
			return &domain.Task{
				ID:        "t1",
				UserID:    userID,
				Title:     input.Title,
				Priority:  input.Priority,
				CreatedAt: time.Now().UTC(),
			}, nil
		},
	}
	handler := NewTaskHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/v1/tasks", `{"title":"buy milk","priority":"high"}`)
	c.Set("user_id", "u1")

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	notice, ok := resp["notice"].(map[string]any)
	if !ok || notice["level"] != "success" {
		t.Fatalf("expected success notice, got %+v", resp["notice"])
	}
}

func TestTaskHandler_Create_Unauthenticated(t *testing.T) {
	handler := NewTaskHandler(&stubTaskService{})

	c, _ := newTestContext(t, http.MethodPost, "/v1/tasks", `{"title":"x"}`)

	if err := handler.Create(c); err == nil {
		t.Fatalf("expected error without auth claims")
	}
}

func TestTaskHandler_Update_NoopGetsInfoNotice(t *testing.T) {
	stub := &stubTaskService{
		updateFn: func(_ context.Context, _, _ string, _ ports.UpdateTaskInput) (*domain.Task, error) {
			return nil, nil
		},
	}
	handler := NewTaskHandler(stub)

	c, rec := newTestContext(t, http.MethodPatch, "/v1/tasks/ghost", `{"title":"new"}`)
	c.SetParamNames("id")
	c.SetParamValues("ghost")
	c.Set("user_id", "u1")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for no-op, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	notice := resp["notice"].(map[string]any)
	if notice["level"] != "info" {
		t.Fatalf("expected info notice, got %+v", notice)
	}
	if _, present := resp["task"]; present {
		t.Fatalf("no-op response should omit task")
	}
}

func TestTaskHandler_List_RejectsUnknownFilter(t *testing.T) {
	handler := NewTaskHandler(&stubTaskService{})

	c, _ := newTestContext(t, http.MethodGet, "/v1/tasks?filter=urgent", "")
	c.Set("user_id", "u1")

	err := handler.List(c)
	if err == nil {
		t.Fatalf("expected 400 for unknown filter")
	}
}

func TestTaskHandler_List(t *testing.T) {
	now := time.Now().UTC()
	stub := &stubTaskService{
		listFn: func(_ context.Context, input ports.ListTasksInput) (*ports.ListTasksResult, error) {
			if input.Filter != domain.FilterPending || input.Category != "work" {
				t.Fatalf("query params not forwarded: %+v", input)
			}
			return &ports.ListTasksResult{
				Items: []domain.Task{{ID: "t1", Title: "x", Priority: domain.PriorityLow, CreatedAt: now}},
				Stats: domain.Stats{Total: 2, Completed: 1, Pending: 1},
			}, nil
		},
	}
	handler := NewTaskHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/v1/tasks?filter=pending&category=work", "")
	c.Set("user_id", "u1")

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	items := resp["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	stats := resp["stats"].(map[string]any)
	if stats["total"] != float64(2) {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestTaskHandler_Toggle_CompletionNotice(t *testing.T) {
	now := time.Now().UTC()
	stub := &stubTaskService{
		toggleFn: func(_ context.Context, _, taskID string) (*domain.Task, error) {
			return &domain.Task{ID: taskID, Completed: true, CompletedAt: &now, CreatedAt: now}, nil
		},
	}
	handler := NewTaskHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/v1/tasks/t1/toggle", "")
	c.SetParamNames("id")
	c.SetParamValues("t1")
	c.Set("user_id", "u1")

	if err := handler.Toggle(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	notice := resp["notice"].(map[string]any)
	if notice["message"] != "task completed" {
		t.Fatalf("unexpected message: %v", notice["message"])
	}
}
