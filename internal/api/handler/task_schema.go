package handler

import (
	"time"

	"github.com/taskdesk/taskdesk/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// notice classifies a command outcome for the client's toast layer. Level is
// "success", "error", or "info"; the message text is advisory.
type notice struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

func successNotice(msg string) notice { return notice{Level: "success", Message: msg} }
func infoNotice(msg string) notice    { return notice{Level: "info", Message: msg} }

// --- Request types ---

type createTaskRequest struct {
	Title       string     `json:"title"       validate:"required"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"    validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"dueDate"`
	Category    string     `json:"category"`
}

type updateTaskRequest struct {
	Title       *string    `json:"title"       validate:"omitempty,min=1"`
	Description *string    `json:"description"`
	Priority    *string    `json:"priority"    validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"dueDate"`
	ClearDue    bool       `json:"clearDue"`
	Category    *string    `json:"category"`
}

// --- Response types ---
// Owned by the transport layer so the JSON contract is not coupled to
// internal service changes.

type taskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Category    string     `json:"category,omitempty"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

type statsResponse struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

type listTasksResponse struct {
	Items []taskResponse `json:"items"`
	Stats statsResponse  `json:"stats"`
}

type mutationResponse struct {
	Notice notice        `json:"notice"`
	Task   *taskResponse `json:"task,omitempty"`
}

type activityItemResponse struct {
	TaskID    string    `json:"taskId"`
	Action    string    `json:"action"`
	Title     string    `json:"title"`
	Timestamp time.Time `json:"timestamp"`
}

type activityResponse struct {
	Items []activityItemResponse `json:"items"`
}

func toTaskResponse(t *domain.Task) *taskResponse {
	if t == nil {
		return nil
	}
	return &taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		DueDate:     t.DueDate,
		Category:    t.Category,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		CompletedAt: t.CompletedAt,
	}
}
