package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskdesk/taskdesk/internal/core/domain"
	"github.com/taskdesk/taskdesk/internal/core/ports"
)

// TaskHandler handles HTTP requests for task operations. Every call is
// scoped to the authenticated user id from the token claims.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// List handles GET /v1/tasks.
//
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        filter    query     string  false  "all, pending, or completed"
// @Param        category  query     string  false  "exact category match"
// @Param        search    query     string  false  "substring match on title or description"
// @Success      200  {object}  listTasksResponse
// @Router       /v1/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	filter := domain.Filter(c.QueryParam("filter"))
	if filter != "" && !filter.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "filter must be one of: all, pending, completed")
	}

	result, err := h.service.List(c.Request().Context(), ports.ListTasksInput{
		UserID:   userID,
		Filter:   filter,
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
	})
	if err != nil {
		return err
	}

	items := make([]taskResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, *toTaskResponse(&result.Items[i]))
	}
	return c.JSON(http.StatusOK, listTasksResponse{
		Items: items,
		Stats: statsResponse(result.Stats),
	})
}

// Get handles GET /v1/tasks/:id.
//
// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  taskResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	task, err := h.service.Get(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponse(task))
}

// Create handles POST /v1/tasks.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task fields"
// @Success      201   {object}  mutationResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.service.Create(c.Request().Context(), userID, ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    domain.Priority(req.Priority),
		DueDate:     normalizeDue(req.DueDate),
		Category:    req.Category,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, mutationResponse{
		Notice: successNotice("task created"),
		Task:   toTaskResponse(task),
	})
}

// Update handles PATCH /v1/tasks/:id. A vanished task id is reported as an
// informational outcome, not an error: the list is untouched.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task id"
// @Param        body  body      updateTaskRequest  true  "Fields to merge"
// @Success      200   {object}  mutationResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/tasks/{id} [patch]
func (h *TaskHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var priority *domain.Priority
	if req.Priority != nil {
		p := domain.Priority(*req.Priority)
		priority = &p
	}

	task, err := h.service.Update(c.Request().Context(), userID, c.Param("id"), ports.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    priority,
		DueDate:     normalizeDue(req.DueDate),
		ClearDue:    req.ClearDue,
		Category:    req.Category,
	})
	if err != nil {
		return err
	}
	if task == nil {
		return c.JSON(http.StatusOK, mutationResponse{
			Notice: infoNotice("task no longer exists"),
		})
	}

	return c.JSON(http.StatusOK, mutationResponse{
		Notice: successNotice("task updated"),
		Task:   toTaskResponse(task),
	})
}

// Delete handles DELETE /v1/tasks/:id.
//
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  mutationResponse
// @Router       /v1/tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	deleted, err := h.service.Delete(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	if !deleted {
		return c.JSON(http.StatusOK, mutationResponse{
			Notice: infoNotice("task no longer exists"),
		})
	}
	return c.JSON(http.StatusOK, mutationResponse{
		Notice: successNotice("task deleted"),
	})
}

// Toggle handles POST /v1/tasks/:id/toggle.
//
// @Summary      Toggle task completion
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  mutationResponse
// @Router       /v1/tasks/{id}/toggle [post]
func (h *TaskHandler) Toggle(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	task, err := h.service.ToggleComplete(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	if task == nil {
		return c.JSON(http.StatusOK, mutationResponse{
			Notice: infoNotice("task no longer exists"),
		})
	}

	msg := "task reopened"
	if task.Completed {
		msg = "task completed"
	}
	return c.JSON(http.StatusOK, mutationResponse{
		Notice: successNotice(msg),
		Task:   toTaskResponse(task),
	})
}

// Stats handles GET /v1/stats.
//
// @Summary      Task counts by completion state
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  statsResponse
// @Router       /v1/stats [get]
func (h *TaskHandler) Stats(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	stats, err := h.service.Stats(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statsResponse(stats))
}

// ActivityHandler serves the recent-activity feed.
type ActivityHandler struct {
	service ports.ActivityService
}

func NewActivityHandler(service ports.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// Recent handles GET /v1/activity.
//
// @Summary      Recent task activity
// @Tags         activity
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "max events to return"
// @Success      200    {object}  activityResponse
// @Router       /v1/activity [get]
func (h *ActivityHandler) Recent(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	events, err := h.service.Recent(c.Request().Context(), userID, limit)
	if err != nil {
		return err
	}

	items := make([]activityItemResponse, 0, len(events))
	for _, e := range events {
		items = append(items, activityItemResponse{
			TaskID:    e.TaskID,
			Action:    string(e.Action),
			Title:     e.Title,
			Timestamp: e.Timestamp,
		})
	}
	return c.JSON(http.StatusOK, activityResponse{Items: items})
}

// normalizeDue truncates an incoming due date to UTC. Nil passes through so
// partial updates can distinguish "unchanged" from "cleared".
func normalizeDue(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
