package domain

import (
	"sort"
	"time"
)

// Priority is the urgency level of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rank maps a priority to its sort weight. Unrecognized values rank below
// low so the ordering stays total.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Valid reports whether p is one of the three known priorities.
func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Filter selects a completion-state slice of a task list.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterPending   Filter = "pending"
	FilterCompleted Filter = "completed"
)

// Valid reports whether f is a known filter.
func (f Filter) Valid() bool {
	return f == FilterAll || f == FilterPending || f == FilterCompleted
}

// Task is the core aggregate. CompletedAt is set exactly when Completed
// transitions to true and cleared when it transitions back to false.
type Task struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Category    string     `json:"category,omitempty"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// TaskRecord is the persisted per-user task list shape.
type TaskRecord struct {
	UserID      string    `json:"userId"`
	Tasks       []Task    `json:"tasks"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// Stats summarizes a task list by completion state.
type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

// TallyStats counts tasks by completion state.
func TallyStats(tasks []Task) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		} else {
			s.Pending++
		}
	}
	return s
}

// View returns the filtered, ordered projection of tasks. The order is
// stable and three-level: incomplete before complete, then priority
// descending (high > medium > low > unknown), then CreatedAt descending.
func View(tasks []Task, filter Filter) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		switch filter {
		case FilterPending:
			if t.Completed {
				continue
			}
		case FilterCompleted:
			if !t.Completed {
				continue
			}
		}
		out = append(out, t)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Completed != b.Completed {
			return !a.Completed
		}
		if ra, rb := a.Priority.Rank(), b.Priority.Rank(); ra != rb {
			return ra > rb
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	return out
}
