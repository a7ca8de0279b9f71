package domain

import "time"

// ActivityAction identifies the mutation an activity event records.
type ActivityAction string

const (
	ActivityCreated   ActivityAction = "created"
	ActivityUpdated   ActivityAction = "updated"
	ActivityDeleted   ActivityAction = "deleted"
	ActivityCompleted ActivityAction = "completed"
	ActivityReopened  ActivityAction = "reopened"
)

// ActivityEvent records a single task mutation for the activity feed.
type ActivityEvent struct {
	UserID    string         `json:"userId"`
	TaskID    string         `json:"taskId"`
	Action    ActivityAction `json:"action"`
	Title     string         `json:"title"`
	Timestamp time.Time      `json:"timestamp"`
}
