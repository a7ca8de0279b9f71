package ports

import "context"

// Storage keys. One record holds the registered-user list, one the current
// session, and one per user that user's task list. There are no
// transactional guarantees across keys.
const (
	UserListKey = "auth:users"
	SessionKey  = "auth:session"
)

// TasksKey returns the storage key for a user's task record.
func TasksKey(userID string) string {
	return "tasks:" + userID
}

// ActivityKey returns the storage key for a user's capped activity list.
func ActivityKey(userID string) string {
	return "activity:" + userID
}

// KVStore is the persistence port: a thin wrapper over a key-value string
// store. Get reports found=false for an absent key without error.
type KVStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
