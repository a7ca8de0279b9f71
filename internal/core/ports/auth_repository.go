package ports

import (
	"context"

	"github.com/taskdesk/taskdesk/internal/core/domain"
)

// UserRepository persists the registered-user list.
type UserRepository interface {
	// List returns all registered users. A corrupt record surfaces as a
	// *domain.StorageParseError.
	List(ctx context.Context) ([]domain.User, error)
	// Append adds a user to the persisted list.
	Append(ctx context.Context, user domain.User) error
}

// SessionRepository persists the single current-session record.
type SessionRepository interface {
	// Get returns the persisted session, or nil when none is stored.
	Get(ctx context.Context) (*domain.Session, error)
	Put(ctx context.Context, session domain.Session) error
	Clear(ctx context.Context) error
}

// TokenDenylist revokes bearer tokens on logout.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
