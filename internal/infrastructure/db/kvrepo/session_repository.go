package kvrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/taskdesk/taskdesk/internal/core/domain"
	"github.com/taskdesk/taskdesk/internal/core/ports"
)

// SessionRepository stores the single current-session record.
type SessionRepository struct {
	store ports.KVStore
}

func NewSessionRepository(store ports.KVStore) *SessionRepository {
	return &SessionRepository{store: store}
}

func (r *SessionRepository) Get(ctx context.Context) (*domain.Session, error) {
	raw, found, err := r.store.Get(ctx, ports.SessionKey)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !found {
		return nil, nil
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, &domain.StorageParseError{Key: ports.SessionKey, Err: err}
	}
	return &session, nil
}

func (r *SessionRepository) Put(ctx context.Context, session domain.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.store.Set(ctx, ports.SessionKey, string(raw)); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Clear(ctx context.Context) error {
	if err := r.store.Delete(ctx, ports.SessionKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
