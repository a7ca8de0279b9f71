// Package kvrepo implements the domain repositories as JSON records over
// the pluggable key-value store port. The record shapes mirror what the
// HTTP clients see; there is no separate wire schema.
package kvrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/taskdesk/taskdesk/internal/core/domain"
	"github.com/taskdesk/taskdesk/internal/core/ports"
)

// UserRepository stores the full registered-user list as one JSON array.
type UserRepository struct {
	store ports.KVStore
}

func NewUserRepository(store ports.KVStore) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	raw, found, err := r.store.Get(ctx, ports.UserListKey)
	if err != nil {
		return nil, fmt.Errorf("load user list: %w", err)
	}
	if !found {
		return nil, nil
	}

	var users []domain.User
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return nil, &domain.StorageParseError{Key: ports.UserListKey, Err: err}
	}
	return users, nil
}

func (r *UserRepository) Append(ctx context.Context, user domain.User) error {
	users, err := r.List(ctx)
	if err != nil {
		// A corrupt list follows the same reset policy the services apply
		// on read: start fresh rather than wedge registration forever.
		var parseErr *domain.StorageParseError
		if !errors.As(err, &parseErr) {
			return err
		}
		users = nil
	}
	users = append(users, user)

	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode user list: %w", err)
	}
	if err := r.store.Set(ctx, ports.UserListKey, string(raw)); err != nil {
		return fmt.Errorf("save user list: %w", err)
	}
	return nil
}
