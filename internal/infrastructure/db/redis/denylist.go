package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Denylist revokes JWT ids on logout, backed by expiring Redis keys.
// Key format: revoked:<jti>
type Denylist struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDenylist creates a Denylist. ttl should cover the token lifetime so a
// revoked entry outlives the token it blocks.
func NewDenylist(client *redis.Client, ttl time.Duration) *Denylist {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Denylist{client: client, ttl: ttl}
}

// Revoke records the token id as revoked (expires after ttl).
func (d *Denylist) Revoke(ctx context.Context, tokenID string) error {
	return d.client.Set(ctx, d.key(tokenID), "1", d.ttl).Err()
}

// IsRevoked reports whether the token id has been revoked.
func (d *Denylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("denylist check: %w", err)
	}
	return n > 0, nil
}

func (d *Denylist) key(tokenID string) string {
	return "revoked:" + tokenID
}
