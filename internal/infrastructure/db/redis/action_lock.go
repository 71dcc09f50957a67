package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fashio-ai/styling-api/internal/core/ports"
)

// lockTTL is a crash backstop: a flag left behind by a dead process expires
// rather than wedging the action forever.
const lockTTL = 2 * time.Minute

// ActionLock implements the per-user busy flags backed by Redis SETNX.
// Key format: busy:<user_id>:<action>
type ActionLock struct {
	client *redis.Client
}

func NewActionLock(client *redis.Client) *ActionLock {
	return &ActionLock{client: client}
}

// Acquire claims the flag. A false return means the same action is already
// in flight for this user.
func (l *ActionLock) Acquire(ctx context.Context, userID string, action ports.Action) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.key(userID, action), "1", lockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("acquire action lock: %w", err)
	}
	return ok, nil
}

func (l *ActionLock) Release(ctx context.Context, userID string, action ports.Action) error {
	return l.client.Del(ctx, l.key(userID, action)).Err()
}

func (l *ActionLock) key(userID string, action ports.Action) string {
	return fmt.Sprintf("busy:%s:%s", userID, action)
}
