package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// guardTTL caps how long a toggle lock can outlive its request if the
// process dies before releasing it.
const guardTTL = 3 * time.Second

// ToggleGuard is a per-user in-flight lock backed by Redis SET NX. It
// debounces rapid repeated timer toggles (key-repeat, double-click): while a
// start/stop is outstanding for a user, further toggles are no-ops.
// Key format: toggle:<user_id>
type ToggleGuard struct {
	client *redis.Client
}

// NewToggleGuard creates a ToggleGuard wrapping the given Redis client.
func NewToggleGuard(client *redis.Client) *ToggleGuard {
	return &ToggleGuard{client: client}
}

// Acquire takes the user's lock. Returns false when the lock is already held.
func (g *ToggleGuard) Acquire(ctx context.Context, userID string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(userID), "1", guardTTL).Result()
	if err != nil {
		return false, fmt.Errorf("toggle guard acquire: %w", err)
	}
	return ok, nil
}

// Release frees the lock once the start/stop has completed. The TTL covers
// the case where Release is never reached.
func (g *ToggleGuard) Release(ctx context.Context, userID string) error {
	return g.client.Del(ctx, g.key(userID)).Err()
}

func (g *ToggleGuard) key(userID string) string {
	return "toggle:" + userID
}
