package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SubmitGuard provides in-flight write locks backed by Redis.
// Key format: submit:<caller supplied key>
type SubmitGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSubmitGuard creates a SubmitGuard wrapping the given Redis client. Locks
// expire after ttl even if never released.
func NewSubmitGuard(client *redis.Client, ttl time.Duration) *SubmitGuard {
	return &SubmitGuard{client: client, ttl: ttl}
}

// Acquire reports whether the lock was free and is now held by the caller.
func (g *SubmitGuard) Acquire(ctx context.Context, key string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(key), "1", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("submit guard acquire: %w", err)
	}
	return ok, nil
}

func (g *SubmitGuard) Release(ctx context.Context, key string) error {
	return g.client.Del(ctx, g.key(key)).Err()
}

func (g *SubmitGuard) key(k string) string {
	return "submit:" + k
}
