package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// GenerationLock prevents two concurrent schedule-generation requests for
// the same institution from running the solver at once. It is deployment
// hygiene, not a core invariant: the scheduling core itself is stateless
// and holds no lock of its own.
type GenerationLock struct {
	client *redis.Client
	ttl    time.Duration
}

// NewGenerationLock returns a GenerationLock backed by client, holding each
// lock for at most ttl before it expires on its own.
func NewGenerationLock(client *redis.Client, ttl time.Duration) *GenerationLock {
	return &GenerationLock{client: client, ttl: ttl}
}

// Acquire attempts to take the lock for institutionID. ok is false if
// another request already holds it; release must be called to free the
// lock early on success.
func (l *GenerationLock) Acquire(ctx context.Context, institutionID string) (release func(), ok bool, err error) {
	key := "schedule-generation-lock:" + institutionID
	acquired, err := l.client.SetNX(ctx, key, "1", l.ttl).Result()
	if err != nil {
		return nil, false, err
	}
	if !acquired {
		return nil, false, nil
	}
	return func() { _ = l.client.Del(context.Background(), key).Err() }, true, nil
}
