package stats

import (
	"context"
	"fmt"
	"strconv"

	"github.com/wonny/rugscan/pkg/redis"
)

// RedisStore keeps counters in a single Redis hash, shared across instances
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a Redis-backed store under prefix
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{
		client: client,
		key:    prefix + ":stats",
	}
}

// Get returns the current totals
func (s *RedisStore) Get(ctx context.Context) (Counters, error) {
	fields, err := s.client.Redis().HGetAll(ctx, s.key).Result()
	if err != nil {
		return Counters{}, fmt.Errorf("failed to read stats: %w", err)
	}

	var c Counters
	for counter, raw := range fields {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		c.set(counter, v)
	}
	return c, nil
}

// Increment bumps the counter for kind and returns the new totals
func (s *RedisStore) Increment(ctx context.Context, kind Kind) (Counters, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return Counters{}, err
	}

	if err := s.client.Redis().HIncrBy(ctx, s.key, kind.Counter(), 1).Err(); err != nil {
		return Counters{}, fmt.Errorf("failed to increment %s: %w", kind, err)
	}

	return s.Get(ctx)
}
