// Package cache provides lookaside caching for computed schedules. Schedules
// are pure functions of their inputs, so cached responses never go stale; a
// miss or backend error degrades to recomputation, never to a failure.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/loanlens/loanlens/pkg/amortize"
	"github.com/redis/go-redis/v9"
)

// Cache stores serialized computation results by key.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string) error
}

// Key derives a stable cache key from loan parameters and the engine variant.
func Key(params amortize.LoanParameters, includeExtraInSchedule bool) string {
	return fmt.Sprintf("amortize:%.2f:%.4f:%d:%.2f:%t",
		params.Principal, params.AnnualRatePercent, params.TermMonths,
		params.ExtraPayment, includeExtraInSchedule)
}

// Memory is a process-local Cache used when Redis is not configured.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.data[key]
	return val, ok
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// Redis caches results in a Redis instance with a TTL.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects a Redis-backed cache at addr.
func NewRedis(addr string, ttl time.Duration) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, r.ttl).Err()
}

// Close releases the Redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}
