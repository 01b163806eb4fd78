/*
Package cache provides result caching for the HTTP surface.

PURPOSE:
  The engine is a pure function of its inputs, so computed schedules and
  comparisons can be cached by a digest of the request and replayed on
  identical input. This is strictly an optimization: every cached value is
  reproducible, entries carry a TTL, and a cold or unreachable cache only
  costs a recomputation.

IMPLEMENTATIONS:
  - Redis:  shared cache via go-redis
  - Memory: process-local map, used in tests and when no Redis is configured
*/
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/redis/go-redis/v9"
)

// TTL bounds how long a computed result stays cached. Results never go
// stale (inputs fully determine them); the TTL only bounds memory.
const TTL = time.Hour

// Cache stores serialized calculation results keyed by request digest.
type Cache interface {
	// Get returns the cached value and whether it was present.
	Get(ctx context.Context, key string) (string, bool)

	// Set stores a value. Failures are non-fatal to callers.
	Set(ctx context.Context, key, value string) error
}

// Key builds a cache key from a namespace and the canonical request bytes.
func Key(namespace string, payload []byte) string {
	return fmt.Sprintf("%s:%016x", namespace, xxhash.Sum64(payload))
}

// =============================================================================
// REDIS
// =============================================================================

type Redis struct {
	client *redis.Client
}

func NewRedis(addr string) *Redis {
	return &Redis{client: redis.NewClient(&redis.Options{Addr: addr})}
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, TTL).Err()
}

// Ping verifies connectivity at startup.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// =============================================================================
// MEMORY
// =============================================================================

type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

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

// Len reports the number of cached entries (test helper).
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
