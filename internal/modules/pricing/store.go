// README: Rate-table cache stores: Redis for deployments, in-memory for tests and single instances.
package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

const rateTableKey = "taxifare:rate_table"

type RedisStore struct {
	redis *redis.Client
}

func NewRedisStore(redis *redis.Client) *RedisStore {
	return &RedisStore{redis: redis}
}

func (s *RedisStore) Get(ctx context.Context) (RateTable, bool, error) {
	raw, err := s.redis.Get(ctx, rateTableKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false, fmt.Errorf("decode cached rate table: %w", err)
	}
	t := make(RateTable, len(entries))
	for _, e := range entries {
		t[e.Category] = e.Rates
	}
	return t, true, nil
}

// Set stores without expiry; the cache is replaced only by admin updates.
func (s *RedisStore) Set(ctx context.Context, t RateTable) error {
	raw, err := json.Marshal(t.Entries())
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, rateTableKey, raw, 0).Err()
}

type MemoryStore struct {
	mu    sync.RWMutex
	table RateTable
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get(_ context.Context) (RateTable, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.table == nil {
		return nil, false, nil
	}
	return copyTable(s.table), true, nil
}

func (s *MemoryStore) Set(_ context.Context, t RateTable) error {
	s.mu.Lock()
	s.table = copyTable(t)
	s.mu.Unlock()
	return nil
}

func copyTable(t RateTable) RateTable {
	out := make(RateTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}
