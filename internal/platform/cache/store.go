package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/footy-tipping/internal/platform/resilience"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Store is an in-process TTL cache. Expired entries are reported as misses
// and stay in place until the next Set overwrites them.
type Store[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]
	ttl     time.Duration
	now     func() time.Time
	flight  resilience.SingleFlight
}

func NewStore[V any](ttl time.Duration, now func() time.Time) *Store[V] {
	if now == nil {
		now = time.Now
	}
	return &Store[V]{
		entries: make(map[string]entry[V]),
		ttl:     ttl,
		now:     now,
	}
}

func (s *Store[V]) TTL() time.Duration {
	return s.ttl
}

func (s *Store[V]) Get(_ context.Context, key string) (V, bool) {
	var zero V
	if key == "" {
		return zero, false
	}

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if s.ttl > 0 && !e.expiresAt.After(s.now()) {
		return zero, false
	}

	return e.value, true
}

func (s *Store[V]) Set(_ context.Context, key string, value V) {
	if key == "" {
		return
	}

	now := s.now()
	expiresAt := time.Time{}
	if s.ttl > 0 {
		expiresAt = now.Add(s.ttl)
	}

	s.mu.Lock()
	s.entries[key] = entry[V]{
		value:     value,
		expiresAt: expiresAt,
	}
	s.mu.Unlock()
}

func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// GetOrLoad returns the cached value or runs loader once per key across
// concurrent callers. A loader error is returned and nothing is stored.
func (s *Store[V]) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (V, error)) (V, error) {
	var zero V
	if loader == nil {
		return zero, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := s.flight.DoContext(ctx, key, func() (any, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return zero, err
	}

	out, _ := value.(V)
	return out, nil
}
