package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/riskibarqy/footy-tipping/internal/domain/fixture"
)

func newTestCache(t *testing.T, ttl time.Duration) (*SnapshotCache, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSnapshotCache(client, "test:", ttl), srv
}

func TestSnapshotCache_SetGet(t *testing.T) {
	t.Parallel()

	c, srv := newTestCache(t, 12*time.Hour)
	fetchedAt := time.Date(2025, 8, 20, 9, 0, 0, 0, time.UTC)
	snapshot := fixture.Snapshot{
		Fixtures:  fixture.FallbackFixtures(fetchedAt),
		FetchedAt: fetchedAt,
	}

	if err := c.Set(context.Background(), "fixtures:default", snapshot); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if !srv.Exists("test:fixtures:default") {
		t.Fatalf("expected prefixed key in redis")
	}
	if ttl := srv.TTL("test:fixtures:default"); ttl != 12*time.Hour {
		t.Fatalf("unexpected ttl %s", ttl)
	}

	got, ok, err := c.Get(context.Background(), "fixtures:default")
	if err != nil || !ok {
		t.Fatalf("expected hit, ok=%v err=%v", ok, err)
	}
	if len(got.Fixtures) != 8 || !got.FetchedAt.Equal(fetchedAt) {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
}

func TestSnapshotCache_MissAndExpiry(t *testing.T) {
	t.Parallel()

	c, srv := newTestCache(t, time.Hour)
	if _, ok, err := c.Get(context.Background(), "rounds"); ok || err != nil {
		t.Fatalf("expected clean miss, ok=%v err=%v", ok, err)
	}

	_ = c.Set(context.Background(), "rounds", fixture.Snapshot{Rounds: fixture.FallbackRounds(), FetchedAt: time.Now()})
	srv.FastForward(2 * time.Hour)
	if _, ok, _ := c.Get(context.Background(), "rounds"); ok {
		t.Fatalf("expected miss after ttl")
	}
}

func TestSnapshotCache_CorruptValue(t *testing.T) {
	t.Parallel()

	c, srv := newTestCache(t, time.Hour)
	_ = srv.Set("test:fixtures:default", "{not json")
	if _, _, err := c.Get(context.Background(), "fixtures:default"); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestNewClient_AppliesConnectionSettings(t *testing.T) {
	t.Parallel()

	srv := miniredis.RunT(t)
	client, err := NewClient(context.Background(), Config{
		URL:      "redis://" + srv.Addr() + "/0",
		PoolSize: 4,
		Timeout:  2 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	opts := client.Options()
	if opts.PoolSize != 4 || opts.ReadTimeout != 2*time.Second || opts.DialTimeout != 2*time.Second {
		t.Fatalf("connection settings not applied: pool=%d read=%s dial=%s", opts.PoolSize, opts.ReadTimeout, opts.DialTimeout)
	}

	cache := NewSnapshotCache(client, "", time.Hour)
	if err := cache.Set(context.Background(), "rounds", fixture.Snapshot{Rounds: fixture.FallbackRounds()}); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if !srv.Exists(defaultPrefix + "rounds") {
		t.Fatalf("expected default prefix on key")
	}
}

func TestNewClient_InvalidURL(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(context.Background(), Config{URL: "not-a-redis-url"}); err == nil {
		t.Fatalf("expected parse error")
	}
}
