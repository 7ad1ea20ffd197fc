package redis

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	goredis "github.com/redis/go-redis/v9"
	"github.com/riskibarqy/footy-tipping/internal/domain/fixture"
)

const defaultPrefix = "footy-tipping:"

type Config struct {
	URL      string
	PoolSize int
	Timeout  time.Duration
}

// SnapshotCache stores fixture snapshots in Redis so several API instances
// share one upstream fetch per TTL window.
type SnapshotCache struct {
	client goredis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewClient connects and pings Redis.
func NewClient(ctx context.Context, cfg Config) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if cfg.Timeout > 0 {
		opts.DialTimeout = cfg.Timeout
		opts.ReadTimeout = cfg.Timeout
		opts.WriteTimeout = cfg.Timeout
	}

	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func NewSnapshotCache(client goredis.UniversalClient, prefix string, ttl time.Duration) *SnapshotCache {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &SnapshotCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *SnapshotCache) Get(ctx context.Context, key string) (fixture.Snapshot, bool, error) {
	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if stderrors.Is(err, goredis.Nil) {
		return fixture.Snapshot{}, false, nil
	}
	if err != nil {
		return fixture.Snapshot{}, false, fmt.Errorf("redis get snapshot %s: %w", key, err)
	}

	var snapshot fixture.Snapshot
	if err := sonic.Unmarshal(raw, &snapshot); err != nil {
		return fixture.Snapshot{}, false, fmt.Errorf("decode snapshot %s: %w", key, err)
	}
	return snapshot, true, nil
}

func (c *SnapshotCache) Set(ctx context.Context, key string, snapshot fixture.Snapshot) error {
	raw, err := sonic.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", key, err)
	}
	if err := c.client.Set(ctx, c.prefix+key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set snapshot %s: %w", key, err)
	}
	return nil
}
