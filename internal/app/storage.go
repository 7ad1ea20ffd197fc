package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/footy-tipping/internal/config"
	"github.com/riskibarqy/footy-tipping/internal/domain/fixture"
	"github.com/riskibarqy/footy-tipping/internal/domain/tip"
	repocache "github.com/riskibarqy/footy-tipping/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/footy-tipping/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/footy-tipping/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/footy-tipping/internal/infrastructure/repository/redis"
	basecache "github.com/riskibarqy/footy-tipping/internal/platform/cache"
	"github.com/riskibarqy/footy-tipping/internal/platform/dburl"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

// Redis entries outlive the freshness window so a stale snapshot is still
// readable; freshness itself is judged by the fixture service.
const redisRetentionFactor = 2

func newSnapshotCache(ctx context.Context, cfg config.Config) (fixture.SnapshotCache, func() error, error) {
	switch cfg.CacheBackend {
	case config.CacheBackendMemory, "":
		store := basecache.NewStore[fixture.Snapshot](cfg.FixtureCacheTTL, nil)
		return repocache.NewSnapshotCache(store), nil, nil
	case config.CacheBackendRedis:
		client, err := redis.NewClient(ctx, redis.Config{
			URL:     cfg.RedisURL,
			Timeout: cfg.FixtureSourceTimeout,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		snapshots := redis.NewSnapshotCache(client, cfg.RedisKeyPrefix, cfg.FixtureCacheTTL*redisRetentionFactor)
		return snapshots, client.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported cache backend %q", cfg.CacheBackend)
	}
}

func newTipRepository(cfg config.Config) (tip.Repository, func() error, error) {
	switch cfg.TipStore {
	case config.TipStoreMemory, "":
		return memory.NewTipRepository(), nil, nil
	case config.TipStorePostgres:
		db, err := openDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewTipRepository(db), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported tip store %q", cfg.TipStore)
	}
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := dburl.Normalize(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dburl.DBName(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}
