package cache

import (
	"context"

	"github.com/riskibarqy/footy-tipping/internal/domain/fixture"
	basecache "github.com/riskibarqy/footy-tipping/internal/platform/cache"
)

// SnapshotCache keeps fixture snapshots in process memory.
type SnapshotCache struct {
	store *basecache.Store[fixture.Snapshot]
}

func NewSnapshotCache(store *basecache.Store[fixture.Snapshot]) *SnapshotCache {
	return &SnapshotCache{store: store}
}

func (c *SnapshotCache) Get(ctx context.Context, key string) (fixture.Snapshot, bool, error) {
	snapshot, ok := c.store.Get(ctx, key)
	if !ok {
		return fixture.Snapshot{}, false, nil
	}
	return cloneSnapshot(snapshot), true, nil
}

func (c *SnapshotCache) Set(ctx context.Context, key string, snapshot fixture.Snapshot) error {
	c.store.Set(ctx, key, cloneSnapshot(snapshot))
	return nil
}

func cloneSnapshot(in fixture.Snapshot) fixture.Snapshot {
	out := fixture.Snapshot{FetchedAt: in.FetchedAt}
	if in.Fixtures != nil {
		out.Fixtures = append([]fixture.Fixture(nil), in.Fixtures...)
	}
	if in.Rounds != nil {
		out.Rounds = append([]fixture.Round(nil), in.Rounds...)
	}
	return out
}
