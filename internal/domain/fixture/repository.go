package fixture

import "context"

// Source fetches raw fixture data from exactly one upstream. Implementations
// return an error for any upstream failure and never panic; an empty
// RawResult is also treated as a failure by callers.
type Source interface {
	Name() string
	FetchRaw(ctx context.Context, season int, round *int) (RawResult, error)
}

// RoundSource is implemented by sources that can list the round numbers of a
// season.
type RoundSource interface {
	FetchRoundNumbers(ctx context.Context, season int) ([]int, error)
}

// SnapshotCache stores the last good fetch per key. Entries are overwritten
// on refresh and never deleted explicitly.
type SnapshotCache interface {
	Get(ctx context.Context, key string) (Snapshot, bool, error)
	Set(ctx context.Context, key string, snapshot Snapshot) error
}
