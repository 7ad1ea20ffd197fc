package resilience

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// SingleFlight deduplicates concurrent calls for the same key.
type SingleFlight struct {
	group singleflight.Group
}

func (g *SingleFlight) Do(key string, fn func() (any, error)) (any, error, bool) {
	return g.group.Do(key, fn)
}

// DoContext is Do but stops waiting when ctx is done. The shared call keeps
// running for the other waiters.
func (g *SingleFlight) DoContext(ctx context.Context, key string, fn func() (any, error)) (any, error, bool) {
	ch := g.group.DoChan(key, fn)
	select {
	case <-ctx.Done():
		return nil, ctx.Err(), false
	case res := <-ch:
		return res.Val, res.Err, res.Shared
	}
}
