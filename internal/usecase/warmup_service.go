package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/footy-tipping/internal/platform/logging"
)

const warmupWorkers = 2

// WarmupService refreshes the default fixtures and the round list in the
// background so user requests rarely wait on the upstream.
type WarmupService struct {
	fixtures *FixtureService
	interval time.Duration
	logger   *logging.Logger
}

type WarmupResult struct {
	FixturesOrigin Origin
	FixtureCount   int
	RoundsOrigin   Origin
	RoundCount     int
	DurationMs     int64
}

func NewWarmupService(fixtures *FixtureService, interval time.Duration, logger *logging.Logger) *WarmupService {
	if logger == nil {
		logger = logging.Default()
	}
	return &WarmupService{fixtures: fixtures, interval: interval, logger: logger}
}

func (w *WarmupService) Enabled() bool {
	return w != nil && w.interval > 0
}

// RunOnce refreshes fixtures and rounds concurrently on a worker pool.
func (w *WarmupService) RunOnce(ctx context.Context) (WarmupResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WarmupService.RunOnce")
	defer span.End()

	pool, err := ants.NewPool(warmupWorkers)
	if err != nil {
		return WarmupResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	start := time.Now()
	var (
		result  WarmupResult
		mu      sync.Mutex
		workers sync.WaitGroup
	)

	tasks := []func(){
		func() {
			fixtures := w.fixtures.RefreshFixtures(ctx)
			mu.Lock()
			result.FixturesOrigin = fixtures.Origin
			result.FixtureCount = len(fixtures.Fixtures)
			mu.Unlock()
		},
		func() {
			rounds := w.fixtures.RefreshRounds(ctx)
			mu.Lock()
			result.RoundsOrigin = rounds.Origin
			result.RoundCount = len(rounds.Rounds)
			mu.Unlock()
		},
	}
	for _, task := range tasks {
		task := task
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			task()
		}); err != nil {
			workers.Done()
			workers.Wait()
			return WarmupResult{}, fmt.Errorf("submit warmup task: %w", err)
		}
	}
	workers.Wait()

	result.DurationMs = time.Since(start).Milliseconds()
	return result, nil
}

// Run warms the cache immediately and then every interval until ctx ends.
func (w *WarmupService) Run(ctx context.Context) {
	if !w.Enabled() {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		result, err := w.RunOnce(ctx)
		if err != nil {
			w.logger.WarnContext(ctx, "fixture warmup failed", "error", err)
		} else {
			w.logger.InfoContext(ctx, "fixture warmup finished",
				"fixtures_origin", result.FixturesOrigin,
				"fixtures", result.FixtureCount,
				"rounds_origin", result.RoundsOrigin,
				"rounds", result.RoundCount,
				"duration_ms", result.DurationMs,
			)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
