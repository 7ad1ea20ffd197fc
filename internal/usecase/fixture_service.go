package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/riskibarqy/footy-tipping/internal/domain/fixture"
	"github.com/riskibarqy/footy-tipping/internal/platform/logging"
	"github.com/riskibarqy/footy-tipping/internal/platform/resilience"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultFixturesKey = "fixtures:default"
	roundsKey          = "rounds:default"
	defaultCacheTTL    = 12 * time.Hour
)

// RoundCachePolicy decides whether round-specific requests use the cache.
type RoundCachePolicy string

const (
	RoundCacheBypass RoundCachePolicy = "bypass"
	RoundCacheCache  RoundCachePolicy = "cache"
)

// Origin says where a result came from.
type Origin string

const (
	OriginCache    Origin = "cache"
	OriginLive     Origin = "live"
	OriginFallback Origin = "fallback"
)

type FixtureServiceConfig struct {
	Season           int
	CacheTTL         time.Duration
	RoundCachePolicy RoundCachePolicy
	Logger           *logging.Logger
	Now              func() time.Time
}

type FixtureResult struct {
	Fixtures  []fixture.Fixture
	Origin    Origin
	FetchedAt time.Time
	// Failure is set when Origin is OriginFallback.
	Failure error
}

type RoundsResult struct {
	Rounds    []fixture.Round
	Origin    Origin
	FetchedAt time.Time
	Failure   error
}

// FixtureService is the fixture pipeline: cache, then source and normalizer,
// then fallback. It always produces a non-empty fixture list.
type FixtureService struct {
	source      fixture.Source
	cache       fixture.SnapshotCache
	normalizer  *fixture.Normalizer
	logger      *logging.Logger
	season      int
	ttl         time.Duration
	roundPolicy RoundCachePolicy
	now         func() time.Time
	flight      resilience.SingleFlight
}

func NewFixtureService(source fixture.Source, cache fixture.SnapshotCache, cfg FixtureServiceConfig) *FixtureService {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	policy := cfg.RoundCachePolicy
	if policy != RoundCacheCache {
		policy = RoundCacheBypass
	}

	return &FixtureService{
		source:      source,
		cache:       cache,
		normalizer:  fixture.NewNormalizer(now),
		logger:      logger,
		season:      cfg.Season,
		ttl:         ttl,
		roundPolicy: policy,
		now:         now,
	}
}

// FetchFixtures returns fixtures for the default view or one round. The
// only error is invalid input; upstream problems resolve to fallback data.
func (s *FixtureService) FetchFixtures(ctx context.Context, round *int) ([]fixture.Fixture, error) {
	result, err := s.Fixtures(ctx, round)
	if err != nil {
		return nil, err
	}
	return result.Fixtures, nil
}

func (s *FixtureService) Fixtures(ctx context.Context, round *int) (FixtureResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.Fixtures")
	defer span.End()

	if round != nil && *round <= 0 {
		return FixtureResult{}, fmt.Errorf("%w: round must be a positive number", ErrInvalidInput)
	}

	key := fixturesKey(round)
	useCache := round == nil || s.roundPolicy == RoundCacheCache
	if useCache {
		if snapshot, ok := s.freshSnapshot(ctx, key); ok {
			span.SetAttributes(attribute.String("fixtures.origin", string(OriginCache)))
			return FixtureResult{
				Fixtures:  snapshot.Fixtures,
				Origin:    OriginCache,
				FetchedAt: snapshot.FetchedAt,
			}, nil
		}
	}

	result := s.loadFixtures(ctx, key, round, useCache)
	span.SetAttributes(
		attribute.String("fixtures.origin", string(result.Origin)),
		attribute.Int("fixtures.count", len(result.Fixtures)),
	)
	return result, nil
}

// RefreshFixtures fetches the default fixtures regardless of cache freshness
// and stores them when the fetch was live.
func (s *FixtureService) RefreshFixtures(ctx context.Context) FixtureResult {
	return s.loadFixtures(ctx, defaultFixturesKey, nil, true)
}

func (s *FixtureService) loadFixtures(ctx context.Context, key string, round *int, store bool) FixtureResult {
	out, err, _ := s.flight.DoContext(ctx, key, func() (any, error) {
		loadCtx := context.WithoutCancel(ctx)
		result := s.fetchLive(loadCtx, round)
		if store && result.Origin == OriginLive {
			s.storeSnapshot(loadCtx, key, fixture.Snapshot{Fixtures: result.Fixtures, FetchedAt: result.FetchedAt})
		}
		return result, nil
	})
	if err != nil {
		s.logger.WarnContext(ctx, "fixture fetch abandoned, serving fallback", "key", key, "error", err)
		return s.fallbackFixtures(err)
	}

	result, _ := out.(FixtureResult)
	result.Fixtures = append([]fixture.Fixture(nil), result.Fixtures...)
	return result
}

func (s *FixtureService) fetchLive(ctx context.Context, round *int) FixtureResult {
	season := s.currentSeason()
	raw, err := s.source.FetchRaw(ctx, season, round)
	if err != nil {
		failure := fmt.Errorf("%w: %s: %v", ErrSourceFailure, s.source.Name(), err)
		s.logger.WarnContext(ctx, "fixture source failed, serving fallback",
			"source", s.source.Name(), "season", season, "round", roundLabel(round), "error", failure)
		return s.fallbackFixtures(failure)
	}

	if raw.Empty() {
		failure := fmt.Errorf("%w: %s returned no data", ErrSourceFailure, s.source.Name())
		s.logger.WarnContext(ctx, "fixture source returned no data, serving fallback",
			"source", s.source.Name(), "season", season, "round", roundLabel(round), "error", failure)
		return s.fallbackFixtures(failure)
	}

	items := s.normalizer.Normalize(raw)
	if len(items) == 0 {
		failure := fmt.Errorf("%w: %s returned no usable fixtures", ErrParseFailure, s.source.Name())
		s.logger.WarnContext(ctx, "no fixtures parsed, serving fallback",
			"source", s.source.Name(), "season", season, "round", roundLabel(round), "error", failure)
		return s.fallbackFixtures(failure)
	}

	s.logger.InfoContext(ctx, "fetched live fixtures", "source", s.source.Name(), "count", len(items), "round", roundLabel(round))
	return FixtureResult{
		Fixtures:  items,
		Origin:    OriginLive,
		FetchedAt: s.now(),
	}
}

func (s *FixtureService) fallbackFixtures(failure error) FixtureResult {
	now := s.now()
	return FixtureResult{
		Fixtures:  fixture.FallbackFixtures(now),
		Origin:    OriginFallback,
		FetchedAt: now,
		Failure:   failure,
	}
}

// FetchRounds lists the season's rounds, falling back to rounds 1..23.
func (s *FixtureService) FetchRounds(ctx context.Context) ([]fixture.Round, error) {
	result := s.Rounds(ctx)
	return result.Rounds, nil
}

func (s *FixtureService) Rounds(ctx context.Context) RoundsResult {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.Rounds")
	defer span.End()

	if snapshot, ok := s.freshSnapshot(ctx, roundsKey); ok && len(snapshot.Rounds) > 0 {
		return RoundsResult{Rounds: snapshot.Rounds, Origin: OriginCache, FetchedAt: snapshot.FetchedAt}
	}
	result := s.RefreshRounds(ctx)
	span.SetAttributes(attribute.String("rounds.origin", string(result.Origin)))
	return result
}

// RefreshRounds fetches rounds regardless of cache freshness.
func (s *FixtureService) RefreshRounds(ctx context.Context) RoundsResult {
	out, err, _ := s.flight.DoContext(ctx, roundsKey, func() (any, error) {
		loadCtx := context.WithoutCancel(ctx)
		result := s.fetchLiveRounds(loadCtx)
		if result.Origin == OriginLive {
			s.storeSnapshot(loadCtx, roundsKey, fixture.Snapshot{Rounds: result.Rounds, FetchedAt: result.FetchedAt})
		}
		return result, nil
	})
	if err != nil {
		return s.fallbackRounds(err)
	}

	result, _ := out.(RoundsResult)
	result.Rounds = append([]fixture.Round(nil), result.Rounds...)
	return result
}

func (s *FixtureService) fetchLiveRounds(ctx context.Context) RoundsResult {
	lister, ok := s.source.(fixture.RoundSource)
	if !ok {
		return s.fallbackRounds(fmt.Errorf("%w: %s does not list rounds", ErrSourceFailure, s.source.Name()))
	}

	season := s.currentSeason()
	numbers, err := lister.FetchRoundNumbers(ctx, season)
	if err != nil {
		failure := fmt.Errorf("%w: %s: %v", ErrSourceFailure, s.source.Name(), err)
		s.logger.WarnContext(ctx, "round listing failed, serving fallback rounds", "source", s.source.Name(), "season", season, "error", failure)
		return s.fallbackRounds(failure)
	}

	rounds := fixture.RoundsFromNumbers(numbers)
	if len(rounds) == 0 {
		failure := fmt.Errorf("%w: %s listed no rounds", ErrParseFailure, s.source.Name())
		s.logger.WarnContext(ctx, "no rounds listed, serving fallback rounds", "source", s.source.Name(), "season", season)
		return s.fallbackRounds(failure)
	}
	return RoundsResult{Rounds: rounds, Origin: OriginLive, FetchedAt: s.now()}
}

func (s *FixtureService) fallbackRounds(failure error) RoundsResult {
	return RoundsResult{
		Rounds:    fixture.FallbackRounds(),
		Origin:    OriginFallback,
		FetchedAt: s.now(),
		Failure:   failure,
	}
}

func (s *FixtureService) freshSnapshot(ctx context.Context, key string) (fixture.Snapshot, bool) {
	if s.cache == nil {
		return fixture.Snapshot{}, false
	}
	snapshot, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "fixture cache read failed", "key", key, "error", err)
		return fixture.Snapshot{}, false
	}
	if !ok || !snapshot.FreshAt(s.now(), s.ttl) {
		return fixture.Snapshot{}, false
	}
	return snapshot, true
}

func (s *FixtureService) storeSnapshot(ctx context.Context, key string, snapshot fixture.Snapshot) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, snapshot); err != nil {
		s.logger.WarnContext(ctx, "fixture cache write failed", "key", key, "error", err)
	}
}

func (s *FixtureService) currentSeason() int {
	if s.season > 0 {
		return s.season
	}
	return s.now().Year()
}

func fixturesKey(round *int) string {
	if round == nil {
		return defaultFixturesKey
	}
	return "fixtures:round:" + strconv.Itoa(*round)
}

func roundLabel(round *int) string {
	if round == nil {
		return "default"
	}
	return strconv.Itoa(*round)
}
