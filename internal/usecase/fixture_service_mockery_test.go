package usecase

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskibarqy/footy-tipping/external/squiggle"
	"github.com/riskibarqy/footy-tipping/internal/domain/fixture"
	cacherepo "github.com/riskibarqy/footy-tipping/internal/infrastructure/repository/cache"
	fixturemock "github.com/riskibarqy/footy-tipping/internal/mocks/domain/fixture"
	basecache "github.com/riskibarqy/footy-tipping/internal/platform/cache"
	"github.com/stretchr/testify/mock"
)

// 2025-08-20 is a Wednesday; the next Saturday is 2025-08-23.
var fixedNow = time.Date(2025, 8, 20, 9, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func liveGames() fixture.RawResult {
	return fixture.RawResult{
		Kind:   fixture.RawKindGames,
		Source: "squiggle",
		Games: []fixture.RawGame{
			{ID: 101, HomeTeam: "Carlton", AwayTeam: "Richmond", Venue: "MCG", Date: "2025-08-21 19:30:00", Round: intPtr(24)},
			{ID: 102, HomeTeam: "Hawthorn", AwayTeam: "Essendon", Date: "2025-08-22", Round: intPtr(24)},
		},
	}
}

func newMemoryCache(now *time.Time) *cacherepo.SnapshotCache {
	return cacherepo.NewSnapshotCache(basecache.NewStore[fixture.Snapshot](12*time.Hour, func() time.Time { return *now }))
}

func TestFixtureService_FetchFixtures_CachesLiveResultUsingMockery(t *testing.T) {
	t.Parallel()

	now := fixedNow
	source := fixturemock.NewSource(t)
	source.On("Name").Return("squiggle").Maybe()
	source.On("FetchRaw", mock.Anything, 2025, (*int)(nil)).Return(liveGames(), nil).Once()

	service := NewFixtureService(source, newMemoryCache(&now), FixtureServiceConfig{
		Now: func() time.Time { return now },
	})

	first, err := service.Fixtures(context.Background(), nil)
	if err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	if first.Origin != OriginLive || len(first.Fixtures) != 2 {
		t.Fatalf("unexpected first result: %+v", first)
	}
	if got := first.Fixtures[0]; got.ID != 101 || got.Round != "Elimination Finals" || got.Time != "19:30" || got.Date != "2025-08-21" {
		t.Fatalf("unexpected normalized fixture: %+v", got)
	}
	if got := first.Fixtures[1]; got.Venue != fixture.VenueTBA || got.Time != fixture.DefaultKickoffTime {
		t.Fatalf("expected defaults on second fixture: %+v", got)
	}

	now = now.Add(6 * time.Hour)
	second, err := service.Fixtures(context.Background(), nil)
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if second.Origin != OriginCache {
		t.Fatalf("expected cache hit, got %s", second.Origin)
	}
	if len(second.Fixtures) != len(first.Fixtures) || second.Fixtures[0] != first.Fixtures[0] {
		t.Fatalf("cached fixtures differ: %+v vs %+v", second.Fixtures, first.Fixtures)
	}
}

func TestFixtureService_FetchFixtures_RefetchesStaleSnapshotUsingMockery(t *testing.T) {
	t.Parallel()

	now := fixedNow
	source := fixturemock.NewSource(t)
	source.On("Name").Return("squiggle").Maybe()
	source.On("FetchRaw", mock.Anything, 2025, (*int)(nil)).Return(liveGames(), nil).Twice()

	service := NewFixtureService(source, newMemoryCache(&now), FixtureServiceConfig{
		Now: func() time.Time { return now },
	})

	if _, err := service.FetchFixtures(context.Background(), nil); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	now = now.Add(13 * time.Hour)
	result, err := service.Fixtures(context.Background(), nil)
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if result.Origin != OriginLive {
		t.Fatalf("expected live refetch after 13h, got %s", result.Origin)
	}
}

func TestFixtureService_FetchFixtures_SourceFailureServesFallbackUsingMockery(t *testing.T) {
	t.Parallel()

	source := fixturemock.NewSource(t)
	cache := fixturemock.NewSnapshotCache(t)
	source.On("Name").Return("squiggle").Maybe()
	source.On("FetchRaw", mock.Anything, 2025, (*int)(nil)).Return(fixture.RawResult{}, errors.New("connection refused")).Once()
	cache.On("Get", mock.Anything, "fixtures:default").Return(fixture.Snapshot{}, false, nil).Once()

	service := NewFixtureService(source, cache, FixtureServiceConfig{Now: func() time.Time { return fixedNow }})
	result, err := service.Fixtures(context.Background(), nil)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if result.Origin != OriginFallback || !errors.Is(result.Failure, ErrSourceFailure) {
		t.Fatalf("expected fallback after source failure, got %+v", result)
	}
	if len(result.Fixtures) != 8 {
		t.Fatalf("expected 8 fallback fixtures, got %d", len(result.Fixtures))
	}
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestFixtureService_FetchFixtures_EmptyTextServesFallbackUsingMockery(t *testing.T) {
	t.Parallel()

	source := fixturemock.NewSource(t)
	cache := fixturemock.NewSnapshotCache(t)
	source.On("Name").Return("fixturepage").Maybe()
	source.On("FetchRaw", mock.Anything, 2025, (*int)(nil)).Return(fixture.RawResult{
		Kind: fixture.RawKindText,
		Text: "Latest news\nNo games this week",
	}, nil).Once()
	cache.On("Get", mock.Anything, "fixtures:default").Return(fixture.Snapshot{}, false, nil).Once()

	service := NewFixtureService(source, cache, FixtureServiceConfig{Now: func() time.Time { return fixedNow }})
	result, err := service.Fixtures(context.Background(), nil)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if result.Origin != OriginFallback || !errors.Is(result.Failure, ErrParseFailure) {
		t.Fatalf("expected parse failure fallback, got %+v", result)
	}
	if result.Fixtures[0].Date != "2025-08-23" || result.Fixtures[7].Date != "2025-08-24" {
		t.Fatalf("unexpected fallback dates: %s %s", result.Fixtures[0].Date, result.Fixtures[7].Date)
	}
}

func TestFixtureService_FetchFixtures_EmptyRawResultIsSourceFailureUsingMockery(t *testing.T) {
	t.Parallel()

	source := fixturemock.NewSource(t)
	cache := fixturemock.NewSnapshotCache(t)
	source.On("Name").Return("file").Maybe()
	source.On("FetchRaw", mock.Anything, 2025, (*int)(nil)).Return(fixture.RawResult{
		Kind:   fixture.RawKindFile,
		Source: "file",
	}, nil).Once()
	cache.On("Get", mock.Anything, "fixtures:default").Return(fixture.Snapshot{}, false, nil).Once()

	service := NewFixtureService(source, cache, FixtureServiceConfig{Now: func() time.Time { return fixedNow }})
	result, err := service.Fixtures(context.Background(), nil)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if result.Origin != OriginFallback || !errors.Is(result.Failure, ErrSourceFailure) || errors.Is(result.Failure, ErrParseFailure) {
		t.Fatalf("expected source failure fallback, got %+v", result)
	}
	if len(result.Fixtures) != 8 {
		t.Fatalf("expected 8 fallback fixtures, got %d", len(result.Fixtures))
	}
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestFixtureService_FetchFixtures_RoundBypassesCacheUsingMockery(t *testing.T) {
	t.Parallel()

	source := fixturemock.NewSource(t)
	cache := fixturemock.NewSnapshotCache(t)
	source.On("Name").Return("squiggle").Maybe()
	source.On("FetchRaw", mock.Anything, 2025, mock.MatchedBy(func(r *int) bool { return r != nil && *r == 24 })).
		Return(liveGames(), nil).Twice()

	service := NewFixtureService(source, cache, FixtureServiceConfig{Now: func() time.Time { return fixedNow }})
	for i := 0; i < 2; i++ {
		result, err := service.Fixtures(context.Background(), intPtr(24))
		if err != nil {
			t.Fatalf("fetch round: %v", err)
		}
		if result.Origin != OriginLive {
			t.Fatalf("round request should always be live, got %s", result.Origin)
		}
	}
	cache.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestFixtureService_FetchFixtures_RoundCachePolicyUsingMockery(t *testing.T) {
	t.Parallel()

	now := fixedNow
	source := fixturemock.NewSource(t)
	source.On("Name").Return("squiggle").Maybe()
	source.On("FetchRaw", mock.Anything, 2025, mock.Anything).Return(liveGames(), nil).Once()

	service := NewFixtureService(source, newMemoryCache(&now), FixtureServiceConfig{
		RoundCachePolicy: RoundCacheCache,
		Now:              func() time.Time { return now },
	})
	_, _ = service.Fixtures(context.Background(), intPtr(24))
	result, err := service.Fixtures(context.Background(), intPtr(24))
	if err != nil {
		t.Fatalf("fetch round: %v", err)
	}
	if result.Origin != OriginCache {
		t.Fatalf("expected cached round result, got %s", result.Origin)
	}
}

func TestFixtureService_FetchFixtures_InvalidRound(t *testing.T) {
	t.Parallel()

	service := NewFixtureService(fixturemock.NewSource(t), nil, FixtureServiceConfig{})
	if _, err := service.FetchFixtures(context.Background(), intPtr(0)); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestFixtureService_FetchFixtures_AdapterTimeoutServesFallback(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	client := squiggle.NewClient(squiggle.ClientConfig{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	now := fixedNow
	service := NewFixtureService(client, newMemoryCache(&now), FixtureServiceConfig{Now: func() time.Time { return now }})

	items, err := service.FetchFixtures(context.Background(), nil)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(items) != 8 {
		t.Fatalf("expected 8 fallback fixtures, got %d", len(items))
	}
	for _, item := range items {
		if item.HomeTeam == "" || item.AwayTeam == "" || item.HomeTeam == item.AwayTeam {
			t.Fatalf("invalid fallback fixture: %+v", item)
		}
	}
}

type stubRoundSource struct {
	numbers []int
	err     error
}

func (stubRoundSource) Name() string { return "stub" }

func (stubRoundSource) FetchRaw(context.Context, int, *int) (fixture.RawResult, error) {
	return fixture.RawResult{}, errors.New("not used")
}

func (s stubRoundSource) FetchRoundNumbers(context.Context, int) ([]int, error) {
	return s.numbers, s.err
}

func TestFixtureService_FetchRounds(t *testing.T) {
	t.Parallel()

	now := fixedNow
	service := NewFixtureService(stubRoundSource{numbers: []int{2, 1, 24, 2, 28}}, newMemoryCache(&now), FixtureServiceConfig{
		Now: func() time.Time { return now },
	})

	result := service.Rounds(context.Background())
	if result.Origin != OriginLive || len(result.Rounds) != 4 {
		t.Fatalf("unexpected rounds: %+v", result)
	}
	if result.Rounds[2].Name != "Elimination Finals" || result.Rounds[3].Name != "Grand Final" {
		t.Fatalf("unexpected round names: %+v", result.Rounds)
	}

	if cached := service.Rounds(context.Background()); cached.Origin != OriginCache {
		t.Fatalf("expected cached rounds, got %s", cached.Origin)
	}
}

func TestFixtureService_FetchRounds_Fallback(t *testing.T) {
	t.Parallel()

	service := NewFixtureService(stubRoundSource{err: errors.New("timeout")}, nil, FixtureServiceConfig{
		Now: func() time.Time { return fixedNow },
	})
	rounds, err := service.FetchRounds(context.Background())
	if err != nil {
		t.Fatalf("FetchRounds error: %v", err)
	}
	if len(rounds) != 23 || rounds[0].Name != "Round 1" || rounds[22].Name != "Round 23" {
		t.Fatalf("unexpected fallback rounds: %+v", rounds)
	}

	pageSource := fixturemock.NewSource(t)
	pageSource.On("Name").Return("fixturepage").Maybe()
	noRounds := NewFixtureService(pageSource, nil, FixtureServiceConfig{})
	if got := noRounds.Rounds(context.Background()); got.Origin != OriginFallback {
		t.Fatalf("source without round listing should fall back, got %s", got.Origin)
	}
}
