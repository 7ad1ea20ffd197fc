package app

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/footy-tipping/external/fixturepage"
	"github.com/riskibarqy/footy-tipping/external/squiggle"
	"github.com/riskibarqy/footy-tipping/internal/config"
	"github.com/riskibarqy/footy-tipping/internal/domain/fixture"
	"github.com/riskibarqy/footy-tipping/internal/infrastructure/fixturefile"
	"github.com/riskibarqy/footy-tipping/internal/platform/logging"
	"github.com/riskibarqy/footy-tipping/internal/platform/resilience"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func newFixtureSource(cfg config.Config, logger *logging.Logger) (fixture.Source, error) {
	switch cfg.FixtureSource {
	case config.SourceSquiggle, "":
		return squiggle.NewClient(squiggle.ClientConfig{
			HTTPClient:     newUpstreamHTTPClient(cfg),
			BaseURL:        cfg.SquiggleBaseURL,
			UserAgent:      cfg.FixtureUserAgent,
			Logger:         logger,
			CircuitBreaker: circuitBreakerConfig(cfg),
		}), nil
	case config.SourcePage:
		return fixturepage.NewScraper(fixturepage.ScraperConfig{
			HTTPClient:     newUpstreamHTTPClient(cfg),
			URL:            cfg.FixturePageURL,
			UserAgent:      cfg.FixtureUserAgent,
			Logger:         logger,
			CircuitBreaker: circuitBreakerConfig(cfg),
		}), nil
	case config.SourceFile:
		return fixturefile.NewSource(cfg.FixtureFile, logger), nil
	default:
		return nil, fmt.Errorf("unsupported fixture source %q", cfg.FixtureSource)
	}
}

func newUpstreamHTTPClient(cfg config.Config) *http.Client {
	return &http.Client{
		Timeout:   cfg.FixtureSourceTimeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

func circuitBreakerConfig(cfg config.Config) resilience.CircuitBreakerConfig {
	return resilience.NormalizeCircuitBreakerConfig(resilience.CircuitBreakerConfig{
		Enabled:          cfg.SourceCircuitEnabled,
		FailureThreshold: cfg.SourceCircuitFailureCount,
		OpenTimeout:      cfg.SourceCircuitOpenTimeout,
		HalfOpenMaxReq:   cfg.SourceCircuitHalfOpenMaxReq,
	})
}
