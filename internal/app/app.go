package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/footy-tipping/internal/config"
	"github.com/riskibarqy/footy-tipping/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/footy-tipping/internal/platform/id"
	"github.com/riskibarqy/footy-tipping/internal/platform/logging"
	"github.com/riskibarqy/footy-tipping/internal/usecase"
)

// App holds the HTTP server, the optional cache warm-up job and whatever
// connections must be closed on shutdown.
type App struct {
	Server   *http.Server
	Warmup   *usecase.WarmupService
	cleanups []func() error
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	a := &App{}

	source, err := newFixtureSource(cfg, logger)
	if err != nil {
		return nil, err
	}

	snapshots, closeCache, err := newSnapshotCache(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.addCleanup(closeCache)

	tipRepo, closeDB, err := newTipRepository(cfg)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.addCleanup(closeDB)

	fixtureSvc := usecase.NewFixtureService(source, snapshots, usecase.FixtureServiceConfig{
		Season:           cfg.FixtureSeason,
		CacheTTL:         cfg.FixtureCacheTTL,
		RoundCachePolicy: usecase.RoundCachePolicy(cfg.FixtureRoundCachePolicy),
		Logger:           logger,
	})
	tipSvc := usecase.NewTipService(tipRepo, idgen.NewRandomGenerator(), time.Now)
	a.Warmup = usecase.NewWarmupService(fixtureSvc, cfg.FixtureWarmInterval, logger)

	handler := httpapi.NewHandler(fixtureSvc, tipSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	logger.Info("app wired",
		"fixture_source", source.Name(),
		"cache_backend", cfg.CacheBackend,
		"tip_store", cfg.TipStore,
		"warmup_enabled", a.Warmup.Enabled(),
	)
	return a, nil
}

func (a *App) addCleanup(fn func() error) {
	if fn != nil {
		a.cleanups = append(a.cleanups, fn)
	}
}

// Close releases connections in reverse order of creation.
func (a *App) Close() error {
	var errs []error
	for i := len(a.cleanups) - 1; i >= 0; i-- {
		if err := a.cleanups[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.cleanups = nil
	return errors.Join(errs...)
}
