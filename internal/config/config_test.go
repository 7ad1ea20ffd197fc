package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.FixtureSource != SourceSquiggle {
		t.Fatalf("unexpected FixtureSource: %q", cfg.FixtureSource)
	}
	if cfg.FixtureCacheTTL != 12*time.Hour {
		t.Fatalf("unexpected FixtureCacheTTL: %s", cfg.FixtureCacheTTL)
	}
	if cfg.FixtureSourceTimeout != 10*time.Second {
		t.Fatalf("unexpected FixtureSourceTimeout: %s", cfg.FixtureSourceTimeout)
	}
	if cfg.FixtureRoundCachePolicy != "bypass" {
		t.Fatalf("unexpected FixtureRoundCachePolicy: %q", cfg.FixtureRoundCachePolicy)
	}
	if cfg.FixtureWarmInterval != 0 {
		t.Fatalf("warmup should be disabled by default, got %s", cfg.FixtureWarmInterval)
	}
	if cfg.CacheBackend != CacheBackendMemory || cfg.TipStore != TipStoreMemory {
		t.Fatalf("unexpected storage defaults: cache=%q tips=%q", cfg.CacheBackend, cfg.TipStore)
	}
}

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_FixtureSourceValidation(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown source", env: map[string]string{"FIXTURE_SOURCE": "rss"}},
		{name: "page without url", env: map[string]string{"FIXTURE_SOURCE": SourcePage}},
		{name: "file without path", env: map[string]string{"FIXTURE_SOURCE": SourceFile}},
		{name: "bad round policy", env: map[string]string{"FIXTURE_ROUND_CACHE_POLICY": "sometimes"}},
		{name: "negative warm interval", env: map[string]string{"FIXTURE_WARM_INTERVAL": "-1m"}},
		{name: "zero ttl", env: map[string]string{"FIXTURE_CACHE_TTL": "0s"}},
		{name: "redis without url", env: map[string]string{"CACHE_BACKEND": CacheBackendRedis}},
		{name: "postgres without db", env: map[string]string{"TIP_STORE": TipStorePostgres}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			for key, value := range tc.env {
				t.Setenv(key, value)
			}
			if _, err := Load(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestLoad_FixturePageSource(t *testing.T) {
	t.Setenv("APP_ENV", EnvStage)
	t.Setenv("FIXTURE_SOURCE", "PAGE")
	t.Setenv("FIXTURE_PAGE_URL", "https://www.austadiums.com/sport/afl/fixture")
	t.Setenv("FIXTURE_SEASON", "2025")
	t.Setenv("FIXTURE_WARM_INTERVAL", "30m")
	t.Setenv("FIXTURE_ROUND_CACHE_POLICY", "cache")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.FixtureSource != SourcePage || cfg.FixtureSeason != 2025 {
		t.Fatalf("unexpected fixture config: %+v", cfg)
	}
	if cfg.FixtureWarmInterval != 30*time.Minute || cfg.FixtureRoundCachePolicy != "cache" {
		t.Fatalf("unexpected warm/policy config: %s %q", cfg.FixtureWarmInterval, cfg.FixtureRoundCachePolicy)
	}
}

func TestLoadMigration(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost:5432/footy_tipping")
	t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "true")
	t.Setenv("MIGRATIONS_DIR", "/tmp/migrations")
	t.Setenv("MIGRATIONS_PATH", "")

	cfg, err := LoadMigration()
	if err != nil {
		t.Fatalf("LoadMigration: %v", err)
	}
	if !cfg.DBDisablePreparedBinary {
		t.Fatalf("expected prepared binary flag")
	}
	if len(cfg.MigrationsDirs) != 3 || cfg.MigrationsDirs[0] != "/tmp/migrations" {
		t.Fatalf("unexpected migration dirs: %v", cfg.MigrationsDirs)
	}

	t.Setenv("DB_URL", "")
	if _, err := LoadMigration(); err == nil {
		t.Fatalf("expected error without DB_URL")
	}
}
