package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/footy-tipping/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	SourceSquiggle = "squiggle"
	SourcePage     = "page"
	SourceFile     = "file"
)

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

const (
	TipStoreMemory   = "memory"
	TipStorePostgres = "postgres"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                      string
	ServiceName                 string
	ServiceVersion              string
	HTTPAddr                    string
	ReadTimeout                 time.Duration
	WriteTimeout                time.Duration
	CORSAllowedOrigins          []string
	LogLevel                    logging.Level
	FixtureSource               string
	FixtureSeason               int
	FixtureSourceTimeout        time.Duration
	FixtureUserAgent            string
	SquiggleBaseURL             string
	FixturePageURL              string
	FixtureFile                 string
	FixtureCacheTTL             time.Duration
	FixtureRoundCachePolicy     string
	FixtureWarmInterval         time.Duration
	SourceCircuitEnabled        bool
	SourceCircuitFailureCount   int
	SourceCircuitOpenTimeout    time.Duration
	SourceCircuitHalfOpenMaxReq int
	CacheBackend                string
	RedisURL                    string
	RedisKeyPrefix              string
	TipStore                    string
	DBURL                       string
	DBDisablePreparedBinary     bool
	UptraceEnabled              bool
	UptraceDSN                  string
	UptraceLogsEnabled          bool
	PyroscopeEnabled            bool
	PyroscopeServerAddress      string
	PyroscopeAppName            string
	PyroscopeAuthToken          string
	PyroscopeUploadRate         time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("APP_SERVICE_NAME", "footy-tipping-api"),
		ServiceVersion:     getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:           getEnv("APP_HTTP_ADDR", ":8080"),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:           logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		FixtureUserAgent:   strings.TrimSpace(getEnv("FIXTURE_USER_AGENT", "")),
		SquiggleBaseURL:    strings.TrimSpace(getEnv("SQUIGGLE_BASE_URL", "https://api.squiggle.com.au/")),
		FixturePageURL:     strings.TrimSpace(getEnv("FIXTURE_PAGE_URL", "")),
		FixtureFile:        strings.TrimSpace(getEnv("FIXTURE_FILE", "")),
		RedisURL:           strings.TrimSpace(getEnv("REDIS_URL", "")),
		RedisKeyPrefix:     getEnv("REDIS_KEY_PREFIX", "footy-tipping:"),
		DBURL:              strings.TrimSpace(getEnv("DB_URL", "")),
		UptraceDSN:         strings.TrimSpace(getEnv("UPTRACE_DSN", "")),
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	if cfg.ReadTimeout, err = parsePositiveDuration("APP_READ_TIMEOUT", "10s"); err != nil {
		return Config{}, err
	}
	if cfg.WriteTimeout, err = parsePositiveDuration("APP_WRITE_TIMEOUT", "20s"); err != nil {
		return Config{}, err
	}

	if err := loadFixtureConfig(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadStorageConfig(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadObservabilityConfig(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadFixtureConfig(cfg *Config) error {
	var err error

	cfg.FixtureSource = strings.ToLower(strings.TrimSpace(getEnv("FIXTURE_SOURCE", SourceSquiggle)))
	switch cfg.FixtureSource {
	case SourceSquiggle:
	case SourcePage:
		if cfg.FixturePageURL == "" {
			return fmt.Errorf("FIXTURE_PAGE_URL is required when FIXTURE_SOURCE=%s", SourcePage)
		}
	case SourceFile:
		if cfg.FixtureFile == "" {
			return fmt.Errorf("FIXTURE_FILE is required when FIXTURE_SOURCE=%s", SourceFile)
		}
	default:
		return fmt.Errorf("invalid FIXTURE_SOURCE %q: valid values are %s, %s, %s", cfg.FixtureSource, SourceSquiggle, SourcePage, SourceFile)
	}

	cfg.FixtureSeason, err = getEnvAsInt("FIXTURE_SEASON", 0)
	if err != nil {
		return fmt.Errorf("parse FIXTURE_SEASON: %w", err)
	}
	if cfg.FixtureSeason < 0 {
		return fmt.Errorf("FIXTURE_SEASON must be >= 0")
	}

	if cfg.FixtureSourceTimeout, err = parsePositiveDuration("FIXTURE_SOURCE_TIMEOUT", "10s"); err != nil {
		return err
	}
	if cfg.FixtureCacheTTL, err = parsePositiveDuration("FIXTURE_CACHE_TTL", "12h"); err != nil {
		return err
	}

	cfg.FixtureRoundCachePolicy = strings.ToLower(strings.TrimSpace(getEnv("FIXTURE_ROUND_CACHE_POLICY", "bypass")))
	if cfg.FixtureRoundCachePolicy != "bypass" && cfg.FixtureRoundCachePolicy != "cache" {
		return fmt.Errorf("invalid FIXTURE_ROUND_CACHE_POLICY %q: valid values are bypass, cache", cfg.FixtureRoundCachePolicy)
	}

	cfg.FixtureWarmInterval, err = time.ParseDuration(getEnv("FIXTURE_WARM_INTERVAL", "0s"))
	if err != nil {
		return fmt.Errorf("parse FIXTURE_WARM_INTERVAL: %w", err)
	}
	if cfg.FixtureWarmInterval < 0 {
		return fmt.Errorf("FIXTURE_WARM_INTERVAL must be >= 0")
	}

	cfg.SourceCircuitEnabled, err = strconv.ParseBool(getEnv("FIXTURE_SOURCE_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return fmt.Errorf("parse FIXTURE_SOURCE_CIRCUIT_ENABLED: %w", err)
	}
	cfg.SourceCircuitFailureCount, err = getEnvAsInt("FIXTURE_SOURCE_CIRCUIT_FAILURE_COUNT", 3)
	if err != nil {
		return fmt.Errorf("parse FIXTURE_SOURCE_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if cfg.SourceCircuitFailureCount <= 0 {
		return fmt.Errorf("FIXTURE_SOURCE_CIRCUIT_FAILURE_COUNT must be > 0")
	}
	if cfg.SourceCircuitOpenTimeout, err = parsePositiveDuration("FIXTURE_SOURCE_CIRCUIT_OPEN_TIMEOUT", "1m"); err != nil {
		return err
	}
	cfg.SourceCircuitHalfOpenMaxReq, err = getEnvAsInt("FIXTURE_SOURCE_CIRCUIT_HALF_OPEN_MAX_REQ", 1)
	if err != nil {
		return fmt.Errorf("parse FIXTURE_SOURCE_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if cfg.SourceCircuitHalfOpenMaxReq <= 0 {
		return fmt.Errorf("FIXTURE_SOURCE_CIRCUIT_HALF_OPEN_MAX_REQ must be > 0")
	}

	return nil
}

func loadStorageConfig(cfg *Config) error {
	cfg.CacheBackend = strings.ToLower(strings.TrimSpace(getEnv("CACHE_BACKEND", CacheBackendMemory)))
	switch cfg.CacheBackend {
	case CacheBackendMemory:
	case CacheBackendRedis:
		if cfg.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when CACHE_BACKEND=%s", CacheBackendRedis)
		}
	default:
		return fmt.Errorf("invalid CACHE_BACKEND %q: valid values are %s, %s", cfg.CacheBackend, CacheBackendMemory, CacheBackendRedis)
	}

	cfg.TipStore = strings.ToLower(strings.TrimSpace(getEnv("TIP_STORE", TipStoreMemory)))
	switch cfg.TipStore {
	case TipStoreMemory:
	case TipStorePostgres:
		if cfg.DBURL == "" {
			return fmt.Errorf("DB_URL is required when TIP_STORE=%s", TipStorePostgres)
		}
	default:
		return fmt.Errorf("invalid TIP_STORE %q: valid values are %s, %s", cfg.TipStore, TipStoreMemory, TipStorePostgres)
	}

	var err error
	cfg.DBDisablePreparedBinary, err = strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "false"))
	if err != nil {
		return fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}
	return nil
}

// MigrationConfig is the subset of settings the migration command needs.
type MigrationConfig struct {
	DBURL                   string
	DBDisablePreparedBinary bool
	MigrationsDirs          []string
	LogLevel                logging.Level
}

func LoadMigration() (MigrationConfig, error) {
	cfg := MigrationConfig{
		DBURL:    strings.TrimSpace(getEnv("DB_URL", "")),
		LogLevel: logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		MigrationsDirs: splitCSV(strings.Join([]string{
			getEnv("MIGRATIONS_DIR", ""),
			getEnv("MIGRATIONS_PATH", ""),
			"./db/migrations",
			"/app/db/migrations",
		}, ",")),
	}
	if cfg.DBURL == "" {
		return MigrationConfig{}, fmt.Errorf("DB_URL is required")
	}

	var err error
	cfg.DBDisablePreparedBinary, err = strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "false"))
	if err != nil {
		return MigrationConfig{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}
	return cfg, nil
}

func loadObservabilityConfig(cfg *Config) error {
	var err error

	cfg.UptraceEnabled, err = strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	cfg.UptraceLogsEnabled, err = strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true"))
	if err != nil {
		return fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	cfg.PyroscopeEnabled, err = strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	cfg.PyroscopeServerAddress = strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	cfg.PyroscopeAuthToken = strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", ""))
	if cfg.PyroscopeUploadRate, err = parsePositiveDuration("PYROSCOPE_UPLOAD_RATE", "15s"); err != nil {
		return err
	}
	return nil
}

func parsePositiveDuration(key, fallback string) (time.Duration, error) {
	value, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return value, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
