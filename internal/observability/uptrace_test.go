package observability

import (
	"context"
	"testing"

	"github.com/riskibarqy/footy-tipping/internal/config"
	"github.com/riskibarqy/footy-tipping/internal/platform/logging"
)

func TestInitUptrace_Disabled(t *testing.T) {
	cfg := config.Config{
		UptraceEnabled: false,
		ServiceName:    "footy-tipping-api",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}

	shutdown, err := InitUptrace(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown uptrace: %v", err)
	}
}

func TestInitUptrace_EnabledWithoutDSN(t *testing.T) {
	cfg := config.Config{
		UptraceEnabled: true,
		ServiceName:    "footy-tipping-api",
		AppEnv:         config.EnvDev,
	}

	shutdown, err := InitUptrace(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown uptrace: %v", err)
	}
}

func TestInitPyroscope_Disabled(t *testing.T) {
	stop, err := InitPyroscope(config.Config{PyroscopeEnabled: false}, logging.NewNop())
	if err != nil {
		t.Fatalf("init pyroscope: %v", err)
	}
	if err := stop(); err != nil {
		t.Fatalf("stop pyroscope: %v", err)
	}
}
