package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/riskibarqy/footy-tipping/internal/config"
	"github.com/riskibarqy/footy-tipping/internal/platform/dburl"
	"github.com/riskibarqy/footy-tipping/internal/platform/logging"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	cfg, err := config.LoadMigration()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	if err := run(cfg, logger, os.Args[1], os.Args[2:]); err != nil {
		logger.Error("migration failed", "command", os.Args[1], "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func run(cfg config.MigrationConfig, logger *logging.Logger, command string, args []string) error {
	migrationsDir, err := resolveMigrationsDir(cfg.MigrationsDirs)
	if err != nil {
		return err
	}

	sourceURL := "file://" + filepath.ToSlash(migrationsDir)
	m, err := migrate.New(sourceURL, dburl.Normalize(cfg.DBURL, cfg.DBDisablePreparedBinary))
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	m.Log = migrateLogger{logger: logger}
	defer closeMigrator(m, logger)

	switch strings.ToLower(strings.TrimSpace(command)) {
	case "up":
		if err := ignoreNoChange(m.Up(), logger); err != nil {
			return err
		}
		logger.Info("migrations applied", "source", sourceURL)
	case "down":
		steps, err := parseSteps(args)
		if err != nil {
			return err
		}
		if err := ignoreNoChange(m.Steps(-steps), logger); err != nil {
			return err
		}
		logger.Info("migrations rolled back", "steps", steps)
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Println("version: none")
			fmt.Println("dirty: false")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read version: %w", err)
		}
		fmt.Printf("version: %d\n", version)
		fmt.Printf("dirty: %t\n", dirty)
	case "force":
		if len(args) < 1 {
			return errors.New("force requires a version argument")
		}
		version, err := parseVersion(args[0])
		if err != nil {
			return err
		}
		if err := m.Force(version); err != nil {
			return fmt.Errorf("force version %d: %w", version, err)
		}
		logger.Info("migration version forced", "version", version)
	case "goto", "migrate":
		if len(args) < 1 {
			return errors.New("goto requires a target version argument")
		}
		target, err := parseTarget(args[0])
		if err != nil {
			return err
		}
		if err := ignoreNoChange(m.Migrate(target), logger); err != nil {
			return err
		}
		logger.Info("migrated", "version", target)
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", command)
	}
	return nil
}

// migrateLogger routes golang-migrate progress lines into the service log.
type migrateLogger struct {
	logger *logging.Logger
}

func (l migrateLogger) Printf(format string, v ...any) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l migrateLogger) Verbose() bool {
	return false
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}

	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid down steps %q: %w", args[0], err)
	}
	if steps <= 0 {
		return 0, fmt.Errorf("down steps must be > 0")
	}

	return steps, nil
}

func parseVersion(raw string) (int, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("version must be >= 0")
	}
	if value > int64(^uint(0)>>1) {
		return 0, fmt.Errorf("version is too large for this platform")
	}

	return int(value), nil
}

func parseTarget(raw string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid target version %q: %w", raw, err)
	}
	return uint(value), nil
}

func ignoreNoChange(err error, logger *logging.Logger) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return nil
	}
	return err
}

func closeMigrator(m *migrate.Migrate, logger *logging.Logger) {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		logger.Warn("close migration source", "error", srcErr)
	}
	if dbErr != nil {
		logger.Warn("close migration db", "error", dbErr)
	}
}

func resolveMigrationsDir(candidates []string) (string, error) {
	for _, candidate := range candidates {
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			continue
		}
		return abs, nil
	}

	return "", fmt.Errorf("migration directory not found (checked %s)", strings.Join(candidates, ", "))
}

func printUsage() {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <up|down|version|force|goto> [args]\n", name)
	fmt.Fprintln(os.Stderr, "examples:")
	fmt.Fprintf(os.Stderr, "  %s up\n", name)
	fmt.Fprintf(os.Stderr, "  %s down 1\n", name)
	fmt.Fprintf(os.Stderr, "  %s version\n", name)
	fmt.Fprintf(os.Stderr, "  %s goto 1755680000\n", name)
}
