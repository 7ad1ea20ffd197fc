package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseSteps(t *testing.T) {
	if got, err := parseSteps(nil); err != nil || got != 1 {
		t.Fatalf("parseSteps(nil)=%d,%v want 1", got, err)
	}
	if got, err := parseSteps([]string{" 3 "}); err != nil || got != 3 {
		t.Fatalf("parseSteps(3)=%d,%v want 3", got, err)
	}
	for _, raw := range []string{"0", "-1", "two"} {
		if _, err := parseSteps([]string{raw}); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestParseVersionAndTarget(t *testing.T) {
	if got, err := parseVersion("1755680000"); err != nil || got != 1755680000 {
		t.Fatalf("parseVersion=%d,%v", got, err)
	}
	if _, err := parseVersion("-2"); err == nil {
		t.Fatalf("expected error for negative version")
	}
	if _, err := parseTarget("abc"); err == nil {
		t.Fatalf("expected error for invalid target")
	}
}

func TestResolveMigrationsDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "not-a-dir.sql")
	if err := os.WriteFile(file, []byte("--"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	got, err := resolveMigrationsDir([]string{filepath.Join(dir, "missing"), file, dir})
	if err != nil {
		t.Fatalf("resolveMigrationsDir: %v", err)
	}
	if got != dir {
		t.Fatalf("expected %q, got %q", dir, got)
	}

	if _, err := resolveMigrationsDir([]string{filepath.Join(dir, "missing")}); err == nil {
		t.Fatalf("expected error when no directory exists")
	}
}
