package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// validEnv sets the minimum required env vars for a valid config.
func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/testdb")
}

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 10
  min_conns: 2

import:
  row_timeout: "2s"
  max_file_bytes: 1048576
  max_rows: 1000

log:
  level: "debug"
  format: "text"
`

func TestLoad_EnvOnly_Defaults(t *testing.T) {
	validEnv(t)
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	// Explicit CONFIG_PATH pointing at a missing file must fail.
	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}

	// Without CONFIG_PATH, env + defaults suffice.
	t.Setenv("CONFIG_PATH", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Database.DSN != "postgres://u:p@localhost:5432/testdb" {
		t.Errorf("unexpected DSN: %q", cfg.Database.DSN)
	}
	if cfg.Import.RowTimeout != 5*time.Second {
		t.Errorf("Import.RowTimeout = %v, want default 5s", cfg.Import.RowTimeout)
	}
	if cfg.Import.MaxFileBytes != 10485760 {
		t.Errorf("Import.MaxFileBytes = %d, want default 10485760", cfg.Import.MaxFileBytes)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("unexpected log defaults: %+v", cfg.Log)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	validEnv(t)
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Import.RowTimeout != 2*time.Second {
		t.Errorf("Import.RowTimeout = %v, want 2s", cfg.Import.RowTimeout)
	}
	if cfg.Import.MaxRows != 1000 {
		t.Errorf("Import.MaxRows = %d, want 1000", cfg.Import.MaxRows)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want text", cfg.Log.Format)
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	validEnv(t)
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("IMPORT_ROW_TIMEOUT", "9s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Import.RowTimeout != 9*time.Second {
		t.Errorf("Import.RowTimeout = %v, want env override 9s", cfg.Import.RowTimeout)
	}
}

func TestValidate_Rejects(t *testing.T) {
	t.Parallel()

	cfg := Config{}
	cfg.Database.MaxConns = 1
	cfg.Database.MinConns = 5
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for max_conns < min_conns")
	}

	cfg = Config{}
	cfg.Database.MaxConns = 10
	cfg.Database.MinConns = 2
	cfg.Import.RowTimeout = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero row_timeout")
	}
}
