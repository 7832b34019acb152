package config

import (
	"log/slog"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MONEYFLOW_DB_PATH", "")
	t.Setenv("MONEYFLOW_LOG_LEVEL", "")

	cfg := Load()
	if cfg.DBPath != "./data/moneyflow.db" {
		t.Fatalf("unexpected default db path: %s", cfg.DBPath)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Fatalf("unexpected default log level: %v", cfg.LogLevel)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MONEYFLOW_DB_PATH", "/tmp/custom.db")
	t.Setenv("MONEYFLOW_LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.DBPath != "/tmp/custom.db" {
		t.Fatalf("env override ignored: %s", cfg.DBPath)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("unexpected log level: %v", cfg.LogLevel)
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"nonsense", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tc := range cases {
		if got := parseLevel(tc.input); got != tc.want {
			t.Fatalf("parseLevel(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestValidateCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	cfg := &Config{DBPath: filepath.Join(dir, "app.db")}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestValidateEmptyPath(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error for an empty database path")
	}
}
