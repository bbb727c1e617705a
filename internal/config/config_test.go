package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Clear any env vars that might affect defaults
	for _, key := range []string{
		"DATABASE_URL", "RECOMPUTE_INTERVAL", "RECOMPUTE_CONCURRENCY", "TAX_RECORDS_ONLY",
		"EXPORT_DIR", "GOOGLE_SHEETS_ID", "GOOGLE_CREDENTIALS_JSON", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := Load()

	if cfg.DatabaseURL != "" {
		t.Errorf("DatabaseURL = %q, want empty", cfg.DatabaseURL)
	}
	if cfg.RecomputeInterval != 24*time.Hour {
		t.Errorf("RecomputeInterval = %v, want 24h", cfg.RecomputeInterval)
	}
	if cfg.RecomputeConcurrency != 4 {
		t.Errorf("RecomputeConcurrency = %d, want 4", cfg.RecomputeConcurrency)
	}
	if !cfg.TaxRecordsOnly {
		t.Error("TaxRecordsOnly = false, want true")
	}
	if cfg.ExportDir != "" || cfg.GoogleSheetsID != "" {
		t.Errorf("exports should be disabled by default, got dir %q sheet %q", cfg.ExportDir, cfg.GoogleSheetsID)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want text", cfg.LogFormat)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/testdb")
	t.Setenv("RECOMPUTE_INTERVAL", "30m")
	t.Setenv("RECOMPUTE_CONCURRENCY", "8")
	t.Setenv("TAX_RECORDS_ONLY", "false")
	t.Setenv("EXPORT_DIR", "/tmp/reports")
	t.Setenv("GOOGLE_SHEETS_ID", "sheet-123")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg := Load()

	if cfg.DatabaseURL != "postgres://localhost/testdb" {
		t.Errorf("DatabaseURL = %q, want override", cfg.DatabaseURL)
	}
	if cfg.RecomputeInterval != 30*time.Minute {
		t.Errorf("RecomputeInterval = %v, want 30m", cfg.RecomputeInterval)
	}
	if cfg.RecomputeConcurrency != 8 {
		t.Errorf("RecomputeConcurrency = %d, want 8", cfg.RecomputeConcurrency)
	}
	if cfg.TaxRecordsOnly {
		t.Error("TaxRecordsOnly = true, want false")
	}
	if cfg.ExportDir != "/tmp/reports" {
		t.Errorf("ExportDir = %q, want override", cfg.ExportDir)
	}
	if cfg.GoogleSheetsID != "sheet-123" {
		t.Errorf("GoogleSheetsID = %q, want override", cfg.GoogleSheetsID)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Errorf("log settings = %q/%q, want debug/json", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoadInvalidEnvFallsBackToDefault(t *testing.T) {
	t.Setenv("RECOMPUTE_CONCURRENCY", "not-a-number")
	t.Setenv("RECOMPUTE_INTERVAL", "invalid-duration")
	t.Setenv("TAX_RECORDS_ONLY", "maybe")

	cfg := Load()

	if cfg.RecomputeConcurrency != 4 {
		t.Errorf("RecomputeConcurrency = %d, want default 4 on invalid input", cfg.RecomputeConcurrency)
	}
	if cfg.RecomputeInterval != 24*time.Hour {
		t.Errorf("RecomputeInterval = %v, want default 24h on invalid input", cfg.RecomputeInterval)
	}
	if !cfg.TaxRecordsOnly {
		t.Error("TaxRecordsOnly = false, want default true on invalid input")
	}
}

func TestLoadRejectsNonPositiveNumbers(t *testing.T) {
	t.Setenv("RECOMPUTE_CONCURRENCY", "0")
	t.Setenv("RECOMPUTE_INTERVAL", "-5m")

	cfg := Load()

	if cfg.RecomputeConcurrency != 4 {
		t.Errorf("RecomputeConcurrency = %d, want default 4", cfg.RecomputeConcurrency)
	}
	if cfg.RecomputeInterval != 24*time.Hour {
		t.Errorf("RecomputeInterval = %v, want default 24h", cfg.RecomputeInterval)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := Config{LogLevel: "warn", LogFormat: "json"}.NewLogger(&buf)

	logger.Info("hidden")
	logger.Warn("shown", "company", "acme")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "shown" || entry["company"] != "acme" {
		t.Errorf("entry = %v", entry)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
