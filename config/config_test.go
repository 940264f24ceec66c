package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.DataDir != "data" {
		t.Errorf("expected DataDir data, got %s", cfg.DataDir)
	}
	if cfg.ProductsCSV != "products.csv" || cfg.ProductsJSON != "products.json" {
		t.Errorf("unexpected product paths: %s, %s", cfg.ProductsCSV, cfg.ProductsJSON)
	}
	if cfg.LogFile != "app.log" {
		t.Errorf("expected LogFile app.log, got %s", cfg.LogFile)
	}
	if cfg.JournalDBPath != "" {
		t.Errorf("expected in-memory journal by default, got %s", cfg.JournalDBPath)
	}
	if cfg.ClockInterval != time.Second {
		t.Errorf("expected 1s clock interval, got %s", cfg.ClockInterval)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LOG_FILE", "custom.log")
	t.Setenv("CLOCK_INTERVAL", "250ms")
	t.Setenv("JOURNAL_MAX_ENTRIES", "5")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.LogFile != "custom.log" {
		t.Errorf("expected custom.log, got %s", cfg.LogFile)
	}
	if cfg.ClockInterval != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %s", cfg.ClockInterval)
	}
	if cfg.JournalMaxEntries != 5 {
		t.Errorf("expected 5, got %d", cfg.JournalMaxEntries)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric max entries", "JOURNAL_MAX_ENTRIES", "many"},
		{"zero max entries", "JOURNAL_MAX_ENTRIES", "0"},
		{"zero clock interval", "CLOCK_INTERVAL", "0s"},
		{"unknown log format", "LOG_FORMAT", "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}
