package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "MAX_RETRIES", "SOURCE_TIMEOUT", "MAX_COMBINATIONS", "BUDGET_FLEXIBILITY_MARGIN", "EXPORT_CSV", "OUTPUT_DIRECTORY"} {
		t.Setenv(key, "")
	}
	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("unexpected default port %q", cfg.Port)
	}
	if cfg.MaxRetries != 3 || cfg.BaseRetryDelay != 2*time.Second || cfg.MaxRetryDelay != 60*time.Second {
		t.Fatalf("unexpected retry defaults: %+v", cfg)
	}
	if cfg.MaxCombinations != 5 || cfg.BudgetFlexibilityMargin != 0.20 {
		t.Fatalf("unexpected engine defaults: %+v", cfg)
	}
	if !cfg.ExportCSV || cfg.OutputDirectory != "output" {
		t.Fatalf("unexpected export defaults: %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("MAX_RETRIES", "5")
	t.Setenv("SOURCE_TIMEOUT", "45s")
	t.Setenv("BUDGET_FLEXIBILITY_MARGIN", "0.5")
	t.Setenv("EXPORT_CSV", "false")

	cfg := Load()
	if cfg.Port != "9999" {
		t.Fatalf("port override ignored: %q", cfg.Port)
	}
	if cfg.MaxRetries != 5 {
		t.Fatalf("retries override ignored: %d", cfg.MaxRetries)
	}
	if cfg.SourceTimeout != 45*time.Second {
		t.Fatalf("timeout override ignored: %v", cfg.SourceTimeout)
	}
	if cfg.BudgetFlexibilityMargin != 0.5 {
		t.Fatalf("margin override ignored: %v", cfg.BudgetFlexibilityMargin)
	}
	if cfg.ExportCSV {
		t.Fatal("export override ignored")
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("MAX_RETRIES", "many")
	t.Setenv("SOURCE_TIMEOUT", "soon")

	cfg := Load()
	if cfg.MaxRetries != 3 {
		t.Fatalf("expected default on malformed int, got %d", cfg.MaxRetries)
	}
	if cfg.SourceTimeout != 300*time.Second {
		t.Fatalf("expected default on malformed duration, got %v", cfg.SourceTimeout)
	}
}
