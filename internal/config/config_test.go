package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("expected default env development, got %s", cfg.Env)
	}
	if cfg.StorageKey != "dentalclinic_appointments" {
		t.Errorf("unexpected storage key %s", cfg.StorageKey)
	}
	if cfg.CountryCode != "91" {
		t.Errorf("unexpected country code %s", cfg.CountryCode)
	}
	if cfg.WizardTTL != 30*time.Minute {
		t.Errorf("unexpected wizard TTL %s", cfg.WizardTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("DASHBOARD_PIN", "4321")
	t.Setenv("SESSION_TTL", "15m")
	t.Setenv("FOLLOWUP_PROGRESSION_ENABLED", "false")

	cfg := Load()

	if cfg.Port != "9999" {
		t.Errorf("expected port override, got %s", cfg.Port)
	}
	if cfg.DashboardPIN != "4321" {
		t.Errorf("expected PIN override, got %s", cfg.DashboardPIN)
	}
	if cfg.SessionTTL != 15*time.Minute {
		t.Errorf("expected session TTL 15m, got %s", cfg.SessionTTL)
	}
	if cfg.ProgressionEnabled {
		t.Error("expected progression disabled")
	}
}

func TestDurationFallbackOnGarbage(t *testing.T) {
	t.Setenv("SHEETS_TIMEOUT", "not-a-duration")
	cfg := Load()
	if cfg.SheetsTimeout != 10*time.Second {
		t.Errorf("expected default timeout on parse failure, got %s", cfg.SheetsTimeout)
	}
}
