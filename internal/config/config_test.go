package config

import (
	"strings"
	"testing"
)

func TestGetDefaults(t *testing.T) {
	cfg := GetDefaults()

	if cfg.Server.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Server.Port)
	}
	if len(cfg.Sanitizer.Detectors) != 1 || cfg.Sanitizer.Detectors[0] != "all" {
		t.Errorf("Expected default detectors [all], got %v", cfg.Sanitizer.Detectors)
	}
	if cfg.Sanitizer.Seed != 0 {
		t.Error("Default seed should be 0 (random)")
	}
	if !cfg.WebSocket.Enabled {
		t.Error("WebSocket should be enabled by default")
	}
	if cfg.Cache.Enabled || cfg.Storage.Enabled {
		t.Error("External services should be disabled by default")
	}

	if err := validateConfig(cfg); err != nil {
		t.Errorf("Defaults should validate: %v", err)
	}
}

func TestValidateConfig(t *testing.T) {
	t.Run("InvalidPort", func(t *testing.T) {
		cfg := GetDefaults()
		cfg.Server.Port = 0
		if err := validateConfig(cfg); err == nil {
			t.Error("Expected error for port 0")
		}
	})

	t.Run("InvalidLogLevel", func(t *testing.T) {
		cfg := GetDefaults()
		cfg.Logging.Level = "verbose"
		if err := validateConfig(cfg); err == nil {
			t.Error("Expected error for unknown log level")
		}
	})

	t.Run("InvalidUploadCap", func(t *testing.T) {
		cfg := GetDefaults()
		cfg.Sanitizer.MaxUploadBytes = 0
		if err := validateConfig(cfg); err == nil {
			t.Error("Expected error for zero upload cap")
		}
	})

	t.Run("InvalidRateLimit", func(t *testing.T) {
		cfg := GetDefaults()
		cfg.RateLimit.RequestsPerSec = -1
		if err := validateConfig(cfg); err == nil {
			t.Error("Expected error for negative rate limit")
		}
	})
}

func TestValidateDetectors(t *testing.T) {
	t.Run("KnownNames", func(t *testing.T) {
		if err := ValidateDetectors([]string{"email", "phone", "name", "credit_card"}); err != nil {
			t.Errorf("Known names should validate: %v", err)
		}
		if err := ValidateDetectors([]string{"all"}); err != nil {
			t.Errorf("The literal all should validate: %v", err)
		}
	})

	t.Run("UnknownName", func(t *testing.T) {
		err := ValidateDetectors([]string{"email", "iban"})
		if err == nil {
			t.Fatal("Expected error for unknown detector")
		}
		if !strings.Contains(err.Error(), "iban") {
			t.Errorf("Error should name the offender: %v", err)
		}
	})
}
