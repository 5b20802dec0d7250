package config

import (
	"strings"
	"testing"
	"time"
)

func validBaseConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "3000",
			Env:          "development",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      "8000",
			Namespace: "library",
			Database:  "catalog",
			User:      "root",
			Password:  "root",
		},
		Aggregate: AggregateConfig{
			Timeout: 5 * time.Second,
		},
	}
}

func TestConfig_Validate_ValidConfig(t *testing.T) {
	cfg := validBaseConfig()

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got error: %v", err)
	}
}

func TestConfig_Validate_InvalidServerEnv(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.Env = "invalid"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid SERVER_ENV")
	}
	if !strings.Contains(err.Error(), "SERVER_ENV") {
		t.Errorf("expected error to mention SERVER_ENV, got: %v", err)
	}
}

func TestConfig_Validate_MissingPort(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.Port = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing SERVER_PORT")
	}
	if !strings.Contains(err.Error(), "SERVER_PORT") {
		t.Errorf("expected error to mention SERVER_PORT, got: %v", err)
	}
}

func TestConfig_Validate_MissingDatabaseHost(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Database.Host = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing DB_HOST")
	}
	if !strings.Contains(err.Error(), "DB_HOST") {
		t.Errorf("expected error to mention DB_HOST, got: %v", err)
	}
}

func TestConfig_Validate_ReportsAllProblems(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Database.Namespace = ""
	cfg.Database.Database = ""
	cfg.Aggregate.Timeout = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, key := range []string{"DB_NAMESPACE", "DB_DATABASE", "AGGREGATE_TIMEOUT"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("expected error to mention %s, got: %v", key, err)
		}
	}
}

func TestConfig_Validate_ProductionRejectsDefaultPassword(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.Env = "production"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for default password in production")
	}
	if !strings.Contains(err.Error(), "DB_PASSWORD") {
		t.Errorf("expected error to mention DB_PASSWORD, got: %v", err)
	}

	cfg.Database.Password = "s3cret"
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid production config, got: %v", err)
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("SERVER_ENV", "")
	t.Setenv("AGGREGATE_TIMEOUT", "")

	cfg := FromEnv()

	if cfg.Server.Port != "3000" {
		t.Errorf("expected default port 3000, got %q", cfg.Server.Port)
	}
	if cfg.Aggregate.Timeout != 5*time.Second {
		t.Errorf("expected default aggregate timeout 5s, got %v", cfg.Aggregate.Timeout)
	}
	if !cfg.IsDevelopment() {
		t.Error("expected development env by default")
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_ENV", "production")
	t.Setenv("DB_NAMESPACE", "branch")
	t.Setenv("AGGREGATE_TIMEOUT", "750ms")

	cfg := FromEnv()

	if cfg.Server.Port != "9090" {
		t.Errorf("expected port 9090, got %q", cfg.Server.Port)
	}
	if !cfg.IsProduction() {
		t.Error("expected production env")
	}
	if cfg.Database.Namespace != "branch" {
		t.Errorf("expected namespace branch, got %q", cfg.Database.Namespace)
	}
	if cfg.Aggregate.Timeout != 750*time.Millisecond {
		t.Errorf("expected 750ms, got %v", cfg.Aggregate.Timeout)
	}
}

func TestFromEnv_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("SERVER_READ_TIMEOUT", "soon")

	cfg := FromEnv()

	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("expected fallback of 15s, got %v", cfg.Server.ReadTimeout)
	}
}
