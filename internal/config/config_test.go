package config

import (
	"os"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allEnvKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.ReadTimeout != 5*time.Second {
		t.Errorf("ReadTimeout = %v, want 5s", cfg.ReadTimeout)
	}
	if cfg.WriteTimeout != 10*time.Second {
		t.Errorf("WriteTimeout = %v, want 10s", cfg.WriteTimeout)
	}
	if cfg.IdleTimeout != 60*time.Second {
		t.Errorf("IdleTimeout = %v, want 60s", cfg.IdleTimeout)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 10s", cfg.ShutdownTimeout)
	}
	if cfg.InitialBalance != 0 {
		t.Errorf("InitialBalance = %d, want 0", cfg.InitialBalance)
	}
	if cfg.DealLogCapacity != 5000 {
		t.Errorf("DealLogCapacity = %d, want 5000", cfg.DealLogCapacity)
	}
	if cfg.AllowImplicitProductCreation {
		t.Error("AllowImplicitProductCreation = true, want false")
	}
	if cfg.ImplicitCategory != "User listings" {
		t.Errorf("ImplicitCategory = %q, want %q", cfg.ImplicitCategory, "User listings")
	}
	if cfg.UserName != "current-user" {
		t.Errorf("UserName = %q, want %q", cfg.UserName, "current-user")
	}
	if cfg.BaseOwner != "NotAHamster" {
		t.Errorf("BaseOwner = %q, want %q", cfg.BaseOwner, "NotAHamster")
	}
	if cfg.AdminPasswordHash != "" || cfg.SeedFile != "" {
		t.Errorf("expected empty AdminPasswordHash and SeedFile, got %q, %q", cfg.AdminPasswordHash, cfg.SeedFile)
	}
	if cfg.StatsLocation != time.Local {
		t.Errorf("StatsLocation = %v, want Local", cfg.StatsLocation)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("READ_TIMEOUT", "2s")
	t.Setenv("INITIAL_BALANCE", "1500.505")
	t.Setenv("DEAL_LOG_CAPACITY", "10")
	t.Setenv("ALLOW_IMPLICIT_PRODUCT_CREATION", "true")
	t.Setenv("IMPLICIT_CATEGORY", "Пользовательские")
	t.Setenv("USER_NAME", "Текущий пользователь")
	t.Setenv("BASE_OWNER", "Market")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abc")
	t.Setenv("SEED_FILE", "/etc/goods.yaml")
	t.Setenv("STATS_TIMEZONE", "UTC")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.ReadTimeout != 2*time.Second {
		t.Errorf("ReadTimeout = %v, want 2s", cfg.ReadTimeout)
	}
	if cfg.InitialBalance != 150051 {
		t.Errorf("InitialBalance = %d, want 150051", cfg.InitialBalance)
	}
	if cfg.DealLogCapacity != 10 {
		t.Errorf("DealLogCapacity = %d, want 10", cfg.DealLogCapacity)
	}
	if !cfg.AllowImplicitProductCreation {
		t.Error("AllowImplicitProductCreation = false, want true")
	}
	if cfg.ImplicitCategory != "Пользовательские" {
		t.Errorf("ImplicitCategory = %q, want %q", cfg.ImplicitCategory, "Пользовательские")
	}
	if cfg.UserName != "Текущий пользователь" || cfg.BaseOwner != "Market" {
		t.Errorf("UserName, BaseOwner = %q, %q", cfg.UserName, cfg.BaseOwner)
	}
	if cfg.AdminPasswordHash != "$2a$10$abc" || cfg.SeedFile != "/etc/goods.yaml" {
		t.Errorf("AdminPasswordHash, SeedFile = %q, %q", cfg.AdminPasswordHash, cfg.SeedFile)
	}
	if cfg.StatsLocation.String() != "UTC" {
		t.Errorf("StatsLocation = %v, want UTC", cfg.StatsLocation)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"PORT", "not-a-number"},
		{"LOG_LEVEL", "verbose"},
		{"INITIAL_BALANCE", "lots"},
		{"INITIAL_BALANCE", "-1"},
		{"INITIAL_BALANCE", "92233720368547758.08"},
		{"INITIAL_BALANCE", "1e30"},
		{"DEAL_LOG_CAPACITY", "0"},
		{"DEAL_LOG_CAPACITY", "many"},
		{"ALLOW_IMPLICIT_PRODUCT_CREATION", "maybe"},
		{"STATS_TIMEZONE", "Mars/Olympus"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	for _, key := range durationEnvKeys {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, "not-a-duration")

			_, err := Load()
			if err == nil {
				t.Fatalf("expected error for invalid %s", key)
			}
		})
	}
}
