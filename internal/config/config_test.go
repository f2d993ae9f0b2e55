package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Data.SnapshotRef != "data/centers.json" {
		t.Errorf("Data.SnapshotRef = %q, want data/centers.json", cfg.Data.SnapshotRef)
	}
	if cfg.Bounds.West != 126.98 || cfg.Bounds.North != 37.59 {
		t.Errorf("Bounds = %+v, want jurisdiction defaults", cfg.Bounds)
	}
	if cfg.View.Padding != 48 {
		t.Errorf("View.Padding = %d, want 48", cfg.View.Padding)
	}
	if cfg.Admin.AdminEnabled() {
		t.Error("admin enabled without ADMIN_KEY set")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("BOUNDS_WEST", "126.5")
	t.Setenv("ADMIN_KEY", "secret")
	t.Setenv("DATA_CACHE_TTL", "5m")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Bounds.West != 126.5 {
		t.Errorf("Bounds.West = %v, want 126.5", cfg.Bounds.West)
	}
	if !cfg.Admin.AdminEnabled() {
		t.Error("admin not enabled with ADMIN_KEY set")
	}
	if cfg.Data.CacheTTL != 5*time.Minute {
		t.Errorf("Data.CacheTTL = %v, want 5m", cfg.Data.CacheTTL)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		want  string
	}{
		{"bad port", "SERVER_PORT", "99999", "SERVER_PORT"},
		{"bad float", "BOUNDS_WEST", "abc", "BOUNDS_WEST"},
		{"inverted bounds", "BOUNDS_WEST", "128.0", "BOUNDS_WEST"},
		{"bad level", "LOG_LEVEL", "verbose", "LOG_LEVEL"},
		{"bad format", "LOG_FORMAT", "xml", "LOG_FORMAT"},
		{"bad duration", "DATA_CACHE_TTL", "fast", "DATA_CACHE_TTL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			if err == nil {
				t.Fatalf("Load() accepted %s=%q", tt.key, tt.value)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %s", err, tt.want)
			}
		})
	}
}

func TestAddr(t *testing.T) {
	c := ServerConfig{Host: "127.0.0.1", Port: 8080}
	if got := c.Addr(); got != "127.0.0.1:8080" {
		t.Errorf("Addr() = %q, want 127.0.0.1:8080", got)
	}
}
