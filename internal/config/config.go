// Package config provides centralized configuration for the map
// service. Settings come from environment variables with defaults and
// are validated on startup to fail fast on misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Data    DataConfig
	Admin   AdminConfig
	Bounds  BoundsConfig
	View    ViewConfig
	Rate    RateLimitConfig
	Logging LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing a response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// DataConfig locates the published dataset documents. Refs accept
// HTTP(S) URLs or local file paths.
type DataConfig struct {
	// SnapshotRef is the published snapshot JSON (default: data/centers.json)
	SnapshotRef string `env:"DATA_SNAPSHOT_REF" default:"data/centers.json"`

	// CSVRef is the raw tabular fallback (default: data/centers.csv)
	CSVRef string `env:"DATA_CSV_REF" default:"data/centers.csv"`

	// FetchTimeout bounds a single document fetch (default: 10s)
	FetchTimeout time.Duration `env:"DATA_FETCH_TIMEOUT" default:"10s"`

	// CacheTTL is how long a loaded public batch is reused (default: 1m)
	CacheTTL time.Duration `env:"DATA_CACHE_TTL" default:"1m"`
}

// AdminConfig gates the data-upload surface.
type AdminConfig struct {
	// Key is the shared secret compared against the ?key= query
	// parameter. When empty, admin mode is disabled entirely.
	Key string `env:"ADMIN_KEY"`

	// MaxUploadSize is the largest accepted upload in bytes (default: 5MB)
	MaxUploadSize int64 `env:"ADMIN_MAX_UPLOAD_SIZE" default:"5242880"`
}

// BoundsConfig is the fixed jurisdiction bound: the rectangle the map
// is locked to and the default validation bound for admin uploads.
type BoundsConfig struct {
	West  float64 `env:"BOUNDS_WEST" default:"126.98"`
	South float64 `env:"BOUNDS_SOUTH" default:"37.43"`
	East  float64 `env:"BOUNDS_EAST" default:"127.20"`
	North float64 `env:"BOUNDS_NORTH" default:"37.59"`
}

// ViewConfig holds viewport framing settings.
type ViewConfig struct {
	// Padding is the pixel padding when fitting to features (default: 48)
	Padding int `env:"VIEW_PADDING" default:"48"`
}

// RateLimitConfig holds per-IP rate limiting settings.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default limit per IP (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`

	// UploadLimit is requests per minute for the upload endpoint (default: 10)
	UploadLimit int `env:"RATE_LIMIT_UPLOAD" default:"10"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// AdminEnabled reports whether the admin surface is reachable at all.
func (c *AdminConfig) AdminEnabled() bool {
	return c.Key != ""
}
