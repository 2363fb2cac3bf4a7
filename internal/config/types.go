package config

import "time"

// Config represents the main configuration structure
type Config struct {
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Sanitizer SanitizerConfig `yaml:"sanitizer" mapstructure:"sanitizer"`
	Logging   LoggingConfig   `yaml:"logging" mapstructure:"logging"`
	WebSocket WebSocketConfig `yaml:"websocket" mapstructure:"websocket"`
	Cache     CacheConfig     `yaml:"cache" mapstructure:"cache"`
	Storage   StorageConfig   `yaml:"storage" mapstructure:"storage"`
	RateLimit RateLimitConfig `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port         int           `yaml:"port" mapstructure:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`
}

// SanitizerConfig contains PII detection and replacement configuration
type SanitizerConfig struct {
	// Detectors lists the enabled detectors by name, or "all".
	Detectors []string `yaml:"detectors" mapstructure:"detectors"`
	// Seed makes generated fake values reproducible when non-zero.
	Seed uint64 `yaml:"seed" mapstructure:"seed"`
	// MaxUploadBytes caps the size of uploads accepted by the web service.
	MaxUploadBytes int64 `yaml:"max_upload_bytes" mapstructure:"max_upload_bytes"`
	// NameModel optionally points at an ONNX person-recognition model
	// (builds with the 'onnx' tag only; otherwise the rules engine runs).
	NameModel string `yaml:"name_model" mapstructure:"name_model"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"` // json or console
	File   struct {
		Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
		Path    string `yaml:"path" mapstructure:"path"`
	} `yaml:"file" mapstructure:"file"`
}

// WebSocketConfig contains WebSocket configuration
type WebSocketConfig struct {
	Enabled        bool     `yaml:"enabled" mapstructure:"enabled"`
	Path           string   `yaml:"path" mapstructure:"path"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	Events         struct {
		BroadcastRuns        bool `yaml:"broadcast_runs" mapstructure:"broadcast_runs"`
		BroadcastDetections  bool `yaml:"broadcast_detections" mapstructure:"broadcast_detections"`
		BroadcastConnections bool `yaml:"broadcast_connections" mapstructure:"broadcast_connections"`
	} `yaml:"events" mapstructure:"events"`
}

// CacheConfig contains the Redis download-staging configuration
type CacheConfig struct {
	Enabled  bool          `yaml:"enabled" mapstructure:"enabled"`
	RedisURL string        `yaml:"redis_url" mapstructure:"redis_url"`
	TTL      time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// StorageConfig contains the run-history database configuration
type StorageConfig struct {
	Enabled      bool          `yaml:"enabled" mapstructure:"enabled"`
	DatabaseURL  string        `yaml:"database_url" mapstructure:"database_url"`
	MaxOpenConns int           `yaml:"max_open_conns" mapstructure:"max_open_conns"`
	MaxIdleConns int           `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`
	ConnLifetime time.Duration `yaml:"conn_lifetime" mapstructure:"conn_lifetime"`
}

// RateLimitConfig contains upload rate limiting configuration
type RateLimitConfig struct {
	Enabled        bool    `yaml:"enabled" mapstructure:"enabled"`
	RequestsPerSec float64 `yaml:"requests_per_sec" mapstructure:"requests_per_sec"`
	Burst          int     `yaml:"burst" mapstructure:"burst"`
}

// DetectorNames are the recognized detector identifiers.
var DetectorNames = []string{"email", "phone", "name", "credit_card"}

// GetDefaults returns a configuration with sensible defaults
func GetDefaults() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port:         8080,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Sanitizer: SanitizerConfig{
			Detectors:      []string{"all"},
			Seed:           0,
			MaxUploadBytes: 32 << 20, // 32 MiB
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		WebSocket: WebSocketConfig{
			Enabled:        true,
			Path:           "/ws",
			AllowedOrigins: []string{"*"},
		},
		Cache: CacheConfig{
			Enabled:  false,
			RedisURL: "redis://localhost:6379/0",
			TTL:      time.Hour,
		},
		Storage: StorageConfig{
			Enabled:      false,
			DatabaseURL:  "postgres://localhost:5432/datascrub?sslmode=disable",
			MaxOpenConns: 10,
			MaxIdleConns: 5,
			ConnLifetime: 30 * time.Minute,
		},
		RateLimit: RateLimitConfig{
			Enabled:        true,
			RequestsPerSec: 5,
			Burst:          10,
		},
	}

	cfg.WebSocket.Events.BroadcastRuns = true
	cfg.WebSocket.Events.BroadcastDetections = true
	cfg.WebSocket.Events.BroadcastConnections = true

	return cfg
}
