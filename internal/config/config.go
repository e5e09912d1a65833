package config

import (
	"strings"
	"time"
)

// StructuredConfig is the top-level configuration container for synckit.
// It is populated by merging values from environment variables and an
// optional JSON file on top of built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Adapter holds outbound network settings for the sync transport.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds the local database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Cache holds response cache policy settings.
	Cache Cache `envPrefix:"CACHE_"`

	// Queue holds action queue policy settings.
	Queue Queue `envPrefix:"QUEUE_"`

	// Workers holds background job settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged underneath the values
	// already loaded from environment variables.
	// Env: SYNCKIT_CONFIG
	JSONFilePath string `env:"SYNCKIT_CONFIG"`
}

// Adapter holds settings for the outbound HTTP transport used to replay
// queued actions.
type Adapter struct {
	// BaseURL is prepended to every queued action's endpoint.
	// Env: ADAPTER_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout bounds a single replay request. The engine itself
	// implements no timeout; this value is applied to the HTTP client by
	// the host wiring.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage holds local database connection settings.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds the SQLite connection settings for the local mirror.
type DB struct {
	// DSN is the SQLite data source name, usually a file path.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Cache holds response cache policy settings.
type Cache struct {
	// DefaultTTL is used when a caller caches a response without an
	// explicit TTL.
	// Env: CACHE_DEFAULT_TTL
	DefaultTTL time.Duration `env:"DEFAULT_TTL"`
}

// Queue holds action queue policy settings.
type Queue struct {
	// MaxRetries is the default retry budget for actions enqueued without
	// an explicit one.
	// Env: QUEUE_MAX_RETRIES
	MaxRetries int `env:"MAX_RETRIES"`
}

// Workers holds background worker settings.
type Workers struct {
	// WakeInterval defines how often the periodic wake job triggers a
	// drain pass.
	// Env: WORKERS_WAKE_INTERVAL
	WakeInterval time.Duration `env:"WAKE_INTERVAL"`
}

// validate checks that the final merged [StructuredConfig] satisfies the
// invariants the engine relies on at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}
	if cfg.Adapter.BaseURL == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}
	if cfg.Queue.MaxRetries <= 0 {
		return ErrInvalidQueueConfigs
	}
	if cfg.Workers.WakeInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}
	return nil
}
