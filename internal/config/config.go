package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container. It aggregates
// all sub-configurations and is populated by merging values from environment
// variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the version string.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the local persistence backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds network settings for the remote change feed.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds configuration for the background sync job.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the RISU_CONFIG environment variable or the -c flag.
	JSONFilePath string `env:"RISU_CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version string of the running binary.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogToFile routes logs to a file next to the executable instead of
	// stdout, for daemonized runs where stdout is not watched.
	// Env: APP_LOG_TO_FILE
	LogToFile bool `env:"LOG_TO_FILE"`
}

// Storage groups the configuration for the local persistence backend.
type Storage struct {
	// DB holds the local SQLite settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite database.
type DB struct {
	// DSN is the SQLite file path (or ":memory:" in tests).
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Adapter holds network settings for the remote change feed client.
type Adapter struct {
	// BaseURL is the HTTP base URL of the sync service
	// (e.g. "https://risu-api.laiosys.dev").
	// Env: ADAPTER_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout is the per-request timeout for outbound feed calls
	// (e.g. "10s", "1m").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds background job settings.
type Workers struct {
	// SyncInterval defines how often the background sync job runs.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}
