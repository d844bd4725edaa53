package config

import (
	"fmt"
	"time"
)

// Defaults applied when neither env, flags, nor JSON provide a value.
const (
	defaultBaseURL        = "https://risu-api.laiosys.dev"
	defaultRequestTimeout = 10 * time.Second
	defaultSyncInterval   = 5 * time.Minute
	defaultDSN            = "risu.db"
)

// ClientApp holds application-level runtime settings.
type ClientApp struct {
	// LogToFile routes logs to a file next to the executable instead of
	// stdout.
	LogToFile bool
}

// ClientAdapter holds network settings used by the feed client.
type ClientAdapter struct {
	// BaseURL is the HTTP base URL of the sync service.
	BaseURL string
	// RequestTimeout is the default timeout for outbound feed requests.
	RequestTimeout time.Duration
}

// ClientDB contains local database settings.
type ClientDB struct {
	// DSN is the SQLite file path used by the local store.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientWorkers contains background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the background sync job runs.
	SyncInterval time.Duration
}

// ClientConfig is the top-level engine configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level runtime settings.
	App ClientApp
	// Adapter contains feed client addresses and timeouts.
	Adapter ClientAdapter
	// Storage contains local storage settings.
	Storage ClientStorage
	// Workers contains background job settings.
	Workers ClientWorkers
}

// GetClientConfig builds and validates the engine config view from the
// merged structured configuration. Missing values fall back to conservative
// defaults so a bare `risu` invocation works out of the box.
func GetClientConfig(args []string) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{LogToFile: cfg.App.LogToFile},
		Adapter: ClientAdapter{
			BaseURL:        cfg.Adapter.BaseURL,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{DSN: cfg.Storage.DB.DSN},
		},
		Workers: ClientWorkers{SyncInterval: cfg.Workers.SyncInterval},
	}
	clientCfg.applyDefaults()

	return clientCfg, clientCfg.validate()
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.Adapter.BaseURL == "" {
		cfg.Adapter.BaseURL = defaultBaseURL
	}
	if cfg.Adapter.RequestTimeout <= 0 {
		cfg.Adapter.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Workers.SyncInterval <= 0 {
		cfg.Workers.SyncInterval = defaultSyncInterval
	}
	if cfg.Storage.DB.DSN == "" {
		cfg.Storage.DB.DSN = defaultDSN
	}
}
