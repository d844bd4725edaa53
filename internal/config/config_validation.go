package config

import "strings"

// validate checks that the final [ClientConfig] satisfies all engine
// invariants before it is used at startup.
func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.BaseURL == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}
	if !strings.Contains(cfg.Adapter.BaseURL, "://") {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
