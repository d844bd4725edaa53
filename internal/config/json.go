package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Duration wraps time.Duration so JSON config files can express durations as
// strings ("10s", "5m") rather than nanosecond integers.
type Duration struct {
	time.Duration
}

// UnmarshalJSON implements json.Unmarshaler for both string and numeric
// duration representations.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case float64:
		d.Duration = time.Duration(v)
		return nil
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", v, err)
		}
		d.Duration = parsed
		return nil
	default:
		return fmt.Errorf("invalid duration value: %v", raw)
	}
}

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly durations for file-based configuration.
type StructuredJSONConfig struct {
	App struct {
		Version   string `json:"version"`
		LogToFile bool   `json:"log_to_file"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Adapter struct {
		BaseURL        string   `json:"base_url"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Workers struct {
		SyncInterval Duration `json:"sync_interval"`
	} `json:"workers,omitempty"`
}

// parseJSON reads the JSON config file at path and converts it into a
// [StructuredConfig]. Returns a wrapped error if the file cannot be read or
// decoded.
func parseJSON(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading json config file: %w", err)
	}

	var jsonCfg StructuredJSONConfig
	if err = json.Unmarshal(data, &jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json config file: %w", err)
	}

	cfg := &StructuredConfig{}
	cfg.App.Version = jsonCfg.App.Version
	cfg.App.LogToFile = jsonCfg.App.LogToFile
	cfg.Storage.DB.DSN = jsonCfg.Storage.DB.DSN
	cfg.Adapter.BaseURL = jsonCfg.Adapter.BaseURL
	cfg.Adapter.RequestTimeout = jsonCfg.Adapter.RequestTimeout.Duration
	cfg.Workers.SyncInterval = jsonCfg.Workers.SyncInterval.Duration

	return cfg, nil
}
