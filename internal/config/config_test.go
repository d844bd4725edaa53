package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags_AllFlags(t *testing.T) {
	cfg := ParseFlags([]string{
		"-a", "https://sync.example.com",
		"-d", "/tmp/notes.db",
		"-request-timeout", "30s",
		"-sync-interval", "2m",
	})

	assert.Equal(t, "https://sync.example.com", cfg.Adapter.BaseURL)
	assert.Equal(t, "/tmp/notes.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 30*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 2*time.Minute, cfg.Workers.SyncInterval)
}

func TestGetClientConfig_LogToFile(t *testing.T) {
	cfg, err := GetClientConfig(nil)
	require.NoError(t, err)
	assert.False(t, cfg.App.LogToFile)

	cfg, err = GetClientConfig([]string{"-log-file"})
	require.NoError(t, err)
	assert.True(t, cfg.App.LogToFile)

	t.Setenv("APP_LOG_TO_FILE", "true")
	cfg, err = GetClientConfig(nil)
	require.NoError(t, err)
	assert.True(t, cfg.App.LogToFile)
}

func TestGetClientConfig_Defaults(t *testing.T) {
	cfg, err := GetClientConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, defaultBaseURL, cfg.Adapter.BaseURL)
	assert.Equal(t, defaultRequestTimeout, cfg.Adapter.RequestTimeout)
	assert.Equal(t, defaultSyncInterval, cfg.Workers.SyncInterval)
	assert.Equal(t, defaultDSN, cfg.Storage.DB.DSN)
}

func TestGetClientConfig_FlagsOverrideDefaults(t *testing.T) {
	cfg, err := GetClientConfig([]string{"-a", "http://localhost:8080", "-d", "local.db"})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.Adapter.BaseURL)
	assert.Equal(t, "local.db", cfg.Storage.DB.DSN)
}

func TestGetClientConfig_EnvBeatsFlags(t *testing.T) {
	t.Setenv("ADAPTER_BASE_URL", "https://env.example.com")

	cfg, err := GetClientConfig([]string{"-a", "https://flag.example.com"})
	require.NoError(t, err)

	// mergo keeps the first non-zero value; env is merged before flags.
	assert.Equal(t, "https://env.example.com", cfg.Adapter.BaseURL)
}

func TestGetClientConfig_JSONFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	payload := `{
		"adapter": {"base_url": "https://json.example.com", "request_timeout": "45s"},
		"storage": {"db": {"dsn": "json.db"}},
		"workers": {"sync_interval": "90s"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))

	cfg, err := GetClientConfig([]string{"-c", path})
	require.NoError(t, err)

	assert.Equal(t, "https://json.example.com", cfg.Adapter.BaseURL)
	assert.Equal(t, 45*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "json.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 90*time.Second, cfg.Workers.SyncInterval)
}

func TestGetClientConfig_InvalidJSONFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := GetClientConfig([]string{"-c", path})
	require.Error(t, err)
}

func TestClientConfig_Validate_BadBaseURL(t *testing.T) {
	cfg := &ClientConfig{
		Adapter: ClientAdapter{BaseURL: "no-scheme", RequestTimeout: time.Second},
		Storage: ClientStorage{DB: ClientDB{DSN: "x.db"}},
		Workers: ClientWorkers{SyncInterval: time.Minute},
	}

	assert.ErrorIs(t, cfg.validate(), ErrInvalidAdapterConfigs)
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalJSON([]byte(`"1h30m"`)))
	assert.Equal(t, 90*time.Minute, d.Duration)

	require.NoError(t, d.UnmarshalJSON([]byte(`1000000000`)))
	assert.Equal(t, time.Second, d.Duration)

	assert.Error(t, d.UnmarshalJSON([]byte(`"not-a-duration"`)))
	assert.Error(t, d.UnmarshalJSON([]byte(`true`)))
}
