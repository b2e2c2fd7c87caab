package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeConfig(t, `
app:
  name: courierdesk
  environment: test
record_store:
  base_url: http://store.local:16000
dispatch:
  default_messenger: "Default Messenger"
api:
  enabled: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "courierdesk", cfg.App.Name)
	assert.Equal(t, "http://store.local:16000", cfg.RecordStore.BaseURL)
	assert.Equal(t, "Default Messenger", cfg.Dispatch.DefaultMessenger)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
record_store:
  base_url: http://store.local
dispatch:
  default_messenger: Somsak
api:
  enabled: true
monitoring:
  prometheus_enabled: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.RecordStore.TimeoutSeconds)
	assert.Equal(t, 8080, cfg.API.HTTP.Port)
	assert.True(t, cfg.API.HTTP.Enabled)
	assert.True(t, cfg.API.Auth.Enabled)
	assert.Equal(t, "x-api-key", cfg.API.Auth.HeaderAPIKey)
	assert.Equal(t, "x-api-extra", cfg.API.Auth.HeaderExtra)
	assert.Equal(t, 9090, cfg.Monitoring.PrometheusPort)
	assert.Equal(t, 5, cfg.Dispatch.RefreshMaxRetries)
	assert.Equal(t, "exports", cfg.Exports.Path)
	assert.Positive(t, cfg.Dispatch.SnapshotTTLSeconds)
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("STORE_URL", "http://expanded:9000")

	path := writeConfig(t, `
record_store:
  base_url: ${STORE_URL}
dispatch:
  default_messenger: Somsak
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://expanded:9000", cfg.RecordStore.BaseURL)
}

func TestValidation(t *testing.T) {
	t.Run("missing base url", func(t *testing.T) {
		path := writeConfig(t, `
dispatch:
  default_messenger: Somsak
`)
		_, err := Load(path)
		assert.ErrorContains(t, err, "base_url")
	})

	t.Run("missing messenger default", func(t *testing.T) {
		path := writeConfig(t, `
record_store:
  base_url: http://store.local
`)
		_, err := Load(path)
		assert.ErrorContains(t, err, "default_messenger")
	})
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
