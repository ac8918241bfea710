package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadReadsYAMLAndAppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 9090
  mode: debug
minio:
  endpoint: minio.internal:9000
  bucket: datasets
datasets:
  works_key: country_concept.parquet
  cache_ttl: 120s
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "minio.internal:9000", cfg.MinIO.Endpoint)
	assert.Equal(t, "datasets", cfg.MinIO.Bucket)
	assert.Equal(t, 120*time.Second, cfg.Datasets.CacheTTL)
	// Unset fields get defaults.
	assert.Equal(t, DefaultPatentsKey, cfg.Datasets.PatentsKey)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadInvalidConfigFailsValidation(t *testing.T) {
	path := writeConfigFile(t, `
server:
  mode: production
minio:
  endpoint: minio.internal:9000
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfigFile(t, "server: [this is not\n  a mapping")
	_, err := Load(path)
	require.Error(t, err)
}
