package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.MinIO.Endpoint = "minio.internal:9000"
	ApplyDefaults(cfg)
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, DefaultServerMode, cfg.Server.Mode)
	assert.Equal(t, DefaultBucket, cfg.MinIO.Bucket)
	assert.Equal(t, DefaultWorksKey, cfg.Datasets.WorksKey)
	assert.Equal(t, DefaultCountryTotalsKey, cfg.Datasets.CountryTotalsKey)
	assert.Equal(t, 600*time.Second, cfg.Datasets.CacheTTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Port = 9999
	cfg.Datasets.CacheTTL = time.Minute
	ApplyDefaults(cfg)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, time.Minute, cfg.Datasets.CacheTTL)
}

func TestValidateAcceptsCompleteConfig(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"bad mode", func(c *Config) { c.Server.Mode = "prod" }, "server.mode"},
		{"missing endpoint", func(c *Config) { c.MinIO.Endpoint = "" }, "minio.endpoint"},
		{"missing bucket", func(c *Config) { c.MinIO.Bucket = "" }, "minio.bucket"},
		{"missing works key", func(c *Config) { c.Datasets.WorksKey = "" }, "datasets.works_key"},
		{"missing totals key", func(c *Config) { c.Datasets.CountryTotalsKey = "" }, "datasets.country_totals_key"},
		{"zero cache ttl", func(c *Config) { c.Datasets.CacheTTL = 0 }, "cache_ttl"},
		{"bad log level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
