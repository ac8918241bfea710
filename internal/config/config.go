// Package config defines all configuration structures for the
// country-innovation service.  No I/O or parsing logic lives here, only
// plain data types and validation.
package config

import (
	"fmt"
	"time"
)

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

// MinIOConfig holds the S3-compatible object-storage parameters used to
// reach the pre-aggregated dataset objects.
type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
}

// DatasetsConfig names the four dataset objects inside the bucket and the
// caching policy applied to them.  Keys include the file extension; the
// loader dispatches the decoder on it.
type DatasetsConfig struct {
	WorksKey        string `mapstructure:"works_key"`
	PatentsKey      string `mapstructure:"patents_key"`
	CountryCodesKey string `mapstructure:"country_codes_key"`
	CountryTotalsKey string `mapstructure:"country_totals_key"`

	// CacheTTL bounds how long a fetched table is reused before the next
	// render refetches it.  This is the only caching policy in the system
	// and it is keyed by dataset identity, never by user selection.
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level            string   `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format           string   `mapstructure:"format"` // "json" | "console"
	OutputPaths      []string `mapstructure:"output_paths"`
	ErrorOutputPaths []string `mapstructure:"error_output_paths"`
}

// Config is the root configuration structure for the service.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	MinIO    MinIOConfig    `mapstructure:"minio"`
	Datasets DatasetsConfig `mapstructure:"datasets"`
	Log      LogConfig      `mapstructure:"log"`
}

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; callers should treat any error as
// fatal and refuse to start the application.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}

	if c.MinIO.Endpoint == "" {
		return fmt.Errorf("config: minio.endpoint is required")
	}
	if c.MinIO.Bucket == "" {
		return fmt.Errorf("config: minio.bucket is required")
	}

	for _, k := range []struct{ name, val string }{
		{"datasets.works_key", c.Datasets.WorksKey},
		{"datasets.patents_key", c.Datasets.PatentsKey},
		{"datasets.country_codes_key", c.Datasets.CountryCodesKey},
		{"datasets.country_totals_key", c.Datasets.CountryTotalsKey},
	} {
		if k.val == "" {
			return fmt.Errorf("config: %s is required", k.name)
		}
	}
	if c.Datasets.CacheTTL <= 0 {
		return fmt.Errorf("config: datasets.cache_ttl must be positive, got %s", c.Datasets.CacheTTL)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	return nil
}
