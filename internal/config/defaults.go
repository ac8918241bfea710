package config

import "time"

// Default values applied for any field left unset by the config file and
// environment.  Dataset object names mirror the upstream export pipeline.
const (
	DefaultServerPort      = 8080
	DefaultServerMode      = "release"
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultBucket           = "country-innovation"
	DefaultWorksKey         = "country_concept.parquet"
	DefaultPatentsKey       = "country_patents.parquet"
	DefaultCountryCodesKey  = "country_codes.parquet"
	DefaultCountryTotalsKey = "country_totals.parquet"

	// DefaultCacheTTL matches the upstream render cache window: repeated
	// renders within it reuse the in-memory tables without refetching.
	DefaultCacheTTL = 600 * time.Second
)

// ApplyDefaults fills every unset field of cfg with its default value.
// It never overwrites a value that was explicitly provided.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	if cfg.MinIO.Region == "" {
		cfg.MinIO.Region = "us-east-1"
	}
	if cfg.MinIO.Bucket == "" {
		cfg.MinIO.Bucket = DefaultBucket
	}

	if cfg.Datasets.WorksKey == "" {
		cfg.Datasets.WorksKey = DefaultWorksKey
	}
	if cfg.Datasets.PatentsKey == "" {
		cfg.Datasets.PatentsKey = DefaultPatentsKey
	}
	if cfg.Datasets.CountryCodesKey == "" {
		cfg.Datasets.CountryCodesKey = DefaultCountryCodesKey
	}
	if cfg.Datasets.CountryTotalsKey == "" {
		cfg.Datasets.CountryTotalsKey = DefaultCountryTotalsKey
	}
	if cfg.Datasets.CacheTTL == 0 {
		cfg.Datasets.CacheTTL = DefaultCacheTTL
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
}
