// Package cli implements innovctl, the operator command line for inspecting
// the datasets and rendering profiles outside the HTTP server.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/innovatlas/country-innovation/internal/application/dashboard"
	"github.com/innovatlas/country-innovation/internal/config"
	"github.com/innovatlas/country-innovation/internal/infrastructure/monitoring/logging"
	"github.com/innovatlas/country-innovation/internal/infrastructure/monitoring/prometheus"
	"github.com/innovatlas/country-innovation/internal/infrastructure/storage/minio"
)

// NewRootCommand assembles the innovctl command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "innovctl",
		Short:         "Inspect country innovation datasets and render profiles",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().String("config", "", "path to config file (defaults to INNOVATLAS_* environment)")

	root.AddCommand(
		newCountriesCommand(),
		newDatasetsCommand(),
		newRenderCommand(),
	)
	return root
}

// loadConfig reads the --config file when given, otherwise the environment.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if path != "" {
		return config.Load(path)
	}
	return config.LoadFromEnv()
}

// buildPipeline wires the dataset pipeline for a one-shot CLI invocation.
// CLI runs log to stderr so stdout stays parseable.
func buildPipeline(cmd *cobra.Command) (*dashboard.Service, *dashboard.DatasetCache, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	logger, err := logging.NewLogger(logging.Config{
		Level:       cfg.Log.Level,
		Format:      "console",
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		return nil, nil, err
	}

	store, err := minio.NewClient(cfg.MinIO)
	if err != nil {
		return nil, nil, err
	}

	metrics := prometheus.NewMetrics()
	fetcher := minio.NewFetcher(store, cfg.Datasets, logger, metrics)
	cache := dashboard.NewDatasetCache(fetcher, cfg.Datasets.CacheTTL, logger, metrics)
	return dashboard.NewService(cache, logger, metrics), cache, nil
}

// buildService is the single-return convenience for commands that only need
// the service.
func buildService(cmd *cobra.Command) (*dashboard.Service, error) {
	svc, _, err := buildPipeline(cmd)
	return svc, err
}
