// Command apiserver runs the country-innovation dashboard API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/innovatlas/country-innovation/internal/application/dashboard"
	"github.com/innovatlas/country-innovation/internal/config"
	"github.com/innovatlas/country-innovation/internal/infrastructure/monitoring/logging"
	"github.com/innovatlas/country-innovation/internal/infrastructure/monitoring/prometheus"
	"github.com/innovatlas/country-innovation/internal/infrastructure/storage/minio"
	httpiface "github.com/innovatlas/country-innovation/internal/interfaces/http"
)

func main() {
	configPath := flag.String("config", "", "path to config file (defaults to INNOVATLAS_* environment)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "apiserver:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(logging.Config{
		Level:            cfg.Log.Level,
		Format:           cfg.Log.Format,
		OutputPaths:      cfg.Log.OutputPaths,
		ErrorOutputPaths: cfg.Log.ErrorOutputPaths,
	})
	if err != nil {
		return err
	}
	logger = logger.Named("apiserver")

	store, err := minio.NewClient(cfg.MinIO)
	if err != nil {
		return err
	}

	metrics := prometheus.NewMetrics()
	fetcher := minio.NewFetcher(store, cfg.Datasets, logger, metrics)
	cache := dashboard.NewDatasetCache(fetcher, cfg.Datasets.CacheTTL, logger, metrics)
	svc := dashboard.NewService(cache, logger, metrics)

	router := httpiface.NewRouter(cfg.Server, svc, logger, metrics)
	server := httpiface.NewServer(cfg.Server, router, logger)

	if configPath != "" {
		config.Watch(configPath, func(_ *config.Config) {
			logger.Info("configuration file changed; restart to apply",
				logging.String("path", configPath))
		})
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("apiserver started",
		logging.Int("port", cfg.Server.Port),
		logging.String("bucket", cfg.MinIO.Bucket),
		logging.Duration("cache_ttl", cfg.Datasets.CacheTTL))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutdown signal received", logging.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return err
	}
	return <-errCh
}
