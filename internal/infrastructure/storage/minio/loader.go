package minio

import (
	"context"
	"time"

	"github.com/innovatlas/country-innovation/internal/config"
	"github.com/innovatlas/country-innovation/internal/domain/dataset"
	"github.com/innovatlas/country-innovation/internal/infrastructure/monitoring/logging"
	"github.com/innovatlas/country-innovation/internal/infrastructure/monitoring/prometheus"
	"github.com/innovatlas/country-innovation/pkg/errors"
)

// Fetcher downloads and decodes one dataset per call.  It is stateless; the
// TTL cache in the application layer decides when to call it.
type Fetcher struct {
	store   ObjectStore
	keys    map[dataset.Key]string
	logger  logging.Logger
	metrics *prometheus.Metrics
}

// NewFetcher wires a Fetcher to an object store and the configured object
// names of the four datasets.
func NewFetcher(store ObjectStore, cfg config.DatasetsConfig, logger logging.Logger, metrics *prometheus.Metrics) *Fetcher {
	return &Fetcher{
		store: store,
		keys: map[dataset.Key]string{
			dataset.KeyWorks:         cfg.WorksKey,
			dataset.KeyPatents:       cfg.PatentsKey,
			dataset.KeyCountryCodes:  cfg.CountryCodesKey,
			dataset.KeyCountryTotals: cfg.CountryTotalsKey,
		},
		logger:  logger.Named("fetcher"),
		metrics: metrics,
	}
}

// Fetch downloads and decodes the dataset identified by key.  Missing
// objects and unreachable endpoints yield DATA_001; undecodable content
// yields DATA_002 or DATA_003 from the decoder.
func (f *Fetcher) Fetch(ctx context.Context, key dataset.Key) (*dataset.Table, error) {
	objectKey, ok := f.keys[key]
	if !ok {
		return nil, errors.Internal("unknown dataset key").WithDetail("key=" + string(key))
	}

	start := time.Now()
	data, err := f.store.ReadObject(ctx, objectKey)
	if err != nil {
		f.metrics.ObserveFetch(string(key), "error", time.Since(start))
		f.logger.Error("dataset fetch failed",
			logging.String("dataset", string(key)),
			logging.String("object", objectKey),
			logging.Err(err))
		return nil, err
	}

	tbl, err := dataset.Decode(ctx, objectKey, data)
	if err != nil {
		f.metrics.ObserveFetch(string(key), "decode_error", time.Since(start))
		f.logger.Error("dataset decode failed",
			logging.String("dataset", string(key)),
			logging.String("object", objectKey),
			logging.Err(err))
		return nil, err
	}

	f.metrics.ObserveFetch(string(key), "success", time.Since(start))
	f.logger.Info("dataset fetched",
		logging.String("dataset", string(key)),
		logging.String("object", objectKey),
		logging.Int("rows", tbl.NumRows()),
		logging.Int64("bytes", int64(len(data))),
		logging.Duration("elapsed", time.Since(start)))
	return tbl, nil
}
