// Package dashboard contains the application services behind the dashboard
// API: the TTL dataset cache and the profile render pipeline that turns a
// selection into chart specs.
package dashboard

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/innovatlas/country-innovation/internal/domain/dataset"
	"github.com/innovatlas/country-innovation/internal/infrastructure/monitoring/logging"
	"github.com/innovatlas/country-innovation/internal/infrastructure/monitoring/prometheus"
)

// DatasetLoader is the application's view of the dataset fetch layer.
type DatasetLoader interface {
	Fetch(ctx context.Context, key dataset.Key) (*dataset.Table, error)
}

// DatasetCache keeps decoded tables for a fixed TTL, keyed by dataset
// identity only.  Selections never affect cache keys; they only pick columns
// from the cached tables.  Expired or absent entries are refetched on demand
// and concurrent misses on the same key collapse into one fetch.  Fetch
// errors are never cached, so the next render retries.
type DatasetCache struct {
	loader  DatasetLoader
	tables  *expirable.LRU[dataset.Key, *dataset.Table]
	group   singleflight.Group
	logger  logging.Logger
	metrics *prometheus.Metrics
}

// NewDatasetCache builds a cache over loader with the given TTL.
func NewDatasetCache(loader DatasetLoader, ttl time.Duration, logger logging.Logger, metrics *prometheus.Metrics) *DatasetCache {
	return &DatasetCache{
		loader:  loader,
		tables:  expirable.NewLRU[dataset.Key, *dataset.Table](len(dataset.Keys), nil, ttl),
		logger:  logger.Named("cache"),
		metrics: metrics,
	}
}

// Get returns the cached table for key, fetching it on a miss.
func (c *DatasetCache) Get(ctx context.Context, key dataset.Key) (*dataset.Table, error) {
	if tbl, ok := c.tables.Get(key); ok {
		c.metrics.DatasetCacheHits.WithLabelValues(string(key)).Inc()
		return tbl, nil
	}
	c.metrics.DatasetCacheMisses.WithLabelValues(string(key)).Inc()

	v, err, shared := c.group.Do(string(key), func() (interface{}, error) {
		// A concurrent caller may have populated the entry while this one
		// waited on the flight group.
		if tbl, ok := c.tables.Get(key); ok {
			return tbl, nil
		}
		tbl, err := c.loader.Fetch(ctx, key)
		if err != nil {
			return nil, err
		}
		c.tables.Add(key, tbl)
		return tbl, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.logger.Debug("dataset fetch shared across concurrent renders",
			logging.String("dataset", string(key)))
	}
	return v.(*dataset.Table), nil
}

// Invalidate drops the cached entry for key, forcing the next Get to fetch.
func (c *DatasetCache) Invalidate(key dataset.Key) {
	c.tables.Remove(key)
}
