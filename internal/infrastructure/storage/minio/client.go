// Package minio provides the object-storage access layer: a thin wrapper
// around the MinIO S3 client plus the dataset fetcher that downloads and
// decodes the pre-aggregated dataset objects.
package minio

import (
	"context"
	"io"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/innovatlas/country-innovation/internal/config"
	"github.com/innovatlas/country-innovation/pkg/errors"
)

// ObjectStore is the narrow contract the dataset fetcher needs from the
// object-storage layer.  The production implementation is Client; tests
// substitute an in-memory fake.
type ObjectStore interface {
	// ReadObject downloads the full content of the named object.
	ReadObject(ctx context.Context, key string) ([]byte, error)
}

// Client reads dataset objects from one bucket of an S3-compatible store.
type Client struct {
	api    *miniogo.Client
	bucket string
}

var _ ObjectStore = (*Client)(nil)

// NewClient constructs a Client from configuration.  Construction validates
// the endpoint format only; connectivity problems surface on first read.
func NewClient(cfg config.MinIOConfig) (*Client, error) {
	api, err := miniogo.New(cfg.Endpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDataUnavailable,
			"failed to construct object storage client").
			WithDetail("endpoint=" + cfg.Endpoint)
	}
	return &Client{api: api, bucket: cfg.Bucket}, nil
}

// ReadObject downloads the full content of the named object.  A missing
// object and an unreachable endpoint are the same condition from the
// caller's perspective: the dataset is unavailable for this render.
func (c *Client) ReadObject(ctx context.Context, key string) ([]byte, error) {
	obj, err := c.api.GetObject(ctx, c.bucket, key, miniogo.GetObjectOptions{})
	if err != nil {
		return nil, unavailable(err, c.bucket, key)
	}
	defer obj.Close()

	// GetObject is lazy; missing keys surface here.
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, unavailable(err, c.bucket, key)
	}
	return data, nil
}

func unavailable(err error, bucket, key string) error {
	return errors.Wrap(err, errors.CodeDataUnavailable, "dataset object unavailable").
		WithDetail("bucket=" + bucket + " object=" + key)
}
