package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"schoolku_backend/internals/configs"
)

// ErrObjectNotFound is returned by Open for a missing key.
var ErrObjectNotFound = errors.New("object not found")

// Storage persists uploaded objects under a key. Put reports the object's
// public URL, or "" when the driver has none.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// NewFromConfig picks the driver named by STORAGE_DRIVER.
func NewFromConfig(cfg configs.AppConfig) (Storage, error) {
	switch strings.ToLower(cfg.StorageDriver) {
	case "", "local":
		return NewLocalStorage(cfg.UploadDir)
	case "oss":
		return NewOSSStorage(OSSConfig{
			Endpoint:   cfg.OSSEndpoint,
			AccessKey:  cfg.OSSAccessKey,
			SecretKey:  cfg.OSSSecretKey,
			Bucket:     cfg.OSSBucket,
			Prefix:     cfg.OSSPrefix,
			PublicBase: cfg.PublicBaseURL,
		})
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
