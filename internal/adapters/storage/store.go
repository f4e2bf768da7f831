// Package storage persists uploaded speaker images on local disk or in an S3 bucket.
package storage

import (
	"context"
	"fmt"

	"confsite/internal/domain"
)

// Backend names accepted by NewImageStore.
const (
	BackendLocal = "local"
	BackendS3    = "s3"
)

// Config selects and configures the image store.
type Config struct {
	Backend   string
	UploadDir string
	S3        S3Config
}

var (
	_ domain.ImageStore = (*LocalStore)(nil)
	_ domain.ImageStore = (*S3Store)(nil)
)

// NewImageStore returns the store for cfg.Backend. An empty backend means local.
func NewImageStore(ctx context.Context, cfg Config) (domain.ImageStore, error) {
	switch cfg.Backend {
	case BackendLocal, "":
		if cfg.UploadDir == "" {
			return nil, fmt.Errorf("local store: upload dir is required")
		}
		return NewLocalStore(cfg.UploadDir), nil
	case BackendS3:
		return NewS3Store(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
