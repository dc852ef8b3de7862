package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"motorent-backoffice/internal/config"
)

var ErrNotFound = errors.New("file not found")

// Storage is the blob store behind motorbike images.
type Storage interface {
	Save(ctx context.Context, key string, r io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(ctx context.Context, key string) (string, error)
}

// New builds the backend selected by cfg.Type.
func New(cfg config.StorageConfig) (Storage, error) {
	switch cfg.Type {
	case "local", "":
		return NewLocalStorage(cfg.BaseURL, cfg.UploadDir)
	case "cloudinary":
		return NewCloudinaryStorage(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
