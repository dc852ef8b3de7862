package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"motorent-backoffice/internal/logger"
)

// CloudinaryStorage stores images as Cloudinary assets. The key, minus its
// extension, is the asset public id.
type CloudinaryStorage struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryStorage(cloudName, apiKey, apiSecret string) (*CloudinaryStorage, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise cloudinary: %w", err)
	}
	return &CloudinaryStorage{cld: cld}, nil
}

func publicID(key string) string {
	return strings.TrimSuffix(key, path.Ext(key))
}

func (s *CloudinaryStorage) Save(ctx context.Context, key string, r io.Reader, contentType string) error {
	logger.ExternalServiceCall(ctx, "cloudinary", "upload", "key", key)
	res, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		PublicID:     publicID(key),
		ResourceType: "image",
	})
	if err == nil && res != nil && res.Error.Message != "" {
		err = fmt.Errorf("cloudinary: %s", res.Error.Message)
	}
	logger.ExternalServiceResult(ctx, "cloudinary", "upload", err)
	return err
}

func (s *CloudinaryStorage) Delete(ctx context.Context, key string) error {
	invalidate := true
	logger.ExternalServiceCall(ctx, "cloudinary", "destroy", "key", key)
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID(key),
		ResourceType: "image",
		Invalidate:   &invalidate,
	})
	logger.ExternalServiceResult(ctx, "cloudinary", "destroy", err)
	return err
}

func (s *CloudinaryStorage) URL(ctx context.Context, key string) (string, error) {
	img, err := s.cld.Image(publicID(key))
	if err != nil {
		return "", err
	}
	return img.String()
}
