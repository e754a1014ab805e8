// Package media stores uploaded video files and images in MinIO-compatible
// object storage and hands public URLs back to the persistence layer.
package media

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"vidtube/internal/config"
	"vidtube/internal/observability"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Store uploads media objects and resolves their public URLs.
type Store interface {
	UploadFile(ctx context.Context, fh *multipart.FileHeader, folder string) (string, error)
	Upload(ctx context.Context, r io.Reader, size int64, contentType, folder, ext string) (string, error)
}

type minioStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewStore connects to the configured MinIO endpoint and ensures the media
// bucket exists.
func NewStore(ctx context.Context, cfg *config.Config) (Store, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check media bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create media bucket: %w", err)
		}
	}

	baseURL := cfg.MediaBaseURL
	if baseURL == "" {
		scheme := "http"
		if cfg.MinioUseSSL {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.MinioEndpoint, cfg.MinioBucket)
	}

	return &minioStore{
		client:  client,
		bucket:  cfg.MinioBucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// UploadFile streams a multipart upload into object storage. The upload is
// synchronous; the request blocks until the media host has the object.
func (s *minioStore) UploadFile(ctx context.Context, fh *multipart.FileHeader, folder string) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer f.Close()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return s.Upload(ctx, f, fh.Size, contentType, folder, path.Ext(fh.Filename))
}

func (s *minioStore) Upload(ctx context.Context, r io.Reader, size int64, contentType, folder, ext string) (string, error) {
	objectName := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), ext)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	_, err := s.client.PutObject(ctx, s.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", objectName, err)
	}

	observability.MediaUploadsTotal.WithLabelValues(folder).Inc()
	observability.MediaUploadBytes.WithLabelValues(folder).Add(float64(size))

	return s.baseURL + "/" + objectName, nil
}
