package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/ruthwikaki/invochat-go/internal/config"
)

type minioStorage struct {
	client *minio.Client
	bucket string
}

type noopStorage struct{}

// NewObjectStorage builds a minio-backed store, or a noop when storage is
// disabled in the config.
func NewObjectStorage(cfg config.StorageConfig) (ObjectStorage, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return &noopStorage{}, nil
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &minioStorage{client: client, bucket: cfg.Bucket}, nil
}

func (s *minioStorage) Upload(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", objectName, err)
	}
	return nil
}

func (s *minioStorage) Download(ctx context.Context, objectName string) (io.ReadCloser, error) {
	object, err := s.client.GetObject(ctx, s.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", objectName, err)
	}
	return object, nil
}

func (s *minioStorage) List(ctx context.Context, prefix string) ([]string, error) {
	names := []string{}
	for object := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if object.Err != nil {
			return nil, fmt.Errorf("list objects: %w", object.Err)
		}
		names = append(names, object.Key)
	}
	return names, nil
}

func (n *noopStorage) Upload(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) error {
	return nil
}

func (n *noopStorage) Download(ctx context.Context, objectName string) (io.ReadCloser, error) {
	return nil, fmt.Errorf("storage not configured")
}

func (n *noopStorage) List(ctx context.Context, prefix string) ([]string, error) {
	return []string{}, nil
}
