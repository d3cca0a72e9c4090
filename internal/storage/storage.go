// Package storage archives generated report files to object storage.
package storage

import (
	"context"
	"io"
)

// ObjectStorage abstracts the report archive bucket. The minio implementation
// is used in production; a noop stands in when storage is not configured.
type ObjectStorage interface {
	Upload(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) error
	Download(ctx context.Context, objectName string) (io.ReadCloser, error)
	List(ctx context.Context, prefix string) ([]string, error)
}
