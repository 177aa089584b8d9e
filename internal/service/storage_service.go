package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"github.com/stitchpoint/orderdesk/internal/config"
)

// UploadError marks one failed object upload. A failed file is dropped from
// the result; the rest of the batch proceeds.
type UploadError struct {
	FileName string
	Err      error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %s: %v", e.FileName, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// StorageService stores order mockups and attachments in object storage.
// When the client is nil (storage unreachable at startup) uploads fail soft.
type StorageService struct {
	client *minio.Client
	cfg    config.MinIOConfig
	logger *zap.Logger
}

// NewStorageService creates a storage service.
func NewStorageService(client *minio.Client, cfg config.MinIOConfig, logger *zap.Logger) *StorageService {
	return &StorageService{client: client, cfg: cfg, logger: logger}
}

// Bucket returns the bucket backing an upload kind, or an error for an
// unknown kind.
func (s *StorageService) Bucket(kind string) (string, error) {
	switch kind {
	case "mockups":
		return s.cfg.MockupBucket, nil
	case "attachments":
		return s.cfg.AttachmentBucket, nil
	default:
		return "", fmt.Errorf("unknown upload kind %q", kind)
	}
}

// EnsureBuckets creates the configured buckets when they do not exist yet.
func (s *StorageService) EnsureBuckets(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	for _, bucket := range []string{s.cfg.MockupBucket, s.cfg.AttachmentBucket} {
		exists, err := s.client.BucketExists(ctx, bucket)
		if err != nil {
			return fmt.Errorf("check bucket %s: %w", bucket, err)
		}
		if !exists {
			if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
				return fmt.Errorf("make bucket %s: %w", bucket, err)
			}
		}
	}
	return nil
}

// Upload stores one file under orders/<orderID>/ and returns its public URL.
func (s *StorageService) Upload(ctx context.Context, bucket, orderID, fileName string, reader io.Reader, size int64, contentType string) (string, error) {
	if s.client == nil {
		return "", &UploadError{FileName: fileName, Err: fmt.Errorf("object storage unavailable")}
	}

	objectName := fmt.Sprintf("orders/%s/%s%s", orderID, uuid.New().String()[:8], filepath.Ext(fileName))

	_, err := s.client.PutObject(ctx, bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", &UploadError{FileName: fileName, Err: err}
	}
	return s.publicURL(bucket, objectName), nil
}

// Delete removes an object by its public URL. Returns false when the URL
// does not belong to the given bucket.
func (s *StorageService) Delete(ctx context.Context, bucket, fileURL string) (bool, error) {
	if s.client == nil {
		return false, fmt.Errorf("object storage unavailable")
	}

	prefix := s.publicURL(bucket, "")
	if !strings.HasPrefix(fileURL, prefix) {
		return false, nil
	}
	objectName := strings.TrimPrefix(fileURL, prefix)

	if err := s.client.RemoveObject(ctx, bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return false, fmt.Errorf("remove object: %w", err)
	}
	return true, nil
}

func (s *StorageService) publicURL(bucket, objectName string) string {
	base := s.cfg.PublicBaseURL
	if base == "" {
		scheme := "http"
		if s.cfg.UseSSL {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s", scheme, s.cfg.Endpoint)
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(base, "/"), bucket, objectName)
}
