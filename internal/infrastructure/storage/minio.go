// Package storage keeps evidence files in an S3-compatible object store.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/civictrack/civictrack/internal/shared/config"
	"github.com/civictrack/civictrack/internal/shared/logger"
)

// objectStore is the slice of the minio client the blob store needs.
type objectStore interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
}

type MinioBlobStore struct {
	client    objectStore
	bucket    string
	publicURL string
	logger    logger.Interface
}

func NewMinioBlobStore(cfg config.StorageConfig, log logger.Interface) (*MinioBlobStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}
	return newMinioBlobStore(client, cfg, log), nil
}

func newMinioBlobStore(client objectStore, cfg config.StorageConfig, log logger.Interface) *MinioBlobStore {
	return &MinioBlobStore{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
		logger:    log,
	}
}

// EnsureBucket creates the evidence bucket when it does not exist yet.
func (s *MinioBlobStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	s.logger.Infow("evidence bucket created", "bucket", s.bucket)
	return nil
}

// Put uploads body under key and returns the object's public URL.
func (s *MinioBlobStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	info, err := s.client.PutObject(ctx, s.bucket, key, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object %s: %w", key, err)
	}

	s.logger.Debugw("evidence object stored", "bucket", s.bucket, "key", info.Key, "size", info.Size)
	return s.URL(key), nil
}

func (s *MinioBlobStore) URL(key string) string {
	return s.publicURL + "/" + strings.TrimLeft(key, "/")
}
