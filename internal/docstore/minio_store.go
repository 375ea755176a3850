package docstore

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"cv-screener/internal/contextutil"
)

const noSuchKey = "NoSuchKey"

// MinioConfig holds connection settings for an S3-compatible object store.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

// MinioStore keeps each document as object {id}.pdf in a single bucket.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioStore connects to the object store and creates the bucket if missing.
func NewMinioStore(ctx context.Context, cfg MinioConfig) (*MinioStore, error) {
	logger := contextutil.LoggerFromContext(ctx)

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		logger.InfoContext(ctx, "creating bucket", "bucket", cfg.Bucket)
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &MinioStore{client: client, bucket: cfg.Bucket}, nil
}

func (s *MinioStore) locator(id string) string {
	return fmt.Sprintf("s3://%s/%s", s.bucket, keyFor(id))
}

// Save uploads data in a single PutObject call, which the server commits atomically.
func (s *MinioStore) Save(ctx context.Context, id string, data []byte) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if err := validateID(id); err != nil {
		return "", err
	}

	_, err := s.client.PutObject(ctx, s.bucket, keyFor(id), bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/pdf"})
	if err != nil {
		logger.ErrorContext(ctx, "failed to store document", "bucket", s.bucket, "id", id, "error", err)
		return "", fmt.Errorf("failed to store document: %w", err)
	}
	return s.locator(id), nil
}

// PathFor returns the object locator of id if it exists.
func (s *MinioStore) PathFor(ctx context.Context, id string) (string, bool, error) {
	if err := validateID(id); err != nil {
		return "", false, err
	}

	_, err := s.client.StatObject(ctx, s.bucket, keyFor(id), minio.StatObjectOptions{})
	if isNotFound(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to stat document: %w", err)
	}
	return s.locator(id), true, nil
}

// Open streams the object for id.
func (s *MinioStore) Open(ctx context.Context, id string) (io.ReadCloser, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	// GetObject is lazy; stat first so a missing object maps to ErrNotFound.
	if _, ok, err := s.PathFor(ctx, id); err != nil {
		return nil, err
	} else if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	obj, err := s.client.GetObject(ctx, s.bucket, keyFor(id), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return obj, nil
}

// Delete removes the object for id.
func (s *MinioStore) Delete(ctx context.Context, id string) (bool, error) {
	_, ok, err := s.PathFor(ctx, id)
	if err != nil || !ok {
		return false, err
	}

	if err := s.client.RemoveObject(ctx, s.bucket, keyFor(id), minio.RemoveObjectOptions{}); err != nil {
		return false, fmt.Errorf("failed to delete document: %w", err)
	}
	return true, nil
}

// List returns every document object in the bucket.
func (s *MinioStore) List(ctx context.Context) ([]Object, error) {
	objects := make([]Object, 0)
	for info := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{}) {
		if info.Err != nil {
			return nil, fmt.Errorf("failed to list documents: %w", info.Err)
		}
		id, ok := idFromKey(info.Key)
		if !ok {
			continue
		}
		objects = append(objects, Object{ID: id, SizeBytes: info.Size})
	}
	return objects, nil
}

func isNotFound(err error) bool {
	return err != nil && minio.ToErrorResponse(err).Code == noSuchKey
}
