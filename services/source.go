package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"penguin-service/logger"
)

// ArtifactSource opens the serialized model for reading.
type ArtifactSource interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	String() string
}

// FileSource reads the artifact from the local filesystem.
type FileSource struct {
	Path string
}

func (s FileSource) Open(_ context.Context) (io.ReadCloser, error) {
	return os.Open(s.Path)
}

func (s FileSource) String() string { return "file://" + s.Path }

// MinIOConfig - MinIO connection settings
type MinIOConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
}

// MinIOMetadata - object metadata logged before the artifact is fetched
type MinIOMetadata struct {
	Path         string            `json:"path"`
	Size         int64             `json:"size"`
	ETag         string            `json:"etag"`
	LastModified time.Time         `json:"last_modified"`
	ContentType  string            `json:"content_type"`
	UserMetadata map[string]string `json:"user_metadata"`
}

// objectGetter is the slice of the minio client the source needs.
type objectGetter interface {
	StatObject(ctx context.Context, bucket, object string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	GetObject(ctx context.Context, bucket, object string, opts minio.GetObjectOptions) (*minio.Object, error)
}

// MinIOSource reads the artifact from an S3 compatible object store.
type MinIOSource struct {
	client objectGetter
	bucket string
	object string
}

// NewMinIOSource - build a source for "bucket/path/to/object"
func NewMinIOSource(cfg MinIOConfig, objectPath string) (*MinIOSource, error) {
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, fmt.Errorf("minio credentials are not configured")
	}

	bucket, object, err := ParseObjectPath(objectPath)
	if err != nil {
		return nil, err
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &MinIOSource{client: client, bucket: bucket, object: object}, nil
}

func (s *MinIOSource) Open(ctx context.Context) (io.ReadCloser, error) {
	metadata, err := s.Stat(ctx)
	if err != nil {
		return nil, err
	}

	logger.Logger.Info("model artifact found in object storage",
		zap.String("path", metadata.Path),
		zap.Int64("size_bytes", metadata.Size),
		zap.String("size_formatted", FormatBytes(metadata.Size)),
		zap.String("etag", metadata.ETag),
		zap.Time("last_modified", metadata.LastModified),
	)

	obj, err := s.client.GetObject(ctx, s.bucket, s.object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", s, err)
	}
	return obj, nil
}

// Stat - fetch object metadata without downloading the body
func (s *MinIOSource) Stat(ctx context.Context) (*MinIOMetadata, error) {
	info, err := s.client.StatObject(ctx, s.bucket, s.object, minio.StatObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("stat object %s: %w", s, err)
	}

	return &MinIOMetadata{
		Path:         s.bucket + "/" + s.object,
		Size:         info.Size,
		ETag:         info.ETag,
		LastModified: info.LastModified,
		ContentType:  info.ContentType,
		UserMetadata: info.UserMetadata,
	}, nil
}

func (s *MinIOSource) String() string { return "minio://" + s.bucket + "/" + s.object }

// ParseObjectPath splits "bucket/path/to/object" into bucket and object key.
func ParseObjectPath(path string) (string, string, error) {
	bucket, object, found := strings.Cut(strings.TrimPrefix(path, "/"), "/")
	if !found || bucket == "" || object == "" {
		return "", "", fmt.Errorf("invalid object path %q (want bucket/path/to/object)", path)
	}
	return bucket, object, nil
}

// FormatBytes renders a byte count in binary units.
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
