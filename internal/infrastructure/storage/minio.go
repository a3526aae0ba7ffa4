package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/johnquangdev/meeting-assistant-client/internal/domain/ports"
	"github.com/johnquangdev/meeting-assistant-client/pkg/config"
)

// MinIOArchive keeps a copy of every uploaded meeting file in a bucket
type MinIOArchive struct {
	client *minio.Client
	bucket string
	now    func() time.Time
}

var _ ports.MediaArchive = (*MinIOArchive)(nil)

// NewMinIOArchive creates the client and makes sure the bucket exists
func NewMinIOArchive(ctx context.Context, cfg *config.StorageConfig) (*MinIOArchive, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	archive := &MinIOArchive{
		client: minioClient,
		bucket: cfg.BucketName,
		now:    time.Now,
	}

	if err := archive.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	return archive, nil
}

// ensureBucket creates the bucket when missing. Uploads stay private.
func (m *MinIOArchive) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Archive streams the upload into the bucket and returns the object key.
// The body is consumed.
func (m *MinIOArchive) Archive(ctx context.Context, sessionID string, upload ports.Upload) (string, error) {
	key := ObjectKey(sessionID, upload.Filename, m.now())

	size := upload.Size
	if size <= 0 {
		size = -1
	}
	contentType := upload.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := m.client.PutObject(ctx, m.bucket, key, upload.Body, size, minio.PutObjectOptions{
		ContentType: contentType,
		UserMetadata: map[string]string{
			"session-id":        sessionID,
			"original-filename": upload.Filename,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	return key, nil
}

// ObjectKey builds "<session>/<unix>-<base filename>".
func ObjectKey(sessionID, filename string, at time.Time) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "upload"
	}
	if sessionID == "" {
		sessionID = "unsorted"
	}
	return fmt.Sprintf("%s/%d-%s", sessionID, at.Unix(), name)
}
