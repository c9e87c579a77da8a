package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"

	"socialhub/internal/config"
)

type Storage interface {
	// UploadPhoto stores the object and returns the public URL of it.
	UploadPhoto(ctx context.Context, objectName string, file io.Reader, size int64, contentType string) (string, error)
	DeleteObject(ctx context.Context, objectName string) error
	// ObjectName maps a URL returned by UploadPhoto back to its object name.
	ObjectName(url string) (string, bool)
}

type MinIOClient struct {
	client *minio.Client
	config config.MinIO
}

func NewMinIOClient(cfg *config.Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	m := &MinIOClient{client: client, config: cfg.MinIO}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = m.ensureBucket(ctx); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *MinIOClient) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.config.BucketName)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", m.config.BucketName, err)
	}
	if exists {
		return nil
	}

	err = m.client.MakeBucket(ctx, m.config.BucketName, minio.MakeBucketOptions{Region: m.config.Region})
	if err != nil {
		return fmt.Errorf("create bucket %s: %w", m.config.BucketName, err)
	}

	log.WithField("bucket", m.config.BucketName).Info("created minio bucket")
	return nil
}

func (m *MinIOClient) UploadPhoto(ctx context.Context, objectName string, file io.Reader, size int64, contentType string) (string, error) {
	_, err := m.client.PutObject(ctx, m.config.BucketName, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"uploaded-at": time.Now().UTC().Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", fmt.Errorf("upload to minio: %w", err)
	}

	return PublicURL(m.config.PublicURL, m.config.BucketName, objectName), nil
}

func (m *MinIOClient) DeleteObject(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.config.BucketName, objectName,
		minio.RemoveObjectOptions{
			GovernanceBypass: true,
		})
	if err != nil {
		return fmt.Errorf("delete from minio: %w", err)
	}
	return nil
}

func (m *MinIOClient) ObjectName(url string) (string, bool) {
	return ObjectNameFromURL(m.config.PublicURL, m.config.BucketName, url)
}

// PublicURL joins base, bucket and object name into the link handed to clients.
func PublicURL(base, bucket, objectName string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(base, "/"), bucket, objectName)
}

// ObjectNameFromURL is the inverse of PublicURL. Links that were not built
// from base and bucket report false.
func ObjectNameFromURL(base, bucket, url string) (string, bool) {
	prefix := PublicURL(base, bucket, "")
	if url == "" || !strings.HasPrefix(url, prefix) {
		return "", false
	}

	name := strings.TrimPrefix(url, prefix)
	return name, name != ""
}

// PhotoObjectName builds profiles/{slug(username)}--{uuid}{ext}. The extension
// comes from fileName, lower-cased, or fallbackExt when fileName has none.
func PhotoObjectName(username, fileName, fallbackExt string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" {
		ext = fallbackExt
	}

	base := slug.Make(username)
	if base == "" {
		base = "profile"
	}

	return fmt.Sprintf("profiles/%s--%s%s", base, uuid.New().String(), ext)
}
